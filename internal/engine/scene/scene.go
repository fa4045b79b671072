// Package scene draws one frame of the orrery: the textured planet, the lit
// cubes and the skybox, through a Backend so the ordering can be tested
// without a GL context.
package scene

import (
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/pkg/math"
)

// Kind selects how an object is drawn.
type Kind int

const (
	KindPlanet Kind = iota
	KindCube
)

// Object is one drawable instance for this frame.
type Object struct {
	Kind  Kind
	Model math.Mat4
}

// Lighting holds the shader lighting constants.
type Lighting struct {
	ClearColor       [4]float32
	ObjectColor      math.Vec3
	LightColor       math.Vec3
	PlanetLightPos   math.Vec3
	Ambient          math.Vec3
	Diffuse          math.Vec3
	Specular         math.Vec3
	MaterialSpecular math.Vec3
	Shininess        float32
}

// DefaultLighting returns the stock lighting constants.
func DefaultLighting() Lighting {
	return Lighting{
		ClearColor:       [4]float32{0.2, 0.2, 0.2, 1},
		ObjectColor:      math.Splat(1),
		LightColor:       math.Splat(1),
		Ambient:          math.Splat(0.3),
		Diffuse:          math.Splat(0.5),
		Specular:         math.Splat(1),
		MaterialSpecular: math.Splat(0.8),
		Shininess:        64,
	}
}

// Programs holds linked shader program IDs.
type Programs struct {
	Planet uint32
	Lit    uint32
	Skybox uint32
}

// Resources holds uploaded meshes and textures.
type Resources struct {
	Planet        mesh.Handle
	PlanetTexture uint32
	Cube          mesh.Handle
	Skybox        mesh.Handle
	Cubemap       uint32
}

// View is the camera state for one frame.
type View struct {
	Camera     math.Mat4 // camera view without offsets
	Projection math.Mat4
	Eye        math.Vec3
	Offsets    ViewOffsets
}

// Renderer issues the draw calls for a frame.
type Renderer struct {
	backend   Backend
	programs  Programs
	res       Resources
	lighting  Lighting
	diffuse   *DiffuseSlots
	samplers  bool
	lastDrawn int
}

// New creates a renderer. diffuse supplies the cube texture each frame.
func New(backend Backend, programs Programs, res Resources, lighting Lighting, diffuse *DiffuseSlots) *Renderer {
	if diffuse == nil {
		diffuse = NewDiffuseSlots(0, nil)
	}
	return &Renderer{
		backend:  backend,
		programs: programs,
		res:      res,
		lighting: lighting,
		diffuse:  diffuse,
	}
}

// Diffuse returns the cube texture slots.
func (r *Renderer) Diffuse() *DiffuseSlots {
	return r.diffuse
}

// DrawCount returns how many objects the last frame drew, skybox excluded.
func (r *Renderer) DrawCount() int {
	return r.lastDrawn
}

// bindSamplers points every sampler uniform at texture unit 0.
func (r *Renderer) bindSamplers() {
	b := r.backend
	b.UseProgram(r.programs.Planet)
	b.SetInt("texture_diffuse1", 0)
	b.UseProgram(r.programs.Lit)
	b.SetInt("material.diffuse", 0)
	b.UseProgram(r.programs.Skybox)
	b.SetInt("skybox", 0)
	r.samplers = true
}

// Render draws objects in order, then the skybox.
// light is the world position of the light-source body.
func (r *Renderer) Render(objects []Object, light math.Vec3, v View) {
	b := r.backend
	if !r.samplers {
		r.bindSamplers()
	}

	b.Clear(r.lighting.ClearColor)
	b.SetDepthFunc(DepthLess)

	view := v.Offsets.Apply(v.Camera)
	current := -1
	for _, obj := range objects {
		if int(obj.Kind) != current {
			r.useKind(obj.Kind, view, v, light)
			current = int(obj.Kind)
		}
		b.SetMat4("model", obj.Model)
		switch obj.Kind {
		case KindPlanet:
			b.BindTexture(0, Texture2D, r.res.PlanetTexture)
			b.DrawMesh(r.res.Planet)
		case KindCube:
			b.BindTexture(0, Texture2D, r.diffuse.Active)
			b.DrawMesh(r.res.Cube)
		}
	}
	r.lastDrawn = len(objects)

	r.renderSkybox(v)
}

// useKind selects the program for k and sets its per-frame uniforms.
func (r *Renderer) useKind(k Kind, view math.Mat4, v View, light math.Vec3) {
	b := r.backend
	l := r.lighting

	switch k {
	case KindPlanet:
		b.UseProgram(r.programs.Planet)
		b.SetVec3("objectColor", l.ObjectColor)
		b.SetVec3("lightColor", l.LightColor)
		b.SetVec3("lightPos", l.PlanetLightPos)
	case KindCube:
		b.UseProgram(r.programs.Lit)
		b.SetVec3("light.position", light)
		b.SetVec3("viewPos", v.Eye)
		b.SetVec3("light.ambient", l.Ambient)
		b.SetVec3("light.diffuse", l.Diffuse)
		b.SetVec3("light.specular", l.Specular)
		b.SetVec3("material.specular", l.MaterialSpecular)
		b.SetFloat("material.shininess", l.Shininess)
	}
	b.SetMat4("projection", v.Projection)
	b.SetMat4("view", view)
}

// renderSkybox draws the cube map last with the translation stripped from
// the camera view. View offsets are not applied to the sky.
func (r *Renderer) renderSkybox(v View) {
	b := r.backend
	b.SetDepthFunc(DepthLEqual)
	b.UseProgram(r.programs.Skybox)
	b.SetMat4("view", v.Camera.RotationOnly())
	b.SetMat4("projection", v.Projection)
	b.BindTexture(0, TextureCubeMap, r.res.Cubemap)
	b.DrawMesh(r.res.Skybox)
	b.SetDepthFunc(DepthLess)
}
