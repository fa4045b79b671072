// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/engine/shader"
	"github.com/Faultbox/orrery/internal/engine/shader/glsl"
	"github.com/Faultbox/orrery/internal/engine/texture"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Loader reads asset bytes by relative path.
type Loader interface {
	Load(name string) ([]byte, error)
}

// Renderer owns the GL objects and implements scene.Backend.
type Renderer struct {
	config Config

	programs map[uint32]*shader.Program
	current  *shader.Program

	textures []uint32
	meshes   []mesh.Handle
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		programs: make(map[uint32]*shader.Program),
	}

	// Initialize OpenGL
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	// Log OpenGL info
	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	// Setup default OpenGL state
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// LoadPrograms compiles the planet, lit cube and skybox programs.
func (r *Renderer) LoadPrograms() (scene.Programs, error) {
	sources := []struct {
		name       string
		vert, frag string
	}{
		{"planet", glsl.PlanetVertexShader, glsl.PlanetFragmentShader},
		{"lit", glsl.LitVertexShader, glsl.LitFragmentShader},
		{"skybox", glsl.SkyboxVertexShader, glsl.SkyboxFragmentShader},
	}

	ids := make([]uint32, len(sources))
	for i, src := range sources {
		p, err := shader.NewProgram(src.vert, src.frag)
		if err != nil {
			return scene.Programs{}, fmt.Errorf("%s program: %w", src.name, err)
		}
		r.programs[p.ID] = p
		ids[i] = p.ID
	}
	return scene.Programs{Planet: ids[0], Lit: ids[1], Skybox: ids[2]}, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, h := range r.meshes {
		gl.DeleteVertexArrays(1, &h.VAO)
		gl.DeleteBuffers(1, &h.VBO)
		if h.EBO != 0 {
			gl.DeleteBuffers(1, &h.EBO)
		}
	}
	r.meshes = nil
	if len(r.textures) > 0 {
		gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
		r.textures = nil
	}
	for id, p := range r.programs {
		p.Delete()
		delete(r.programs, id)
	}
	r.current = nil
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (width, height int) {
	return r.config.Width, r.config.Height
}

// Clear clears color and depth.
func (r *Renderer) Clear(color [4]float32) {
	gl.ClearColor(color[0], color[1], color[2], color[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// SetDepthFunc sets the depth comparison.
func (r *Renderer) SetDepthFunc(fn scene.DepthFunc) {
	switch fn {
	case scene.DepthLEqual:
		gl.DepthFunc(gl.LEQUAL)
	default:
		gl.DepthFunc(gl.LESS)
	}
}

// UseProgram makes a program from LoadPrograms current.
func (r *Renderer) UseProgram(program uint32) {
	p, ok := r.programs[program]
	if !ok {
		logger.Warn("unknown program", zap.Uint32("program", program))
		return
	}
	p.Use()
	r.current = p
}

// SetInt sets an int uniform on the current program.
func (r *Renderer) SetInt(name string, v int32) {
	if r.current != nil {
		r.current.SetInt(name, v)
	}
}

// SetFloat sets a float uniform on the current program.
func (r *Renderer) SetFloat(name string, v float32) {
	if r.current != nil {
		r.current.SetFloat(name, v)
	}
}

// SetVec3 sets a vec3 uniform on the current program.
func (r *Renderer) SetVec3(name string, v math.Vec3) {
	if r.current != nil {
		r.current.SetVec3(name, v)
	}
}

// SetMat4 sets a mat4 uniform on the current program.
func (r *Renderer) SetMat4(name string, m math.Mat4) {
	if r.current != nil {
		r.current.SetMat4(name, m)
	}
}

// BindTexture binds tex to a texture unit.
func (r *Renderer) BindTexture(unit uint32, target scene.TextureTarget, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	if target == scene.TextureCubeMap {
		gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

// DrawMesh draws an uploaded mesh as triangles.
func (r *Renderer) DrawMesh(h mesh.Handle) {
	gl.BindVertexArray(h.VAO)
	if h.Indexed {
		gl.DrawElements(gl.TRIANGLES, h.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, h.Count)
	}
	gl.BindVertexArray(0)
}

// UploadMesh uploads interleaved position/normal/uv vertices, plus indices
// when the mesh has them.
func (r *Renderer) UploadMesh(m *mesh.Mesh) mesh.Handle {
	data := mesh.Interleave(m.Vertices)
	h := r.uploadVertices(data, 8, []int32{3, 3, 2})
	h.Count = int32(len(m.Vertices))

	if len(m.Indices) > 0 {
		gl.BindVertexArray(h.VAO)
		gl.GenBuffers(1, &h.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, h.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)
		gl.BindVertexArray(0)
		h.Count = int32(len(m.Indices))
		h.Indexed = true
	}

	r.meshes = append(r.meshes, h)
	return h
}

// UploadPositions uploads a position-only mesh such as the skybox.
func (r *Renderer) UploadPositions(positions []float32) mesh.Handle {
	h := r.uploadVertices(positions, 3, []int32{3})
	h.Count = int32(len(positions) / 3)
	r.meshes = append(r.meshes, h)
	return h
}

func (r *Renderer) uploadVertices(data []float32, stride int32, sizes []int32) mesh.Handle {
	var h mesh.Handle
	gl.GenVertexArrays(1, &h.VAO)
	gl.BindVertexArray(h.VAO)

	gl.GenBuffers(1, &h.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, h.VBO)
	if len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)
	}

	var offset int32
	for i, size := range sizes {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointerWithOffset(uint32(i), size, gl.FLOAT, false, stride*4, uintptr(offset*4))
		offset += size
	}

	gl.BindVertexArray(0)
	return h
}

// LoadTexture2D creates a mipmapped, repeating 2D texture from an asset.
// Load or decode failures are logged and leave the handle allocated but empty.
func (r *Renderer) LoadTexture2D(loader Loader, name string) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	r.textures = append(r.textures, tex)

	img, err := decodeAsset(loader, name)
	if err != nil {
		logger.Error("texture failed to load", zap.String("path", name), zap.Error(err))
		return tex
	}

	rgba := texture.ImageToRGBA(img)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(rgba.Rect.Dx()), int32(rgba.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&rgba.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	logger.Debug("texture loaded",
		zap.String("path", name),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()))
	return tex
}

// LoadCubemap creates a cube map from six faces in +X, -X, +Y, -Y, +Z, -Z
// order. Faces are resampled to a common square size. A face that fails to
// load is logged and left undefined.
func (r *Renderer) LoadCubemap(loader Loader, faces [6]string) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	r.textures = append(r.textures, tex)

	imgs := make([]image.Image, len(faces))
	for i, name := range faces {
		img, err := decodeAsset(loader, name)
		if err != nil {
			logger.Error("cubemap face failed to load", zap.String("path", name), zap.Error(err))
			continue
		}
		imgs[i] = img
	}

	size := texture.FaceSize(imgs)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)
	for i, img := range imgs {
		if img == nil {
			continue
		}
		face := texture.SquareFace(img, size)
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA, int32(size), int32(size), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&face.Pix[0]))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	logger.Debug("cubemap loaded", zap.Int("size", size))
	return tex
}

func decodeAsset(loader Loader, name string) (image.Image, error) {
	data, err := loader.Load(name)
	if err != nil {
		return nil, err
	}
	img, err := texture.Decode(data, name)
	if err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("empty image %s", name)
	}
	return img, nil
}

// ReadPixels reads the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}
