package scene

import (
	"github.com/Faultbox/orrery/internal/engine/mesh"
	"github.com/Faultbox/orrery/pkg/math"
)

// DepthFunc selects the depth comparison.
type DepthFunc int

const (
	DepthLess DepthFunc = iota
	DepthLEqual
)

func (d DepthFunc) String() string {
	if d == DepthLEqual {
		return "LEQUAL"
	}
	return "LESS"
}

// TextureTarget selects the texture binding point.
type TextureTarget int

const (
	Texture2D TextureTarget = iota
	TextureCubeMap
)

func (t TextureTarget) String() string {
	if t == TextureCubeMap {
		return "CUBE_MAP"
	}
	return "2D"
}

// Backend is the set of draw calls a frame needs. Uniform setters act on
// the program selected by the last UseProgram call.
type Backend interface {
	Clear(color [4]float32)
	SetDepthFunc(fn DepthFunc)
	UseProgram(program uint32)
	SetInt(name string, v int32)
	SetFloat(name string, v float32)
	SetVec3(name string, v math.Vec3)
	SetMat4(name string, m math.Mat4)
	BindTexture(unit uint32, target TextureTarget, tex uint32)
	DrawMesh(h mesh.Handle)
}
