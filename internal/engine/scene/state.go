package scene

import "github.com/Faultbox/orrery/pkg/math"

var (
	axisX = math.Vec3{X: 1}
	axisY = math.Vec3{Y: 1}
)

// ViewOffsets is an extra pitch (X) and yaw (Y), in radians, applied on
// top of the camera view. They accumulate until Reset.
type ViewOffsets struct {
	X float32
	Y float32
}

// Apply returns view * Rx(X) * Ry(Y).
func (o ViewOffsets) Apply(view math.Mat4) math.Mat4 {
	return view.Rotate(o.X, axisX).Rotate(o.Y, axisY)
}

// Reset zeroes both offsets.
func (o *ViewOffsets) Reset() {
	o.X, o.Y = 0, 0
}

// TextureLoader produces a texture handle on demand.
type TextureLoader func() uint32

// DiffuseSlots holds the active cube texture and the alternate it can be
// swapped with. The alternate is loaded on the first Toggle.
type DiffuseSlots struct {
	Active    uint32
	Alternate uint32

	load   TextureLoader
	loaded bool
}

// NewDiffuseSlots creates slots with active in use and a lazy alternate.
func NewDiffuseSlots(active uint32, load TextureLoader) *DiffuseSlots {
	return &DiffuseSlots{Active: active, load: load}
}

// Toggle swaps the active and alternate textures, loading the alternate
// the first time.
func (d *DiffuseSlots) Toggle() {
	if !d.loaded {
		if d.load != nil {
			d.Alternate = d.load()
		}
		d.loaded = true
	}
	d.Active, d.Alternate = d.Alternate, d.Active
}

// Loaded reports whether the alternate has been loaded.
func (d *DiffuseSlots) Loaded() bool {
	return d.loaded
}
