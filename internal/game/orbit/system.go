package orbit

import (
	"errors"
	"fmt"

	stdmath "math"
)

// Reset baselines applied to every body by System.Reset.
const (
	BaselineOrbitSpeed = 0.000001
	BaselineSpinSpeed  = 0.00001
)

var (
	ErrNoBodies  = errors.New("orbit: no bodies")
	ErrBadParent = errors.New("orbit: parent must precede child")
	ErrBadLight  = errors.New("orbit: light body out of range")
	ErrZeroAxis  = errors.New("orbit: zero spin axis")
	ErrBadRadius = errors.New("orbit: radius must be finite")
	ErrZeroScale = errors.New("orbit: zero scale")
)

// System is the ordered set of bodies evaluated each frame.
// Bodies are stored parents-first so a single forward pass can evaluate them.
type System struct {
	Bodies []Body

	// Light is the index of the body whose world position feeds the point light.
	Light int
}

// NewSystem validates bodies and wraps them in a System. The slice is copied.
func NewSystem(bodies []Body, light int) (*System, error) {
	if len(bodies) == 0 {
		return nil, ErrNoBodies
	}
	if light < 0 || light >= len(bodies) {
		return nil, fmt.Errorf("%w: %d of %d", ErrBadLight, light, len(bodies))
	}

	for i, b := range bodies {
		if b.Parent != NoParent && (b.Parent < 0 || b.Parent >= i) {
			return nil, fmt.Errorf("body %d (%s): %w (parent %d)", i, b.Name, ErrBadParent, b.Parent)
		}
		if b.SpinAxis.Length() == 0 {
			return nil, fmt.Errorf("body %d (%s): %w", i, b.Name, ErrZeroAxis)
		}
		if b.TiltAngle != 0 && b.TiltAxis.Length() == 0 {
			return nil, fmt.Errorf("body %d (%s): %w (tilt)", i, b.Name, ErrZeroAxis)
		}
		for _, r := range b.Radius {
			if stdmath.IsNaN(r) || stdmath.IsInf(r, 0) {
				return nil, fmt.Errorf("body %d (%s): %w", i, b.Name, ErrBadRadius)
			}
		}
		if b.Scale.X == 0 || b.Scale.Y == 0 || b.Scale.Z == 0 || b.ChildScale == 0 {
			return nil, fmt.Errorf("body %d (%s): %w", i, b.Name, ErrZeroScale)
		}
	}

	s := &System{
		Bodies: make([]Body, len(bodies)),
		Light:  light,
	}
	copy(s.Bodies, bodies)
	return s, nil
}

// Body returns a pointer to body i, or nil when out of range.
func (s *System) Body(i int) *Body {
	if i < 0 || i >= len(s.Bodies) {
		return nil
	}
	return &s.Bodies[i]
}

// Reset drives every orbit and spin speed to the baseline values.
// Angles are kept so the scene does not jump.
func (s *System) Reset() {
	for i := range s.Bodies {
		s.Bodies[i].OrbitSpeed = BaselineOrbitSpeed
		s.Bodies[i].SpinSpeed = BaselineSpinSpeed
	}
}
