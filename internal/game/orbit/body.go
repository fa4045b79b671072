// Package orbit holds the per-body orbit/spin state of the scene and evaluates
// it into model matrices each frame.
package orbit

import (
	"fmt"
	stdmath "math"
	"strings"

	"github.com/Faultbox/orrery/pkg/math"
)

// NoParent marks a root body positioned relative to the world origin.
const NoParent = -1

// Mesh selects which drawable a body is rendered with.
type Mesh int

const (
	MeshPlanet Mesh = iota
	MeshCube
)

func (m Mesh) String() string {
	switch m {
	case MeshPlanet:
		return "planet"
	case MeshCube:
		return "cube"
	default:
		return fmt.Sprintf("mesh(%d)", int(m))
	}
}

// ParseMesh converts a config name to a Mesh.
func ParseMesh(name string) (Mesh, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "planet":
		return MeshPlanet, nil
	case "cube":
		return MeshCube, nil
	default:
		return 0, fmt.Errorf("unknown mesh %q", name)
	}
}

// AxisMap maps the two orbit terms (radius0*sin(angle), radius1*cos(angle))
// to a local X/Y/Z position. Row i holds the coefficients for axis i.
type AxisMap [3][2]float64

// Common axis pairings.
var (
	PlaneXZ = AxisMap{{1, 0}, {0, 0}, {0, 1}}
	PlaneXY = AxisMap{{1, 0}, {0, 1}, {0, 0}}
)

// Apply returns the position for the given sine and cosine terms.
func (a AxisMap) Apply(s, c float64) math.Vec3 {
	return math.Vec3{
		X: float32(a[0][0]*s + a[0][1]*c),
		Y: float32(a[1][0]*s + a[1][1]*c),
		Z: float32(a[2][0]*s + a[2][1]*c),
	}
}

// ParseAxes parses a comma separated triple such as "x,0,z" or "x,-x,z".
// "x" is the sine term, "z" the cosine term and "0" leaves the axis fixed.
func ParseAxes(spec string) (AxisMap, error) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		return AxisMap{}, fmt.Errorf("axes %q: want 3 components, got %d", spec, len(parts))
	}

	var m AxisMap
	for i, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		sign := 1.0
		if strings.HasPrefix(p, "-") {
			sign = -1
			p = p[1:]
		}
		switch p {
		case "x":
			m[i][0] = sign
		case "z":
			m[i][1] = sign
		case "0":
		default:
			return AxisMap{}, fmt.Errorf("axes %q: bad component %q", spec, parts[i])
		}
	}
	return m, nil
}

// String formats the map back into ParseAxes syntax when possible.
func (a AxisMap) String() string {
	parts := make([]string, 3)
	for i, row := range a {
		switch {
		case row == [2]float64{1, 0}:
			parts[i] = "x"
		case row == [2]float64{-1, 0}:
			parts[i] = "-x"
		case row == [2]float64{0, 1}:
			parts[i] = "z"
		case row == [2]float64{0, -1}:
			parts[i] = "-z"
		case row == [2]float64{}:
			parts[i] = "0"
		default:
			parts[i] = fmt.Sprintf("%gx%+gz", row[0], row[1])
		}
	}
	return strings.Join(parts, ",")
}

// Body is the orbit state of one drawn object.
type Body struct {
	Name string

	// Radius scales the sine and cosine orbit terms respectively.
	Radius [2]float64
	Axes   AxisMap

	OrbitAngle float64
	OrbitSpeed float64
	SpinAngle  float64
	SpinSpeed  float64
	SpinAxis   math.Vec3

	// Scale applies after orbit placement and before the spin rotation.
	Scale math.Vec3

	// Tilt is a fixed rotation applied after the spin, for models authored
	// with a different up axis.
	TiltAngle float32
	TiltAxis  math.Vec3

	// ChildScale scales the frame handed to children.
	ChildScale float32

	Parent int
	Mesh   Mesh
}

// Position returns the body's position in its parent frame for the current orbit angle.
func (b *Body) Position() math.Vec3 {
	s, c := stdmath.Sincos(b.OrbitAngle)
	return b.Axes.Apply(b.Radius[0]*s, b.Radius[1]*c)
}

// DefaultBodies returns the planet and its six cubes.
func DefaultBodies() []Body {
	cube := func(name string, r0, r1 float64, axes string, speed, spin float64, axis math.Vec3) Body {
		m, err := ParseAxes(axes)
		if err != nil {
			panic(err)
		}
		return Body{
			Name:       name,
			Radius:     [2]float64{r0, r1},
			Axes:       m,
			OrbitSpeed: speed,
			SpinSpeed:  spin,
			SpinAxis:   axis,
			Scale:      math.Splat(1),
			ChildScale: 1,
			Parent:     0,
			Mesh:       MeshCube,
		}
	}

	return []Body{
		{
			Name:       "planet",
			Radius:     [2]float64{2, 2},
			Axes:       PlaneXZ,
			OrbitSpeed: 0.000002,
			SpinSpeed:  0,
			SpinAxis:   math.Vec3{Z: 1},
			Scale:      math.Splat(0.1),
			TiltAngle:  1.57,
			TiltAxis:   math.Vec3{X: 1},
			ChildScale: 2,
			Parent:     NoParent,
			Mesh:       MeshPlanet,
		},
		cube("cube1", 5, 5, "x,0,z", 0.000001, 0.000015, math.Vec3{Z: 1}),
		cube("cube2", 7, 7, "x,x,z", 0.000001, 0.000018, math.Vec3{X: 1}),
		cube("cube3", 9, 9, "x,z,0", -0.000002, 0.00002, math.Vec3{X: 1, Y: 1, Z: 1}),
		cube("cube4", 10, 12.5, "x,z,z", 0.000011, 0.0001, math.Vec3{Y: 1}),
		cube("cube5", 13.5, 16, "x,-x,z", -0.000009, 0.00017, math.Vec3{X: 6, Y: 9, Z: 1}),
		cube("cube6", 16, 16, "x,0,z", 0.000007, 0.00008, math.Vec3{X: 1, Y: 5, Z: 1}),
	}
}
