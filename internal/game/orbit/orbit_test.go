package orbit

import (
	stdmath "math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orrery/pkg/math"
)

func newDefaultSystem(t *testing.T) *System {
	t.Helper()
	sys, err := NewSystem(DefaultBodies(), 0)
	require.NoError(t, err)
	return sys
}

func TestAccumulationIsPure(t *testing.T) {
	sys := newDefaultSystem(t)
	ev := NewEvaluator(StepPerFrame, 60)

	const steps = 1000
	for k := 0; k < steps; k++ {
		ev.Evaluate(sys, 0.016)
	}

	for _, b := range DefaultBodies() {
		wantOrbit, wantSpin := b.OrbitAngle, b.SpinAngle
		for k := 0; k < steps; k++ {
			wantOrbit += b.OrbitSpeed
			wantSpin += b.SpinSpeed
		}
		got := findBody(t, sys, b.Name)
		assert.Equal(t, wantOrbit, got.OrbitAngle, "%s orbit angle", b.Name)
		assert.Equal(t, wantSpin, got.SpinAngle, "%s spin angle", b.Name)
	}
}

func TestPlanetFirstStep(t *testing.T) {
	sys := newDefaultSystem(t)
	ev := NewEvaluator(StepPerFrame, 60)

	frame := ev.Evaluate(sys, 0.016)

	pos := sys.Bodies[0].Position()
	assert.InDelta(t, 2*stdmath.Sin(0.000002), float64(pos.X), 1e-9)
	assert.InDelta(t, 0.000004, float64(pos.X), 1e-9)
	assert.InDelta(t, 2.0, float64(pos.Z), 1e-6)
	assert.Equal(t, float32(0), pos.Y)

	// The light sits at the planet's center.
	assert.InDelta(t, float64(pos.X), float64(frame.Light.X), 1e-6)
	assert.InDelta(t, float64(pos.Z), float64(frame.Light.Z), 1e-6)
}

func TestCircleInvariant(t *testing.T) {
	sys := newDefaultSystem(t)
	// Speed things up so the test sweeps whole revolutions.
	for i := range sys.Bodies {
		sys.Bodies[i].OrbitSpeed *= 50000
	}
	ev := NewEvaluator(StepPerFrame, 60)

	for frame := 0; frame < 200; frame++ {
		ev.Evaluate(sys, 0.016)
		for _, b := range sys.Bodies {
			if b.Axes != PlaneXZ || b.Radius[0] != b.Radius[1] {
				continue
			}
			p := b.Position()
			r := b.Radius[0]
			got := float64(p.X)*float64(p.X) + float64(p.Z)*float64(p.Z)
			assert.InDelta(t, r*r, got, r*r*1e-5, "%s frame %d", b.Name, frame)
		}
	}
}

func TestCubesOrbitScaledPlanetFrame(t *testing.T) {
	sys := newDefaultSystem(t)
	sys.Bodies[0].SpinSpeed = 0.3
	ev := NewEvaluator(StepPerFrame, 60)

	frame := ev.Evaluate(sys, 0.016)

	planet := sys.Bodies[0].Position()
	for i := 1; i < len(sys.Bodies); i++ {
		local := sys.Bodies[i].Position()
		// Planet scale 0.1 times child scale 2; planet spin must not leak in.
		want := planet.Add(local.Scale(0.2))
		got := frame.Models[i].Origin()
		assert.InDelta(t, want.X, got.X, 1e-5, "%s x", sys.Bodies[i].Name)
		assert.InDelta(t, want.Y, got.Y, 1e-5, "%s y", sys.Bodies[i].Name)
		assert.InDelta(t, want.Z, got.Z, 1e-5, "%s z", sys.Bodies[i].Name)
	}
}

func TestPlanetModelMatchesSequentialComposition(t *testing.T) {
	sys := newDefaultSystem(t)
	sys.Bodies[0].SpinSpeed = 0.25
	ev := NewEvaluator(StepPerFrame, 60)

	frame := ev.Evaluate(sys, 0.016)

	b := sys.Bodies[0]
	want := math.Identity().
		Translate(b.Position()).
		Scale(math.Splat(0.1)).
		Rotate(float32(b.SpinAngle), math.Vec3{Z: 1}).
		Rotate(1.57, math.Vec3{X: 1})
	for i := range want {
		assert.InDelta(t, want[i], frame.Models[0][i], 1e-6, "element %d", i)
	}
}

func TestCubeSpinAboutOwnCenter(t *testing.T) {
	sys := newDefaultSystem(t)
	ev := NewEvaluator(StepPerFrame, 60)
	sys.Bodies[4].SpinSpeed = 1.0

	before := ev.Evaluate(sys, 0.016).Models[4].Origin()
	sys.Bodies[4].OrbitSpeed = 0
	sys.Bodies[0].OrbitSpeed = 0
	after := ev.Evaluate(sys, 0.016).Models[4].Origin()

	// Spin alone does not move the cube's center.
	assert.InDelta(t, before.X, after.X, 1e-4)
	assert.InDelta(t, before.Y, after.Y, 1e-4)
	assert.InDelta(t, before.Z, after.Z, 1e-4)
}

func TestStepPerSecond(t *testing.T) {
	sys := newDefaultSystem(t)
	ev := NewEvaluator(StepPerSecond, 60)

	ev.Evaluate(sys, 0.5)

	for i, b := range DefaultBodies() {
		assert.InDelta(t, b.OrbitSpeed*30, sys.Bodies[i].OrbitAngle, 1e-15, b.Name)
		assert.InDelta(t, b.SpinSpeed*30, sys.Bodies[i].SpinAngle, 1e-15, b.Name)
	}
}

func TestReset(t *testing.T) {
	sys := newDefaultSystem(t)
	for i := range sys.Bodies {
		sys.Bodies[i].OrbitSpeed = float64(i) * -3
		sys.Bodies[i].SpinSpeed = float64(i) * 7
	}

	sys.Reset()

	require.Len(t, sys.Bodies, 7)
	for _, b := range sys.Bodies {
		assert.Equal(t, BaselineOrbitSpeed, b.OrbitSpeed, b.Name)
		assert.Equal(t, BaselineSpinSpeed, b.SpinSpeed, b.Name)
	}
}

func TestNewSystemValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]Body) []Body
		light  int
		want   error
	}{
		{"empty", func([]Body) []Body { return nil }, 0, ErrNoBodies},
		{"light out of range", func(b []Body) []Body { return b }, 7, ErrBadLight},
		{"forward parent", func(b []Body) []Body { b[1].Parent = 3; return b }, 0, ErrBadParent},
		{"self parent", func(b []Body) []Body { b[2].Parent = 2; return b }, 0, ErrBadParent},
		{"zero spin axis", func(b []Body) []Body { b[3].SpinAxis = math.Vec3{}; return b }, 0, ErrZeroAxis},
		{"nan radius", func(b []Body) []Body { b[1].Radius[0] = stdmath.NaN(); return b }, 0, ErrBadRadius},
		{"zero scale", func(b []Body) []Body { b[5].Scale.Y = 0; return b }, 0, ErrZeroScale},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSystem(tt.mutate(DefaultBodies()), tt.light)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewSystemCopiesBodies(t *testing.T) {
	bodies := DefaultBodies()
	sys, err := NewSystem(bodies, 0)
	require.NoError(t, err)

	bodies[1].OrbitSpeed = 42
	assert.NotEqual(t, 42.0, sys.Bodies[1].OrbitSpeed)
	assert.Nil(t, sys.Body(-1))
	assert.Nil(t, sys.Body(7))
	assert.Equal(t, "cube6", sys.Body(6).Name)
}

func TestParseAxes(t *testing.T) {
	tests := []struct {
		in   string
		want AxisMap
		err  bool
	}{
		{in: "x,0,z", want: PlaneXZ},
		{in: "x,z,0", want: PlaneXY},
		{in: "x, -x, z", want: AxisMap{{1, 0}, {-1, 0}, {0, 1}}},
		{in: "X,Z,Z", want: AxisMap{{1, 0}, {0, 1}, {0, 1}}},
		{in: "x,z", err: true},
		{in: "x,y,z", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAxes(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := ParseAxes(got.String())
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestAxisMapApply(t *testing.T) {
	m, err := ParseAxes("x,-x,z")
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: 3, Y: -3, Z: 4}, m.Apply(3, 4))
}

func TestParseModes(t *testing.T) {
	mode, err := ParseStepMode("time")
	require.NoError(t, err)
	assert.Equal(t, StepPerSecond, mode)

	mode, err = ParseStepMode("")
	require.NoError(t, err)
	assert.Equal(t, StepPerFrame, mode)

	_, err = ParseStepMode("fixed")
	assert.Error(t, err)

	mesh, err := ParseMesh("Cube")
	require.NoError(t, err)
	assert.Equal(t, MeshCube, mesh)
	_, err = ParseMesh("torus")
	assert.Error(t, err)
}

func findBody(t *testing.T, sys *System, name string) Body {
	t.Helper()
	for _, b := range sys.Bodies {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("body %q not found", name)
	return Body{}
}
