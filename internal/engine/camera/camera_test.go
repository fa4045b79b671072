package camera

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/orrery/pkg/math"
)

const eps = 1e-5

func TestNewFlyCameraLooksDownNegativeZ(t *testing.T) {
	c := NewFlyCamera(math.Vec3{Z: 3}, -90, 0)

	assert.InDelta(t, 0, c.Front.X, eps)
	assert.InDelta(t, 0, c.Front.Y, eps)
	assert.InDelta(t, -1, c.Front.Z, eps)
	assert.InDelta(t, 1, c.RightV.X, eps)
	assert.InDelta(t, 1, c.Up.Y, eps)
}

func TestProcessKeyboard(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want math.Vec3
	}{
		{"forward", Forward, math.Vec3{Z: 3 - 2.5}},
		{"backward", Backward, math.Vec3{Z: 3 + 2.5}},
		{"left", Left, math.Vec3{X: -2.5, Z: 3}},
		{"right", Right, math.Vec3{X: 2.5, Z: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFlyCamera(math.Vec3{Z: 3}, -90, 0)
			c.ProcessKeyboard(tt.dir, 1)

			pos := c.Position()
			assert.InDelta(t, tt.want.X, pos.X, eps)
			assert.InDelta(t, tt.want.Y, pos.Y, eps)
			assert.InDelta(t, tt.want.Z, pos.Z, eps)
		})
	}
}

func TestPitchClamp(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, -90, 0)

	c.ProcessMouseMovement(0, 10000)
	assert.Equal(t, float32(89), c.Pitch)

	c.ProcessMouseMovement(0, -50000)
	assert.Equal(t, float32(-89), c.Pitch)
}

func TestMouseSensitivity(t *testing.T) {
	c := NewFlyCamera(math.Vec3{}, -90, 0)
	c.ProcessMouseMovement(100, 20)

	assert.InDelta(t, -80, c.Yaw, eps)
	assert.InDelta(t, 2, c.Pitch, eps)
	assert.Greater(t, c.Front.Y, float32(0), "positive dy should look up")
}

func TestViewMatrixMapsPositionToOrigin(t *testing.T) {
	c := NewFlyCamera(math.Vec3{X: 1, Y: 2, Z: 3}, -40, 15)
	got := c.ViewMatrix().TransformPoint(c.Position())

	assert.InDelta(t, 0, got.X, eps)
	assert.InDelta(t, 0, got.Y, eps)
	assert.InDelta(t, 0, got.Z, eps)
}
