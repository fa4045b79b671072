// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/orrery/pkg/math"
)

// Direction is a keyboard movement direction.
type Direction int

const (
	Forward Direction = iota
	Backward
	Left
	Right
)

const maxPitch = 89

// FlyCamera is a free-flying Euler-angle camera.
type FlyCamera struct {
	Pos     math.Vec3
	Front   math.Vec3
	Up      math.Vec3
	RightV  math.Vec3
	WorldUp math.Vec3

	// Euler angles in degrees
	Yaw   float32
	Pitch float32

	// Options
	MovementSpeed    float32
	MouseSensitivity float32
	Zoom             float32 // vertical FOV in degrees
}

// NewFlyCamera creates a camera at pos with the given orientation in degrees.
func NewFlyCamera(pos math.Vec3, yaw, pitch float32) *FlyCamera {
	c := &FlyCamera{
		Pos:              pos,
		WorldUp:          math.Vec3{X: 0, Y: 1, Z: 0},
		Yaw:              yaw,
		Pitch:            pitch,
		MovementSpeed:    2.5,
		MouseSensitivity: 0.1,
		Zoom:             45,
	}
	c.updateVectors()
	return c
}

// Position returns the camera position in world space.
func (c *FlyCamera) Position() math.Vec3 {
	return c.Pos
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Pos, c.Pos.Add(c.Front), c.Up)
}

// ProcessKeyboard moves the camera along its local axes.
// dt is the frame time in seconds.
func (c *FlyCamera) ProcessKeyboard(dir Direction, dt float32) {
	velocity := c.MovementSpeed * dt
	switch dir {
	case Forward:
		c.Pos = c.Pos.Add(c.Front.Scale(velocity))
	case Backward:
		c.Pos = c.Pos.Sub(c.Front.Scale(velocity))
	case Left:
		c.Pos = c.Pos.Sub(c.RightV.Scale(velocity))
	case Right:
		c.Pos = c.Pos.Add(c.RightV.Scale(velocity))
	}
}

// ProcessMouseMovement turns the camera. Positive dy looks up.
func (c *FlyCamera) ProcessMouseMovement(dx, dy float32) {
	c.Yaw += dx * c.MouseSensitivity
	c.Pitch += dy * c.MouseSensitivity

	// Keep the view from flipping at the poles
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}

	c.updateVectors()
}

func (c *FlyCamera) updateVectors() {
	yaw := math.Radians(c.Yaw)
	pitch := math.Radians(c.Pitch)

	front := math.Vec3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}
	c.Front = front.Normalize()
	c.RightV = c.Front.Cross(c.WorldUp).Normalize()
	c.Up = c.RightV.Cross(c.Front).Normalize()
}
