// Package control maps keyboard and mouse state to orrery actions:
// speed adjustments, camera motion, view offsets and the pause state.
package control

import (
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/game/orbit"
	"github.com/Faultbox/orrery/internal/logger"
)

// Action reports what the main loop must do after an update.
// Several actions can be set at once.
type Action uint8

const (
	ActionNone Action = 0
	ActionQuit Action = 1 << iota
	ActionPause
	ActionResume
	ActionScreenshot
)

// Has reports whether a contains flag.
func (a Action) Has(flag Action) bool {
	return a&flag != 0
}

// Mode is the run state of the main loop.
type Mode int

const (
	Running Mode = iota
	Paused
)

func (m Mode) String() string {
	if m == Paused {
		return "paused"
	}
	return "running"
}

// Camera is the part of the fly camera the controller drives.
type Camera interface {
	ProcessKeyboard(dir camera.Direction, dt float32)
	ProcessMouseMovement(dx, dy float32)
}

// Toggler swaps the cube texture.
type Toggler interface {
	Toggle()
}

// Binding maps an increment/decrement key pair to one body's speeds.
// Without Left-Shift the pair changes the orbit speed by OrbitStep,
// with it the spin speed by SpinStep. Inc wins when both are held.
type Binding struct {
	Inc, Dec  input.Key
	Body      int
	OrbitStep float64
	SpinStep  float64
}

// DefaultBindings returns the stock key layout: digit pairs and -/= for
// cubes 1 to 6, brackets for the planet.
func DefaultBindings() []Binding {
	const cubeStep = 0.0000001
	return []Binding{
		{Inc: input.Key1, Dec: input.Key2, Body: 1, OrbitStep: cubeStep, SpinStep: cubeStep},
		{Inc: input.Key3, Dec: input.Key4, Body: 2, OrbitStep: cubeStep, SpinStep: cubeStep},
		{Inc: input.Key5, Dec: input.Key6, Body: 3, OrbitStep: cubeStep, SpinStep: cubeStep},
		{Inc: input.Key7, Dec: input.Key8, Body: 4, OrbitStep: cubeStep, SpinStep: cubeStep},
		{Inc: input.Key9, Dec: input.Key0, Body: 5, OrbitStep: cubeStep, SpinStep: cubeStep},
		{Inc: input.KeyMinus, Dec: input.KeyEqual, Body: 6, OrbitStep: cubeStep, SpinStep: cubeStep},
		{Inc: input.KeyLeftBracket, Dec: input.KeyRightBracket, Body: 0, OrbitStep: 0.00000005, SpinStep: cubeStep},
	}
}

var moveKeys = [...]struct {
	key input.Key
	dir camera.Direction
}{
	{input.KeyW, camera.Forward},
	{input.KeyS, camera.Backward},
	{input.KeyA, camera.Left},
	{input.KeyD, camera.Right},
}

// Controller applies input to the simulation, camera and view.
type Controller struct {
	system   *orbit.System
	camera   Camera
	offsets  *scene.ViewOffsets
	texture  Toggler
	bindings []Binding
	mode     Mode
	log      *zap.Logger
}

// New creates a controller in the Running state.
func New(system *orbit.System, cam Camera, offsets *scene.ViewOffsets, texture Toggler) *Controller {
	return &Controller{
		system:   system,
		camera:   cam,
		offsets:  offsets,
		texture:  texture,
		bindings: DefaultBindings(),
		log:      logger.Named("control"),
	}
}

// Mode returns the current run state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Update handles one running frame. dt is the frame time in seconds.
func (c *Controller) Update(keys input.Keys, dt float32) Action {
	if keys.Down(input.KeyEscape) {
		return ActionQuit
	}
	if keys.Pressed(input.KeySpace) {
		c.mode = Paused
		c.log.Debug("paused")
		return ActionPause
	}

	var act Action
	if keys.Down(input.KeyR) {
		c.system.Reset()
		c.offsets.Reset()
	}
	if keys.Pressed(input.KeyBackspace) && c.texture != nil {
		c.log.Info("change texture")
		c.texture.Toggle()
	}

	shift := keys.Down(input.KeyLeftShift)
	c.adjustSpeeds(keys, shift)

	moveDT := dt
	if shift {
		moveDT = 2 * dt
	}
	for _, m := range moveKeys {
		if keys.Down(m.key) {
			c.camera.ProcessKeyboard(m.dir, moveDT)
		}
	}

	if keys.Down(input.KeyUp) {
		c.offsets.X += dt
	}
	if keys.Down(input.KeyDown) {
		c.offsets.X -= dt
	}
	if keys.Down(input.KeyLeft) {
		c.offsets.Y += dt
	}
	if keys.Down(input.KeyRight) {
		c.offsets.Y -= dt
	}

	if keys.Pressed(input.KeyF12) {
		act |= ActionScreenshot
	}
	return act
}

func (c *Controller) adjustSpeeds(keys input.Keys, spin bool) {
	for _, b := range c.bindings {
		body := c.system.Body(b.Body)
		if body == nil {
			continue
		}

		var sign float64
		if keys.Down(b.Inc) {
			sign = 1
		} else if keys.Down(b.Dec) {
			sign = -1
		} else {
			continue
		}

		if spin {
			body.SpinSpeed += sign * b.SpinStep
		} else {
			body.OrbitSpeed += sign * b.OrbitStep
		}
	}
}

// UpdatePaused handles one paused iteration: Left-Shift resumes,
// Escape quits, everything else is ignored.
func (c *Controller) UpdatePaused(keys input.Keys) Action {
	if keys.Down(input.KeyEscape) {
		return ActionQuit
	}
	if keys.Down(input.KeyLeftShift) {
		c.mode = Running
		c.log.Debug("resumed")
		return ActionResume
	}
	return ActionNone
}

// MouseMoved turns the camera by a window-space delta (y grows downward).
// Motion is dropped while paused.
func (c *Controller) MouseMoved(dx, dy float32) {
	if c.mode == Paused || (dx == 0 && dy == 0) {
		return
	}
	c.camera.ProcessMouseMovement(dx, -dy)
}
