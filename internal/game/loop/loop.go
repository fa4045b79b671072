// Package loop runs the per-frame cycle: timing, input, simulation,
// drawing and the paused state.
package loop

import (
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/engine/scene"
	"github.com/Faultbox/orrery/internal/game/control"
	"github.com/Faultbox/orrery/internal/game/orbit"
	"github.com/Faultbox/orrery/internal/logger"
	"github.com/Faultbox/orrery/pkg/math"
)

// pauseWaitMs bounds how long a paused iteration blocks for events.
const pauseWaitMs = 50

// Platform is the window system side of the loop.
type Platform interface {
	PollEvents(state *input.State)
	WaitEvents(state *input.State, timeoutMs int)
	SwapBuffers()
}

// Projection holds the clip planes; the field of view comes from the camera.
type Projection struct {
	Near float32
	Far  float32
}

// Deps wires the loop to its collaborators.
type Deps struct {
	Platform   Platform
	Keys       *input.State
	Controller *control.Controller
	System     *orbit.System
	Evaluator  *orbit.Evaluator
	Camera     *camera.FlyCamera
	Offsets    *scene.ViewOffsets
	Scene      *scene.Renderer
	Projection Projection

	// Now returns a monotonic time in seconds.
	Now func() float64
	// Resize is called with the new framebuffer size.
	Resize func(width, height int)
	// Screenshot captures the frame just drawn.
	Screenshot func() (string, error)

	Width, Height int
	LogFPS        bool
}

// Loop is the main loop state machine.
type Loop struct {
	d       Deps
	objects []scene.Object
	log     *zap.Logger

	lastFrame float64
	started   bool

	fpsFrames int
	fpsStart  float64
	frames    uint64
}

// New creates a loop. Keys, Offsets and Now get defaults when nil.
func New(d Deps) *Loop {
	if d.Keys == nil {
		d.Keys = input.New()
	}
	if d.Offsets == nil {
		d.Offsets = &scene.ViewOffsets{}
	}
	return &Loop{d: d, log: logger.Named("loop")}
}

// Frames returns the number of frames drawn.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run iterates until the window closes or Escape is pressed.
func (l *Loop) Run() {
	l.log.Info("starting main loop")
	for l.Step() {
	}
	l.log.Info("main loop stopped", zap.Uint64("frames", l.frames))
}

// Step runs one iteration and reports whether the loop should continue.
func (l *Loop) Step() bool {
	if !l.started {
		l.started = true
		l.lastFrame = l.d.Now()
		l.fpsStart = l.lastFrame
		l.pump()
	}
	if l.d.Keys.QuitRequested() {
		return false
	}

	if l.d.Controller.Mode() == control.Paused {
		return l.stepPaused()
	}
	return l.stepRunning()
}

func (l *Loop) stepPaused() bool {
	l.d.Keys.BeginFrame()
	l.d.Platform.WaitEvents(l.d.Keys, pauseWaitMs)
	l.applyResize()
	if l.d.Keys.QuitRequested() {
		return false
	}

	act := l.d.Controller.UpdatePaused(l.d.Keys)
	if act.Has(control.ActionQuit) {
		return false
	}
	if act.Has(control.ActionResume) {
		// The pause must not show up as one huge frame
		l.lastFrame = l.d.Now()
		l.fpsStart = l.lastFrame
		l.fpsFrames = 0
	}
	return true
}

func (l *Loop) stepRunning() bool {
	now := l.d.Now()
	dt := now - l.lastFrame
	l.lastFrame = now

	act := l.d.Controller.Update(l.d.Keys, float32(dt))
	if act.Has(control.ActionQuit) {
		return false
	}
	if act.Has(control.ActionPause) {
		return true
	}
	l.d.Controller.MouseMoved(l.d.Keys.MouseDelta())

	frame := l.d.Evaluator.Evaluate(l.d.System, dt)
	if l.d.Width > 0 && l.d.Height > 0 {
		l.draw(frame)
		if act.Has(control.ActionScreenshot) {
			l.screenshot()
		}
	}
	l.d.Platform.SwapBuffers()
	l.frames++
	l.countFPS(now, dt)

	l.pump()
	return !l.d.Keys.QuitRequested()
}

func (l *Loop) pump() {
	l.d.Keys.BeginFrame()
	l.d.Platform.PollEvents(l.d.Keys)
	l.applyResize()
}

func (l *Loop) applyResize() {
	w, h, ok := l.d.Keys.Resized()
	if !ok {
		return
	}
	l.d.Width, l.d.Height = w, h
	if l.d.Resize != nil {
		l.d.Resize(w, h)
	}
}

func (l *Loop) draw(frame orbit.Frame) {
	l.objects = Objects(l.objects[:0], l.d.System, frame)

	cam := l.d.Camera
	aspect := float32(l.d.Width) / float32(l.d.Height)
	view := scene.View{
		Camera:     cam.ViewMatrix(),
		Projection: math.Perspective(math.Radians(cam.Zoom), aspect, l.d.Projection.Near, l.d.Projection.Far),
		Eye:        cam.Position(),
		Offsets:    *l.d.Offsets,
	}
	l.d.Scene.Render(l.objects, frame.Light, view)
}

func (l *Loop) screenshot() {
	if l.d.Screenshot == nil {
		return
	}
	path, err := l.d.Screenshot()
	if err != nil {
		l.log.Error("screenshot failed", zap.Error(err))
		return
	}
	l.log.Info("screenshot saved", zap.String("path", path))
}

func (l *Loop) countFPS(now, dt float64) {
	l.fpsFrames++
	if now-l.fpsStart < 1 {
		return
	}
	if l.d.LogFPS {
		l.log.Debug("fps",
			zap.Int("count", l.fpsFrames),
			zap.Float64("dt_ms", dt*1000))
	}
	l.fpsFrames = 0
	l.fpsStart = now
}

// Objects appends one drawable per body to dst.
func Objects(dst []scene.Object, sys *orbit.System, frame orbit.Frame) []scene.Object {
	for i, b := range sys.Bodies {
		kind := scene.KindCube
		if b.Mesh == orbit.MeshPlanet {
			kind = scene.KindPlanet
		}
		dst = append(dst, scene.Object{Kind: kind, Model: frame.Models[i]})
	}
	return dst
}
