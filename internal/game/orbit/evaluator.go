package orbit

import (
	"fmt"

	"github.com/Faultbox/orrery/pkg/math"
)

// StepMode decides how speeds turn into angle increments.
type StepMode int

const (
	// StepPerFrame adds each speed verbatim once per frame; motion depends on frame rate.
	StepPerFrame StepMode = iota
	// StepPerSecond scales each speed by dt*ReferenceFPS, so a speed keeps its
	// per-frame meaning at the reference rate but motion is frame-rate independent.
	StepPerSecond
)

func (m StepMode) String() string {
	switch m {
	case StepPerFrame:
		return "frame"
	case StepPerSecond:
		return "time"
	default:
		return fmt.Sprintf("step(%d)", int(m))
	}
}

// ParseStepMode converts a config value ("frame" or "time") to a StepMode.
func ParseStepMode(s string) (StepMode, error) {
	switch s {
	case "", "frame":
		return StepPerFrame, nil
	case "time":
		return StepPerSecond, nil
	default:
		return 0, fmt.Errorf("unknown step mode %q (want frame or time)", s)
	}
}

// Frame is the evaluated scene for one frame.
type Frame struct {
	// Models holds one model matrix per body, in body order.
	Models []math.Mat4
	// Light is the world position of the light-source body.
	Light math.Vec3
}

// Evaluator advances orbit state and builds model matrices.
// Each body's transform is computed fresh from its parent's frame; nothing is
// composed and then undone on a shared accumulator.
type Evaluator struct {
	Mode         StepMode
	ReferenceFPS float64

	frames []math.Mat4
	frame  Frame
}

// NewEvaluator creates an evaluator for the given step mode.
func NewEvaluator(mode StepMode, referenceFPS float64) *Evaluator {
	if referenceFPS <= 0 {
		referenceFPS = 60
	}
	return &Evaluator{Mode: mode, ReferenceFPS: referenceFPS}
}

// scale returns the factor applied to every speed this frame.
func (e *Evaluator) scale(dt float64) float64 {
	if e.Mode == StepPerSecond {
		return dt * e.ReferenceFPS
	}
	return 1
}

// Step advances all angles by one frame without building matrices.
func (e *Evaluator) Step(sys *System, dt float64) {
	k := e.scale(dt)
	for i := range sys.Bodies {
		b := &sys.Bodies[i]
		b.OrbitAngle += b.OrbitSpeed * k
		b.SpinAngle += b.SpinSpeed * k
	}
}

// Evaluate advances the system by one frame and returns the model matrices.
// The returned Frame reuses its backing storage on the next call.
func (e *Evaluator) Evaluate(sys *System, dt float64) Frame {
	e.Step(sys, dt)

	n := len(sys.Bodies)
	if cap(e.frames) < n {
		e.frames = make([]math.Mat4, n)
		e.frame.Models = make([]math.Mat4, n)
	}
	e.frames = e.frames[:n]
	e.frame.Models = e.frame.Models[:n]

	for i := range sys.Bodies {
		b := &sys.Bodies[i]

		parent := math.Identity()
		if b.Parent != NoParent {
			parent = e.frames[b.Parent]
		}

		placed := parent.Translate(b.Position()).Scale(b.Scale)

		model := placed.Rotate(float32(b.SpinAngle), b.SpinAxis)
		if b.TiltAngle != 0 {
			model = model.Rotate(b.TiltAngle, b.TiltAxis)
		}
		e.frame.Models[i] = model

		// Children see this body with its rotations removed.
		e.frames[i] = placed.Scale(math.Splat(b.ChildScale))
	}

	e.frame.Light = e.frames[sys.Light].Origin()
	return e.frame
}
