// Package window handles SDL2 window and OpenGL context creation.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/orrery/internal/engine/input"
	"github.com/Faultbox/orrery/internal/logger"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
	}

	// Initialize SDL2
	logger.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// Set OpenGL attributes BEFORE creating window
	// We want OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_FORWARD_COMPATIBLE_FLAG)

	// Double buffering
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)

	// Depth buffer
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	// Create window with OpenGL flag
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	// Create OpenGL context
	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	// Enable VSync
	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			logger.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	// Capture the cursor so mouse look is unbounded
	sdl.SetRelativeMouseMode(true)

	logger.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	logger.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current window size in screen coordinates.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// DrawableSize returns the framebuffer size in pixels, which differs from
// GetSize on HiDPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}

// Ticks returns seconds since SDL initialization.
func Ticks() float64 {
	return float64(sdl.GetPerformanceCounter()) / float64(sdl.GetPerformanceFrequency())
}

// PollEvents drains pending events into state without blocking.
func (w *Window) PollEvents(state *input.State) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		w.handleEvent(event, state)
	}
	syncKeyboard(state)
}

// WaitEvents blocks up to timeoutMs for an event, then drains the queue.
func (w *Window) WaitEvents(state *input.State, timeoutMs int) {
	if event := sdl.WaitEventTimeout(timeoutMs); event != nil {
		w.handleEvent(event, state)
	}
	w.PollEvents(state)
}

func (w *Window) handleEvent(event sdl.Event, state *input.State) {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		state.RequestQuit()

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			state.SetSize(w.DrawableSize())
		}

	case *sdl.MouseMotionEvent:
		state.AddMouseMotion(float32(e.XRel), float32(e.YRel))
	}
}

// syncKeyboard copies the SDL key state for every key the demo uses, so
// keys released while the window was unfocused do not stick.
func syncKeyboard(state *input.State) {
	keys := sdl.GetKeyboardState()
	for sc, key := range scancodes {
		if int(sc) < len(keys) {
			state.SetKey(key, keys[sc] != 0)
		}
	}
}

var scancodes = map[sdl.Scancode]input.Key{
	sdl.SCANCODE_ESCAPE:       input.KeyEscape,
	sdl.SCANCODE_SPACE:        input.KeySpace,
	sdl.SCANCODE_BACKSPACE:    input.KeyBackspace,
	sdl.SCANCODE_LSHIFT:       input.KeyLeftShift,
	sdl.SCANCODE_R:            input.KeyR,
	sdl.SCANCODE_0:            input.Key0,
	sdl.SCANCODE_1:            input.Key1,
	sdl.SCANCODE_2:            input.Key2,
	sdl.SCANCODE_3:            input.Key3,
	sdl.SCANCODE_4:            input.Key4,
	sdl.SCANCODE_5:            input.Key5,
	sdl.SCANCODE_6:            input.Key6,
	sdl.SCANCODE_7:            input.Key7,
	sdl.SCANCODE_8:            input.Key8,
	sdl.SCANCODE_9:            input.Key9,
	sdl.SCANCODE_MINUS:        input.KeyMinus,
	sdl.SCANCODE_EQUALS:       input.KeyEqual,
	sdl.SCANCODE_LEFTBRACKET:  input.KeyLeftBracket,
	sdl.SCANCODE_RIGHTBRACKET: input.KeyRightBracket,
	sdl.SCANCODE_W:            input.KeyW,
	sdl.SCANCODE_A:            input.KeyA,
	sdl.SCANCODE_S:            input.KeyS,
	sdl.SCANCODE_D:            input.KeyD,
	sdl.SCANCODE_UP:           input.KeyUp,
	sdl.SCANCODE_DOWN:         input.KeyDown,
	sdl.SCANCODE_LEFT:         input.KeyLeft,
	sdl.SCANCODE_RIGHT:        input.KeyRight,
	sdl.SCANCODE_F12:          input.KeyF12,
}
