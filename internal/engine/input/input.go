// Package input tracks keyboard and mouse state between frames.
//
// The window package feeds device events into a State; game code reads
// it through Down and Pressed without touching SDL.
package input

// Key identifies a key the demo reacts to.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyBackspace
	KeyLeftShift
	KeyR
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyMinus
	KeyEqual
	KeyLeftBracket
	KeyRightBracket
	KeyW
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyF12

	keyCount
)

var keyNames = [keyCount]string{
	KeyUnknown:      "unknown",
	KeyEscape:       "escape",
	KeySpace:        "space",
	KeyBackspace:    "backspace",
	KeyLeftShift:    "lshift",
	KeyR:            "r",
	Key0:            "0",
	Key1:            "1",
	Key2:            "2",
	Key3:            "3",
	Key4:            "4",
	Key5:            "5",
	Key6:            "6",
	Key7:            "7",
	Key8:            "8",
	Key9:            "9",
	KeyMinus:        "-",
	KeyEqual:        "=",
	KeyLeftBracket:  "[",
	KeyRightBracket: "]",
	KeyW:            "w",
	KeyA:            "a",
	KeyS:            "s",
	KeyD:            "d",
	KeyUp:           "up",
	KeyDown:         "down",
	KeyLeft:         "left",
	KeyRight:        "right",
	KeyF12:          "f12",
}

func (k Key) String() string {
	if k < 0 || k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}

// Keys is a read-only view of keyboard state.
type Keys interface {
	// Down reports whether k is held.
	Down(k Key) bool
	// Pressed reports whether k went down since the previous frame.
	Pressed(k Key) bool
}

// State holds the current and previous frame's key state plus the
// mouse motion accumulated since the last BeginFrame.
type State struct {
	keys [keyCount]bool
	prev [keyCount]bool

	mouseDX, mouseDY float32
	quit             bool
	resized          bool
	width, height    int
}

// New creates an empty input state.
func New() *State {
	return &State{}
}

// BeginFrame rolls current key state into the previous frame and clears
// per-frame accumulators. Call it once before pumping events.
func (s *State) BeginFrame() {
	s.prev = s.keys
	s.mouseDX, s.mouseDY = 0, 0
	s.resized = false
}

// SetKey records k as held or released.
func (s *State) SetKey(k Key, down bool) {
	if k <= KeyUnknown || k >= keyCount {
		return
	}
	s.keys[k] = down
}

// Down reports whether k is held.
func (s *State) Down(k Key) bool {
	if k <= KeyUnknown || k >= keyCount {
		return false
	}
	return s.keys[k]
}

// Pressed reports whether k went down this frame.
func (s *State) Pressed(k Key) bool {
	if k <= KeyUnknown || k >= keyCount {
		return false
	}
	return s.keys[k] && !s.prev[k]
}

// AddMouseMotion accumulates relative mouse motion in pixels.
func (s *State) AddMouseMotion(dx, dy float32) {
	s.mouseDX += dx
	s.mouseDY += dy
}

// MouseDelta returns the motion accumulated this frame.
// Y grows downward, as reported by the window system.
func (s *State) MouseDelta() (dx, dy float32) {
	return s.mouseDX, s.mouseDY
}

// RequestQuit marks a window close request.
func (s *State) RequestQuit() {
	s.quit = true
}

// QuitRequested reports whether the window was asked to close.
func (s *State) QuitRequested() bool {
	return s.quit
}

// SetSize records a framebuffer resize.
func (s *State) SetSize(width, height int) {
	s.width, s.height = width, height
	s.resized = true
}

// Resized returns the new size if the window was resized this frame.
func (s *State) Resized() (width, height int, ok bool) {
	return s.width, s.height, s.resized
}
