// Package input is a per-frame snapshot of the keys and mouse the game
// reads. It knows nothing about the device that fills it.
package input

import "github.com/plus3/astraea/ecs"

type Key uint8

const (
	KeySpace Key = iota
	KeyEscape
	KeyA
	KeyD
	KeyE
	KeyI
	KeyL
	KeyR
	KeyW
	Key1
	Key2
	Key3
	Key4
	KeyF3
	keyCount
)

var keyNames = [keyCount]string{
	"Space", "Escape", "A", "D", "E", "I", "L", "R", "W", "1", "2", "3", "4", "F3",
}

func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return "Key?"
}

// Keys lists every key the snapshot tracks.
func Keys() []Key {
	keys := make([]Key, keyCount)
	for i := range keys {
		keys[i] = Key(i)
	}
	return keys
}

// State is the input snapshot singleton.
type State struct {
	pressed [keyCount]bool
	just    [keyCount]bool

	MouseDown         bool
	MouseJustPressed  bool
	MouseJustReleased bool
	CursorX, CursorY  float32

	// Captured is set while an overlay owns the mouse.
	Captured bool

	Width, Height int
}

// Begin clears the edge flags of the previous frame.
func (s *State) Begin() {
	s.just = [keyCount]bool{}
	s.MouseJustPressed = false
	s.MouseJustReleased = false
}

// SetKey records the key level, raising the just-pressed edge on a press.
func (s *State) SetKey(k Key, down bool) {
	if k >= keyCount {
		return
	}
	if down && !s.pressed[k] {
		s.just[k] = true
	}
	s.pressed[k] = down
}

// SetMouse records the left button and cursor.
func (s *State) SetMouse(down bool, x, y float32) {
	if down && !s.MouseDown {
		s.MouseJustPressed = true
	}
	if !down && s.MouseDown {
		s.MouseJustReleased = true
	}
	s.MouseDown = down
	s.CursorX, s.CursorY = x, y
}

// SetKeyEdge records a key level and edge reported by a device that tracks
// edges itself.
func (s *State) SetKeyEdge(k Key, down, justPressed bool) {
	if k >= keyCount {
		return
	}
	s.pressed[k] = down
	s.just[k] = justPressed
}

// SetMouseEdge is SetKeyEdge for the left button and cursor.
func (s *State) SetMouseEdge(down, justPressed, justReleased bool, x, y float32) {
	s.MouseDown = down
	s.MouseJustPressed = justPressed
	s.MouseJustReleased = justReleased
	s.CursorX, s.CursorY = x, y
}

func (s *State) Pressed(k Key) bool {
	return k < keyCount && s.pressed[k]
}

func (s *State) JustPressed(k Key) bool {
	return k < keyCount && s.just[k]
}

// Source fills a snapshot once per frame.
type Source interface {
	Poll(state *State)
}

// PollSystem refreshes the State singleton from a Source. Register it first.
type PollSystem struct {
	Source Source
	State  ecs.Singleton[State]
}

func (s *PollSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil || s.Source == nil {
		return
	}
	state.Begin()
	s.Source.Poll(state)
}
