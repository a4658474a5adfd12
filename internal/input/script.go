package input

// Step is what a scripted player does during one frame. Keys are held for
// exactly that frame; Mouse, when set, moves the cursor and sets the button.
type Step struct {
	Keys  []Key
	Mouse *Mouse
}

type Mouse struct {
	X, Y float32
	Down bool
}

// Script replays steps, one per Poll, then releases everything.
type Script struct {
	steps []Step
	next  int
}

func NewScript(steps ...Step) *Script {
	return &Script{steps: steps}
}

// Push appends more steps.
func (s *Script) Push(steps ...Step) {
	s.steps = append(s.steps, steps...)
}

// Done reports whether every step has been replayed.
func (s *Script) Done() bool {
	return s.next >= len(s.steps)
}

func (s *Script) Poll(state *State) {
	var step Step
	if s.next < len(s.steps) {
		step = s.steps[s.next]
		s.next++
	}

	held := make(map[Key]bool, len(step.Keys))
	for _, k := range step.Keys {
		held[k] = true
	}
	for _, k := range Keys() {
		state.SetKey(k, held[k])
	}

	if step.Mouse != nil {
		state.SetMouse(step.Mouse.Down, step.Mouse.X, step.Mouse.Y)
	} else {
		state.SetMouse(false, state.CursorX, state.CursorY)
	}
}

// Tap is a step pressing keys for one frame.
func Tap(keys ...Key) Step {
	return Step{Keys: keys}
}

// Idle is a step with nothing held.
func Idle() Step {
	return Step{}
}

// Click is a press then release at (x, y).
func Click(x, y float32) []Step {
	return []Step{
		{Mouse: &Mouse{X: x, Y: y, Down: true}},
		{Mouse: &Mouse{X: x, Y: y}},
	}
}

// Drag holds the button while moving from one point to another in n steps.
func Drag(fromX, fromY, toX, toY float32, n int) []Step {
	steps := make([]Step, 0, n+2)
	for i := 0; i <= n; i++ {
		t := float32(i) / float32(max(n, 1))
		steps = append(steps, Step{Mouse: &Mouse{
			X:    fromX + (toX-fromX)*t,
			Y:    fromY + (toY-fromY)*t,
			Down: true,
		}})
	}
	return append(steps, Step{Mouse: &Mouse{X: toX, Y: toY}})
}
