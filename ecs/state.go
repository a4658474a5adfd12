package ecs

// State is a finite state machine value kept as a singleton. Transitions are
// requested with Set and applied by StateTransitions at the start of the next
// frame.
type State[S comparable] struct {
	current S
	next    S
	pending bool
	entered bool
	started bool
}

// NewState returns a machine sitting in initial. The OnEnter hooks of
// initial run on the first frame.
func NewState[S comparable](initial S) State[S] {
	return State[S]{current: initial}
}

// Current returns the active state.
func (s *State[S]) Current() S {
	return s.current
}

// Set requests a transition. The last request of a frame wins; requesting
// the active state cancels any pending transition.
func (s *State[S]) Set(next S) {
	if next == s.current {
		s.pending = false
		return
	}
	s.next = next
	s.pending = true
}

// Pending returns the requested state, if any.
func (s *State[S]) Pending() (S, bool) {
	return s.next, s.pending
}

// JustEntered reports whether the active state was entered this frame.
func (s *State[S]) JustEntered() bool {
	return s.entered
}

// InState is a run condition that holds while the machine is in state.
func InState[S comparable](state S) Condition {
	return func(storage *Storage) bool {
		var machine *State[S]
		return storage.ReadSingleton(&machine) && machine.current == state
	}
}

// StateHook runs during a transition. Structural changes may go straight to
// frame.Storage since no query is iterating yet.
type StateHook func(frame *UpdateFrame)

// StateTransitions applies pending transitions of State[S]. Register it
// before every system that depends on the state.
type StateTransitions[S comparable] struct {
	State Singleton[State[S]]

	onEnter map[S][]StateHook
	onExit  map[S][]StateHook
}

// NewStateTransitions creates the transition system and makes sure a
// State[S] singleton exists, starting in initial.
func NewStateTransitions[S comparable](storage *Storage, initial S) *StateTransitions[S] {
	NewSingleton(storage, NewState(initial))
	return &StateTransitions[S]{
		onEnter: make(map[S][]StateHook),
		onExit:  make(map[S][]StateHook),
	}
}

// OnEnter adds a hook that runs when state becomes active.
func (t *StateTransitions[S]) OnEnter(state S, hook StateHook) {
	t.onEnter[state] = append(t.onEnter[state], hook)
}

// OnExit adds a hook that runs when state stops being active.
func (t *StateTransitions[S]) OnExit(state S, hook StateHook) {
	t.onExit[state] = append(t.onExit[state], hook)
}

func (t *StateTransitions[S]) Execute(frame *UpdateFrame) {
	machine := t.State.Get()
	if machine == nil {
		return
	}
	machine.entered = false

	if !machine.started {
		machine.started = true
		machine.entered = true
		for _, hook := range t.onEnter[machine.current] {
			hook(frame)
		}
	}

	if !machine.pending {
		return
	}

	from, to := machine.current, machine.next
	machine.pending = false
	for _, hook := range t.onExit[from] {
		hook(frame)
	}
	machine.current = to
	machine.entered = true
	for _, hook := range t.onEnter[to] {
		hook(frame)
	}
}
