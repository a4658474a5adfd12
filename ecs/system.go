package ecs

// System is one unit of per-frame behaviour. Exported Query and Singleton
// fields are initialised by the Scheduler; other fields keep their values
// between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) { f(frame) }

// Condition decides whether a system runs this frame.
type Condition func(storage *Storage) bool

// Not inverts a condition.
func Not(cond Condition) Condition {
	return func(storage *Storage) bool { return !cond(storage) }
}
