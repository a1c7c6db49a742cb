package field

// System is one step of the per-frame pipeline. Systems keep their own state between frames and
// request structural changes through Frame.Commands.
type System interface {
	Execute(frame *Frame)
}

// Frame is passed to every system during a scheduler tick.
type Frame struct {
	DeltaTime float64
	Elapsed   float64
	Field     *Field
	Commands  *Commands
}
