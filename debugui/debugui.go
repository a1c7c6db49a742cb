// Package debugui draws Dear ImGui debug panels over a running field: scheduler timings, an
// obstacle inspector and live tuning of the spawner.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/emberfall/field"
)

// Panel renders one ImGui window. Render is called between the backend's BeginFrame and
// EndFrame.
type Panel interface {
	Render(deltaTime float32)
}

// InputState tracks whether ImGui is consuming mouse or keyboard input this frame.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// OverlaySystem is a field.System that queues every panel's Render once all other systems ran,
// so panels see the field after this frame's spawns and removals.
type OverlaySystem struct {
	Panels  []Panel
	Visible bool
	Input   InputState
}

func (o *OverlaySystem) Execute(frame *field.Frame) {
	if !o.Visible {
		o.Input = InputState{}
		return
	}

	io := imgui.CurrentIO()
	o.Input.WantCaptureMouse = io.WantCaptureMouse()
	o.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	dt := float32(frame.DeltaTime)
	for _, panel := range o.Panels {
		frame.Commands.Defer(func() { panel.Render(dt) })
	}
}

// Toggle flips overlay visibility.
func (o *OverlaySystem) Toggle() {
	o.Visible = !o.Visible
}

// Standard builds the overlay with the performance, inspector and tuning panels.
func Standard(scheduler *field.Scheduler, tuning *Tuning) *OverlaySystem {
	panels := []Panel{
		NewPerformanceStats(scheduler, 120),
		NewObstacleInspector(scheduler.Field(), 100),
	}
	if tuning != nil {
		panels = append(panels, tuning)
	}
	return &OverlaySystem{Panels: panels}
}
