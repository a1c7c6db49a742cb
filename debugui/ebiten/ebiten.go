// Package ebiten hosts the emberfall debug overlay inside an Ebiten game loop.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	ebitengine "github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/emberfall/field"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window. imgui.ini persistence is disabled.
func NewImguiBackend(title string, width, height int) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &ImguiBackend{EbitenBackend: backend}
}

// Step runs one scheduler frame inside an ImGui frame so panels deferred by the overlay system
// render into it.
func (b *ImguiBackend) Step(scheduler *field.Scheduler, dt float64) {
	b.BeginFrame()
	scheduler.Once(dt)
	b.EndFrame()
}

// DrawOverlay draws the ImGui output on top of screen.
func (b *ImguiBackend) DrawOverlay(screen *ebitengine.Image) {
	b.Draw(screen)
}
