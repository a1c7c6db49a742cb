package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/emberfall/field"
)

// Tuning edits the spawner and difficulty ramp of a running field.
type Tuning struct {
	Spawn      *field.SpawnSystem
	Difficulty *field.DifficultySystem
	Field      *field.Field
}

func (t *Tuning) Render(deltaTime float32) {
	if !imgui.BeginV("Tuning", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if t.Spawn != nil {
		interval := float32(t.Spawn.Interval)
		imgui.Text("Spawn interval")
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat("##interval", &interval) && interval >= 0 {
			t.Spawn.Interval = float64(interval)
		}

		if speed := t.Spawn.Speed; speed != nil {
			lo, hi := float32(speed.Min), float32(speed.Max)
			imgui.Text("Speed min")
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			if imgui.InputFloat("##speedmin", &lo) && lo >= 0 && float64(lo) <= speed.Max {
				speed.Min = float64(lo)
			}
			imgui.Text("Speed max")
			imgui.SameLine()
			imgui.SetNextItemWidth(150)
			if imgui.InputFloat("##speedmax", &hi) && float64(hi) >= speed.Min {
				speed.Max = float64(hi)
			}
		}
	}

	if t.Difficulty != nil {
		imgui.Separator()
		imgui.Text("Difficulty level")
		imgui.SameLine()
		imgui.Text(fmt.Sprintf("%d", t.Difficulty.Level))
		if imgui.Button("Reset difficulty") {
			t.Difficulty.Reset()
		}
	}

	if t.Field != nil {
		imgui.SameLine()
		if imgui.Button("Clear field") {
			t.Field.Clear()
		}
	}

	imgui.End()
}
