package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/emberfall/field"
)

// PerformanceStats shows field totals, a frame-time graph and per-system scheduler timings.
type PerformanceStats struct {
	scheduler *field.Scheduler
	history   frameHistory
}

func NewPerformanceStats(scheduler *field.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		scheduler: scheduler,
		history:   newFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStats) Render(deltaTime float32) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.history.push(deltaTime * 1000.0)

	f := ps.scheduler.Field()
	stats := ps.scheduler.Stats()

	imgui.Text(fmt.Sprintf("Obstacles: %d", f.Len()))
	imgui.Text(fmt.Sprintf("Particles: %d", f.ParticleCount()))
	imgui.Text(fmt.Sprintf("Frames: %d  Simulated: %.1fs", stats.Frames, ps.scheduler.Elapsed()))

	avg := ps.history.average()
	fps := float32(0)
	if avg > 0 {
		fps = 1000.0 / avg
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, fps))
	imgui.Text(fmt.Sprintf("Last Update: %s", stats.LastFrame))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.samples[0], int32(len(ps.history.samples)))

	if imgui.TreeNodeStr("Systems") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Last")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(micros(sys.AvgDuration))
				imgui.TableNextColumn()
				imgui.Text(micros(sys.MaxDuration))
				imgui.TableNextColumn()
				imgui.Text(micros(sys.LastDuration))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

func micros(d time.Duration) string {
	return fmt.Sprintf("%.1fus", float64(d)/float64(time.Microsecond))
}
