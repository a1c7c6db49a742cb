package debugui

import "time"

// FrameTimer measures wall-clock time between calls, for feeding the scheduler a real delta.
type FrameTimer struct {
	last time.Time
	now  func() time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now(), now: time.Now}
}

// Delta returns seconds since the previous call, capped at max so a stalled window does not
// produce one huge step.
func (ft *FrameTimer) Delta(maxDelta float64) float64 {
	now := ft.now()
	delta := now.Sub(ft.last).Seconds()
	ft.last = now
	if maxDelta > 0 {
		delta = min(delta, maxDelta)
	}
	return max(delta, 0)
}
