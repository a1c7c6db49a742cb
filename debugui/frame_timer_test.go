package debugui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameTimerDelta(t *testing.T) {
	clock := time.Unix(100, 0)
	ft := &FrameTimer{last: clock, now: func() time.Time { return clock }}

	clock = clock.Add(16 * time.Millisecond)
	assert.InDelta(t, 0.016, ft.Delta(0.1), 1e-9)

	clock = clock.Add(2 * time.Second)
	assert.InDelta(t, 0.1, ft.Delta(0.1), 1e-9, "stalls are capped")

	clock = clock.Add(-time.Second)
	assert.Equal(t, 0.0, ft.Delta(0.1))
}
