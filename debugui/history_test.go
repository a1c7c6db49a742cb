package debugui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameHistory(t *testing.T) {
	h := newFrameHistory(3)
	assert.Equal(t, float32(0), h.average())

	h.push(10)
	h.push(20)
	assert.InDelta(t, 15.0, h.average(), 1e-6)

	h.push(30)
	h.push(40)
	assert.InDelta(t, 30.0, h.average(), 1e-6, "oldest sample is overwritten")
	assert.Equal(t, 1, h.index)
}

func TestFrameHistoryMinimumSize(t *testing.T) {
	h := newFrameHistory(0)
	h.push(5)
	h.push(7)
	assert.Len(t, h.samples, 1)
	assert.InDelta(t, 7.0, h.average(), 1e-6)
}
