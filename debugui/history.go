package debugui

// frameHistory is a fixed-size ring of frame times in milliseconds.
type frameHistory struct {
	samples []float32
	index   int
	filled  int
}

func newFrameHistory(size int) frameHistory {
	return frameHistory{samples: make([]float32, max(size, 1))}
}

func (h *frameHistory) push(ms float32) {
	h.samples[h.index] = ms
	h.index = (h.index + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// average ignores slots that were never written.
func (h *frameHistory) average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, s := range h.samples {
		total += s
	}
	return total / float32(h.filled)
}
