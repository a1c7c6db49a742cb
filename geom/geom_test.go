package geom_test

import (
	"testing"

	"github.com/plus3/emberfall/geom"
	"github.com/stretchr/testify/assert"
)

func TestVec2Arithmetic(t *testing.T) {
	a := geom.V(1, 2)
	b := geom.V(3, -4)

	assert.Equal(t, geom.V(4, -2), a.Add(b))
	assert.Equal(t, geom.V(-2, 6), a.Sub(b))
	assert.Equal(t, geom.V(2, 4), a.Scale(2))
	assert.InDelta(t, 5.0, b.Len(), 1e-9)
}

func TestVec2Rotate(t *testing.T) {
	r := geom.V(1, 0).Rotate(90)
	assert.InDelta(t, 0.0, r.X, 1e-9)
	assert.InDelta(t, 1.0, r.Y, 1e-9)

	r = geom.V(10, 5).Rotate(360)
	assert.InDelta(t, 10.0, r.X, 1e-9)
	assert.InDelta(t, 5.0, r.Y, 1e-9)
}

func TestRect(t *testing.T) {
	r := geom.RectAround(geom.V(100, 50), 20)
	assert.Equal(t, geom.Rect{X: 80, Y: 30, W: 40, H: 40}, r)
	assert.Equal(t, geom.V(100, 50), r.Center())
	assert.Equal(t, geom.V(120, 70), r.Max())

	tests := []struct {
		name  string
		other geom.Rect
		want  bool
	}{
		{"overlapping", geom.Rect{X: 110, Y: 60, W: 40, H: 40}, true},
		{"contained", geom.Rect{X: 90, Y: 40, W: 5, H: 5}, true},
		{"touching edge", geom.Rect{X: 120, Y: 30, W: 10, H: 10}, false},
		{"disjoint", geom.Rect{X: 0, Y: 0, W: 10, H: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(r))
		})
	}

	assert.True(t, r.Contains(geom.V(80, 30)))
	assert.False(t, r.Contains(geom.V(120, 70)))
}
