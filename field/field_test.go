package field_test

import (
	"testing"

	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
	"github.com/plus3/emberfall/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type removal struct {
	id     field.ID
	reason field.Reason
}

type recordingObserver struct {
	spawned []field.ID
	removed []removal
}

func (r *recordingObserver) ObstacleSpawned(id field.ID, _ *obstacle.Obstacle) {
	r.spawned = append(r.spawned, id)
}

func (r *recordingObserver) ObstacleRemoved(id field.ID, _ *obstacle.Obstacle, reason field.Reason) {
	r.removed = append(r.removed, removal{id, reason})
}

func newObstacle(x, y float64, t obstacle.Type) *obstacle.Obstacle {
	return obstacle.New(x, y, 100, t, obstacle.WithRand(particle.NewRand(1)))
}

func TestID(t *testing.T) {
	id := field.NewID(obstacle.Electric, 42)
	assert.Equal(t, obstacle.Electric, id.Type())
	assert.Equal(t, uint32(42), id.Seq())

	id = field.NewID(obstacle.Poison, 0xFFFFFFFF)
	assert.Equal(t, obstacle.Poison, id.Type())
	assert.Equal(t, uint32(0xFFFFFFFF), id.Seq())
}

func TestField(t *testing.T) {
	f := field.New(800, 600)
	obs := &recordingObserver{}
	f.Observe(obs)

	a := newObstacle(100, 100, obstacle.Fire)
	b := newObstacle(200, 100, obstacle.Ice)
	c := newObstacle(300, 100, obstacle.Poison)
	idA, idB, idC := f.Add(a), f.Add(b), f.Add(c)

	assert.Equal(t, 3, f.Len())
	assert.Equal(t, []field.ID{idA, idB, idC}, obs.spawned)
	assert.Equal(t, obstacle.Ice, idB.Type())
	assert.NotEqual(t, idA.Seq(), idB.Seq())

	got, ok := f.Get(idB)
	require.True(t, ok)
	assert.Same(t, b, got)

	t.Run("remove keeps order", func(t *testing.T) {
		require.True(t, f.Remove(idB, field.ReasonFinished))
		assert.False(t, f.Remove(idB, field.ReasonFinished))

		var ids []field.ID
		for id := range f.All() {
			ids = append(ids, id)
		}
		assert.Equal(t, []field.ID{idA, idC}, ids)
		assert.Equal(t, []removal{{idB, field.ReasonFinished}}, obs.removed)

		_, ok := f.Get(idB)
		assert.False(t, ok)
	})

	t.Run("overlapping skips destroyed obstacles", func(t *testing.T) {
		hits := 0
		for id := range f.Overlapping(geom.RectAround(geom.V(100, 100), 5)) {
			assert.Equal(t, idA, id)
			hits++
		}
		assert.Equal(t, 1, hits)

		a.TriggerDestroyEffect()
		for range f.Overlapping(geom.RectAround(geom.V(100, 100), 5)) {
			t.Fatal("destroying obstacle reported as overlapping")
		}
	})

	t.Run("draw and particle count", func(t *testing.T) {
		assert.Equal(t, a.ParticleCount()+c.ParticleCount(), f.ParticleCount())

		rec := render.NewRecorder()
		f.Draw(rec)
		assert.Equal(t, 2, rec.Count(render.OpPolygon))
	})

	t.Run("clear", func(t *testing.T) {
		f.Clear()
		assert.Equal(t, 0, f.Len())
		assert.Len(t, obs.removed, 3)
		assert.Equal(t, field.ReasonCleared, obs.removed[2].reason)
	})
}

func TestCommands(t *testing.T) {
	f := field.New(800, 600)
	id := f.Add(newObstacle(100, 100, obstacle.Fire))

	var order []string
	obs := &recordingObserver{}
	f.Observe(obs)

	cmd := field.NewCommandsForTest()
	cmd.Defer(func() { order = append(order, "defer") })
	cmd.Spawn(newObstacle(200, 100, obstacle.Ice))
	cmd.Remove(id, field.ReasonOffscreen)
	cmd.Remove(id, field.ReasonOffscreen)
	assert.Equal(t, 4, cmd.Pending())
	assert.Equal(t, 1, f.Len(), "nothing applied before flush")

	cmd.Flush(f)
	assert.Equal(t, 1, f.Len())
	assert.Equal(t, []string{"defer"}, order)
	assert.Len(t, obs.removed, 1)
	assert.Len(t, obs.spawned, 1)
	assert.Equal(t, 0, cmd.Pending())

	cmd.Flush(f)
	assert.Equal(t, 1, f.Len())
}
