// Package field is the example host for obstacles: it owns the live collection, runs a fixed
// pipeline of systems over it every frame and applies structural changes between frames.
package field

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"
	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/render"
)

// Reason explains why an obstacle left the field.
type Reason string

const (
	// ReasonOffscreen obstacles fell past the bottom edge.
	ReasonOffscreen Reason = "offscreen"
	// ReasonFinished obstacles reported ShouldRemove.
	ReasonFinished Reason = "finished"
	// ReasonCleared obstacles were dropped by Clear.
	ReasonCleared Reason = "cleared"
)

// Observer is notified of every obstacle that enters or leaves a Field.
type Observer interface {
	ObstacleSpawned(id ID, o *obstacle.Obstacle)
	ObstacleRemoved(id ID, o *obstacle.Obstacle, reason Reason)
}

type entry struct {
	id ID
	o  *obstacle.Obstacle
}

// Field is an insertion-ordered collection of obstacles within a screen-sized playfield.
type Field struct {
	width     float64
	height    float64
	entries   []entry
	index     *intmap.Map[ID, *obstacle.Obstacle]
	seq       uint32
	observers []Observer
}

// New creates an empty field of the given size.
func New(width, height float64) *Field {
	return &Field{
		width:  width,
		height: height,
		index:  intmap.New[ID, *obstacle.Obstacle](64),
	}
}

func (f *Field) Width() float64  { return f.width }
func (f *Field) Height() float64 { return f.height }

// Observe registers an observer for spawn and removal notifications.
func (f *Field) Observe(obs Observer) {
	f.observers = append(f.observers, obs)
}

// Add inserts an obstacle and returns its new ID.
func (f *Field) Add(o *obstacle.Obstacle) ID {
	f.seq++
	id := NewID(o.Type(), f.seq)
	f.entries = append(f.entries, entry{id: id, o: o})
	f.index.Put(id, o)
	for _, obs := range f.observers {
		obs.ObstacleSpawned(id, o)
	}
	return id
}

// Remove drops the obstacle with the given ID. It reports false when the ID is unknown.
func (f *Field) Remove(id ID, reason Reason) bool {
	o, ok := f.index.Get(id)
	if !ok {
		return false
	}
	f.index.Del(id)
	i := slices.IndexFunc(f.entries, func(e entry) bool { return e.id == id })
	f.entries = slices.Delete(f.entries, i, i+1)
	for _, obs := range f.observers {
		obs.ObstacleRemoved(id, o, reason)
	}
	return true
}

// Clear removes every obstacle.
func (f *Field) Clear() {
	for len(f.entries) > 0 {
		f.Remove(f.entries[0].id, ReasonCleared)
	}
}

// Get returns the obstacle with the given ID.
func (f *Field) Get(id ID) (*obstacle.Obstacle, bool) {
	return f.index.Get(id)
}

// Len returns the number of obstacles on the field.
func (f *Field) Len() int {
	return len(f.entries)
}

// All iterates the obstacles oldest first.
func (f *Field) All() iter.Seq2[ID, *obstacle.Obstacle] {
	return func(yield func(ID, *obstacle.Obstacle) bool) {
		for _, e := range f.entries {
			if !yield(e.id, e.o) {
				return
			}
		}
	}
}

// Overlapping iterates the live obstacles whose bounds intersect r.
func (f *Field) Overlapping(r geom.Rect) iter.Seq2[ID, *obstacle.Obstacle] {
	return func(yield func(ID, *obstacle.Obstacle) bool) {
		for _, e := range f.entries {
			if !e.o.Active() || e.o.Destroying() {
				continue
			}
			if !e.o.Bounds().Intersects(r) {
				continue
			}
			if !yield(e.id, e.o) {
				return
			}
		}
	}
}

// ParticleCount is the number of live particles across every obstacle.
func (f *Field) ParticleCount() int {
	n := 0
	for _, e := range f.entries {
		n += e.o.ParticleCount()
	}
	return n
}

// Draw renders every obstacle oldest first.
func (f *Field) Draw(s render.Surface) {
	for _, e := range f.entries {
		e.o.Draw(s)
	}
}
