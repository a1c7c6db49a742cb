package field

import "github.com/plus3/emberfall/obstacle"

// Commands buffers structural changes requested by systems. They are applied once every system
// has run so the collection never changes under an iterating system.
type Commands struct {
	spawns  []*obstacle.Obstacle
	removes []removeCommand
	defers  []func()
}

type removeCommand struct {
	id     ID
	reason Reason
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues an obstacle to be added to the field.
func (c *Commands) Spawn(o *obstacle.Obstacle) {
	c.spawns = append(c.spawns, o)
}

// Remove queues an obstacle removal.
func (c *Commands) Remove(id ID, reason Reason) {
	c.removes = append(c.removes, removeCommand{id: id, reason: reason})
}

// Defer queues a function to run after removals and spawns were applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Pending reports how many commands are queued.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.removes) + len(c.defers)
}

// Flush applies removals, then spawns, then deferred functions, and resets the buffer.
// Removing the same ID twice is harmless.
func (c *Commands) Flush(f *Field) {
	for _, cmd := range c.removes {
		f.Remove(cmd.id, cmd.reason)
	}

	for _, o := range c.spawns {
		f.Add(o)
	}

	for _, fn := range c.defers {
		fn()
	}

	clear(c.spawns)
	clear(c.defers)
	c.spawns = c.spawns[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
