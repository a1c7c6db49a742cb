package field

import "github.com/plus3/emberfall/obstacle"

// ID encodes the obstacle type (upper 32 bits) and the spawn sequence number (lower 32 bits).
type ID uint64

// NewID creates an ID from an obstacle type and a sequence number.
func NewID(t obstacle.Type, seq uint32) ID {
	return ID(uint64(t)<<32 | uint64(seq))
}

// Type extracts the obstacle type from the ID.
func (id ID) Type() obstacle.Type {
	return obstacle.Type(id >> 32)
}

// Seq extracts the spawn sequence number from the ID.
func (id ID) Seq() uint32 {
	return uint32(id & 0xFFFFFFFF)
}
