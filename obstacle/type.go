package obstacle

import (
	"fmt"
	"strings"

	"github.com/plus3/emberfall/particle"
)

// Type selects an obstacle's visual and behavioral profile.
type Type uint8

const (
	Fire Type = iota
	Ice
	Electric
	Poison
	// Random is resolved to one of the concrete types when an obstacle is created.
	Random
)

// ConcreteTypes lists every type that has a profile, in declaration order.
var ConcreteTypes = [...]Type{Fire, Ice, Electric, Poison}

var typeNames = [...]string{
	Fire:     "fire",
	Ice:      "ice",
	Electric: "electric",
	Poison:   "poison",
	Random:   "random",
}

func (t Type) String() string {
	if int(t) >= len(typeNames) {
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
	return typeNames[t]
}

// Concrete reports whether t names a profile, as opposed to Random or an unknown value.
func (t Type) Concrete() bool {
	return t < Random
}

// ParseType converts a case-insensitive type name to a Type.
func ParseType(name string) (Type, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return Type(t), nil
		}
	}
	return Random, fmt.Errorf("unknown obstacle type %q", name)
}

// RandomType draws one of the concrete types uniformly. Obstacle construction and the spawner
// both resolve Random through this function so the distribution is defined once.
func RandomType(rng particle.Rand) Type {
	return ConcreteTypes[rng.IntN(len(ConcreteTypes))]
}

// resolve returns t unchanged when it is concrete and a random concrete type otherwise.
func resolve(t Type, rng particle.Rand) Type {
	if t.Concrete() {
		return t
	}
	return RandomType(rng)
}
