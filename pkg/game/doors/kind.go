package doors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a door kind name is not recognised.
var ErrUnknownKind = errors.New("unknown door kind")

// Kind is the variant of a door. It is fixed when the door is created.
type Kind int

// Door kinds, in classification priority order.
const (
	Normal Kind = iota
	Guardian
	Boss
	Key
	Skill
	Puzzle
)

// AllKinds returns every kind in classification priority order
func AllKinds() []Kind {
	return []Kind{Normal, Guardian, Boss, Key, Skill, Puzzle}
}

var kindNames = [...]string{"Normal", "Guardian", "Boss", "Key", "Skill", "Puzzle"}

// String returns the display name of the kind
func (k Kind) String() string {
	if k < Normal || k > Puzzle {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind returns the kind with the given name (case-insensitive)
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}
