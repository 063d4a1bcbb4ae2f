package doors

import "dungeonbot/pkg/engine/world"

// SkillName names a player skill, e.g. "agility".
type SkillName string

// Requirement holds the data a door variant needs to decide whether it can be opened.
// Only key and skill doors carry one.
type Requirement struct {
	KeyItem int       `yaml:"key,omitempty"`
	Skill   SkillName `yaml:"skill,omitempty"`
	Level   int       `yaml:"level,omitempty"`
}

// IsZero returns true if the requirement carries no data
func (r Requirement) IsZero() bool {
	return r == Requirement{}
}

// Rule decides whether a door can be opened right now.
type Rule func(d *Door) bool

// GameState is the live player and room state the default rules consult.
// Guardian doors outside a room graph have no room to check and open freely.
type GameState interface {
	HasItem(id int) bool
	SkillLevel(skill SkillName) int
	GuardiansPresent(room world.RoomID) bool
	PuzzleSolved(at world.Tile) bool
}

// Rules maps each door kind to its opening rule.
type Rules map[Kind]Rule

// Always is a rule for doors that can always be opened
func Always(*Door) bool { return true }

// Never is a rule for doors that can never be opened
func Never(*Door) bool { return false }

// NewRules returns the default opening rules backed by the given game state
func NewRules(gs GameState) Rules {
	return Rules{
		Normal: Always,
		Guardian: func(d *Door) bool {
			room, ok := d.Room()
			return !ok || !gs.GuardiansPresent(room)
		},
		Boss: Always,
		Key: func(d *Door) bool {
			req := d.Requirement()
			return req.KeyItem != 0 && gs.HasItem(req.KeyItem)
		},
		Skill: func(d *Door) bool {
			req := d.Requirement()
			return req.Skill != "" && gs.SkillLevel(req.Skill) >= req.Level
		},
		Puzzle: func(d *Door) bool {
			return d.Object() != nil && gs.PuzzleSolved(d.Object().Location)
		},
	}
}

// With returns a copy of the rules with the rule for kind replaced
func (r Rules) With(kind Kind, rule Rule) Rules {
	out := make(Rules, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[kind] = rule
	return out
}

// For returns the rule for kind, or Never if none is set
func (r Rules) For(kind Kind) Rule {
	if rule, ok := r[kind]; ok && rule != nil {
		return rule
	}
	return Never
}
