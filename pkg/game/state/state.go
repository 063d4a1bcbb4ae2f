// Package state holds the live player state that door opening rules consult.
package state

import (
	"strings"

	"github.com/zyedidia/generic/mapset"

	"dungeonbot/pkg/engine/world"
	"dungeonbot/pkg/game/doors"
)

// Player is the bot's view of the player: what it carries, what it can do
// and what it has already solved on the current floor.
type Player struct {
	Items  mapset.Set[int]
	Skills map[doors.SkillName]int

	// GuardedRooms holds the rooms whose guardians are still alive.
	GuardedRooms mapset.Set[world.RoomID]

	SolvedPuzzles mapset.Set[world.Tile]
}

// NewPlayer creates a player with an empty inventory
func NewPlayer() *Player {
	return &Player{
		Items:         mapset.New[int](),
		Skills:        make(map[doors.SkillName]int),
		GuardedRooms:  mapset.New[world.RoomID](),
		SolvedPuzzles: mapset.New[world.Tile](),
	}
}

// PickUpItem adds an item to the player's inventory
func (p *Player) PickUpItem(id int) {
	p.Items.Put(id)
}

// DropItem removes an item from the player's inventory
func (p *Player) DropItem(id int) {
	p.Items.Remove(id)
}

// HasItem checks if the player has a specific item
func (p *Player) HasItem(id int) bool {
	return p.Items.Has(id)
}

// SetSkillLevel records the player's level in a skill
func (p *Player) SetSkillLevel(skill doors.SkillName, level int) {
	p.Skills[normalizeSkill(skill)] = level
}

// SkillLevel returns the player's level in a skill, 0 if unknown
func (p *Player) SkillLevel(skill doors.SkillName) int {
	return p.Skills[normalizeSkill(skill)]
}

// SetGuardians records whether guardians are alive in a room
func (p *Player) SetGuardians(room world.RoomID, present bool) {
	if present {
		p.GuardedRooms.Put(room)
		return
	}
	p.GuardedRooms.Remove(room)
}

// GuardiansPresent returns true while the room's guardians are alive
func (p *Player) GuardiansPresent(room world.RoomID) bool {
	return p.GuardedRooms.Has(room)
}

// SolvePuzzle marks the puzzle at the given tile as solved
func (p *Player) SolvePuzzle(at world.Tile) {
	p.SolvedPuzzles.Put(at)
}

// PuzzleSolved returns true if the puzzle at the given tile has been solved
func (p *Player) PuzzleSolved(at world.Tile) bool {
	return p.SolvedPuzzles.Has(at)
}

// AdvanceFloor resets the per-floor state. Skills are kept.
func (p *Player) AdvanceFloor() {
	p.Items = mapset.New[int]()
	p.SolvedPuzzles = mapset.New[world.Tile]()
	p.GuardedRooms = mapset.New[world.RoomID]()
}

func normalizeSkill(skill doors.SkillName) doors.SkillName {
	return doors.SkillName(strings.ToLower(string(skill)))
}

var _ doors.GameState = (*Player)(nil)
