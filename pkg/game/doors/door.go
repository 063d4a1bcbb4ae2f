// Package doors classifies dungeon scene objects into typed doors and tracks
// their open state, destination room and overlay color.
//
// Doors are owned by a single room and are not safe for concurrent use.
package doors

import (
	"image/color"

	"dungeonbot/pkg/engine/world"
)

// Overlay colors for doors.
var (
	ColorClosed      = color.NRGBA{R: 255, G: 0, B: 0, A: 192}
	ColorOpened      = color.NRGBA{R: 0, G: 128, B: 0, A: 192}
	ColorCanBeOpened = color.NRGBA{R: 255, G: 128, B: 64, A: 192}
)

// Door is a door object found on one of the four walls of a room.
type Door struct {
	room        world.RoomID
	position    world.Direction
	object      *world.SceneObject
	kind        Kind
	requirement Requirement
	destination world.RoomID
	opened      bool
	rule        Rule
}

func newDoor(room world.RoomID, position int, object *world.SceneObject, kind Kind, req Requirement, rule Rule) *Door {
	return &Door{
		room:        room,
		position:    world.Direction(position),
		object:      object,
		kind:        kind,
		requirement: req,
		destination: world.NoRoom,
		rule:        rule,
	}
}

// Position returns the wall slot of this door (0 = North, 1 = East, 2 = South, 3 = West)
func (d *Door) Position() int {
	return int(d.position)
}

// Room returns the room holding this door.
// The second result is false for doors created outside a room graph.
func (d *Door) Room() (world.RoomID, bool) {
	return d.room, d.room.IsValid()
}

// Direction returns the wall slot as a world.Direction
func (d *Door) Direction() world.Direction {
	return d.position
}

// CompassPosition returns the compass name of the wall this door is on,
// or "" if the position is not a valid slot.
func (d *Door) CompassPosition() string {
	return d.position.String()
}

// Object returns the scene object this door was created from
func (d *Door) Object() *world.SceneObject {
	return d.object
}

// Kind returns the door variant
func (d *Door) Kind() Kind {
	return d.kind
}

// Requirement returns the variant specific opening requirement
func (d *Door) Requirement() Requirement {
	return d.requirement
}

// DestinationRoom returns the room this door leads to.
// The second result is false until the room graph has resolved it.
func (d *Door) DestinationRoom() (world.RoomID, bool) {
	return d.destination, d.destination.IsValid()
}

// SetDestinationRoom sets the room this door leads to
func (d *Door) SetDestinationRoom(id world.RoomID) {
	d.destination = id
}

// IsOpen returns true if the door has been opened
func (d *Door) IsOpen() bool {
	return d.opened
}

// Open marks the door as opened
func (d *Door) Open() {
	d.opened = true
}

// CanBeOpened evaluates the door's opening rule against the current game state
func (d *Door) CanBeOpened() bool {
	if d.rule == nil {
		return false
	}
	return d.rule(d)
}

// Color returns the overlay color for the door's current state
func (d *Door) Color() color.NRGBA {
	if d.opened {
		return ColorOpened
	}
	if d.CanBeOpened() {
		return ColorCanBeOpened
	}
	return ColorClosed
}

func (d *Door) String() string {
	return d.CompassPosition() + " Door"
}
