package dungeon

import (
	"fmt"

	"dungeonbot/pkg/engine/world"
	"dungeonbot/pkg/game/doors"
)

// Room is one cell of the dungeon floor. Doors are indexed by wall slot.
type Room struct {
	ID       world.RoomID
	Row, Col int
	Doors    [4]*doors.Door
	Visited  bool
}

// Name returns the room's grid position as "row:col"
func (r *Room) Name() string {
	return fmt.Sprintf("%v:%v", r.Row, r.Col)
}

// Door returns the door on the given wall, or nil
func (r *Room) Door(dir world.Direction) *doors.Door {
	if r == nil || !dir.IsValid() {
		return nil
	}
	return r.Doors[dir]
}

// DoorCount returns the number of doors found in the room
func (r *Room) DoorCount() int {
	n := 0
	for _, d := range r.Doors {
		if d != nil {
			n++
		}
	}
	return n
}

// HasDoor returns true if there is a door on the given wall
func (r *Room) HasDoor(dir world.Direction) bool {
	return r.Door(dir) != nil
}

// HasOpenDoor returns true if the door on the given wall is open
func (r *Room) HasOpenDoor(dir world.Direction) bool {
	d := r.Door(dir)
	return d != nil && d.IsOpen()
}

func (r *Room) String() string {
	return "Room " + r.Name()
}
