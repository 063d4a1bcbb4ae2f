// Package dungeon keeps the explored room graph of a dungeon floor and the
// doors found in each room.
package dungeon

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/zyedidia/generic/mapset"

	"dungeonbot/pkg/engine/world"
	"dungeonbot/pkg/game/doors"
)

// Errors returned by room graph operations.
var (
	ErrNoRoom     = errors.New("no such room")
	ErrNoDoor     = errors.New("no door on that wall")
	ErrCannotOpen = errors.New("door cannot be opened")
	ErrDoorClosed = errors.New("door is closed")
)

type gridPos struct {
	row, col int
}

// Dungeon is an arena of rooms. Rooms are referenced by world.RoomID and
// doors point at their destination by id, never by pointer.
type Dungeon struct {
	rooms      []*Room
	byPos      map[gridPos]world.RoomID
	classifier *doors.Classifier
	logger     *slog.Logger
}

// New creates an empty dungeon. A nil logger uses slog.Default().
func New(classifier *doors.Classifier, logger *slog.Logger) *Dungeon {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dungeon{
		byPos:      make(map[gridPos]world.RoomID),
		classifier: classifier,
		logger:     logger,
	}
}

// Classifier returns the door classifier used by Scan
func (d *Dungeon) Classifier() *doors.Classifier {
	return d.classifier
}

// AddRoom returns the room at row, col, creating it if needed
func (d *Dungeon) AddRoom(row, col int) *Room {
	if id, ok := d.byPos[gridPos{row, col}]; ok {
		return d.rooms[id]
	}
	r := &Room{
		ID:  world.RoomID(len(d.rooms)),
		Row: row,
		Col: col,
	}
	d.rooms = append(d.rooms, r)
	d.byPos[gridPos{row, col}] = r.ID
	d.logger.Debug("room added", "room", r.Name(), "id", r.ID)
	d.link(r)
	return r
}

// Room returns the room with the given id, or nil
func (d *Dungeon) Room(id world.RoomID) *Room {
	if !id.IsValid() || int(id) >= len(d.rooms) {
		return nil
	}
	return d.rooms[id]
}

// RoomAt returns the room at row, col, or nil
func (d *Dungeon) RoomAt(row, col int) *Room {
	id, ok := d.byPos[gridPos{row, col}]
	if !ok {
		return nil
	}
	return d.rooms[id]
}

// Rooms returns all rooms in creation order
func (d *Dungeon) Rooms() []*Room {
	return d.rooms
}

// Start returns the first room added, or nil
func (d *Dungeon) Start() *Room {
	return d.Room(0)
}

// Neighbor returns the room adjacent to r through the given wall, or nil
func (d *Dungeon) Neighbor(r *Room, dir world.Direction) *Room {
	if r == nil || !dir.IsValid() {
		return nil
	}
	dr, dc := dir.Delta()
	return d.RoomAt(r.Row+dr, r.Col+dc)
}

// Scan records the objects perception found on each wall of a room.
// Slots that already hold a door keep it, so opened state survives a rescan.
// It returns the number of doors in the room afterwards.
func (d *Dungeon) Scan(id world.RoomID, objects [4]*world.SceneObject) (int, error) {
	r := d.Room(id)
	if r == nil {
		return 0, fmt.Errorf("scan room %d: %w", id, ErrNoRoom)
	}

	for _, dir := range world.AllDirections() {
		if r.Doors[dir] != nil {
			continue
		}
		door := d.classifier.CreateInRoom(r.ID, int(dir), objects[dir])
		if door == nil {
			continue
		}
		r.Doors[dir] = door
		d.logger.Debug("door found", "room", r.Name(), "door", door.String(), "kind", door.Kind(), "object", door.Object().ID)
	}
	r.Visited = true
	d.link(r)

	return r.DoorCount(), nil
}

// Link resolves the destination of every door whose neighbouring room is known
func (d *Dungeon) Link() {
	for _, r := range d.rooms {
		d.link(r)
	}
}

// link resolves r's doors and the doors of r's neighbours that face r,
// and carries an opened state across to the other half of each door.
func (d *Dungeon) link(r *Room) {
	for _, dir := range world.AllDirections() {
		n := d.Neighbor(r, dir)
		if n == nil {
			continue
		}
		near, far := r.Doors[dir], n.Doors[dir.Opposite()]
		if near != nil {
			if _, ok := near.DestinationRoom(); !ok {
				near.SetDestinationRoom(n.ID)
			}
		}
		if far != nil {
			if _, ok := far.DestinationRoom(); !ok {
				far.SetDestinationRoom(r.ID)
			}
		}
		// both halves of one physical door share its open state
		if near != nil && far != nil && near.IsOpen() != far.IsOpen() {
			near.Open()
			far.Open()
		}
	}
}

// OpenDoor opens the door on the given wall of a room if its rule allows it.
// The matching door on the far side, if already scanned, is opened too.
func (d *Dungeon) OpenDoor(id world.RoomID, dir world.Direction) error {
	r := d.Room(id)
	if r == nil {
		return fmt.Errorf("open door in room %d: %w", id, ErrNoRoom)
	}
	door := r.Door(dir)
	if door == nil {
		return fmt.Errorf("open %s door in %s: %w", dir, r, ErrNoDoor)
	}
	if door.IsOpen() {
		return nil
	}
	if !door.CanBeOpened() {
		return fmt.Errorf("open %s in %s (%s): %w", door, r, door.Kind(), ErrCannotOpen)
	}

	door.Open()
	d.logger.Info("door opened", "room", r.Name(), "door", door.String(), "kind", door.Kind())

	if dest, ok := door.DestinationRoom(); ok {
		if far := d.Room(dest).Door(dir.Opposite()); far != nil {
			far.Open()
		}
	}
	return nil
}

// Explore moves through an open door and returns the room behind it,
// adding it to the graph if it was not known yet.
func (d *Dungeon) Explore(id world.RoomID, dir world.Direction) (*Room, error) {
	r := d.Room(id)
	if r == nil {
		return nil, fmt.Errorf("explore from room %d: %w", id, ErrNoRoom)
	}
	door := r.Door(dir)
	if door == nil {
		return nil, fmt.Errorf("explore %s from %s: %w", dir, r, ErrNoDoor)
	}
	if !door.IsOpen() {
		return nil, fmt.Errorf("explore through %s in %s: %w", door, r, ErrDoorClosed)
	}

	if dest, ok := door.DestinationRoom(); ok {
		next := d.Room(dest)
		if next == nil {
			return nil, fmt.Errorf("explore through %s in %s to room %d: %w", door, r, dest, ErrNoRoom)
		}
		return next, nil
	}
	dr, dc := dir.Delta()
	return d.AddRoom(r.Row+dr, r.Col+dc), nil
}

// Reachable returns the rooms reachable from the given room through open doors
func (d *Dungeon) Reachable(from world.RoomID) mapset.Set[world.RoomID] {
	visited := mapset.New[world.RoomID]()
	if d.Room(from) == nil {
		return visited
	}
	queue := []world.RoomID{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited.Has(current) {
			continue
		}
		visited.Put(current)

		for _, door := range d.rooms[current].Doors {
			if door == nil || !door.IsOpen() {
				continue
			}
			if dest, ok := door.DestinationRoom(); ok && d.Room(dest) != nil && !visited.Has(dest) {
				queue = append(queue, dest)
			}
		}
	}

	return visited
}

// Exit is a door on the edge of the explored area.
type Exit struct {
	Room *Room
	Door *doors.Door
}

// Frontier returns the doors worth acting on from the given room: closed
// doors that can be opened now and open doors leading to unexplored rooms.
// Exits are ordered by room id, then wall.
func (d *Dungeon) Frontier(from world.RoomID) []Exit {
	reachable := d.Reachable(from)
	ids := make([]int, 0, reachable.Size())
	reachable.Each(func(id world.RoomID) {
		ids = append(ids, int(id))
	})
	sort.Ints(ids)

	var exits []Exit
	for _, id := range ids {
		r := d.rooms[id]
		for _, door := range r.Doors {
			if door == nil {
				continue
			}
			dest, resolved := door.DestinationRoom()
			next := d.Room(dest)
			switch {
			case !door.IsOpen() && door.CanBeOpened():
				exits = append(exits, Exit{Room: r, Door: door})
			case door.IsOpen() && (!resolved || next == nil || !next.Visited):
				exits = append(exits, Exit{Room: r, Door: door})
			}
		}
	}
	return exits
}

// ForEachDoor calls fn for every door in every room, in room then wall order
func (d *Dungeon) ForEachDoor(fn func(r *Room, door *doors.Door)) {
	for _, r := range d.rooms {
		for _, door := range r.Doors {
			if door != nil {
				fn(r, door)
			}
		}
	}
}

// Bounds returns the smallest and largest row and column of any room
func (d *Dungeon) Bounds() (minRow, minCol, maxRow, maxCol int) {
	for i, r := range d.rooms {
		if i == 0 || r.Row < minRow {
			minRow = r.Row
		}
		if i == 0 || r.Col < minCol {
			minCol = r.Col
		}
		if i == 0 || r.Row > maxRow {
			maxRow = r.Row
		}
		if i == 0 || r.Col > maxCol {
			maxCol = r.Col
		}
	}
	return minRow, minCol, maxRow, maxCol
}
