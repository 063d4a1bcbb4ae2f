package world

import "fmt"

// Tile is a world coordinate as reported by the perception layer.
type Tile struct {
	X     int `yaml:"x"`
	Y     int `yaml:"y"`
	Plane int `yaml:"plane"`
}

// String returns the tile as "(x, y, plane)"
func (t Tile) String() string {
	return fmt.Sprintf("(%d, %d, %d)", t.X, t.Y, t.Plane)
}

// SceneObject describes an object found in the world by the perception layer.
// Consumers hold it by pointer and never modify it.
type SceneObject struct {
	ID       int  `yaml:"id"`
	Location Tile `yaml:",inline"`
}

// NewSceneObject creates a scene object with the given identifier at x, y on plane 0
func NewSceneObject(id, x, y int) *SceneObject {
	return &SceneObject{ID: id, Location: Tile{X: x, Y: y}}
}

// RoomID indexes a room in a dungeon's room arena.
type RoomID int

// NoRoom is the RoomID of an unresolved room reference.
const NoRoom RoomID = -1

// IsValid returns true if the id can refer to a room
func (id RoomID) IsValid() bool {
	return id >= 0
}
