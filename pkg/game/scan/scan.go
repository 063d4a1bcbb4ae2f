// Package scan reads recorded perception output: the rooms of a floor, the
// objects seen on each wall and the player state at the time of the scan.
package scan

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"dungeonbot/pkg/engine/world"
	"dungeonbot/pkg/game/doors"
	"dungeonbot/pkg/game/dungeon"
	"dungeonbot/pkg/game/state"
)

// Scan is one recorded exploration of a floor.
type Scan struct {
	Player PlayerScan `yaml:"player"`
	Rooms  []RoomScan `yaml:"rooms"`
}

// PlayerScan is the player state seen during the scan.
type PlayerScan struct {
	Items         []int                   `yaml:"items,omitempty"`
	Skills        map[doors.SkillName]int `yaml:"skills,omitempty"`
	SolvedPuzzles []world.Tile            `yaml:"solved_puzzles,omitempty"`
}

// RoomScan is the objects found on the walls of one room and whether
// guardians were still in it.
type RoomScan struct {
	Row       int                `yaml:"row"`
	Col       int                `yaml:"col"`
	Guardians bool               `yaml:"guardians,omitempty"`
	North     *world.SceneObject `yaml:"north,omitempty"`
	East      *world.SceneObject `yaml:"east,omitempty"`
	South     *world.SceneObject `yaml:"south,omitempty"`
	West      *world.SceneObject `yaml:"west,omitempty"`
}

// Objects returns the wall objects indexed by slot
func (r RoomScan) Objects() [4]*world.SceneObject {
	var objects [4]*world.SceneObject
	objects[world.North] = r.North
	objects[world.East] = r.East
	objects[world.South] = r.South
	objects[world.West] = r.West
	return objects
}

// SetObject stores obj on the given wall
func (r *RoomScan) SetObject(dir world.Direction, obj *world.SceneObject) {
	switch dir {
	case world.North:
		r.North = obj
	case world.East:
		r.East = obj
	case world.South:
		r.South = obj
	case world.West:
		r.West = obj
	}
}

// Parse parses a YAML scan document
func Parse(data []byte) (*Scan, error) {
	var s Scan
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scan: %w", err)
	}
	return &s, nil
}

// Read reads and parses a YAML scan document
func Read(r io.Reader) (*Scan, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scan: %w", err)
	}
	return Parse(data)
}

// Load loads a scan from a YAML file
func Load(path string) (*Scan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scan: %w", err)
	}
	return Parse(data)
}

// Write encodes the scan as YAML
func (s *Scan) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("write scan: %w", err)
	}
	return enc.Close()
}

// ApplyPlayer copies the recorded player state into p
func (s *Scan) ApplyPlayer(p *state.Player) {
	for _, id := range s.Player.Items {
		p.PickUpItem(id)
	}
	for skill, level := range s.Player.Skills {
		p.SetSkillLevel(skill, level)
	}
	for _, tile := range s.Player.SolvedPuzzles {
		p.SolvePuzzle(tile)
	}
}

// Replay adds every recorded room to dg and scans its walls in order.
// Guardian presence is recorded on p by room id; p may be nil.
func (s *Scan) Replay(dg *dungeon.Dungeon, p *state.Player) error {
	for _, rs := range s.Rooms {
		r := dg.AddRoom(rs.Row, rs.Col)
		if p != nil {
			p.SetGuardians(r.ID, rs.Guardians)
		}
		if _, err := dg.Scan(r.ID, rs.Objects()); err != nil {
			return fmt.Errorf("replay room %s: %w", r.Name(), err)
		}
	}
	return nil
}
