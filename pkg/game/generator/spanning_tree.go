package generator

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"dungeonbot/pkg/engine/world"
	"dungeonbot/pkg/game/doors"
	"dungeonbot/pkg/game/scan"
)

// Floor size limits, in rooms per side
const (
	MinSize = 2
	MaxSize = 8
)

// Room geometry in world tiles
const (
	roomTiles = 16
	originX   = 1000
	originY   = 5000
)

// decorationIDs are wall objects that are not doors.
var decorationIDs = []int{49001, 49002, 49010, 49011}

// kindWeights decide the variant of each generated door after the first.
var kindWeights = []struct {
	kind   doors.Kind
	weight int
}{
	{doors.Normal, 50},
	{doors.Guardian, 15},
	{doors.Key, 15},
	{doors.Skill, 10},
	{doors.Puzzle, 10},
}

// SpanningTreeGenerator lays rooms out on a square grid and connects them
// with a random depth-first spanning tree. The door into the deepest room
// is a boss door.
type SpanningTreeGenerator struct {
	catalog *doors.Catalog
}

// NewSpanningTree creates a generator that takes door ids from catalog
func NewSpanningTree(catalog *doors.Catalog) *SpanningTreeGenerator {
	return &SpanningTreeGenerator{catalog: catalog}
}

// Name returns the name of this generator
func (g *SpanningTreeGenerator) Name() string {
	return "Spanning Tree"
}

type cell struct {
	row, col int
}

type edge struct {
	from, to cell
	dir      world.Direction
	depth    int
}

// Generate creates a size x size floor scan. Rooms are listed in discovery order
// starting from the centre room.
func (g *SpanningTreeGenerator) Generate(rng *rand.Rand, size int) *scan.Scan {
	if size < MinSize {
		size = MinSize
	}
	if size > MaxSize {
		size = MaxSize
	}

	start := cell{size / 2, size / 2}
	order, edges := g.walk(rng, size, start)

	rooms := make(map[cell]*scan.RoomScan, len(order))
	for _, c := range order {
		rooms[c] = &scan.RoomScan{Row: c.row, Col: c.col}
	}

	deepest := 0
	for i, e := range edges {
		if e.depth > edges[deepest].depth {
			deepest = i
		}
	}

	s := &scan.Scan{}
	for i, e := range edges {
		kind := g.pickKind(rng)
		switch {
		case i == 0:
			kind = doors.Normal
		case i == deepest:
			kind = doors.Boss
		}
		id := g.pickID(rng, kind)

		near := wallTile(e.from, e.dir)
		far := wallTile(e.to, e.dir.Opposite())
		rooms[e.from].SetObject(e.dir, world.NewSceneObject(id, near.X, near.Y))
		rooms[e.to].SetObject(e.dir.Opposite(), world.NewSceneObject(id, far.X, far.Y))

		g.recordRequirement(rng, &s.Player, id, near, far)
		if kind == doors.Guardian && rng.Intn(2) == 0 {
			rooms[e.from].Guardians = true
		}
	}

	for _, c := range order {
		r := rooms[c]
		objects := r.Objects()
		for _, dir := range world.AllDirections() {
			if objects[dir] == nil && rng.Intn(4) == 0 {
				tile := wallTile(c, dir)
				r.SetObject(dir, world.NewSceneObject(decorationIDs[rng.Intn(len(decorationIDs))], tile.X, tile.Y))
			}
		}
		s.Rooms = append(s.Rooms, *r)
	}

	return s
}

// walk runs a randomised depth-first search from start and returns the cells
// in discovery order and the tree edges in the order they were taken.
func (g *SpanningTreeGenerator) walk(rng *rand.Rand, size int, start cell) ([]cell, []edge) {
	visited := mapset.New[cell]()
	var order []cell
	var edges []edge

	var visit func(c cell, depth int)
	visit = func(c cell, depth int) {
		visited.Put(c)
		order = append(order, c)

		dirs := world.AllDirections()
		rng.Shuffle(len(dirs), func(i, j int) {
			dirs[i], dirs[j] = dirs[j], dirs[i]
		})
		for _, dir := range dirs {
			dr, dc := dir.Delta()
			n := cell{c.row + dr, c.col + dc}
			if n.row < 0 || n.row >= size || n.col < 0 || n.col >= size || visited.Has(n) {
				continue
			}
			edges = append(edges, edge{from: c, to: n, dir: dir, depth: depth + 1})
			visit(n, depth+1)
		}
	}
	visit(start, 0)

	return order, edges
}

func (g *SpanningTreeGenerator) pickKind(rng *rand.Rand) doors.Kind {
	total := 0
	for _, kw := range kindWeights {
		total += kw.weight
	}
	n := rng.Intn(total)
	for _, kw := range kindWeights {
		if n < kw.weight {
			return kw.kind
		}
		n -= kw.weight
	}
	return doors.Normal
}

func (g *SpanningTreeGenerator) pickID(rng *rand.Rand, kind doors.Kind) int {
	ids := g.catalog.IDs(kind)
	if len(ids) == 0 {
		ids = g.catalog.IDs(doors.Normal)
	}
	return ids[rng.Intn(len(ids))]
}

// recordRequirement gives the player what some doors need, so a generated
// floor has a mix of openable and blocked doors. near and far are the tiles
// of the two halves of the door.
func (g *SpanningTreeGenerator) recordRequirement(rng *rand.Rand, p *scan.PlayerScan, id int, near, far world.Tile) {
	kind, req, _ := g.catalog.Lookup(id)
	if kind == doors.Puzzle && rng.Intn(2) == 0 {
		p.SolvedPuzzles = append(p.SolvedPuzzles, near, far)
	}
	if req.KeyItem != 0 && rng.Intn(2) == 0 {
		p.Items = append(p.Items, req.KeyItem)
	}
	if req.Skill != "" {
		if p.Skills == nil {
			p.Skills = make(map[doors.SkillName]int)
		}
		if _, ok := p.Skills[req.Skill]; !ok {
			p.Skills[req.Skill] = 1 + rng.Intn(60)
		}
	}
}

// wallTile returns the world tile of the middle of a room wall.
// Rows grow southwards while world Y grows northwards.
func wallTile(c cell, dir world.Direction) world.Tile {
	x0 := originX + c.col*roomTiles
	y0 := originY - c.row*roomTiles
	mid := roomTiles / 2
	switch dir {
	case world.North:
		return world.Tile{X: x0 + mid, Y: y0 + roomTiles - 1}
	case world.East:
		return world.Tile{X: x0 + roomTiles - 1, Y: y0 + mid}
	case world.South:
		return world.Tile{X: x0 + mid, Y: y0}
	default:
		return world.Tile{X: x0, Y: y0 + mid}
	}
}
