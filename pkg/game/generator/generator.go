// Package generator produces simulated floor scans for exercising the room
// graph without a live perception layer.
package generator

import (
	"math/rand"

	"dungeonbot/pkg/game/doors"
	"dungeonbot/pkg/game/scan"
)

// FloorGenerator is an interface for floor layout algorithms
type FloorGenerator interface {
	Generate(rng *rand.Rand, size int) *scan.Scan
	Name() string
}

// Default returns the default floor generator for a catalog
func Default(catalog *doors.Catalog) FloorGenerator {
	return NewSpanningTree(catalog)
}
