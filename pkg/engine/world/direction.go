package world

// Direction represents one of the four walls of a room.
// The numeric value is the room-relative slot reported by perception.
type Direction int

// Direction constants
const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns all valid directions for iteration
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// ParseDirection returns the direction for a compass name or its initial
// (case-insensitive). The second result is false for anything else.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "N", "n", "North", "north", "NORTH":
		return North, true
	case "E", "e", "East", "east", "EAST":
		return East, true
	case "S", "s", "South", "south", "SOUTH":
		return South, true
	case "W", "w", "West", "west", "WEST":
		return West, true
	default:
		return 0, false
	}
}

// String returns the compass name of a direction.
// Out of range values have no name and yield "".
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return ""
	}
}

// IsValid returns true if the direction is a valid cardinal direction
func (d Direction) IsValid() bool {
	return d >= North && d <= West
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Delta returns the row and column offsets for this direction
func (d Direction) Delta() (rowDelta, colDelta int) {
	switch d {
	case North:
		return -1, 0
	case East:
		return 0, 1
	case South:
		return 1, 0
	case West:
		return 0, -1
	default:
		return 0, 0
	}
}
