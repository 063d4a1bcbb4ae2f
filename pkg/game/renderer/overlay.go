// Package renderer draws the door overlay for a dungeon floor in the terminal.
package renderer

import (
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"

	"dungeonbot/pkg/engine/world"
	"dungeonbot/pkg/game/doors"
	"dungeonbot/pkg/game/dungeon"
)

// dynamicGet is used for runtime translation key lookups.
// Keys come from door data, so go vet's constant format check does not apply.
var dynamicGet = gotext.Get

// Map glyphs
const (
	IconStart     = "@"
	IconVisited   = "■"
	IconUnvisited = "□"
	IconWall      = " "
	IconVoid      = "   "
)

// cellWidth is the number of columns one room takes on the map.
const cellWidth = 3

var kindIcons = map[doors.Kind]string{
	doors.Normal:   "+",
	doors.Guardian: "G",
	doors.Boss:     "B",
	doors.Key:      "K",
	doors.Skill:    "S",
	doors.Puzzle:   "P",
}

// Overlay renders doors, room listings and the floor map to a writer.
type Overlay struct {
	out   io.Writer
	width int
}

// NewOverlay creates an overlay writing to out, wrapping the map at width columns
func NewOverlay(out io.Writer, width int) *Overlay {
	if width <= 0 {
		width = 80
	}
	return &Overlay{out: out, width: width}
}

// SetColor turns terminal colors on or off for all overlays
func SetColor(enabled bool) {
	color.Enable = enabled
}

// Paint styles text with the door's overlay color.
// Terminals have no alpha channel, so only RGB is used.
func Paint(d *doors.Door, text string) string {
	c := d.Color()
	return color.RGB(c.R, c.G, c.B).Sprint(text)
}

// DoorLabel returns the localised "<compass> <kind>" label of a door, colored
func DoorLabel(d *doors.Door) string {
	label := dynamicGet(d.CompassPosition()) + " " + dynamicGet(d.Kind().String())
	return Paint(d, label)
}

// DoorState returns the localised state word for a door
func DoorState(d *doors.Door) string {
	switch {
	case d.IsOpen():
		return gotext.Get("open")
	case d.CanBeOpened():
		return gotext.Get("can be opened")
	default:
		return gotext.Get("closed")
	}
}

// DoorAnchor returns the screen point for a door given the tile size in pixels
// and the world tile at the top-left of the view.
func DoorAnchor(d *doors.Door, origin world.Tile, tileSize int) image.Point {
	loc := d.Object().Location
	return image.Pt((loc.X-origin.X)*tileSize+tileSize/2, (origin.Y-loc.Y)*tileSize+tileSize/2)
}

// RenderRoom writes one line per door of the room
func (o *Overlay) RenderRoom(dg *dungeon.Dungeon, r *dungeon.Room) {
	fmt.Fprintf(o.out, "%s %s", gotext.Get("Room"), r.Name())
	if !r.Visited {
		fmt.Fprintf(o.out, " (%s)", gotext.Get("unexplored"))
	}
	fmt.Fprintln(o.out)

	for _, dir := range world.AllDirections() {
		d := r.Door(dir)
		if d == nil {
			continue
		}
		dest := "?"
		if id, ok := d.DestinationRoom(); ok {
			if next := dg.Room(id); next != nil {
				dest = next.Name()
			}
		}
		fmt.Fprintf(o.out, "  %s  #%d %s -> %s  [%s]\n",
			DoorLabel(d), d.Object().ID, d.Object().Location, dest, DoorState(d))
	}
}

// RenderRooms writes the door listing of every room
func (o *Overlay) RenderRooms(dg *dungeon.Dungeon) {
	for _, r := range dg.Rooms() {
		o.RenderRoom(dg, r)
	}
}

// RenderFrontier writes the exits worth acting on
func (o *Overlay) RenderFrontier(exits []dungeon.Exit) {
	if len(exits) == 0 {
		fmt.Fprintln(o.out, gotext.Get("No doors left to open"))
		return
	}
	fmt.Fprintln(o.out, gotext.Get("Frontier")+":")
	for _, e := range exits {
		fmt.Fprintf(o.out, "  %s %s: %s\n", e.Room, DoorLabel(e.Door), DoorState(e.Door))
	}
}

// RenderMap draws the floor as a grid of rooms with colored door markers.
// Columns that do not fit the overlay width are cut off on the right.
func (o *Overlay) RenderMap(dg *dungeon.Dungeon) {
	if len(dg.Rooms()) == 0 {
		return
	}
	minRow, minCol, maxRow, maxCol := dg.Bounds()
	if cols := o.width / cellWidth; maxCol-minCol+1 > cols {
		maxCol = minCol + cols - 1
	}
	start := dg.Start()

	for row := minRow; row <= maxRow; row++ {
		var top, mid, bot strings.Builder
		for col := minCol; col <= maxCol; col++ {
			r := dg.RoomAt(row, col)
			if r == nil {
				top.WriteString(IconVoid)
				mid.WriteString(IconVoid)
				bot.WriteString(IconVoid)
				continue
			}

			center := IconUnvisited
			switch {
			case r == start:
				center = IconStart
			case r.Visited:
				center = IconVisited
			}

			top.WriteString(IconWall + marker(r, world.North) + IconWall)
			mid.WriteString(marker(r, world.West) + center + marker(r, world.East))
			bot.WriteString(IconWall + marker(r, world.South) + IconWall)
		}
		fmt.Fprintln(o.out, strings.TrimRight(top.String(), " "))
		fmt.Fprintln(o.out, strings.TrimRight(mid.String(), " "))
		fmt.Fprintln(o.out, strings.TrimRight(bot.String(), " "))
	}
}

func marker(r *dungeon.Room, dir world.Direction) string {
	d := r.Door(dir)
	if d == nil {
		return IconWall
	}
	return Paint(d, kindIcons[d.Kind()])
}
