package renderer

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/leonelquinteros/gotext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonbot/pkg/engine/world"
	"dungeonbot/pkg/game/doors"
	"dungeonbot/pkg/game/dungeon"
	"dungeonbot/pkg/game/state"
)

func newTestFloor(t *testing.T) (*dungeon.Dungeon, *state.Player) {
	t.Helper()
	SetColor(false)

	player := state.NewPlayer()
	catalog := doors.DefaultCatalog()
	dg := dungeon.New(doors.NewClassifier(catalog, doors.NewRules(player), nil), nil)

	a := dg.AddRoom(0, 0)
	_, err := dg.Scan(a.ID, [4]*world.SceneObject{
		world.East:  world.NewSceneObject(catalog.IDs(doors.Normal)[0], 10, 20),
		world.South: world.NewSceneObject(catalog.IDs(doors.Key)[0], 12, 18),
	})
	require.NoError(t, err)
	b := dg.AddRoom(0, 1)
	_, err = dg.Scan(b.ID, [4]*world.SceneObject{
		world.West: world.NewSceneObject(catalog.IDs(doors.Normal)[1], 11, 20),
	})
	require.NoError(t, err)
	return dg, player
}

func TestRenderRoom(t *testing.T) {
	dg, _ := newTestFloor(t)
	var buf bytes.Buffer
	NewOverlay(&buf, 80).RenderRoom(dg, dg.Start())

	out := buf.String()
	assert.Contains(t, out, "Room 0:0")
	assert.Contains(t, out, "East Normal")
	assert.Contains(t, out, "-> 0:1  [can be opened]")
	assert.Contains(t, out, "South Key")
	assert.Contains(t, out, "(12, 18, 0) -> ?  [closed]")
	assert.NotContains(t, out, "unexplored")
}

func TestRenderRoomDestinationOutsideArena(t *testing.T) {
	dg, _ := newTestFloor(t)
	south := dg.Start().Door(world.South)
	south.SetDestinationRoom(42)

	var buf bytes.Buffer
	o := NewOverlay(&buf, 80)
	require.NotPanics(t, func() { o.RenderRoom(dg, dg.Start()) })
	assert.Contains(t, buf.String(), "(12, 18, 0) -> ?  [closed]")
}

func TestRenderFrontier(t *testing.T) {
	dg, _ := newTestFloor(t)
	var buf bytes.Buffer
	o := NewOverlay(&buf, 80)

	o.RenderFrontier(dg.Frontier(dg.Start().ID))
	assert.Contains(t, buf.String(), "Room 0:0 East Normal: can be opened")

	buf.Reset()
	o.RenderFrontier(nil)
	assert.Equal(t, "No doors left to open\n", buf.String())
}

func TestRenderMap(t *testing.T) {
	dg, _ := newTestFloor(t)
	require.NoError(t, dg.OpenDoor(dg.Start().ID, world.East))

	var buf bytes.Buffer
	NewOverlay(&buf, 80).RenderMap(dg)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "", lines[0])
	assert.Equal(t, " @++■", lines[1])
	assert.Equal(t, " K", lines[2])
}

func TestRenderMapCutsToWidth(t *testing.T) {
	dg, _ := newTestFloor(t)
	var buf bytes.Buffer
	NewOverlay(&buf, cellWidth).RenderMap(dg)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, " @+", lines[1])
}

func TestDoorState(t *testing.T) {
	dg, player := newTestFloor(t)
	south := dg.Start().Door(world.South)

	assert.Equal(t, "closed", DoorState(south))
	player.PickUpItem(south.Requirement().KeyItem)
	assert.Equal(t, "can be opened", DoorState(south))
	south.Open()
	assert.Equal(t, "open", DoorState(south))
}

func TestDoorAnchor(t *testing.T) {
	dg, _ := newTestFloor(t)
	east := dg.Start().Door(world.East)

	got := DoorAnchor(east, world.Tile{X: 8, Y: 22}, 16)
	assert.Equal(t, image.Pt(2*16+8, 2*16+8), got)
}

func TestDoorLabelLocalised(t *testing.T) {
	gotext.Configure("../../../locales", "de_DE", "default")
	t.Cleanup(func() { gotext.Configure("../../../locales", "en_US", "default") })

	dg, _ := newTestFloor(t)
	assert.Equal(t, "Osten Normal", DoorLabel(dg.Start().Door(world.East)))
	assert.Equal(t, "Süden Schlüssel", DoorLabel(dg.Start().Door(world.South)))
}
