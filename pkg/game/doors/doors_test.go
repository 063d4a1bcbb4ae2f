package doors

import (
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dungeonbot/pkg/engine/world"
)

// fakeState is a GameState whose answers are set directly by tests.
type fakeState struct {
	items     map[int]bool
	skills    map[SkillName]int
	guardians map[world.RoomID]bool
	solved    map[world.Tile]bool
}

func (s *fakeState) HasItem(id int) bool { return s.items[id] }
func (s *fakeState) SkillLevel(skill SkillName) int { return s.skills[skill] }
func (s *fakeState) GuardiansPresent(room world.RoomID) bool { return s.guardians[room] }
func (s *fakeState) PuzzleSolved(at world.Tile) bool { return s.solved[at] }

func newFakeState() *fakeState {
	return &fakeState{
		items:     make(map[int]bool),
		skills:    make(map[SkillName]int),
		guardians: make(map[world.RoomID]bool),
		solved:    make(map[world.Tile]bool),
	}
}

func newTestClassifier(t *testing.T, gs GameState) *Classifier {
	t.Helper()
	return NewClassifier(DefaultCatalog(), NewRules(gs), nil)
}

func TestDefaultCatalogHasEveryKind(t *testing.T) {
	c := DefaultCatalog()
	for _, kind := range AllKinds() {
		assert.NotEmpty(t, c.IDs(kind), "kind %s has no ids", kind)
	}
	assert.Empty(t, c.Overlaps())
}

func TestCompassPosition(t *testing.T) {
	c := newTestClassifier(t, newFakeState())
	id := c.Catalog().IDs(Normal)[0]

	want := map[int]string{0: "North", 1: "East", 2: "South", 3: "West"}
	for pos, name := range want {
		d := c.CreateFromObject(pos, world.NewSceneObject(id, 0, 0))
		require.NotNil(t, d)
		assert.Equal(t, pos, d.Position())
		assert.Equal(t, name, d.CompassPosition())
		assert.Equal(t, name+" Door", d.String())
	}

	for _, pos := range []int{-1, 4, 7, 100} {
		d := c.CreateFromObject(pos, world.NewSceneObject(id, 0, 0))
		require.NotNil(t, d)
		assert.Equal(t, "", d.CompassPosition(), "position %d", pos)
	}
}

func TestObjectIsDoorAgreesWithCreateFromObject(t *testing.T) {
	c := newTestClassifier(t, newFakeState())

	var ids []int
	for _, kind := range AllKinds() {
		ids = append(ids, c.Catalog().IDs(kind)...)
	}
	ids = append(ids, 0, 1, 99999, -5)

	for _, id := range ids {
		obj := world.NewSceneObject(id, 10, 20)
		isDoor := c.ObjectIsDoor(obj)
		for pos := 0; pos < 4; pos++ {
			d := c.CreateFromObject(pos, obj)
			assert.Equal(t, isDoor, d != nil, "id %d at position %d", id, pos)
		}
	}
	assert.False(t, c.ObjectIsDoor(world.NewSceneObject(99999, 0, 0)))
}

func TestCreateFromObjectKinds(t *testing.T) {
	c := newTestClassifier(t, newFakeState())
	for _, kind := range AllKinds() {
		for _, id := range c.Catalog().IDs(kind) {
			obj := world.NewSceneObject(id, 1, 2)
			d := c.CreateFromObject(int(world.East), obj)
			require.NotNil(t, d, "id %d", id)
			assert.Equal(t, kind, d.Kind())
			assert.Same(t, obj, d.Object())
		}
	}
}

func TestCreateFromObjectNilObject(t *testing.T) {
	c := newTestClassifier(t, newFakeState())
	for pos := -1; pos <= 4; pos++ {
		assert.Nil(t, c.CreateFromObject(pos, nil))
	}
	assert.False(t, c.ObjectIsDoor(nil))
}

func TestCreateFromObjectReturnsFreshDoors(t *testing.T) {
	c := newTestClassifier(t, newFakeState())
	obj := world.NewSceneObject(c.Catalog().IDs(Normal)[0], 0, 0)

	first := c.CreateFromObject(0, obj)
	first.Open()
	second := c.CreateFromObject(0, obj)

	require.NotNil(t, second)
	assert.NotSame(t, first, second)
	assert.False(t, second.IsOpen())
}

func TestClassificationPriority(t *testing.T) {
	const shared = 777
	kinds := AllKinds()
	for i := 0; i < len(kinds); i++ {
		for j := i + 1; j < len(kinds); j++ {
			catalog := NewCatalog()
			// register the later kind first so insertion order cannot decide
			catalog.Add(kinds[j], shared, Requirement{})
			catalog.Add(kinds[i], shared, Requirement{})

			c := NewClassifier(catalog, NewRules(newFakeState()), nil)
			d := c.CreateFromObject(0, world.NewSceneObject(shared, 0, 0))
			require.NotNil(t, d)
			assert.Equal(t, kinds[i], d.Kind(), "%s vs %s", kinds[i], kinds[j])
			assert.Equal(t, []Kind{kinds[i], kinds[j]}, catalog.Overlaps()[shared])
		}
	}
}

func TestColor(t *testing.T) {
	c := NewClassifier(DefaultCatalog(), Rules{}, nil)
	obj := world.NewSceneObject(c.Catalog().IDs(Normal)[0], 0, 0)

	tests := []struct {
		name   string
		rule   Rule
		opened bool
		want   color.NRGBA
	}{
		{"closed", Never, false, ColorClosed},
		{"can be opened", Always, false, ColorCanBeOpened},
		{"opened and openable", Always, true, ColorOpened},
		{"opened but not openable", Never, true, ColorOpened},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewClassifier(c.Catalog(), Rules{Normal: tt.rule}, nil).CreateFromObject(0, obj)
			require.NotNil(t, d)
			if tt.opened {
				d.Open()
			}
			assert.Equal(t, tt.want, d.Color())
		})
	}
}

func TestColorAlpha(t *testing.T) {
	for _, c := range []color.NRGBA{ColorClosed, ColorOpened, ColorCanBeOpened} {
		assert.Equal(t, uint8(192), c.A)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	c := newTestClassifier(t, newFakeState())
	d := c.CreateFromObject(1, world.NewSceneObject(c.Catalog().IDs(Guardian)[0], 0, 0))
	require.NotNil(t, d)
	assert.False(t, d.IsOpen())

	d.Open()
	once := *d
	d.Open()

	assert.True(t, d.IsOpen())
	assert.Equal(t, once.IsOpen(), d.IsOpen())
	assert.Equal(t, once.Color(), d.Color())
	assert.Equal(t, once.String(), d.String())
}

func TestDestinationRoom(t *testing.T) {
	c := newTestClassifier(t, newFakeState())
	d := c.CreateFromObject(0, world.NewSceneObject(c.Catalog().IDs(Boss)[0], 0, 0))
	require.NotNil(t, d)

	_, ok := d.DestinationRoom()
	assert.False(t, ok)

	d.SetDestinationRoom(3)
	id, ok := d.DestinationRoom()
	assert.True(t, ok)
	assert.Equal(t, world.RoomID(3), id)

	d.SetDestinationRoom(5)
	id, _ = d.DestinationRoom()
	assert.Equal(t, world.RoomID(5), id)
}

func TestKeyDoorAtSouth(t *testing.T) {
	gs := newFakeState()
	c := newTestClassifier(t, gs)
	keyDoorID := c.Catalog().IDs(Key)[0]

	d := c.CreateFromObject(2, world.NewSceneObject(keyDoorID, 3200, 5400))
	require.NotNil(t, d)
	assert.Equal(t, Key, d.Kind())
	assert.Equal(t, "South", d.CompassPosition())
	assert.False(t, d.IsOpen())
	assert.Equal(t, "South Door", d.String())

	assert.False(t, d.CanBeOpened())
	assert.Equal(t, ColorClosed, d.Color())

	gs.items[d.Requirement().KeyItem] = true
	assert.True(t, d.CanBeOpened())
	assert.Equal(t, ColorCanBeOpened, d.Color())
}

func TestDefaultRules(t *testing.T) {
	gs := newFakeState()
	c := newTestClassifier(t, gs)
	door := func(kind Kind) *Door {
		d := c.CreateFromObject(0, world.NewSceneObject(c.Catalog().IDs(kind)[0], 7, 8))
		require.NotNil(t, d)
		return d
	}

	assert.True(t, door(Normal).CanBeOpened())
	assert.True(t, door(Boss).CanBeOpened())

	gs.guardians[0] = true
	assert.True(t, door(Guardian).CanBeOpened(), "door outside any room")

	skill := door(Skill)
	req := skill.Requirement()
	require.NotEmpty(t, req.Skill)
	gs.skills[req.Skill] = req.Level - 1
	assert.False(t, skill.CanBeOpened())
	gs.skills[req.Skill] = req.Level
	assert.True(t, skill.CanBeOpened())

	puzzle := door(Puzzle)
	assert.False(t, puzzle.CanBeOpened())
	gs.solved[world.Tile{X: 7, Y: 8}] = true
	assert.True(t, puzzle.CanBeOpened())
}

func TestGuardianDoorsCheckTheirOwnRoom(t *testing.T) {
	gs := newFakeState()
	c := newTestClassifier(t, gs)
	obj := world.NewSceneObject(c.Catalog().IDs(Guardian)[0], 0, 0)

	guarded := c.CreateInRoom(0, int(world.North), obj)
	clear := c.CreateInRoom(7, int(world.North), obj)
	require.NotNil(t, guarded)
	require.NotNil(t, clear)

	room, ok := guarded.Room()
	assert.True(t, ok)
	assert.Equal(t, world.RoomID(0), room)

	gs.guardians[0] = true
	assert.False(t, guarded.CanBeOpened())
	assert.Equal(t, ColorClosed, guarded.Color())
	assert.True(t, clear.CanBeOpened())
	assert.Equal(t, ColorCanBeOpened, clear.Color())

	gs.guardians[0] = false
	assert.True(t, guarded.CanBeOpened())
}

func TestCreateFromObjectHasNoRoom(t *testing.T) {
	c := newTestClassifier(t, newFakeState())
	d := c.CreateFromObject(0, world.NewSceneObject(c.Catalog().IDs(Normal)[0], 0, 0))
	require.NotNil(t, d)
	_, ok := d.Room()
	assert.False(t, ok)
}

func TestRulesWith(t *testing.T) {
	base := NewRules(newFakeState())
	override := base.With(Normal, Never)

	d := &Door{kind: Normal}
	assert.True(t, base.For(Normal)(d))
	assert.False(t, override.For(Normal)(d))
	assert.False(t, Rules{}.For(Key)(d))
}

func TestParseCatalog(t *testing.T) {
	c, err := LoadCatalog(strings.NewReader(`
normal: [1, 2]
key:
  - {id: 10, key: 500}
skill:
  - id: 20
    skill: mining
    level: 45
`))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, c.IDs(Normal))
	assert.Equal(t, 4, c.Len())

	kind, req, ok := c.Lookup(10)
	require.True(t, ok)
	assert.Equal(t, Key, kind)
	assert.Equal(t, 500, req.KeyItem)

	kind, req, ok = c.Lookup(20)
	require.True(t, ok)
	assert.Equal(t, Skill, kind)
	assert.Equal(t, Requirement{Skill: "mining", Level: 45}, req)
}

func TestParseCatalogErrors(t *testing.T) {
	_, err := ParseCatalog([]byte("portal: [1]"))
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = ParseCatalog([]byte("normal: [0]"))
	assert.Error(t, err)

	_, err = ParseCatalog([]byte("normal: {"))
	assert.Error(t, err)

	_, err = LoadCatalogFile("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	for _, kind := range AllKinds() {
		parsed, err := ParseKind(strings.ToLower(kind.String()))
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
