package doors

import (
	"log/slog"

	"dungeonbot/pkg/engine/world"
)

// Classifier turns scene objects into doors using a catalog and a set of opening rules.
type Classifier struct {
	catalog *Catalog
	rules   Rules
	logger  *slog.Logger
}

// NewClassifier creates a classifier. A nil logger uses slog.Default().
func NewClassifier(catalog *Catalog, rules Rules, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	for id, kinds := range catalog.Overlaps() {
		logger.Warn("door id registered for several kinds", "id", id, "kinds", kinds, "using", kinds[0])
	}
	return &Classifier{
		catalog: catalog,
		rules:   rules,
		logger:  logger,
	}
}

// Catalog returns the identifier catalog in use
func (c *Classifier) Catalog() *Catalog {
	return c.catalog
}

// classify is the single membership test behind both CreateFromObject and ObjectIsDoor.
func (c *Classifier) classify(obj *world.SceneObject) (Kind, Requirement, bool) {
	if obj == nil {
		return 0, Requirement{}, false
	}
	return c.catalog.Lookup(obj.ID)
}

// CreateFromObject creates the door represented by obj at the given wall slot.
// It returns nil if obj is nil or not a recognised door. Every call returns a new door.
func (c *Classifier) CreateFromObject(position int, obj *world.SceneObject) *Door {
	return c.CreateInRoom(world.NoRoom, position, obj)
}

// CreateInRoom is CreateFromObject for a door on a wall of the given room.
func (c *Classifier) CreateInRoom(room world.RoomID, position int, obj *world.SceneObject) *Door {
	kind, req, ok := c.classify(obj)
	if !ok {
		if obj != nil {
			c.logger.Debug("object is not a door", "id", obj.ID, "position", position)
		}
		return nil
	}
	return newDoor(room, position, obj, kind, req, c.rules.For(kind))
}

// ObjectIsDoor returns true if obj is a recognised door object
func (c *Classifier) ObjectIsDoor(obj *world.SceneObject) bool {
	_, _, ok := c.classify(obj)
	return ok
}
