package doors

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// catalogEntry is one row of the classification table.
type catalogEntry struct {
	kind         Kind
	ids          mapset.Set[int]
	requirements map[int]Requirement
}

// Catalog is the ordered table of recognised door object identifiers.
// Entries are kept in classification priority order (see AllKinds).
type Catalog struct {
	entries []catalogEntry
}

// NewCatalog returns an empty catalog with a row for every kind
func NewCatalog() *Catalog {
	c := &Catalog{}
	for _, kind := range AllKinds() {
		c.entries = append(c.entries, catalogEntry{
			kind:         kind,
			ids:          mapset.New[int](),
			requirements: make(map[int]Requirement),
		})
	}
	return c
}

// DefaultCatalog returns the catalog shipped with the module
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded door catalog: %v", err))
	}
	return c
}

// Add registers id as a door of the given kind
func (c *Catalog) Add(kind Kind, id int, req Requirement) {
	e := c.entry(kind)
	if e == nil {
		return
	}
	e.ids.Put(id)
	if !req.IsZero() {
		e.requirements[id] = req
	}
}

func (c *Catalog) entry(kind Kind) *catalogEntry {
	for i := range c.entries {
		if c.entries[i].kind == kind {
			return &c.entries[i]
		}
	}
	return nil
}

// Lookup returns the kind of the first row, in priority order, that recognises id
func (c *Catalog) Lookup(id int) (Kind, Requirement, bool) {
	for _, e := range c.entries {
		if e.ids.Has(id) {
			return e.kind, e.requirements[id], true
		}
	}
	return 0, Requirement{}, false
}

// IDs returns the identifiers registered for kind in ascending order
func (c *Catalog) IDs(kind Kind) []int {
	e := c.entry(kind)
	if e == nil {
		return nil
	}
	ids := make([]int, 0, e.ids.Size())
	e.ids.Each(func(id int) {
		ids = append(ids, id)
	})
	sort.Ints(ids)
	return ids
}

// Len returns the number of distinct identifiers in the catalog
func (c *Catalog) Len() int {
	seen := mapset.New[int]()
	for _, e := range c.entries {
		e.ids.Each(func(id int) { seen.Put(id) })
	}
	return seen.Size()
}

// Overlaps returns identifiers registered for more than one kind,
// along with the kinds in priority order.
func (c *Catalog) Overlaps() map[int][]Kind {
	kinds := make(map[int][]Kind)
	for _, e := range c.entries {
		e.ids.Each(func(id int) {
			kinds[id] = append(kinds[id], e.kind)
		})
	}
	for id, ks := range kinds {
		if len(ks) < 2 {
			delete(kinds, id)
		}
	}
	return kinds
}

// catalogItem is a catalog row in YAML: either a bare identifier or a
// mapping with an id and the requirement fields.
type catalogItem struct {
	ID          int `yaml:"id"`
	Requirement `yaml:",inline"`
}

func (i *catalogItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		return value.Decode(&i.ID)
	}
	type plain catalogItem
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*i = catalogItem(p)
	return nil
}

// ParseCatalog parses a YAML catalog document.
// Top level keys are kind names; values are lists of identifiers.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc map[string][]catalogItem
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse door catalog: %w", err)
	}

	c := NewCatalog()
	for name, items := range doc {
		kind, err := ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("parse door catalog: %w", err)
		}
		for _, item := range items {
			if item.ID <= 0 {
				return nil, fmt.Errorf("parse door catalog: %s door with invalid id %d", kind, item.ID)
			}
			c.Add(kind, item.ID, item.Requirement)
		}
	}
	return c, nil
}

// LoadCatalog reads and parses a YAML catalog
func LoadCatalog(r io.Reader) (*Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read door catalog: %w", err)
	}
	return ParseCatalog(data)
}

// LoadCatalogFile loads a YAML catalog from path
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open door catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}
