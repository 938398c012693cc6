// Package catalog holds the read-only set of component demos, grouped by category.
package catalog

import (
	"fmt"
)

// Catalog maps category names to ordered descriptors. It is immutable once built.
type Catalog struct {
	categories []Category
	byName     map[string]int
	byID       map[string]Descriptor
}

// New builds a Catalog from ordered categories. Descriptor IDs must be unique
// across every category.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{
		categories: make([]Category, 0, len(categories)),
		byName:     make(map[string]int, len(categories)),
		byID:       make(map[string]Descriptor),
	}
	for _, cat := range categories {
		if cat.Name == "" {
			return nil, fmt.Errorf("category name is required")
		}
		if _, dup := c.byName[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}
		items := make([]Descriptor, 0, len(cat.Components))
		for _, d := range cat.Components {
			if d.ID == "" {
				return nil, fmt.Errorf("category %q: component id is required", cat.Name)
			}
			if d.Path == "" {
				return nil, fmt.Errorf("component %q: path is required", d.ID)
			}
			if prev, dup := c.byID[d.ID]; dup {
				return nil, fmt.Errorf("duplicate component id %q (%s and %s)", d.ID, prev.Path, d.Path)
			}
			if d.Name == "" {
				d.Name = d.ID
			}
			d.Tags = append([]string(nil), d.Tags...)
			c.byID[d.ID] = d
			items = append(items, d)
		}
		c.byName[cat.Name] = len(c.categories)
		c.categories = append(c.categories, Category{Name: cat.Name, Components: items})
	}
	return c, nil
}

// MustNew is like New but panics on invalid input. Used for built-in catalogs.
func MustNew(categories []Category) *Catalog {
	c, err := New(categories)
	if err != nil {
		panic(err)
	}
	return c
}

// AllComponents returns every descriptor in category order, then item order.
func (c *Catalog) AllComponents() []Descriptor {
	all := make([]Descriptor, 0, len(c.byID))
	for _, cat := range c.categories {
		all = append(all, cat.Components...)
	}
	return all
}

// ByID looks up a descriptor by its globally unique id.
func (c *Catalog) ByID(id string) (Descriptor, bool) {
	d, ok := c.byID[id]
	return d, ok
}

// ByCategory returns the descriptors of a category. Unknown names yield an
// empty slice.
func (c *Catalog) ByCategory(name string) []Descriptor {
	i, ok := c.byName[name]
	if !ok {
		return []Descriptor{}
	}
	out := make([]Descriptor, len(c.categories[i].Components))
	copy(out, c.categories[i].Components)
	return out
}

// Len returns the number of descriptors in a category, 0 if unknown.
func (c *Catalog) Len(name string) int {
	i, ok := c.byName[name]
	if !ok {
		return 0
	}
	return len(c.categories[i].Components)
}

// At returns the descriptor at index i of a category.
func (c *Catalog) At(name string, i int) (Descriptor, bool) {
	ci, ok := c.byName[name]
	if !ok {
		return Descriptor{}, false
	}
	items := c.categories[ci].Components
	if i < 0 || i >= len(items) {
		return Descriptor{}, false
	}
	return items[i], true
}

// HasCategory reports whether name is a known category.
func (c *Catalog) HasCategory(name string) bool {
	_, ok := c.byName[name]
	return ok
}

// Categories returns the category names in order.
func (c *Catalog) Categories() []string {
	names := make([]string, len(c.categories))
	for i, cat := range c.categories {
		names[i] = cat.Name
	}
	return names
}

// Count returns the total number of descriptors.
func (c *Catalog) Count() int { return len(c.byID) }

// File returns the catalog in its serializable layout.
func (c *Catalog) File() File {
	f := File{Categories: make([]Category, len(c.categories))}
	for i, cat := range c.categories {
		f.Categories[i] = Category{Name: cat.Name, Components: c.ByCategory(cat.Name)}
	}
	return f
}
