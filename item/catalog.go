// Package item holds the item catalog the overlay resolves decoded ids against
package item

import (
	"fmt"

	"github.com/lixenwraith/transit-overlay/core"
)

// Descriptor describes one item kind
type Descriptor struct {
	ID    int
	Name  string
	Glyph rune
	Color core.RGB
}

// Catalog is an indexed item list; index equals Descriptor.ID
type Catalog struct {
	items  []Descriptor
	byName map[string]int
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{byName: make(map[string]int)}
}

// Add appends an item and returns its id
func (c *Catalog) Add(name string, glyph rune, color core.RGB) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("item: empty name")
	}
	if _, ok := c.byName[name]; ok {
		return 0, fmt.Errorf("item %q: duplicate", name)
	}
	if len(c.items) > 0xFFFF {
		return 0, fmt.Errorf("item %q: catalog full", name)
	}
	id := len(c.items)
	c.items = append(c.items, Descriptor{ID: id, Name: name, Glyph: glyph, Color: color})
	c.byName[name] = id
	return id, nil
}

// Len returns the item count
func (c *Catalog) Len() int { return len(c.items) }

// ItemByIndex returns the descriptor at index i
// Callers validate i against Len; out-of-range yields the zero descriptor
func (c *Catalog) ItemByIndex(i int) Descriptor {
	if i < 0 || i >= len(c.items) {
		return Descriptor{ID: -1}
	}
	return c.items[i]
}

// Lookup resolves an item name to its id
func (c *Catalog) Lookup(name string) (int, bool) {
	id, ok := c.byName[name]
	return id, ok
}
