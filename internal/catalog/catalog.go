// Package catalog holds the static item and recipe definitions loaded at
// startup. Catalogs are read-only once built and safe to share between
// sessions.
package catalog

import (
	"fmt"
	"sort"
)

// Items is the read-only item catalog keyed by ID.
type Items struct {
	byID map[string]*ItemDefinition
}

// Lookup returns the definition for id.
func (c *Items) Lookup(id string) (*ItemDefinition, bool) {
	if c == nil {
		return nil, false
	}
	d, ok := c.byID[id]
	return d, ok
}

// MustLookup returns the definition for id and panics when it is missing.
// Intended for tests and hand-authored content that the loader validated.
func (c *Items) MustLookup(id string) *ItemDefinition {
	d, ok := c.Lookup(id)
	if !ok {
		panic(fmt.Sprintf("catalog: unknown item %q", id))
	}
	return d
}

// All returns every definition sorted by ID.
func (c *Items) All() []*ItemDefinition {
	if c == nil {
		return nil
	}
	out := make([]*ItemDefinition, 0, len(c.byID))
	for _, d := range c.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of item definitions.
func (c *Items) Len() int {
	if c == nil {
		return 0
	}
	return len(c.byID)
}

// Recipes is the read-only recipe catalog. All preserves file order so the
// crafter panel lists recipes the way they were authored.
type Recipes struct {
	list []*RecipeDefinition
	byID map[string]*RecipeDefinition
}

// Lookup returns the recipe with the given ID.
func (c *Recipes) Lookup(id string) (*RecipeDefinition, bool) {
	if c == nil {
		return nil, false
	}
	r, ok := c.byID[id]
	return r, ok
}

// ByName returns the first recipe with the given display name.
func (c *Recipes) ByName(name string) (*RecipeDefinition, bool) {
	if c == nil {
		return nil, false
	}
	for _, r := range c.list {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}

// All returns the recipes in file order.
func (c *Recipes) All() []*RecipeDefinition {
	if c == nil {
		return nil
	}
	out := make([]*RecipeDefinition, len(c.list))
	copy(out, c.list)
	return out
}

// At returns the i-th recipe in file order, or nil when i is out of range.
func (c *Recipes) At(i int) *RecipeDefinition {
	if c == nil || i < 0 || i >= len(c.list) {
		return nil
	}
	return c.list[i]
}

// Len returns the number of recipes.
func (c *Recipes) Len() int {
	if c == nil {
		return 0
	}
	return len(c.list)
}

// Layout is the inventory shape configured by the catalog file.
type Layout struct {
	Width       int
	MaxHeight   int
	StartHeight int
}

// Catalog bundles everything loaded from one catalog file.
type Catalog struct {
	Items   *Items
	Recipes *Recipes
	Layout  Layout
	// Trash lists the items the world spawner may drop.
	Trash []*ItemDefinition
}
