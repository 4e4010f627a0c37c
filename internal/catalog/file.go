package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"trash-alchemy/assets"

	"gopkg.in/yaml.v3"
)

// File is the on-disk catalog format. The yaml tags drive loading; the json
// tags drive the generated JSON schema.
type File struct {
	Inventory InventoryFile `yaml:"inventory" json:"inventory"`
	Items     []ItemFile    `yaml:"items" json:"items" jsonschema:"minItems=1"`
	Recipes   []RecipeFile  `yaml:"recipes" json:"recipes,omitempty"`
	Trash     []string      `yaml:"trash" json:"trash,omitempty" jsonschema:"description=Item IDs the world spawner may drop"`
}

// InventoryFile configures the grid shape.
type InventoryFile struct {
	Width       int `yaml:"width" json:"width" jsonschema:"minimum=1"`
	MaxHeight   int `yaml:"max_height" json:"max_height" jsonschema:"minimum=1"`
	StartHeight int `yaml:"start_height" json:"start_height" jsonschema:"minimum=1"`
}

// ItemFile is one item entry.
type ItemFile struct {
	ID        string   `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Name      string   `yaml:"name" json:"name"`
	Icon      string   `yaml:"icon" json:"icon,omitempty"`
	Element   bool     `yaml:"element" json:"element,omitempty"`
	Level     int      `yaml:"level" json:"level,omitempty" jsonschema:"minimum=0"`
	Next      string   `yaml:"next" json:"next,omitempty" jsonschema:"description=ID of the element produced by merging two of this one"`
	Decompose []string `yaml:"decompose" json:"decompose,omitempty"`
	Effect    string   `yaml:"effect" json:"effect,omitempty" jsonschema:"enum=none,enum=unlock_merger,enum=expand,enum=end_game"`
}

// RecipeFile is one recipe entry.
type RecipeFile struct {
	ID       string   `yaml:"id" json:"id" jsonschema:"minLength=1"`
	Name     string   `yaml:"name" json:"name"`
	Requires []string `yaml:"requires" json:"requires" jsonschema:"minItems=2,maxItems=2"`
	Result   string   `yaml:"result" json:"result"`
}

var (
	ErrDuplicateID  = errors.New("duplicate id")
	ErrUnknownItem  = errors.New("unknown item")
	ErrInvalidEntry = errors.New("invalid entry")
)

// Default builds the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(assets.CatalogYAML)
}

// LoadFile reads and builds a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes YAML catalog data. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return Build(f)
}

// Build validates f and resolves every cross reference.
func Build(f File) (*Catalog, error) {
	layout, err := buildLayout(f.Inventory)
	if err != nil {
		return nil, err
	}
	items, err := buildItems(f.Items)
	if err != nil {
		return nil, err
	}
	recipes, err := buildRecipes(f.Recipes, items)
	if err != nil {
		return nil, err
	}

	trash := make([]*ItemDefinition, 0, len(f.Trash))
	for _, id := range f.Trash {
		d, ok := items.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("trash: %w %q", ErrUnknownItem, id)
		}
		if d.IsElement {
			return nil, fmt.Errorf("trash %q: %w: elements cannot spawn as trash", id, ErrInvalidEntry)
		}
		trash = append(trash, d)
	}

	return &Catalog{Items: items, Recipes: recipes, Layout: layout, Trash: trash}, nil
}

func buildLayout(f InventoryFile) (Layout, error) {
	l := Layout{Width: f.Width, MaxHeight: f.MaxHeight, StartHeight: f.StartHeight}
	switch {
	case l.Width < 1:
		return l, fmt.Errorf("inventory: %w: width must be at least 1", ErrInvalidEntry)
	case l.MaxHeight < 1:
		return l, fmt.Errorf("inventory: %w: max_height must be at least 1", ErrInvalidEntry)
	case l.StartHeight < 1 || l.StartHeight > l.MaxHeight:
		return l, fmt.Errorf("inventory: %w: start_height %d outside [1,%d]", ErrInvalidEntry, l.StartHeight, l.MaxHeight)
	}
	return l, nil
}

func buildItems(entries []ItemFile) (*Items, error) {
	items := &Items{byID: make(map[string]*ItemDefinition, len(entries))}

	// First pass creates every definition so references can point forward.
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("item: %w: missing id", ErrInvalidEntry)
		}
		if _, dup := items.byID[e.ID]; dup {
			return nil, fmt.Errorf("item %q: %w", e.ID, ErrDuplicateID)
		}
		effect, err := ParseEffect(e.Effect)
		if err != nil {
			return nil, fmt.Errorf("item %q: %w: %v", e.ID, ErrInvalidEntry, err)
		}
		if e.Element && e.Level < 1 {
			return nil, fmt.Errorf("item %q: %w: elements need level >= 1", e.ID, ErrInvalidEntry)
		}
		if !e.Element && e.Level != 0 {
			return nil, fmt.Errorf("item %q: %w: only elements have a level", e.ID, ErrInvalidEntry)
		}
		if e.Element && effect != EffectNone {
			return nil, fmt.Errorf("item %q: %w: elements cannot carry an effect", e.ID, ErrInvalidEntry)
		}
		name := e.Name
		if name == "" {
			name = e.ID
		}
		items.byID[e.ID] = &ItemDefinition{
			ID:        e.ID,
			Name:      name,
			Icon:      e.Icon,
			IsElement: e.Element,
			Level:     e.Level,
			Effect:    effect,
		}
	}

	for _, e := range entries {
		d := items.byID[e.ID]
		if e.Next != "" {
			if !d.IsElement {
				return nil, fmt.Errorf("item %q: %w: next tier on a non-element", e.ID, ErrInvalidEntry)
			}
			next, ok := items.byID[e.Next]
			if !ok {
				return nil, fmt.Errorf("item %q: next: %w %q", e.ID, ErrUnknownItem, e.Next)
			}
			if !next.IsElement || next.Level != d.Level+1 {
				return nil, fmt.Errorf("item %q: %w: next %q must be a level %d element", e.ID, ErrInvalidEntry, e.Next, d.Level+1)
			}
			d.Next = next
		}
		for _, id := range e.Decompose {
			r, ok := items.byID[id]
			if !ok {
				return nil, fmt.Errorf("item %q: decompose: %w %q", e.ID, ErrUnknownItem, id)
			}
			if !r.IsElement {
				return nil, fmt.Errorf("item %q: %w: decompose result %q is not an element", e.ID, ErrInvalidEntry, id)
			}
			d.Decompose = append(d.Decompose, r)
		}
	}
	return items, nil
}

func buildRecipes(entries []RecipeFile, items *Items) (*Recipes, error) {
	recipes := &Recipes{byID: make(map[string]*RecipeDefinition, len(entries))}
	for _, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("recipe: %w: missing id", ErrInvalidEntry)
		}
		if _, dup := recipes.byID[e.ID]; dup {
			return nil, fmt.Errorf("recipe %q: %w", e.ID, ErrDuplicateID)
		}
		if len(e.Requires) != 2 {
			return nil, fmt.Errorf("recipe %q: %w: requires exactly two elements, got %d", e.ID, ErrInvalidEntry, len(e.Requires))
		}
		for _, id := range e.Requires {
			d, ok := items.Lookup(id)
			if !ok {
				return nil, fmt.Errorf("recipe %q: requires: %w %q", e.ID, ErrUnknownItem, id)
			}
			if !d.IsElement {
				return nil, fmt.Errorf("recipe %q: %w: %q is not an element", e.ID, ErrInvalidEntry, id)
			}
		}
		result, ok := items.Lookup(e.Result)
		if !ok {
			return nil, fmt.Errorf("recipe %q: result: %w %q", e.ID, ErrUnknownItem, e.Result)
		}
		name := e.Name
		if name == "" {
			name = result.Name
		}
		r := &RecipeDefinition{
			ID:       e.ID,
			Name:     name,
			Requires: [2]string{e.Requires[0], e.Requires[1]},
			Result:   result,
		}
		recipes.list = append(recipes.list, r)
		recipes.byID[e.ID] = r
	}
	return recipes, nil
}
