package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testCatalog = `
inventory: { width: 4, max_height: 4, start_height: 2 }
items:
  - { id: e1, name: Spark, icon: "*", element: true, level: 1, next: e1b }
  - { id: e1b, name: Flare, element: true, level: 2 }
  - { id: e2, name: Drop, element: true, level: 1 }
  - { id: junk, name: Junk, decompose: [e1, e2] }
  - { id: unlock, name: Blueprint, effect: unlock_merger }
  - { id: grow, name: Expander, effect: expand }
  - { id: win, name: Trophy, effect: end_game }
recipes:
  - { id: r1, name: Widget, requires: [e1, e2], result: junk }
  - { id: r2, requires: [e2, e2], result: win }
trash: [junk]
`

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if c.Items.Len() == 0 || c.Recipes.Len() == 0 || len(c.Trash) == 0 {
		t.Fatalf("default catalog is missing content: items=%d recipes=%d trash=%d",
			c.Items.Len(), c.Recipes.Len(), len(c.Trash))
	}
	// Every special effect must be reachable in the default content.
	seen := map[Effect]bool{}
	for _, d := range c.Items.All() {
		seen[d.Effect] = true
	}
	for _, e := range []Effect{EffectUnlockMerger, EffectExpand, EffectEndGame} {
		if !seen[e] {
			t.Errorf("default catalog has no %v item", e)
		}
	}
}

func TestParseResolvesReferences(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	e1 := c.Items.MustLookup("e1")
	if e1.Next != c.Items.MustLookup("e1b") {
		t.Errorf("e1.Next = %v; want e1b", e1.Next)
	}
	if !e1.Mergeable() {
		t.Error("e1 should be mergeable")
	}
	if c.Items.MustLookup("e1b").Mergeable() {
		t.Error("top tier should not be mergeable")
	}
	junk := c.Items.MustLookup("junk")
	if len(junk.Decompose) != 2 || junk.Decompose[0].ID != "e1" || junk.Decompose[1].ID != "e2" {
		t.Errorf("junk decompose = %v", junk.Decompose)
	}
	if got := c.Items.MustLookup("grow").Effect; got != EffectExpand {
		t.Errorf("grow effect = %v; want expand", got)
	}
	if c.Layout != (Layout{Width: 4, MaxHeight: 4, StartHeight: 2}) {
		t.Errorf("layout = %+v", c.Layout)
	}
	if len(c.Trash) != 1 || c.Trash[0] != junk {
		t.Errorf("trash = %v", c.Trash)
	}
}

func TestRecipeLookupAndOrder(t *testing.T) {
	c, err := Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	all := c.Recipes.All()
	if len(all) != 2 || all[0].ID != "r1" || all[1].ID != "r2" {
		t.Fatalf("recipes not in file order: %v", all)
	}
	if r, ok := c.Recipes.ByName("Widget"); !ok || r.ID != "r1" {
		t.Errorf("ByName(Widget) = %v, %v", r, ok)
	}
	// An unnamed recipe takes its result's name.
	if r, _ := c.Recipes.Lookup("r2"); r.Name != "Trophy" {
		t.Errorf("r2 name = %q; want Trophy", r.Name)
	}
	if c.Recipes.At(5) != nil || c.Recipes.At(-1) != nil {
		t.Error("At out of range should return nil")
	}
}

func TestRecipeMatchesUnordered(t *testing.T) {
	r := &RecipeDefinition{Requires: [2]string{"E1", "E2"}}
	cases := []struct {
		a, b string
		want bool
	}{
		{"E1", "E2", true},
		{"E2", "E1", true},
		{"E1", "E1", false},
		{"E2", "E2", false},
		{"E1", "E3", false},
		{"E3", "E4", false},
	}
	for _, tc := range cases {
		if got := r.Matches(tc.a, tc.b); got != tc.want {
			t.Errorf("Matches(%s,%s) = %v; want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParseRejectsInvalidCatalogs(t *testing.T) {
	base := "inventory: { width: 2, max_height: 2, start_height: 1 }\n"
	cases := []struct {
		name string
		body string
		want error
	}{
		{"duplicate item", "items:\n  - { id: a }\n  - { id: a }\n", ErrDuplicateID},
		{"missing next", "items:\n  - { id: a, element: true, level: 1, next: b }\n", ErrUnknownItem},
		{"next skips a tier", "items:\n  - { id: a, element: true, level: 1, next: b }\n  - { id: b, element: true, level: 3 }\n", ErrInvalidEntry},
		{"next on non-element", "items:\n  - { id: a, next: b }\n  - { id: b, element: true, level: 1 }\n", ErrInvalidEntry},
		{"element without level", "items:\n  - { id: a, element: true }\n", ErrInvalidEntry},
		{"decompose into non-element", "items:\n  - { id: a, decompose: [b] }\n  - { id: b }\n", ErrInvalidEntry},
		{"unknown effect", "items:\n  - { id: a, effect: teleport }\n", ErrInvalidEntry},
		{"recipe with three inputs", "items:\n  - { id: a, element: true, level: 1 }\nrecipes:\n  - { id: r, requires: [a, a, a], result: a }\n", ErrInvalidEntry},
		{"recipe with unknown result", "items:\n  - { id: a, element: true, level: 1 }\nrecipes:\n  - { id: r, requires: [a, a], result: z }\n", ErrUnknownItem},
		{"element trash", "items:\n  - { id: a, element: true, level: 1 }\ntrash: [a]\n", ErrInvalidEntry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(base + tc.body))
			if !errors.Is(err, tc.want) {
				t.Fatalf("Parse error = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestParseRejectsBadLayout(t *testing.T) {
	_, err := Parse([]byte("inventory: { width: 2, max_height: 2, start_height: 3 }\nitems:\n  - { id: a }\n"))
	if !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("expected ErrInvalidEntry for start_height > max_height, got %v", err)
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("inventory: { width: 2, max_height: 2, start_height: 1, depth: 4 }\n"))
	if err == nil || !strings.Contains(err.Error(), "decode catalog") {
		t.Fatalf("expected decode error for unknown field, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(testCatalog), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if c.Items.Len() != 7 {
		t.Errorf("items = %d; want 7", c.Items.Len())
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v; want os.ErrNotExist", err)
	}
}

func TestParseEffect(t *testing.T) {
	for _, e := range []Effect{EffectNone, EffectUnlockMerger, EffectExpand, EffectEndGame} {
		got, err := ParseEffect(e.String())
		if err != nil || got != e {
			t.Errorf("ParseEffect(%q) = %v, %v; want %v", e.String(), got, err, e)
		}
	}
	if _, err := ParseEffect("explode"); err == nil {
		t.Error("expected error for unknown effect")
	}
}
