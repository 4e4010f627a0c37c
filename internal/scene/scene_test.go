package scene

import (
	"errors"
	"testing"

	"trash-alchemy/assets"
	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/gamemap"
)

func TestBuiltinScenesValidate(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	if err := Validate(assets.Scenes, c.Items); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	start, err := Build(assets.Scenes[assets.StartScene])
	if err != nil {
		t.Fatal(err)
	}
	if !start.HasStart {
		t.Fatal("start scene needs an @ marker")
	}
}

func TestBuildParsesLegend(t *testing.T) {
	def := assets.SceneDef{
		ID: "test",
		Rows: []string{
			"#####",
			"#@M1a",
			"#:\"~#",
			"#####",
		},
		Portals:   map[rune]assets.PortalDef{'a': {Target: "elsewhere", Entry: 'b'}},
		Items:     map[rune]string{'1': "thing"},
		TrashArea: assets.Area{X1: 1, Y1: 2, X2: 3, Y2: 2},
	}
	l, err := Build(def)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.Map.Width != 5 || l.Map.Height != 4 {
		t.Fatalf("map size = %dx%d; want 5x4", l.Map.Width, l.Map.Height)
	}
	if !l.HasStart || l.StartX != 1 || l.StartY != 1 {
		t.Errorf("start = (%d,%d) %v; want (1,1)", l.StartX, l.StartY, l.HasStart)
	}
	if len(l.Stations) != 1 || l.Stations[0].Kind != component.StationMerger || l.Stations[0].X != 2 {
		t.Errorf("stations = %+v", l.Stations)
	}
	if len(l.Items) != 1 || l.Items[0].ItemID != "thing" || l.Items[0].Origin != "test:1" {
		t.Errorf("items = %+v", l.Items)
	}
	if x, y, ok := l.PortalAt('a'); !ok || x != 4 || y != 1 {
		t.Errorf("PortalAt('a') = (%d,%d) %v; want (4,1)", x, y, ok)
	}
	kinds := []gamemap.TileKind{gamemap.TileSand, gamemap.TileGrass, gamemap.TileWater}
	for i, want := range kinds {
		if got := l.Map.At(1+i, 2).Kind; got != want {
			t.Errorf("tile (%d,2) = %v; want %v", 1+i, got, want)
		}
	}
	if !l.Map.IsWalkable(4, 1) {
		t.Error("portal tile should be walkable")
	}
	if l.TrashArea.Area() != 3 {
		t.Errorf("trash area = %d cells; want 3", l.TrashArea.Area())
	}
}

func TestBuildRejectsBadLayouts(t *testing.T) {
	cases := []struct {
		name string
		def  assets.SceneDef
	}{
		{"no rows", assets.SceneDef{ID: "x"}},
		{"ragged rows", assets.SceneDef{ID: "x", Rows: []string{"###", "##"}}},
		{"unknown tile", assets.SceneDef{ID: "x", Rows: []string{"#?#"}}},
		{"portal without target", assets.SceneDef{ID: "x", Rows: []string{"#a#"}}},
		{"item without id", assets.SceneDef{ID: "x", Rows: []string{"#1#"}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Build(tc.def); !errors.Is(err, ErrBadLayout) {
				t.Fatalf("Build = %v; want ErrBadLayout", err)
			}
		})
	}
}

func TestValidateCatchesDanglingPortal(t *testing.T) {
	c, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	scenes := map[string]assets.SceneDef{
		"one": {ID: "one", Rows: []string{"#a#"}, Portals: map[rune]assets.PortalDef{'a': {Target: "two", Entry: 'z'}}},
		"two": {ID: "two", Rows: []string{"#b#"}, Portals: map[rune]assets.PortalDef{'b': {Target: "one", Entry: 'a'}}},
	}
	if err := Validate(scenes, c.Items); !errors.Is(err, ErrBadLayout) {
		t.Fatalf("Validate = %v; want ErrBadLayout for missing entry marker", err)
	}
}
