// Package scene turns hand-authored scene layouts into a game map plus the
// entities the game should spawn on it.
package scene

import (
	"errors"
	"fmt"
	"sort"

	"trash-alchemy/assets"
	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/gamemap"
)

var ErrBadLayout = errors.New("bad scene layout")

// PortalSpawn places a portal entity.
type PortalSpawn struct {
	X, Y   int
	Marker rune
	Target string
	Entry  rune
}

// StationSpawn places a merger or crafter.
type StationSpawn struct {
	X, Y int
	Kind component.StationKind
}

// ItemSpawn places a hand-authored item. Origin identifies it across scene
// reloads so it is collected at most once per run.
type ItemSpawn struct {
	X, Y   int
	ItemID string
	Origin string
}

// Layout is a built scene.
type Layout struct {
	ID        string
	Name      string
	Map       *gamemap.GameMap
	StartX    int
	StartY    int
	HasStart  bool
	Portals   []PortalSpawn
	Stations  []StationSpawn
	Items     []ItemSpawn
	TrashArea gamemap.Rect
}

// PortalAt returns the position of the portal with the given marker.
func (l *Layout) PortalAt(marker rune) (int, int, bool) {
	for _, p := range l.Portals {
		if p.Marker == marker {
			return p.X, p.Y, true
		}
	}
	return 0, 0, false
}

// Build parses def into a Layout.
func Build(def assets.SceneDef) (*Layout, error) {
	if len(def.Rows) == 0 {
		return nil, fmt.Errorf("scene %q: %w: no rows", def.ID, ErrBadLayout)
	}
	width := len([]rune(def.Rows[0]))
	gmap := gamemap.New(width, len(def.Rows))
	l := &Layout{
		ID:   def.ID,
		Name: def.Name,
		Map:  gmap,
		TrashArea: gamemap.Rect{
			X1: def.TrashArea.X1, Y1: def.TrashArea.Y1,
			X2: def.TrashArea.X2, Y2: def.TrashArea.Y2,
		},
	}

	for y, row := range def.Rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("scene %q: %w: row %d has %d columns, want %d", def.ID, ErrBadLayout, y, len(runes), width)
		}
		for x, r := range runes {
			switch {
			case r == '#':
				gmap.Set(x, y, gamemap.MakeWall())
			case r == '.':
				gmap.Set(x, y, gamemap.MakeFloor())
			case r == ':':
				gmap.Set(x, y, gamemap.MakeSand())
			case r == '"':
				gmap.Set(x, y, gamemap.MakeGrass())
			case r == '~':
				gmap.Set(x, y, gamemap.MakeWater())
			case r == '@':
				gmap.Set(x, y, gamemap.MakeFloor())
				l.StartX, l.StartY, l.HasStart = x, y, true
			case r == 'M' || r == 'C':
				gmap.Set(x, y, gamemap.MakeFloor())
				kind := component.StationMerger
				if r == 'C' {
					kind = component.StationCrafter
				}
				l.Stations = append(l.Stations, StationSpawn{X: x, Y: y, Kind: kind})
			case r >= 'a' && r <= 'z':
				p, ok := def.Portals[r]
				if !ok {
					return nil, fmt.Errorf("scene %q: %w: portal %q has no target", def.ID, ErrBadLayout, r)
				}
				gmap.Set(x, y, gamemap.MakeFloor())
				l.Portals = append(l.Portals, PortalSpawn{X: x, Y: y, Marker: r, Target: p.Target, Entry: p.Entry})
			case r >= '1' && r <= '9':
				id, ok := def.Items[r]
				if !ok {
					return nil, fmt.Errorf("scene %q: %w: item marker %q has no item", def.ID, ErrBadLayout, r)
				}
				gmap.Set(x, y, gamemap.MakeFloor())
				l.Items = append(l.Items, ItemSpawn{X: x, Y: y, ItemID: id, Origin: fmt.Sprintf("%s:%c", def.ID, r)})
			default:
				return nil, fmt.Errorf("scene %q: %w: unknown tile %q at (%d,%d)", def.ID, ErrBadLayout, r, x, y)
			}
		}
	}
	return l, nil
}

// Validate builds every scene and checks that portals lead somewhere real
// and placed items exist in items.
func Validate(scenes map[string]assets.SceneDef, items *catalog.Items) error {
	ids := make([]string, 0, len(scenes))
	for id := range scenes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	built := make(map[string]*Layout, len(scenes))
	for _, id := range ids {
		l, err := Build(scenes[id])
		if err != nil {
			return err
		}
		built[id] = l
	}
	for _, id := range ids {
		l := built[id]
		for _, p := range l.Portals {
			target, ok := built[p.Target]
			if !ok {
				return fmt.Errorf("scene %q: %w: portal %q targets unknown scene %q", id, ErrBadLayout, p.Marker, p.Target)
			}
			if _, _, ok := target.PortalAt(p.Entry); !ok {
				return fmt.Errorf("scene %q: %w: portal %q enters %q at missing marker %q", id, ErrBadLayout, p.Marker, p.Target, p.Entry)
			}
		}
		for _, it := range l.Items {
			if _, ok := items.Lookup(it.ItemID); !ok {
				return fmt.Errorf("scene %q: item %s: %w %q", id, it.Origin, catalog.ErrUnknownItem, it.ItemID)
			}
		}
	}
	return nil
}
