package factory

import (
	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/ecs"

	"github.com/gdamore/tcell/v2"
)

// PlayerGlyph is drawn for the player entity.
const PlayerGlyph = "🧙"

// NewPlayer creates the player entity at (x, y).
func NewPlayer(w *ecs.World, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Renderable{
		Glyph:       PlayerGlyph,
		FGColor:     tcell.ColorYellow,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 10,
	})
	w.Add(id, component.TagPlayer{})
	w.Add(id, component.TagBlocking{})
	return id
}

// NewPickup creates a world item that the player can pick up. origin is
// empty for spawned trash and names the scene marker for placed items.
func NewPickup(w *ecs.World, item *catalog.ItemDefinition, origin string, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Renderable{
		Glyph:       item.Icon,
		FGColor:     tcell.ColorGreen,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 2,
	})
	w.Add(id, component.Pickup{ItemID: item.ID, Origin: origin})
	return id
}

var stationGlyphs = map[component.StationKind]string{
	component.StationMerger:  "⚗️",
	component.StationCrafter: "🛠️",
}

// NewStation creates a merger or crafter.
func NewStation(w *ecs.World, kind component.StationKind, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Renderable{
		Glyph:       stationGlyphs[kind],
		FGColor:     tcell.ColorAqua,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 5,
	})
	w.Add(id, component.Station{Kind: kind})
	w.Add(id, component.TagBlocking{})
	return id
}

// NewPortal creates a scene exit.
func NewPortal(w *ecs.World, target string, entry rune, x, y int) ecs.EntityID {
	id := w.CreateEntity()
	w.Add(id, component.Position{X: x, Y: y})
	w.Add(id, component.Renderable{
		Glyph:       "🚪",
		FGColor:     tcell.ColorWhite,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 1,
	})
	w.Add(id, component.Portal{Target: target, Entry: entry})
	return id
}
