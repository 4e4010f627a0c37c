package render

import (
	"sort"

	"trash-alchemy/internal/component"
	"trash-alchemy/internal/ecs"
	"trash-alchemy/internal/gamemap"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// HUDRows is the number of screen rows reserved at the bottom for the HUD.
const HUDRows = 5

// Renderer draws the game world onto a tcell screen.
type Renderer struct {
	screen tcell.Screen
	camera *Camera
	theme  Theme
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	w, h := screen.Size()
	return &Renderer{
		screen: screen,
		camera: NewCamera(0, 0, w, h-HUDRows),
		theme:  DefaultTheme,
	}
}

// SetTheme switches the terrain glyphs, e.g. on a scene change.
func (r *Renderer) SetTheme(t Theme) { r.theme = t }

// CenterOn recenters the camera on world position (x, y).
func (r *Renderer) CenterOn(x, y int) { r.camera.Center(x, y) }

// WorldToScreen converts world coordinates to screen coordinates.
// visible is false when the position falls outside the viewport.
func (r *Renderer) WorldToScreen(wx, wy int) (sx, sy int, visible bool) {
	return r.camera.WorldToScreen(wx, wy)
}

// DrawFrame clears the screen and renders tiles and entities, keeping the
// player in view. The caller draws the HUD afterwards.
func (r *Renderer) DrawFrame(w *ecs.World, gmap *gamemap.GameMap, playerID ecs.EntityID) {
	r.screen.Clear()
	sw, sh := r.screen.Size()
	r.camera.ViewWidth, r.camera.ViewHeight = sw, sh-HUDRows
	if c := w.Get(playerID, component.CPosition); c != nil {
		p := c.(component.Position)
		r.camera.Follow(p.X, p.Y, gmap.Width, gmap.Height)
	}
	r.drawMap(gmap)
	r.drawEntities(w)
}

// drawMap renders every tile with the current theme.
func (r *Renderer) drawMap(gmap *gamemap.GameMap) {
	style := tcell.StyleDefault.Background(tcell.ColorBlack)
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			sx, sy, onScreen := r.camera.WorldToScreen(x, y)
			if !onScreen {
				continue
			}
			r.putGlyph(sx, sy, r.tileGlyph(gmap.At(x, y).Kind), style)
		}
	}
}

func (r *Renderer) tileGlyph(kind gamemap.TileKind) string {
	switch kind {
	case gamemap.TileWall:
		return r.theme.Wall
	case gamemap.TileSand:
		return r.theme.Sand
	case gamemap.TileGrass:
		return r.theme.Grass
	case gamemap.TileWater:
		return r.theme.Water
	default:
		return r.theme.Floor
	}
}

// renderableEntity holds sorting info for entity rendering.
type renderableEntity struct {
	order int
	pos   component.Position
	rend  component.Renderable
}

// drawEntities renders all entities with Renderable + Position, ordered by RenderOrder.
func (r *Renderer) drawEntities(w *ecs.World) {
	ids := w.Query(component.CRenderable, component.CPosition)
	entities := make([]renderableEntity, 0, len(ids))
	for _, id := range ids {
		pos := w.Get(id, component.CPosition).(component.Position)
		rend := w.Get(id, component.CRenderable).(component.Renderable)
		entities = append(entities, renderableEntity{order: rend.RenderOrder, pos: pos, rend: rend})
	}

	// Lower orders are drawn first so the player ends up on top.
	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].order < entities[j].order
	})

	for _, e := range entities {
		sx, sy, onScreen := r.camera.WorldToScreen(e.pos.X, e.pos.Y)
		if !onScreen {
			continue
		}
		style := tcell.StyleDefault.Foreground(e.rend.FGColor).Background(tcell.ColorBlack)
		r.putGlyph(sx, sy, e.rend.Glyph, style)
	}
}

// putGlyph draws a single glyph (ASCII or multi-rune emoji) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		// Fill the second column to avoid rendering artifacts.
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
