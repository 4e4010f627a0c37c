package render

import (
	"fmt"
	"strings"

	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/inventory"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// GridView is the read side of the inventory drawn by DrawInventory.
type GridView interface {
	Width() int
	MaxHeight() int
	ActiveHeight() int
	ItemAt(x, y int) *catalog.ItemDefinition
	MergerUnlocked() bool
	ExpandCount() int
	Count() int
}

// ToolView describes an open merger or crafter.
type ToolView struct {
	Title   string
	Slots   [2]*catalog.ItemDefinition
	Recipe  *catalog.RecipeDefinition // crafter only
	Preview *catalog.ItemDefinition
}

// Panel is everything the inventory screen shows.
type Panel struct {
	Grid             GridView
	CursorX, CursorY int
	Marked           bool // a swap source is selected
	MarkX, MarkY     int
	Tool             *ToolView
	Status           string
}

const (
	cellWidth  = 4 // "[" + two-column icon + "]"
	gridLeft   = 2
	gridTop    = 2
	nameWidth  = 28
	lockedCell = "··"
)

var (
	panelWhite     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	panelGray      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	panelCyan      = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	panelYellow    = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	panelGreen     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	panelHighlight = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
)

// DrawInventory renders the inventory grid, the selected item and, when a
// station is open, its tool panel.
func (r *Renderer) DrawInventory(p Panel) {
	r.screen.Clear()
	g := p.Grid

	capacity := g.Width() * g.ActiveHeight()
	title := fmt.Sprintf("─── Bag %d/%d ───  expansions %d/%d", g.Count(), capacity, g.ExpandCount(), inventory.MaxExpandCount)
	r.drawText(0, 0, title, panelCyan)

	for y := 0; y < g.MaxHeight(); y++ {
		for x := 0; x < g.Width(); x++ {
			r.drawCell(p, x, y)
		}
	}

	row := gridTop + g.MaxHeight() + 1
	if item := g.ItemAt(p.CursorX, p.CursorY); item != nil {
		r.drawText(0, row, Describe(item), panelWhite)
	} else if p.CursorY >= g.ActiveHeight() {
		r.drawText(0, row, "Locked. Decompose an expander to open this row.", panelGray)
	}

	if p.Tool != nil {
		r.drawTool(*p.Tool, gridLeft+g.Width()*cellWidth+4)
	}

	if p.Status != "" {
		r.drawText(0, row+2, p.Status, panelGreen)
	}
	hint := "[arrows] move  [enter] break down  [s] swap  [x] discard  [esc] close"
	if p.Tool != nil {
		hint = "[arrows] move  [space] place  [1/2] take back  [</>] recipe  [esc] close"
	}
	r.drawText(0, row+4, hint, panelGray)

	r.screen.Show()
}

func (r *Renderer) drawCell(p Panel, x, y int) {
	g := p.Grid
	sx, sy := gridLeft+x*cellWidth, gridTop+y

	style := panelWhite
	switch {
	case x == p.CursorX && y == p.CursorY:
		style = panelHighlight
	case p.Marked && x == p.MarkX && y == p.MarkY:
		style = panelYellow
	case y >= g.ActiveHeight():
		style = panelGray
	}

	r.screen.SetContent(sx, sy, '[', nil, style)
	r.screen.SetContent(sx+3, sy, ']', nil, style)
	switch item := g.ItemAt(x, y); {
	case y >= g.ActiveHeight():
		r.drawText(sx+1, sy, lockedCell, style)
	case item != nil:
		r.putGlyph(sx+1, sy, Icon(item), style)
	default:
		r.drawText(sx+1, sy, "  ", style)
	}
}

func (r *Renderer) drawTool(t ToolView, left int) {
	r.drawText(left, gridTop-1, "─── "+t.Title+" ───", panelCyan)
	for i, item := range t.Slots {
		label := "(empty)"
		if item != nil {
			label = Icon(item) + " " + runewidth.Truncate(item.Name, nameWidth, "…")
		}
		r.drawText(left, gridTop+1+i, fmt.Sprintf("Slot %d: %s", i+1, label), panelWhite)
	}
	row := gridTop + 4
	if t.Recipe != nil {
		recipe := fmt.Sprintf("Recipe: < %s >  %s + %s",
			runewidth.Truncate(t.Recipe.Name, nameWidth, "…"), t.Recipe.Requires[0], t.Recipe.Requires[1])
		r.drawText(left, row, recipe, panelYellow)
		row++
	}
	result := "Result: ?"
	if t.Preview != nil {
		result = "Result: " + Icon(t.Preview) + " " + t.Preview.Name
	}
	r.drawText(left, row, result, panelGreen)
}

// Icon returns the glyph for item, falling back to its first letter.
func Icon(item *catalog.ItemDefinition) string {
	if item.Icon != "" {
		return item.Icon
	}
	if item.Name == "" {
		return "?"
	}
	return strings.ToUpper(item.Name[:1])
}

// Describe is the one-line description of item shown under the grid.
func Describe(item *catalog.ItemDefinition) string {
	var b strings.Builder
	b.WriteString(item.Name)
	switch {
	case item.IsElement:
		fmt.Fprintf(&b, " (element, tier %d)", item.Level)
		if item.Next != nil {
			fmt.Fprintf(&b, ", merges into %s", item.Next.Name)
		}
	case item.Effect != catalog.EffectNone:
		fmt.Fprintf(&b, ", break down to %s", effectVerb(item.Effect))
	case len(item.Decompose) > 0:
		names := make([]string, len(item.Decompose))
		for i, d := range item.Decompose {
			names[i] = d.Name
		}
		fmt.Fprintf(&b, ", breaks down into %s", strings.Join(names, " or "))
	}
	return b.String()
}

func effectVerb(e catalog.Effect) string {
	switch e {
	case catalog.EffectUnlockMerger:
		return "unlock the merger"
	case catalog.EffectExpand:
		return "grow your bag"
	case catalog.EffectEndGame:
		return "finish the game"
	}
	return e.String()
}
