package game

import (
	"fmt"

	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/interact"
	"trash-alchemy/internal/inventory"
	"trash-alchemy/internal/render"

	"github.com/gdamore/tcell/v2"
)

// invCursor is the inventory screen's selection state.
type invCursor struct {
	x, y         int
	marked       bool // a swap source is selected
	markX, markY int
	status       string
}

// runInventoryScreen opens a blocking inventory UI. When a station is open
// on the facade its tool panel is shown next to the grid; closing the
// screen returns any staged operands and closes the tool.
func (g *Game) runInventoryScreen() {
	g.state = StateInventory
	defer func() {
		g.facade.CloseTool()
		if g.state == StateInventory {
			g.state = StatePlaying
		}
	}()

	cur := &invCursor{}
	for {
		g.drawInventory(cur)

		ev := g.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventResize:
			g.screen.Sync()
			continue
		case *tcell.EventKey:
			if g.handleInventoryKey(cur, ev) {
				return
			}
			if g.inv.Cleared() {
				g.state = StateCleared
				return
			}
		}
	}
}

// handleInventoryKey applies one key press to the inventory screen.
// Returns true when the screen should close.
func (g *Game) handleInventoryKey(cur *invCursor, ev *tcell.EventKey) bool {
	cur.status = ""
	tool := g.facade.Tool()

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyTab:
		return true
	case tcell.KeyUp:
		g.moveCursor(cur, 0, -1)
		return false
	case tcell.KeyDown:
		g.moveCursor(cur, 0, 1)
		return false
	case tcell.KeyLeft:
		g.moveCursor(cur, -1, 0)
		return false
	case tcell.KeyRight:
		g.moveCursor(cur, 1, 0)
		return false
	case tcell.KeyEnter:
		if tool != 0 {
			g.invPlace(cur)
		} else {
			g.invDecompose(cur)
		}
		return false
	}

	switch ev.Rune() {
	case 'k', 'K':
		g.moveCursor(cur, 0, -1)
	case 'j', 'J':
		g.moveCursor(cur, 0, 1)
	case 'h', 'H':
		g.moveCursor(cur, -1, 0)
	case 'l', 'L':
		g.moveCursor(cur, 1, 0)
	case 'd', 'D':
		g.invDecompose(cur)
	case ' ':
		if tool != 0 {
			g.invPlace(cur)
		}
	case 's', 'S':
		g.invSwap(cur)
	case 'x', 'X':
		g.invDiscard(cur)
	case '1', '2':
		if tool != 0 {
			if err := g.facade.Unstage(int(ev.Rune() - '1')); err != nil {
				cur.status = interact.Explain(err)
			}
		}
	case '<', ',':
		if tool == component.StationCrafter {
			g.facade.CycleRecipe(-1)
		}
	case '>', '.':
		if tool == component.StationCrafter {
			g.facade.CycleRecipe(1)
		}
	case 'i', 'I', 'q', 'Q':
		return true
	}
	return false
}

// moveCursor moves within the full grid, locked rows included, so the
// player can see what an expansion would open.
func (g *Game) moveCursor(cur *invCursor, dx, dy int) {
	cur.x = clampInt(cur.x+dx, 0, g.inv.Width()-1)
	cur.y = clampInt(cur.y+dy, 0, g.inv.MaxHeight()-1)
}

func (g *Game) invDecompose(cur *invCursor) {
	consumed, result, err := g.facade.Decompose(cur.x, cur.y)
	if err != nil {
		cur.status = interact.Explain(err)
		return
	}
	g.runLog.Decomposed[consumed.ID]++
	switch consumed.Effect {
	case catalog.EffectUnlockMerger:
		cur.status = "The blueprint crumbles. The merger is unlocked!"
	case catalog.EffectExpand:
		g.runLog.Expansions++
		cur.status = "Your bag grows by one row."
	case catalog.EffectEndGame:
		cur.status = fmt.Sprintf("The %s blazes with light.", consumed.Name)
	default:
		cur.status = fmt.Sprintf("The %s breaks down into %s.", consumed.Name, result.Label())
	}
	g.addMessage(cur.status)
}

// invPlace stages the item under the cursor on the open tool and reports
// the result once the tool has both operands.
func (g *Game) invPlace(cur *invCursor) {
	tool := g.facade.Tool()
	result, err := g.facade.TryPlaceOrMerge(cur.x, cur.y)
	switch {
	case err != nil:
		cur.status = interact.Explain(err)
	case result == nil:
		cur.status = "Placed. Choose a second item."
	case tool == component.StationMerger:
		g.runLog.Merges++
		cur.status = fmt.Sprintf("Merged into %s!", result.Label())
		g.addMessage(cur.status)
	default:
		g.runLog.Crafts[result.ID]++
		cur.status = fmt.Sprintf("Crafted %s!", result.Label())
		g.addMessage(cur.status)
	}
}

// invSwap marks the cursor cell on the first press and swaps with it on the
// second.
func (g *Game) invSwap(cur *invCursor) {
	if !cur.marked {
		if !g.inv.InBounds(cur.x, cur.y) {
			cur.status = interact.Explain(inventory.ErrOutOfBounds)
			return
		}
		cur.marked, cur.markX, cur.markY = true, cur.x, cur.y
		cur.status = "Move to another cell and press s again."
		return
	}
	cur.marked = false
	if err := g.facade.Swap(cur.markX, cur.markY, cur.x, cur.y); err != nil {
		cur.status = interact.Explain(err)
		return
	}
	cur.status = "Swapped."
}

func (g *Game) invDiscard(cur *invCursor) {
	item, err := g.facade.Discard(cur.x, cur.y)
	if err != nil {
		cur.status = interact.Explain(err)
		return
	}
	g.runLog.Discarded++
	cur.status = fmt.Sprintf("Threw away %s.", item.Label())
}

func (g *Game) drawInventory(cur *invCursor) {
	p := render.Panel{
		Grid:    g.inv,
		CursorX: cur.x,
		CursorY: cur.y,
		Marked:  cur.marked,
		MarkX:   cur.markX,
		MarkY:   cur.markY,
		Status:  cur.status,
	}
	switch tool := g.facade.Tool(); tool {
	case component.StationMerger, component.StationCrafter:
		tv := &render.ToolView{
			Title:   tool.String(),
			Slots:   [2]*catalog.ItemDefinition{g.facade.Slot(0), g.facade.Slot(1)},
			Preview: g.facade.Preview(),
		}
		if tool == component.StationCrafter {
			tv.Recipe = g.facade.Recipe()
		}
		p.Tool = tv
	}
	g.renderer.DrawInventory(p)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
