// Package inventory implements the grid inventory and its element engine:
// decomposing items into elements, merging elements into higher tiers and
// crafting items from element pairs.
package inventory

import (
	"fmt"
	"log/slog"
	"strings"

	"trash-alchemy/internal/catalog"
)

// MaxExpandCount caps how many rows the active region can gain.
const MaxExpandCount = 2

// Rand picks decomposition results. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Options configures a new Grid.
type Options struct {
	Width       int
	MaxHeight   int
	StartHeight int
	Recipes     *catalog.Recipes
	Rand        Rand
	Logger      *slog.Logger
}

// OptionsFromCatalog fills the grid shape and recipes from c.
func OptionsFromCatalog(c *catalog.Catalog, rng Rand, logger *slog.Logger) Options {
	return Options{
		Width:       c.Layout.Width,
		MaxHeight:   c.Layout.MaxHeight,
		StartHeight: c.Layout.StartHeight,
		Recipes:     c.Recipes,
		Rand:        rng,
		Logger:      logger,
	}
}

// Grid is a fixed-size 2D slot store. Cells are indexed [x][y]; rows at or
// below ActiveHeight are locked until the grid expands.
//
// A Grid is owned by a single session goroutine and is not safe for
// concurrent use.
type Grid struct {
	width        int
	maxHeight    int
	activeHeight int
	cells        [][]*catalog.ItemDefinition

	expandCount    int
	mergerUnlocked bool
	cleared        bool

	recipes *catalog.Recipes
	rng     Rand
	logger  *slog.Logger
}

// New creates an empty grid.
func New(opts Options) (*Grid, error) {
	if opts.Width < 1 || opts.MaxHeight < 1 || opts.StartHeight < 1 || opts.StartHeight > opts.MaxHeight {
		return nil, fmt.Errorf("%w: %dx%d starting at height %d", ErrInvalidLayout, opts.Width, opts.MaxHeight, opts.StartHeight)
	}
	if opts.Rand == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidLayout)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cells := make([][]*catalog.ItemDefinition, opts.Width)
	for x := range cells {
		cells[x] = make([]*catalog.ItemDefinition, opts.MaxHeight)
	}
	return &Grid{
		width:        opts.Width,
		maxHeight:    opts.MaxHeight,
		activeHeight: opts.StartHeight,
		cells:        cells,
		recipes:      opts.Recipes,
		rng:          opts.Rand,
		logger:       logger,
	}, nil
}

// ─── queries ────────────────────────────────────────────────────────────────

func (g *Grid) Width() int { return g.width }

func (g *Grid) MaxHeight() int { return g.maxHeight }

// ActiveHeight is the number of unlocked rows.
func (g *Grid) ActiveHeight() int { return g.activeHeight }

func (g *Grid) ExpandCount() int { return g.expandCount }

func (g *Grid) MergerUnlocked() bool { return g.mergerUnlocked }

// Cleared reports whether the game-clear item has been consumed.
func (g *Grid) Cleared() bool { return g.cleared }

// Recipes returns the recipe catalog the grid crafts from.
func (g *Grid) Recipes() *catalog.Recipes { return g.recipes }

// InBounds reports whether (x, y) lies in the active region.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.activeHeight
}

// ItemAt returns the item at (x, y), or nil for an empty cell or a
// coordinate outside the active region.
func (g *Grid) ItemAt(x, y int) *catalog.ItemDefinition {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[x][y]
}

// Count returns the number of occupied active cells.
func (g *Grid) Count() int {
	n := 0
	for y := 0; y < g.activeHeight; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[x][y] != nil {
				n++
			}
		}
	}
	return n
}

// Free returns the number of empty active cells.
func (g *Grid) Free() int {
	return g.width*g.activeHeight - g.Count()
}

// String dumps the active region row by row, one ID or "." per cell.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.activeHeight; y++ {
		for x := 0; x < g.width; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			if it := g.cells[x][y]; it != nil {
				b.WriteString(it.ID)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ─── slot operations ────────────────────────────────────────────────────────

// AddItem places item in the first empty active cell, scanning rows top to
// bottom and cells left to right.
func (g *Grid) AddItem(item *catalog.ItemDefinition) error {
	if item == nil {
		return g.reject("add", fmt.Errorf("add: nil item: %w", ErrInvalidOperand))
	}
	x, y, ok := g.firstEmpty()
	if !ok {
		return g.reject("add", fmt.Errorf("add %s: %w", item.ID, ErrInventoryFull))
	}
	g.cells[x][y] = item
	g.logger.Debug("item added", "item", item.ID, "x", x, "y", y)
	return nil
}

// PlaceAt puts item into a specific empty cell.
func (g *Grid) PlaceAt(item *catalog.ItemDefinition, x, y int) error {
	if item == nil {
		return g.reject("place", fmt.Errorf("place: nil item: %w", ErrInvalidOperand))
	}
	if !g.InBounds(x, y) {
		return g.reject("place", fmt.Errorf("place (%d,%d): %w", x, y, ErrOutOfBounds))
	}
	if g.cells[x][y] != nil {
		return g.reject("place", fmt.Errorf("place (%d,%d): %w", x, y, ErrSlotOccupied))
	}
	g.cells[x][y] = item
	g.logger.Debug("item placed", "item", item.ID, "x", x, "y", y)
	return nil
}

// RemoveItem clears the cell at (x, y).
func (g *Grid) RemoveItem(x, y int) error {
	item, err := g.occupied("remove", x, y)
	if err != nil {
		return err
	}
	g.cells[x][y] = nil
	g.logger.Debug("item removed", "item", item.ID, "x", x, "y", y)
	return nil
}

// SwapItems exchanges the contents of two active cells. Either cell may be
// empty, which moves an item into a free slot.
func (g *Grid) SwapItems(fromX, fromY, toX, toY int) error {
	if !g.InBounds(fromX, fromY) || !g.InBounds(toX, toY) {
		return g.reject("swap", fmt.Errorf("swap (%d,%d)<->(%d,%d): %w", fromX, fromY, toX, toY, ErrOutOfBounds))
	}
	g.cells[fromX][fromY], g.cells[toX][toY] = g.cells[toX][toY], g.cells[fromX][fromY]
	g.logger.Debug("items swapped", "from_x", fromX, "from_y", fromY, "to_x", toX, "to_y", toY)
	return nil
}

// Expand unlocks one more row. It fails after MaxExpandCount expansions or
// once the active region reaches MaxHeight.
func (g *Grid) Expand() error {
	if g.expandCount >= MaxExpandCount || g.activeHeight >= g.maxHeight {
		return g.reject("expand", fmt.Errorf("expand at height %d after %d expansions: %w", g.activeHeight, g.expandCount, ErrExpandLimit))
	}
	g.activeHeight++
	g.expandCount++
	g.logger.Info("inventory expanded", "active_height", g.activeHeight, "expand_count", g.expandCount)
	return nil
}

// ─── element engine ─────────────────────────────────────────────────────────

// Decompose consumes the item at (x, y).
//
// Effect items apply their effect and yield nothing. Ordinary items are
// replaced by one of their decomposition results chosen at random; the
// result is returned. Elements cannot be decomposed. When the item has no
// results, or its effect cannot apply, the item stays where it was.
func (g *Grid) Decompose(x, y int) (*catalog.ItemDefinition, error) {
	item, err := g.occupied("decompose", x, y)
	if err != nil {
		return nil, err
	}
	if item.IsElement {
		return nil, g.reject("decompose", fmt.Errorf("decompose %s: already an element: %w", item.ID, ErrInvalidOperand))
	}

	switch item.Effect {
	case catalog.EffectUnlockMerger:
		g.cells[x][y] = nil
		g.mergerUnlocked = true
		g.logger.Info("merger unlocked", "item", item.ID)
		return nil, nil

	case catalog.EffectExpand:
		if err := g.Expand(); err != nil {
			return nil, fmt.Errorf("decompose %s: %w", item.ID, err)
		}
		g.cells[x][y] = nil
		return nil, nil

	case catalog.EffectEndGame:
		g.cells[x][y] = nil
		g.cleared = true
		g.logger.Info("game cleared", "item", item.ID)
		return nil, nil
	}

	if len(item.Decompose) == 0 {
		return nil, g.reject("decompose", fmt.Errorf("decompose %s: %w", item.ID, ErrNotDecomposable))
	}
	result := item.Decompose[g.rng.Intn(len(item.Decompose))]

	// Clearing the source first guarantees AddItem has room.
	g.cells[x][y] = nil
	if err := g.AddItem(result); err != nil {
		g.cells[x][y] = item
		return nil, fmt.Errorf("decompose %s: %w", item.ID, err)
	}
	g.logger.Info("item decomposed", "item", item.ID, "result", result.ID)
	return result, nil
}

// Merge combines two identical elements into their next tier and adds it to
// the grid. The operands are not grid cells: callers detach them first and
// restore them when Merge fails.
func (g *Grid) Merge(a, b *catalog.ItemDefinition) (*catalog.ItemDefinition, error) {
	if !g.mergerUnlocked {
		return nil, g.reject("merge", fmt.Errorf("merge: %w", ErrFeatureLocked))
	}
	if a == nil || b == nil {
		return nil, g.reject("merge", fmt.Errorf("merge: missing operand: %w", ErrInvalidOperand))
	}
	if a.ID != b.ID || a.Next == nil {
		return nil, g.reject("merge", fmt.Errorf("merge %s+%s: %w", a.ID, b.ID, ErrInvalidOperand))
	}
	if err := g.AddItem(a.Next); err != nil {
		return nil, fmt.Errorf("merge %s: %w", a.ID, err)
	}
	g.logger.Info("elements merged", "element", a.ID, "result", a.Next.ID)
	return a.Next, nil
}

// Craft adds recipe.Result when {a, b} is the recipe's element pair in
// either order. Operands follow the same detached contract as Merge.
func (g *Grid) Craft(recipe *catalog.RecipeDefinition, a, b *catalog.ItemDefinition) (*catalog.ItemDefinition, error) {
	if recipe == nil {
		return nil, g.reject("craft", fmt.Errorf("craft: no recipe: %w", ErrInvalidOperand))
	}
	if a == nil || b == nil {
		return nil, g.reject("craft", fmt.Errorf("craft %s: missing operand: %w", recipe.ID, ErrInvalidOperand))
	}
	if !recipe.Matches(a.ID, b.ID) {
		return nil, g.reject("craft", fmt.Errorf("craft %s with %s+%s: %w", recipe.ID, a.ID, b.ID, ErrNoMatch))
	}
	if err := g.AddItem(recipe.Result); err != nil {
		return nil, fmt.Errorf("craft %s: %w", recipe.ID, err)
	}
	g.logger.Info("item crafted", "recipe", recipe.ID, "result", recipe.Result.ID)
	return recipe.Result, nil
}

// ─── helpers ────────────────────────────────────────────────────────────────

func (g *Grid) firstEmpty() (int, int, bool) {
	for y := 0; y < g.activeHeight; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[x][y] == nil {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// occupied returns the item at (x, y) or the rejection for op.
func (g *Grid) occupied(op string, x, y int) (*catalog.ItemDefinition, error) {
	if !g.InBounds(x, y) {
		return nil, g.reject(op, fmt.Errorf("%s (%d,%d): %w", op, x, y, ErrOutOfBounds))
	}
	item := g.cells[x][y]
	if item == nil {
		return nil, g.reject(op, fmt.Errorf("%s (%d,%d): %w", op, x, y, ErrSlotEmpty))
	}
	return item, nil
}

func (g *Grid) reject(op string, err error) error {
	g.logger.Warn("inventory operation rejected", "op", op, "error", err)
	return err
}
