// Package interact mediates between player gestures and the inventory:
// picking up world items, staging items on a merger or crafter and
// forwarding grid edits.
package interact

import (
	"errors"
	"fmt"
	"log/slog"

	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/ecs"
	"trash-alchemy/internal/inventory"
)

// Range is the Chebyshev distance within which the player can reach
// pickups and stations.
const Range = 1

var (
	ErrNotPickup   = errors.New("nothing to pick up")
	ErrUnknownItem = errors.New("unknown item")
	ErrNoTool      = errors.New("no tool is open")
	ErrSlotsFull   = errors.New("both tool slots are filled")
	ErrNeedTwo     = errors.New("the tool needs two items")
	ErrNoRecipe    = errors.New("no recipe selected")
)

// staged is an operand lifted off the grid, remembered with its origin so a
// failed or cancelled operation can put it back.
type staged struct {
	item *catalog.ItemDefinition
	x, y int
}

// Facade wraps one session's inventory. Like the grid it is owned by a
// single goroutine.
type Facade struct {
	inv    *inventory.Grid
	items  *catalog.Items
	logger *slog.Logger

	tool   component.StationKind // zero when no tool is open
	slots  [2]*staged
	recipe int
}

// New creates a Facade over inv.
func New(inv *inventory.Grid, items *catalog.Items, logger *slog.Logger) *Facade {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Facade{inv: inv, items: items, logger: logger}
}

// Inventory returns the wrapped grid for read access.
func (f *Facade) Inventory() *inventory.Grid { return f.inv }

// ─── world ──────────────────────────────────────────────────────────────────

// TryPickUp adds the item carried by entity id to the inventory and
// destroys the entity. On failure the entity stays in the world.
func (f *Facade) TryPickUp(w *ecs.World, id ecs.EntityID) (*catalog.ItemDefinition, error) {
	p, ok := w.Get(id, component.CPickup).(component.Pickup)
	if !ok || !w.Alive(id) {
		return nil, ErrNotPickup
	}
	item, ok := f.items.Lookup(p.ItemID)
	if !ok {
		f.logger.Error("pickup refers to unknown item", "item", p.ItemID)
		return nil, fmt.Errorf("pick up: %w %q", ErrUnknownItem, p.ItemID)
	}
	if err := f.inv.AddItem(item); err != nil {
		return nil, fmt.Errorf("pick up %s: %w", item.ID, err)
	}
	w.DestroyEntity(id)
	f.logger.Debug("picked up", "item", item.ID, "origin", p.Origin)
	return item, nil
}

// Reachable returns the closest entity carrying component t within Range of
// from. Ties go to the earliest created entity.
func Reachable(w *ecs.World, t ecs.ComponentType, from component.Position) ecs.EntityID {
	best, bestDist := ecs.NilEntity, Range+1
	for _, id := range w.Query(t, component.CPosition) {
		d := w.Get(id, component.CPosition).(component.Position).ChebyshevTo(from)
		if d < bestDist {
			best, bestDist = id, d
		}
	}
	return best
}

// ─── grid gestures ──────────────────────────────────────────────────────────

// Decompose breaks down the item at (x, y). It returns the consumed item and
// the element produced, which is nil for effect items.
func (f *Facade) Decompose(x, y int) (consumed, result *catalog.ItemDefinition, err error) {
	consumed = f.inv.ItemAt(x, y)
	result, err = f.inv.Decompose(x, y)
	if err != nil {
		return nil, nil, err
	}
	return consumed, result, nil
}

// Swap exchanges two grid cells.
func (f *Facade) Swap(fromX, fromY, toX, toY int) error {
	return f.inv.SwapItems(fromX, fromY, toX, toY)
}

// Discard deletes the item at (x, y) and returns it.
func (f *Facade) Discard(x, y int) (*catalog.ItemDefinition, error) {
	item := f.inv.ItemAt(x, y)
	if err := f.inv.RemoveItem(x, y); err != nil {
		return nil, err
	}
	f.logger.Info("item discarded", "item", item.ID)
	return item, nil
}

// ─── tool panel ─────────────────────────────────────────────────────────────

// OpenTool opens the merger or crafter panel. An already open panel is
// closed first so its operands return to the grid.
func (f *Facade) OpenTool(kind component.StationKind) {
	if f.tool != 0 {
		f.CloseTool()
	}
	f.tool = kind
	f.recipe = 0
	f.logger.Debug("tool opened", "tool", kind.String())
}

// Tool returns the open tool, or zero when none is open.
func (f *Facade) Tool() component.StationKind { return f.tool }

// Slot returns the operand staged in slot i (0 or 1).
func (f *Facade) Slot(i int) *catalog.ItemDefinition {
	if i < 0 || i >= len(f.slots) || f.slots[i] == nil {
		return nil
	}
	return f.slots[i].item
}

// Stage lifts the item at (x, y) into the first free tool slot.
func (f *Facade) Stage(x, y int) (int, error) {
	if f.tool == 0 {
		return -1, ErrNoTool
	}
	slot := -1
	for i, s := range f.slots {
		if s == nil {
			slot = i
			break
		}
	}
	if slot < 0 {
		return -1, ErrSlotsFull
	}
	item := f.inv.ItemAt(x, y)
	if err := f.inv.RemoveItem(x, y); err != nil {
		return -1, err
	}
	f.slots[slot] = &staged{item: item, x: x, y: y}
	return slot, nil
}

// Unstage returns the operand in slot i to the grid.
func (f *Facade) Unstage(i int) error {
	if f.tool == 0 {
		return ErrNoTool
	}
	if i < 0 || i >= len(f.slots) || f.slots[i] == nil {
		return fmt.Errorf("unstage slot %d: %w", i, inventory.ErrSlotEmpty)
	}
	f.restore(f.slots[i])
	f.slots[i] = nil
	return nil
}

// Commit runs the open tool on the two staged operands. On success the
// operands are consumed; on failure both go back to the grid.
func (f *Facade) Commit() (*catalog.ItemDefinition, error) {
	if f.tool == 0 {
		return nil, ErrNoTool
	}
	if f.slots[0] == nil || f.slots[1] == nil {
		return nil, ErrNeedTwo
	}
	a, b := f.slots[0], f.slots[1]

	var result *catalog.ItemDefinition
	var err error
	switch f.tool {
	case component.StationMerger:
		result, err = f.inv.Merge(a.item, b.item)
	case component.StationCrafter:
		recipe := f.Recipe()
		if recipe == nil {
			return nil, ErrNoRecipe
		}
		result, err = f.inv.Craft(recipe, a.item, b.item)
	}

	f.slots = [2]*staged{}
	if err != nil {
		f.restore(a)
		f.restore(b)
		return nil, err
	}
	return result, nil
}

// TryPlaceOrMerge stages the item at (x, y) and, once both slots are
// filled, commits. The result is nil while the tool waits for a second
// operand.
func (f *Facade) TryPlaceOrMerge(x, y int) (*catalog.ItemDefinition, error) {
	if _, err := f.Stage(x, y); err != nil {
		return nil, err
	}
	if f.slots[0] == nil || f.slots[1] == nil {
		return nil, nil
	}
	return f.Commit()
}

// CloseTool returns any staged operands to the grid and closes the panel.
func (f *Facade) CloseTool() {
	for i, s := range f.slots {
		if s != nil {
			f.restore(s)
			f.slots[i] = nil
		}
	}
	if f.tool != 0 {
		f.logger.Debug("tool closed", "tool", f.tool.String())
	}
	f.tool = 0
}

// Recipe returns the recipe selected on the crafter.
func (f *Facade) Recipe() *catalog.RecipeDefinition {
	return f.inv.Recipes().At(f.recipe)
}

// CycleRecipe moves the crafter selection by delta, wrapping around.
func (f *Facade) CycleRecipe(delta int) *catalog.RecipeDefinition {
	n := f.inv.Recipes().Len()
	if n == 0 {
		return nil
	}
	f.recipe = ((f.recipe+delta)%n + n) % n
	return f.Recipe()
}

// Preview is the item the open tool would produce: the next tier of the
// first merger operand, or the selected recipe's result.
func (f *Facade) Preview() *catalog.ItemDefinition {
	switch f.tool {
	case component.StationMerger:
		if a := f.Slot(0); a != nil {
			return a.Next
		}
	case component.StationCrafter:
		if r := f.Recipe(); r != nil {
			return r.Result
		}
	}
	return nil
}

// restore puts s back where it came from, or anywhere free if that cell
// has been filled since.
func (f *Facade) restore(s *staged) {
	if err := f.inv.PlaceAt(s.item, s.x, s.y); err == nil {
		return
	}
	if err := f.inv.AddItem(s.item); err != nil {
		f.logger.Error("operand lost", "item", s.item.ID, "error", err)
	}
}
