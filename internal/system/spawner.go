package system

import (
	"math/rand"

	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/ecs"
	"trash-alchemy/internal/factory"
	"trash-alchemy/internal/gamemap"
)

// TrashSpawner drops random trash into the current scene every Interval
// turns while fewer than Max spawned pickups remain.
type TrashSpawner struct {
	Interval int
	Max      int
	turns    int
}

// Reset restarts the interval, e.g. after a scene change.
func (s *TrashSpawner) Reset() { s.turns = 0 }

// Tick advances one turn. It returns the spawned entity, or NilEntity when
// nothing spawned this turn.
func (s *TrashSpawner) Tick(w *ecs.World, gmap *gamemap.GameMap, area gamemap.Rect, table []*catalog.ItemDefinition, rng *rand.Rand) ecs.EntityID {
	if s.Interval <= 0 || len(table) == 0 || area.IsZero() || area.Area() == 0 {
		return ecs.NilEntity
	}
	s.turns++
	if s.turns < s.Interval {
		return ecs.NilEntity
	}
	s.turns = 0

	if SpawnedTrash(w) >= s.Max {
		return ecs.NilEntity
	}
	spots := freeTiles(w, gmap, area)
	if len(spots) == 0 {
		return ecs.NilEntity
	}
	spot := spots[rng.Intn(len(spots))]
	item := table[rng.Intn(len(table))]
	return factory.NewPickup(w, item, "", spot.X, spot.Y)
}

// SpawnedTrash counts pickups dropped by the spawner.
func SpawnedTrash(w *ecs.World) int {
	n := 0
	for _, id := range w.Query(component.CPickup) {
		if w.Get(id, component.CPickup).(component.Pickup).Origin == "" {
			n++
		}
	}
	return n
}

// freeTiles lists walkable tiles in area that no entity occupies.
func freeTiles(w *ecs.World, gmap *gamemap.GameMap, area gamemap.Rect) []component.Position {
	taken := make(map[component.Position]bool)
	for _, id := range w.Query(component.CPosition) {
		taken[w.Get(id, component.CPosition).(component.Position)] = true
	}
	area = gmap.Clip(area)
	var out []component.Position
	for y := area.Y1; y <= area.Y2; y++ {
		for x := area.X1; x <= area.X2; x++ {
			p := component.Position{X: x, Y: y}
			if gmap.IsWalkable(x, y) && !taken[p] {
				out = append(out, p)
			}
		}
	}
	return out
}
