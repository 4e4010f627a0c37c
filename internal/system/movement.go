package system

import (
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/ecs"
	"trash-alchemy/internal/gamemap"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK       MoveResult = iota // position updated
	MoveBlocked                    // wall, water, out-of-bounds or a blocking entity
	MoveInteract                   // bumped a station
	MovePortal                     // stepped onto a portal
)

// TryMove attempts to move entity id by (dx, dy) on gmap.
// Returns the outcome and (for MoveInteract or MovePortal) the entity involved.
func TryMove(w *ecs.World, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	posComp := w.Get(id, component.CPosition)
	if posComp == nil {
		return MoveBlocked, ecs.NilEntity
	}
	pos := posComp.(component.Position)
	nx, ny := pos.X+dx, pos.Y+dy

	// Stations block but open their panel when bumped.
	if st := EntityAt(w, component.CStation, nx, ny); st != ecs.NilEntity {
		return MoveInteract, st
	}

	for _, other := range w.Query(component.CTagBlocking, component.CPosition) {
		if other == id {
			continue
		}
		otherPos := w.Get(other, component.CPosition).(component.Position)
		if otherPos.X == nx && otherPos.Y == ny {
			return MoveBlocked, ecs.NilEntity
		}
	}

	if !gmap.IsWalkable(nx, ny) {
		return MoveBlocked, ecs.NilEntity
	}

	w.Add(id, component.Position{X: nx, Y: ny})

	if portal := EntityAt(w, component.CPortal, nx, ny); portal != ecs.NilEntity {
		return MovePortal, portal
	}
	return MoveOK, ecs.NilEntity
}

// EntityAt returns the first entity with component t standing on (x, y).
func EntityAt(w *ecs.World, t ecs.ComponentType, x, y int) ecs.EntityID {
	for _, id := range w.Query(t, component.CPosition) {
		p := w.Get(id, component.CPosition).(component.Position)
		if p.X == x && p.Y == y {
			return id
		}
	}
	return ecs.NilEntity
}
