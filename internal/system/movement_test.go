package system

import (
	"testing"

	"trash-alchemy/internal/component"
	"trash-alchemy/internal/ecs"
	"trash-alchemy/internal/gamemap"
)

func setupMoveWorld() (*ecs.World, *gamemap.GameMap, ecs.EntityID) {
	w := ecs.NewWorld()
	gmap := gamemap.New(10, 10)
	// Carve a small open area.
	for y := 1; y <= 8; y++ {
		for x := 1; x <= 8; x++ {
			gmap.Set(x, y, gamemap.MakeFloor())
		}
	}
	player := w.CreateEntity()
	w.Add(player, component.Position{X: 3, Y: 3})
	w.Add(player, component.TagBlocking{})
	return w, gmap, player
}

func TestTryMoveSucceeds(t *testing.T) {
	w, gmap, player := setupMoveWorld()
	result, _ := TryMove(w, gmap, player, 1, 0)
	if result != MoveOK {
		t.Fatalf("expected MoveOK, got %v", result)
	}
	pos := w.Get(player, component.CPosition).(component.Position)
	if pos.X != 4 || pos.Y != 3 {
		t.Fatalf("expected position (4,3), got (%d,%d)", pos.X, pos.Y)
	}
}

func TestTryMoveBlockedByWall(t *testing.T) {
	w, gmap, player := setupMoveWorld()
	// Move up into wall row (y=0).
	w.Add(player, component.Position{X: 3, Y: 1})
	result, _ := TryMove(w, gmap, player, 0, -1)
	if result != MoveBlocked {
		t.Fatalf("expected MoveBlocked, got %v", result)
	}
	pos := w.Get(player, component.CPosition).(component.Position)
	if pos.Y != 1 {
		t.Fatalf("position should be unchanged, got (%d,%d)", pos.X, pos.Y)
	}
}

func TestTryMoveBlockedByWater(t *testing.T) {
	w, gmap, player := setupMoveWorld()
	gmap.Set(4, 3, gamemap.MakeWater())
	if result, _ := TryMove(w, gmap, player, 1, 0); result != MoveBlocked {
		t.Fatalf("expected MoveBlocked, got %v", result)
	}
}

func TestTryMoveIntoStationReturnsInteract(t *testing.T) {
	w, gmap, player := setupMoveWorld()
	station := w.CreateEntity()
	w.Add(station, component.Position{X: 4, Y: 3})
	w.Add(station, component.Station{Kind: component.StationMerger})
	w.Add(station, component.TagBlocking{})

	result, target := TryMove(w, gmap, player, 1, 0)
	if result != MoveInteract {
		t.Fatalf("expected MoveInteract, got %v", result)
	}
	if target != station {
		t.Fatalf("expected target=%v, got %v", station, target)
	}
	pos := w.Get(player, component.CPosition).(component.Position)
	if pos.X != 3 {
		t.Fatalf("player should not have moved, got (%d,%d)", pos.X, pos.Y)
	}
}

func TestTryMoveOntoPortal(t *testing.T) {
	w, gmap, player := setupMoveWorld()
	portal := w.CreateEntity()
	w.Add(portal, component.Position{X: 3, Y: 4})
	w.Add(portal, component.Portal{Target: "town", Entry: 'a'})

	result, target := TryMove(w, gmap, player, 0, 1)
	if result != MovePortal || target != portal {
		t.Fatalf("expected MovePortal on %v, got %v on %v", portal, result, target)
	}
	pos := w.Get(player, component.CPosition).(component.Position)
	if pos.X != 3 || pos.Y != 4 {
		t.Fatalf("player should stand on the portal, got (%d,%d)", pos.X, pos.Y)
	}
}

func TestTryMoveOverPickup(t *testing.T) {
	w, gmap, player := setupMoveWorld()
	item := w.CreateEntity()
	w.Add(item, component.Position{X: 4, Y: 3})
	w.Add(item, component.Pickup{ItemID: "tin_can"})

	if result, _ := TryMove(w, gmap, player, 1, 0); result != MoveOK {
		t.Fatalf("pickups should not block, got %v", result)
	}
}

func TestTryMoveBlockedByEntity(t *testing.T) {
	w, gmap, player := setupMoveWorld()
	other := w.CreateEntity()
	w.Add(other, component.Position{X: 4, Y: 3})
	w.Add(other, component.TagBlocking{})

	if result, _ := TryMove(w, gmap, player, 1, 0); result != MoveBlocked {
		t.Fatalf("expected MoveBlocked, got %v", result)
	}
}
