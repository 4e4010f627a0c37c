package system

import (
	"math/rand"
	"testing"

	"trash-alchemy/internal/catalog"
	"trash-alchemy/internal/component"
	"trash-alchemy/internal/ecs"
	"trash-alchemy/internal/gamemap"
)

var trashTable = []*catalog.ItemDefinition{
	{ID: "tin_can", Name: "Tin Can", Icon: "🥫"},
	{ID: "bottle", Name: "Bottle", Icon: "🍼"},
}

func TestSpawnerWaitsForInterval(t *testing.T) {
	w, gmap, _ := setupMoveWorld()
	rng := rand.New(rand.NewSource(42))
	s := &TrashSpawner{Interval: 10, Max: 10}
	area := gamemap.Rect{X1: 1, Y1: 1, X2: 8, Y2: 8}

	for turn := 1; turn < 10; turn++ {
		if id := s.Tick(w, gmap, area, trashTable, rng); id != ecs.NilEntity {
			t.Fatalf("spawned on turn %d; want turn 10", turn)
		}
	}
	id := s.Tick(w, gmap, area, trashTable, rng)
	if id == ecs.NilEntity {
		t.Fatal("expected a spawn on turn 10")
	}
	pos := w.Get(id, component.CPosition).(component.Position)
	if !area.Contains(pos.X, pos.Y) || !gmap.IsWalkable(pos.X, pos.Y) {
		t.Errorf("spawned at (%d,%d), outside the walkable area", pos.X, pos.Y)
	}
	if pos.X == 3 && pos.Y == 3 {
		t.Error("spawned on top of the player")
	}
}

func TestSpawnerRespectsMax(t *testing.T) {
	w, gmap, _ := setupMoveWorld()
	rng := rand.New(rand.NewSource(42))
	s := &TrashSpawner{Interval: 1, Max: 3}
	area := gamemap.Rect{X1: 1, Y1: 1, X2: 8, Y2: 8}
	for range 20 {
		s.Tick(w, gmap, area, trashTable, rng)
	}
	if n := SpawnedTrash(w); n != 3 {
		t.Fatalf("spawned %d pickups; want 3", n)
	}
}

func TestSpawnerIgnoresPlacedItems(t *testing.T) {
	w, _, _ := setupMoveWorld()
	placed := w.CreateEntity()
	w.Add(placed, component.Position{X: 5, Y: 5})
	w.Add(placed, component.Pickup{ItemID: "merger_blueprint", Origin: "workshop:1"})
	if n := SpawnedTrash(w); n != 0 {
		t.Fatalf("SpawnedTrash = %d; want 0", n)
	}
}

func TestSpawnerSkipsFullArea(t *testing.T) {
	w, gmap, _ := setupMoveWorld()
	rng := rand.New(rand.NewSource(42))
	s := &TrashSpawner{Interval: 1, Max: 10}
	// The only tile in the area holds the player.
	area := gamemap.Rect{X1: 3, Y1: 3, X2: 3, Y2: 3}
	if id := s.Tick(w, gmap, area, trashTable, rng); id != ecs.NilEntity {
		t.Fatal("expected no spawn when the area is occupied")
	}
}

func TestSpawnerDisabledWithoutArea(t *testing.T) {
	w, gmap, _ := setupMoveWorld()
	rng := rand.New(rand.NewSource(42))
	s := &TrashSpawner{Interval: 1, Max: 10}
	if id := s.Tick(w, gmap, gamemap.Rect{}, trashTable, rng); id != ecs.NilEntity {
		t.Fatal("zero area should disable spawning")
	}
}
