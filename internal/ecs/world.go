package ecs

import "slices"

// World is the entity registry and component store for one scene. A scene
// change throws the whole World away, so IDs are never recycled.
type World struct {
	nextID EntityID
	alive  map[EntityID]struct{}
	stores map[ComponentType]map[EntityID]Component
}

// NewWorld creates an empty World.
func NewWorld() *World {
	return &World{
		nextID: 1,
		alive:  make(map[EntityID]struct{}),
		stores: make(map[ComponentType]map[EntityID]Component),
	}
}

// CreateEntity mints a new entity ID and marks it alive.
func (w *World) CreateEntity() EntityID {
	id := w.nextID
	w.nextID++
	w.alive[id] = struct{}{}
	return id
}

// DestroyEntity removes the entity and all its components. It reports
// false when id was not alive, e.g. trash that was already picked up.
func (w *World) DestroyEntity(id EntityID) bool {
	if _, ok := w.alive[id]; !ok {
		return false
	}
	delete(w.alive, id)
	for _, store := range w.stores {
		delete(store, id)
	}
	return true
}

// Alive reports whether the entity is alive.
func (w *World) Alive(id EntityID) bool {
	_, ok := w.alive[id]
	return ok
}

// Len returns the number of alive entities.
func (w *World) Len() int { return len(w.alive) }

// Add attaches a component to an alive entity, replacing any component of
// the same type. Adding to a dead entity does nothing.
func (w *World) Add(id EntityID, c Component) {
	if !w.Alive(id) {
		return
	}
	t := c.Type()
	store := w.stores[t]
	if store == nil {
		store = make(map[EntityID]Component)
		w.stores[t] = store
	}
	store[id] = c
}

// Get returns the component of the given type for entity id, or nil.
func (w *World) Get(id EntityID, t ComponentType) Component {
	return w.stores[t][id]
}

// Remove detaches a component from an entity.
func (w *World) Remove(id EntityID, t ComponentType) {
	delete(w.stores[t], id)
}

// Has reports whether entity id has a component of the given type.
func (w *World) Has(id EntityID, t ComponentType) bool {
	_, ok := w.stores[t][id]
	return ok
}

// Count returns the number of entities carrying component type t.
func (w *World) Count(t ComponentType) int {
	return len(w.stores[t])
}

// Query returns the entities that have every listed component type, in
// creation order.
func (w *World) Query(types ...ComponentType) []EntityID {
	if len(types) == 0 {
		return nil
	}
	// Scan the smallest store.
	smallest := types[0]
	for _, t := range types[1:] {
		if len(w.stores[t]) < len(w.stores[smallest]) {
			smallest = t
		}
	}
	var result []EntityID
	for id := range w.stores[smallest] {
		if w.hasAll(id, types) {
			result = append(result, id)
		}
	}
	slices.Sort(result)
	return result
}

func (w *World) hasAll(id EntityID, types []ComponentType) bool {
	for _, t := range types {
		if !w.Has(id, t) {
			return false
		}
	}
	return true
}
