package component

import "trash-alchemy/internal/ecs"

// CPickup is the ECS component type for items lying in the world.
// Picking one up adds ItemID to the inventory and destroys the entity.
const CPickup ecs.ComponentType = 5

type Pickup struct {
	ItemID string
	Origin string // scene marker for hand-placed items, empty for spawned trash
}

func (Pickup) Type() ecs.ComponentType { return CPickup }
