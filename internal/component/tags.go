package component

import "trash-alchemy/internal/ecs"

const (
	CTagPlayer   ecs.ComponentType = 3
	CTagBlocking ecs.ComponentType = 4
)

// TagPlayer marks the player-controlled entity.
type TagPlayer struct{}

func (TagPlayer) Type() ecs.ComponentType { return CTagPlayer }

// TagBlocking marks an entity that occupies its tile (blocks movement).
type TagBlocking struct{}

func (TagBlocking) Type() ecs.ComponentType { return CTagBlocking }
