package component

import "trash-alchemy/internal/ecs"

const CPortal ecs.ComponentType = 7

// Portal loads Target when the player steps onto it. The player arrives at
// the portal in Target whose marker is Entry.
type Portal struct {
	Target string
	Entry  rune
}

func (Portal) Type() ecs.ComponentType { return CPortal }
