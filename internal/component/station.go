package component

import "trash-alchemy/internal/ecs"

// StationKind selects which tool panel a station opens.
type StationKind uint8

const (
	StationMerger StationKind = iota + 1
	StationCrafter
)

func (k StationKind) String() string {
	switch k {
	case StationMerger:
		return "Merger"
	case StationCrafter:
		return "Crafter"
	}
	return "Station"
}

const CStation ecs.ComponentType = 6

// Station is a blocking world object that opens a workbench when the player
// interacts with it.
type Station struct {
	Kind StationKind
}

func (Station) Type() ecs.ComponentType { return CStation }
