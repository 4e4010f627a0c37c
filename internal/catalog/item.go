package catalog

import "fmt"

// Effect tags items whose decomposition triggers a game effect instead of
// yielding an element.
type Effect uint8

const (
	EffectNone         Effect = iota
	EffectUnlockMerger        // enables the merger
	EffectExpand              // grows the inventory by one row
	EffectEndGame             // clears the game
)

var effectNames = map[Effect]string{
	EffectNone:         "",
	EffectUnlockMerger: "unlock_merger",
	EffectExpand:       "expand",
	EffectEndGame:      "end_game",
}

func (e Effect) String() string {
	if name, ok := effectNames[e]; ok && name != "" {
		return name
	}
	if e == EffectNone {
		return "none"
	}
	return fmt.Sprintf("Effect(%d)", uint8(e))
}

// ParseEffect maps a catalog file effect name to its Effect. The empty
// string and "none" both mean EffectNone.
func ParseEffect(s string) (Effect, error) {
	if s == "" || s == "none" {
		return EffectNone, nil
	}
	for e, name := range effectNames {
		if name == s {
			return e, nil
		}
	}
	return EffectNone, fmt.Errorf("unknown effect %q", s)
}

// ItemDefinition is one immutable catalog entry. Pointers to it are shared
// by every inventory cell that holds the item.
type ItemDefinition struct {
	ID        string
	Name      string
	Icon      string
	IsElement bool
	Level     int // 0 for non-elements, tier (>= 1) for elements
	Next      *ItemDefinition
	Decompose []*ItemDefinition
	Effect    Effect
}

// Mergeable reports whether two of this item combine into a higher tier.
func (d *ItemDefinition) Mergeable() bool {
	return d != nil && d.Next != nil
}

// Label is the icon and name pair used in messages and panels.
func (d *ItemDefinition) Label() string {
	if d == nil {
		return ""
	}
	if d.Icon == "" {
		return d.Name
	}
	return d.Icon + " " + d.Name
}
