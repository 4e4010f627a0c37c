package game

import "github.com/gdamore/tcell/v2"

// Action is a player request on the scene screen.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveN
	ActionMoveS
	ActionMoveE
	ActionMoveW
	ActionMoveNE
	ActionMoveNW
	ActionMoveSE
	ActionMoveSW
	ActionWait
	ActionPickup
	ActionInteract
	ActionInventory
	ActionQuit
)

// Scene-screen bindings. Letters are matched case-insensitively.
var (
	keyActions = map[tcell.Key]Action{
		tcell.KeyUp:     ActionMoveN,
		tcell.KeyDown:   ActionMoveS,
		tcell.KeyRight:  ActionMoveE,
		tcell.KeyLeft:   ActionMoveW,
		tcell.KeyTab:    ActionInventory,
		tcell.KeyEnter:  ActionInteract,
		tcell.KeyEscape: ActionQuit,
	}
	runeActions = map[rune]Action{
		'k': ActionMoveN,
		'j': ActionMoveS,
		'l': ActionMoveE,
		'h': ActionMoveW,
		'y': ActionMoveNW,
		'u': ActionMoveNE,
		'b': ActionMoveSW,
		'n': ActionMoveSE,
		'.': ActionWait,
		',': ActionPickup,
		'g': ActionPickup,
		'e': ActionInteract,
		'i': ActionInventory,
		'q': ActionQuit,
	}
	moveDeltas = map[Action][2]int{
		ActionMoveN:  {0, -1},
		ActionMoveS:  {0, 1},
		ActionMoveE:  {1, 0},
		ActionMoveW:  {-1, 0},
		ActionMoveNE: {1, -1},
		ActionMoveNW: {-1, -1},
		ActionMoveSE: {1, 1},
		ActionMoveSW: {-1, 1},
	}
)

// keyToAction maps a key event to a scene action.
func keyToAction(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		return runeActions[r]
	}
	return keyActions[ev.Key()]
}

// actionToDelta returns the step for a movement action, or (0, 0).
func actionToDelta(a Action) (int, int) {
	d := moveDeltas[a]
	return d[0], d[1]
}
