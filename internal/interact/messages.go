package interact

import (
	"errors"

	"trash-alchemy/internal/inventory"
)

// Explain turns an interaction failure into a line for the message log.
func Explain(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, inventory.ErrInventoryFull):
		return "Your inventory is full."
	case errors.Is(err, inventory.ErrFeatureLocked):
		return "The merger is locked. Find and decompose a Merger Blueprint."
	case errors.Is(err, inventory.ErrNoMatch):
		return "Those elements don't fit this recipe."
	case errors.Is(err, inventory.ErrExpandLimit):
		return "Your inventory cannot grow any further."
	case errors.Is(err, inventory.ErrNotDecomposable):
		return "That can't be broken down."
	case errors.Is(err, inventory.ErrInvalidOperand):
		return "That doesn't work."
	case errors.Is(err, inventory.ErrSlotEmpty):
		return "That slot is empty."
	case errors.Is(err, inventory.ErrOutOfBounds):
		return "That slot is locked."
	case errors.Is(err, ErrSlotsFull):
		return "Both slots are filled."
	case errors.Is(err, ErrNeedTwo):
		return "Place two items first."
	case errors.Is(err, ErrNoRecipe):
		return "There is nothing to craft."
	case errors.Is(err, ErrNotPickup):
		return "Nothing to pick up here."
	}
	return "Something went wrong."
}
