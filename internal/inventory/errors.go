package inventory

import "errors"

// Rejections returned by Grid operations. Every rejection leaves the grid
// unchanged; callers branch with errors.Is.
var (
	ErrOutOfBounds     = errors.New("coordinate outside the active grid")
	ErrSlotEmpty       = errors.New("slot is empty")
	ErrSlotOccupied    = errors.New("slot is occupied")
	ErrInventoryFull   = errors.New("inventory is full")
	ErrInvalidOperand  = errors.New("invalid operand")
	ErrNoMatch         = errors.New("operands do not match the recipe")
	ErrFeatureLocked   = errors.New("merger is locked")
	ErrExpandLimit     = errors.New("inventory cannot expand further")
	ErrNotDecomposable = errors.New("item has no decomposition results")
	ErrInvalidLayout   = errors.New("invalid inventory layout")
)
