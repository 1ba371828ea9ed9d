package ledger

import "errors"

// Errors returned by ledger operations. Callers classify them with errors.Is;
// detail is attached with fmt.Errorf("%w: ...").
var (
	// ErrNotFound: no account for the user id
	ErrNotFound = errors.New("user not found")
	// ErrInsufficientFunds: balance below the required cost
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrAlreadyOwned: volume bought twice
	ErrAlreadyOwned = errors.New("volume already owned")
	// ErrNotOwned: gem not in inventory
	ErrNotOwned = errors.New("gem not owned")
	// ErrSlotFull: every equip slot is taken
	ErrSlotFull = errors.New("equip slot is full")
	// ErrNotEquipped: unequip of a gem that is not equipped
	ErrNotEquipped = errors.New("gem is not equipped")
	// ErrInvalidArgument: unknown draw/volume type, bad action or count
	ErrInvalidArgument = errors.New("invalid argument")
)
