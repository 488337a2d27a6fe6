package engine

import "errors"

// Errors returned by engine operations. Callers match with errors.Is; the
// returned error wraps one of these with detail. A failed operation leaves
// the GameState unchanged.
var (
	ErrInvalidSelection      = errors.New("invalid selection")
	ErrInvalidPlacement      = errors.New("invalid placement")
	ErrCellOccupied          = errors.New("cell occupied")
	ErrInvalidCharacteristic = errors.New("invalid characteristic")
	ErrGameOver              = errors.New("game is already over")
	ErrInvalidToken          = errors.New("invalid token")
	ErrInvalidCell           = errors.New("invalid cell")
	ErrNotComputerTurn       = errors.New("acting player is not computer-controlled")
	ErrUnknownStrategy       = errors.New("unknown placement strategy")
)
