package apperror

import "errors"

var (
	ErrOutOfRange        = errors.New("cell index out of range")
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrInvalidDigit      = errors.New("digit must be between 1 and 9")
	ErrAlreadyUsed       = errors.New("digit is already used")
	ErrDigitUnavailable  = errors.New("digit is not available")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrNotComputerTurn   = errors.New("it's not the computer's turn")
	ErrGameOver          = errors.New("game is already finished")
	ErrNoNumberSelected  = errors.New("no number selected")
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	ErrInvalidMode       = errors.New("invalid game mode")

	ErrSync         = errors.New("sync failed")
	ErrRoomNotFound = errors.New("room not found")
	ErrNoRoomStore  = errors.New("no room store configured")
)
