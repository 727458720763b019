package apperror

import "errors"

var (
	ErrInvalidMove        = errors.New("invalid move")
	ErrNotTerminal        = errors.New("board is not terminal")
	ErrInvariantViolation = errors.New("internal invariant violation")
	ErrInvalidBoard       = errors.New("invalid board")

	ErrGameFinished = errors.New("game is already finished")
	ErrNotYourTurn  = errors.New("it's not your turn")
	ErrNotFound     = errors.New("not found")
)
