package apperror

import (
	"errors"
	"fmt"
)

// ErrInvalidMove is the root of every rejected placement. Match it with errors.Is.
var ErrInvalidMove = errors.New("invalid move")

var (
	ErrInvalidCell  = fmt.Errorf("%w: invalid cell index", ErrInvalidMove)
	ErrInvalidMark  = fmt.Errorf("%w: invalid mark", ErrInvalidMove)
	ErrCellOccupied = fmt.Errorf("%w: cell is already occupied", ErrInvalidMove)
	ErrGameFinished = fmt.Errorf("%w: game is already finished", ErrInvalidMove)
	ErrNotYourTurn  = fmt.Errorf("%w: it's not your turn", ErrInvalidMove)
	ErrBotTurn      = fmt.Errorf("%w: waiting for the computer to move", ErrInvalidMove)
)

var (
	ErrNoMovesAvailable = errors.New("no moves available")
	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidMode      = errors.New("invalid game mode")
)
