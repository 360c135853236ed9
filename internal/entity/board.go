package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""
)

// FirstMover always opens a round.
const FirstMover = MarkX

const (
	BoardSize  = 9
	CenterCell = 4
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWonByX     Status = "won_by_x"
	StatusWonByO     Status = "won_by_o"
	StatusDrawn      Status = "drawn"
)

// Line is a triple of cell indices.
type Line [3]int

// WinLines is enumerated rows first, then columns, then diagonals.
var WinLines = [8]Line{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a row-major 3x3 grid. It is a value: copying a Board copies every cell.
type Board [BoardSize]Mark

func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Opponent returns the other player's mark, or EmptyCell for a non-player mark.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return EmptyCell
	}
}

func ParseMark(s string) (Mark, error) {
	mark := Mark(s)
	if !mark.IsPlayer() {
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, s)
	}
	return mark, nil
}

func (that Board) IsOccupied(cell int) bool {
	if cell < 0 || cell >= BoardSize {
		return false
	}
	return that[cell] != EmptyCell
}

// Place returns a copy of the board with mark written into cell. On error the
// receiver is returned unchanged.
func (that Board) Place(cell int, mark Mark) (Board, error) {
	if cell < 0 || cell >= BoardSize {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if !mark.IsPlayer() {
		return that, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if that.IsTerminal() {
		return that, apperror.ErrGameFinished
	}

	if that[cell] != EmptyCell {
		return that, fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
	}

	if turn := that.Turn(); mark != turn {
		return that, fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, turn)
	}

	next := that
	next[cell] = mark

	return next, nil
}

// Winner reports the first completed line in WinLines order and its mark.
func (that Board) Winner() (Line, Mark, bool) {
	for _, line := range WinLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a != EmptyCell && a == b && b == c {
			return line, a, true
		}
	}

	return Line{}, EmptyCell, false
}

func (that Board) IsFull() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return false
		}
	}
	return true
}

func (that Board) IsDraw() bool {
	if !that.IsFull() {
		return false
	}
	_, _, won := that.Winner()
	return !won
}

func (that Board) IsTerminal() bool {
	if _, _, won := that.Winner(); won {
		return true
	}
	return that.IsFull()
}

func (that Board) IsEmpty() bool {
	return that == Board{}
}

// AvailableMoves lists empty cells in ascending order. The search relies on
// this order for its tie-break.
func (that Board) AvailableMoves() []int {
	moves := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}
	return moves
}

func (that Board) Count(mark Mark) int {
	n := 0
	for _, cell := range that {
		if cell == mark {
			n++
		}
	}
	return n
}

// Turn returns the side to move: the first mover whenever both sides have
// placed the same number of marks.
func (that Board) Turn() Mark {
	if that.Count(MarkX) == that.Count(MarkO) {
		return FirstMover
	}
	return FirstMover.Opponent()
}

func (that Board) Status() Status {
	if _, mark, won := that.Winner(); won {
		if mark == MarkX {
			return StatusWonByX
		}
		return StatusWonByO
	}

	if that.IsFull() {
		return StatusDrawn
	}

	return StatusInProgress
}

func (that Board) String() string {
	out := make([]byte, 0, 12)
	for i, cell := range that {
		switch cell {
		case EmptyCell:
			out = append(out, '.')
		default:
			out = append(out, cell[0])
		}
		if i%3 == 2 && i != BoardSize-1 {
			out = append(out, '/')
		}
	}
	return string(out)
}

// Validate checks that a board supplied from outside could occur in play:
// only known marks, and X never more than one mark ahead of O.
func (that Board) Validate() error {
	for i, cell := range that {
		if cell != EmptyCell && !cell.IsPlayer() {
			return fmt.Errorf("%w: %q at cell %d", apperror.ErrInvalidMark, cell, i)
		}
	}

	if diff := that.Count(MarkX) - that.Count(MarkO); diff < 0 || diff > 1 {
		return fmt.Errorf("%w: %d X against %d O", apperror.ErrInvalidMove, that.Count(MarkX), that.Count(MarkO))
	}

	return nil
}

// ParseBoard reads the compact form produced by Board.String, e.g. "XX./OO./...".
func ParseBoard(s string) (Board, error) {
	var board Board

	i := 0
	for _, r := range s {
		if r == '/' {
			continue
		}
		if i >= BoardSize {
			return Board{}, fmt.Errorf("%w: board %q is too long", apperror.ErrInvalidCell, s)
		}
		switch r {
		case '.':
			board[i] = EmptyCell
		case 'X', 'O':
			board[i] = Mark(string(r))
		default:
			return Board{}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, r)
		}
		i++
	}

	if i != BoardSize {
		return Board{}, fmt.Errorf("%w: board %q is too short", apperror.ErrInvalidCell, s)
	}

	return board, nil
}
