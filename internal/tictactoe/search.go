// Package tictactoe finds optimal moves by exhaustive minimax search.
package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

// NoMove is returned together with an error when no cell can be played.
const NoMove = -1

const (
	ScoreWin  = 1
	ScoreDraw = 0
	ScoreLoss = -1
)

// Outcome is the value of a position for the side being optimized, under
// perfect play from both sides, and the move that achieves it.
type Outcome struct {
	Score int `json:"score"`
	Cell  int `json:"cell"`
	// Depth is the number of plies until the round ends along the chosen line.
	Depth int `json:"depth"`
	// Nodes counts the positions visited; zero when the opening shortcut was taken.
	Nodes int `json:"-"`
}

// TieBreak decides between cells that lead to the same score.
type TieBreak int

const (
	// TieBreakShortest prefers a faster win or a slower loss, then the lowest cell.
	TieBreakShortest TieBreak = iota
	// TieBreakFirst keeps the lowest cell among the best scores and ignores
	// how long the round lasts.
	TieBreakFirst
)

// BestMove returns the cell that guarantees the best achievable result for
// mark. Among equally scored cells a faster win or a slower loss is preferred,
// then the lowest cell index.
func BestMove(board entity.Board, mark entity.Mark) (int, error) {
	outcome, err := Search(board, mark)
	if err != nil {
		return NoMove, err
	}
	return outcome.Cell, nil
}

// Search is BestMove with the score and search statistics attached.
func Search(board entity.Board, mark entity.Mark) (Outcome, error) {
	return SearchWith(board, mark, TieBreakShortest)
}

// SearchWith is Search with an explicit rule for equally scored cells.
// Both rules agree on the score; only the chosen cell may differ.
func SearchWith(board entity.Board, mark entity.Mark, tieBreak TieBreak) (Outcome, error) {
	if !mark.IsPlayer() {
		return Outcome{Cell: NoMove}, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	if board.IsTerminal() {
		return Outcome{Cell: NoMove}, apperror.ErrNoMovesAvailable
	}

	// The center is part of an optimal opening for the first mover.
	if board.IsEmpty() && mark == entity.FirstMover {
		return Outcome{Score: ScoreDraw, Cell: entity.CenterCell, Depth: entity.BoardSize}, nil
	}

	s := &searcher{self: mark, tieBreak: tieBreak}
	outcome := s.minimax(board, mark)
	outcome.Nodes = s.nodes

	return outcome, nil
}

type searcher struct {
	self     entity.Mark
	tieBreak TieBreak
	nodes    int
}

// minimax receives its own copy of the board, so the caller's board is never
// modified on any path.
func (that *searcher) minimax(board entity.Board, mover entity.Mark) Outcome {
	that.nodes++

	if _, winner, won := board.Winner(); won {
		if winner == that.self {
			return Outcome{Score: ScoreWin, Cell: NoMove}
		}
		return Outcome{Score: ScoreLoss, Cell: NoMove}
	}

	if board.IsFull() {
		return Outcome{Score: ScoreDraw, Cell: NoMove}
	}

	maximizing := mover == that.self

	best := Outcome{Cell: NoMove}
	for _, cell := range board.AvailableMoves() {
		child := board
		child[cell] = mover

		reply := that.minimax(child, mover.Opponent())
		candidate := Outcome{Score: reply.Score, Cell: cell, Depth: reply.Depth + 1}

		// Strict comparisons keep the first, lowest-index cell on ties.
		if best.Cell == NoMove ||
			(maximizing && that.rank(candidate) > that.rank(best)) ||
			(!maximizing && that.rank(candidate) < that.rank(best)) {
			best = candidate
		}
	}

	return best
}

// rank orders outcomes for the optimized side: wins above draws above losses.
// Under TieBreakShortest sooner wins rank above later ones and later losses
// above sooner ones.
func (that *searcher) rank(outcome Outcome) int {
	if that.tieBreak == TieBreakFirst {
		return outcome.Score
	}
	return outcome.Score * (entity.BoardSize + 1 - outcome.Depth)
}
