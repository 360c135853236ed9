package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

type Mode string

const (
	ModePvP Mode = "pvp"
	ModePvC Mode = "pvc"
)

func ParseMode(s string) (Mode, error) {
	switch mode := Mode(s); mode {
	case ModePvP, ModePvC:
		return mode, nil
	default:
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMode, s)
	}
}

// Score is the session tally. It survives restarts and grows by exactly one
// entry per completed round.
type Score struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

func (that *Score) record(status Status) {
	switch status {
	case StatusWonByX:
		that.X++
	case StatusWonByO:
		that.O++
	case StatusDrawn:
		that.Draws++
	case StatusInProgress:
	}
}

type Game struct {
	ID        string `json:"id"`
	Board     Board  `json:"board"`
	Turn      Mark   `json:"player_turn"`
	Status    Status `json:"status"`
	Winner    Mark   `json:"winner,omitempty"`
	WinLine   *Line  `json:"win_line,omitempty"`
	Mode      Mode   `json:"mode"`
	HumanMark Mark   `json:"human_mark,omitempty"`
	Score     Score  `json:"score"`
}

// NewGame starts the first round of a session. humanMark is only meaningful
// against the computer and is ignored in pvp.
func NewGame(id string, mode Mode, humanMark Mark) (*Game, error) {
	game := &Game{ID: id}
	if err := game.Restart(mode, humanMark); err != nil {
		return nil, err
	}
	return game, nil
}

// Restart clears the board for a new round and keeps the tally. Empty mode or
// humanMark keep the current setting.
func (that *Game) Restart(mode Mode, humanMark Mark) error {
	if mode == "" {
		mode = that.Mode
	}
	if _, err := ParseMode(string(mode)); err != nil {
		return err
	}

	if humanMark == EmptyCell {
		humanMark = that.HumanMark
	}
	if mode == ModePvC && humanMark == EmptyCell {
		humanMark = FirstMover
	}
	if mode == ModePvC && !humanMark.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidMark, humanMark)
	}
	if mode == ModePvP {
		humanMark = EmptyCell
	}

	that.Mode = mode
	that.HumanMark = humanMark
	that.Board = Board{}
	that.Turn = FirstMover
	that.Status = StatusInProgress
	that.Winner = EmptyCell
	that.WinLine = nil

	return nil
}

func (that *Game) MakeTurn(playerMark Mark, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if that.Turn != playerMark {
		return fmt.Errorf("%w: %s to move", apperror.ErrNotYourTurn, that.Turn)
	}

	board, err := that.Board.Place(cell, playerMark)
	if err != nil {
		return err
	}

	that.Board = board
	that.UpdateGameState()

	return nil
}

// UpdateGameState derives status, winner and turn from the board and records
// the result in the tally when the round has just ended.
func (that *Game) UpdateGameState() {
	wasFinished := that.IsFinished()

	that.Status = that.Board.Status()

	switch that.Status {
	case StatusWonByX, StatusWonByO:
		line, mark, _ := that.Board.Winner()
		that.Winner = mark
		that.WinLine = &line
		that.Turn = EmptyCell
	case StatusDrawn:
		that.Winner = EmptyCell
		that.WinLine = nil
		that.Turn = EmptyCell
	case StatusInProgress:
		that.Turn = that.Board.Turn()
	}

	if !wasFinished && that.IsFinished() {
		that.Score.record(that.Status)
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWonByX || that.Status == StatusWonByO || that.Status == StatusDrawn
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsWithBot() bool {
	return that.Mode == ModePvC
}

// BotMark is the computer's mark, or EmptyCell in pvp.
func (that *Game) BotMark() Mark {
	if !that.IsWithBot() {
		return EmptyCell
	}
	return that.HumanMark.Opponent()
}

func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsOngoing() && that.Turn == that.BotMark()
}
