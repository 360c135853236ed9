package tui

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type bot interface {
	MakeTurn(game *entity.Game) error
}

// Session is the terminal player's view of one game. It owns the only copy
// of the game state; nothing is stored elsewhere.
type Session struct {
	game entity.Game
	bot  bot
}

func NewSession(bot bot, mode entity.Mode, humanMark entity.Mark) (*Session, error) {
	game, err := entity.NewGame("local", mode, humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	return &Session{game: *game, bot: bot}, nil
}

// Game returns a snapshot of the current state.
func (that *Session) Game() entity.Game {
	return that.game
}

// Play places the human's mark. Against the computer only the human's own
// turns are accepted.
func (that *Session) Play(cell int) error {
	if that.game.IsBotTurn() {
		return apperror.ErrBotTurn
	}

	return that.game.MakeTurn(that.game.Turn, cell)
}

// BotPending reports whether the computer should move next.
func (that *Session) BotPending() bool {
	return that.game.IsBotTurn()
}

// PlayBot lets the computer move. It does nothing when it is not the
// computer's turn, so a reply scheduled before a restart is harmless.
func (that *Session) PlayBot() error {
	if !that.game.IsBotTurn() {
		return nil
	}

	if err := that.bot.MakeTurn(&that.game); err != nil {
		return fmt.Errorf("computer failed to move: %w", err)
	}

	return nil
}

func (that *Session) Restart() error {
	return that.game.Restart("", entity.EmptyCell)
}

func (that *Session) ToggleMode() error {
	mode := entity.ModePvC
	if that.game.Mode == entity.ModePvC {
		mode = entity.ModePvP
	}

	return that.game.Restart(mode, entity.EmptyCell)
}

// SwapMark gives the human the other mark and starts a new round against the computer.
func (that *Session) SwapMark() error {
	mark := that.game.HumanMark.Opponent()
	if mark == entity.EmptyCell {
		mark = entity.FirstMover
	}

	return that.game.Restart(entity.ModePvC, mark)
}

func (that *Session) StatusLine() string {
	switch that.game.Status {
	case entity.StatusWonByX, entity.StatusWonByO:
		return fmt.Sprintf("Winner: %s", that.game.Winner)
	case entity.StatusDrawn:
		return "Draw"
	case entity.StatusInProgress:
		if that.game.IsBotTurn() {
			return fmt.Sprintf("Current turn: %s (computer)", that.game.Turn)
		}
		return fmt.Sprintf("Current turn: %s", that.game.Turn)
	}

	return ""
}

func (that *Session) ModeLine() string {
	if that.game.IsWithBot() {
		return fmt.Sprintf("Mode: vs computer, you play %s", that.game.HumanMark)
	}
	return "Mode: two players"
}

func (that *Session) ScoreLine() string {
	score := that.game.Score
	return fmt.Sprintf("X: %d  O: %d  Draws: %d", score.X, score.O, score.Draws)
}
