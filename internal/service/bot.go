package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(game *entity.Game) error
	Suggest(board entity.Board, mark entity.Mark) (tictactoe.Outcome, error)
}

type botService struct {
	logger *slog.Logger
}

func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

// MakeTurn plays the computer's mark on the game's board.
func (that *botService) MakeTurn(game *entity.Game) error {
	botMark := game.BotMark()
	if botMark == entity.EmptyCell {
		return fmt.Errorf("%w: game %s has no computer player", ErrBotNotFound, game.ID)
	}

	outcome, err := that.Suggest(game.Board, botMark)
	if err != nil {
		return fmt.Errorf("failed to search move: %w", err)
	}

	if err = game.MakeTurn(botMark, outcome.Cell); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	return nil
}

func (that *botService) Suggest(board entity.Board, mark entity.Mark) (tictactoe.Outcome, error) {
	outcome, err := tictactoe.Search(board, mark)
	if err != nil {
		return outcome, fmt.Errorf("search on %s: %w", board, err)
	}

	that.logger.Debug("search finished",
		"board", board.String(),
		"mark", mark,
		"cell", outcome.Cell,
		"score", outcome.Score,
		"nodes", outcome.Nodes,
	)

	return outcome, nil
}
