package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type GamePlayService interface {
	NewGame(ctx context.Context, mode entity.Mode, humanMark entity.Mark) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	EndGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error)
	Restart(ctx context.Context, gameID string, mode entity.Mode, humanMark entity.Mark) (*entity.Game, error)
	Hint(ctx context.Context, gameID string) (tictactoe.Outcome, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	botService  BotService
}

func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService) GamePlayService {
	return &gamePlayService{
		logger:      logger.With("component", "gameplay"),
		gameService: gameService,
		botService:  botService,
	}
}

func (that *gamePlayService) NewGame(ctx context.Context, mode entity.Mode, humanMark entity.Mark) (*entity.Game, error) {
	game, err := that.gameService.CreateGame(ctx, mode, humanMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.startRound(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}
	return game, nil
}

// MakeTurn plays cell for the side to move and, against the computer, lets
// the computer answer before the game is saved.
func (that *gamePlayService) MakeTurn(ctx context.Context, gameID string, cell int) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.IsBotTurn() {
		return nil, apperror.ErrBotTurn
	}

	if err = game.MakeTurn(game.Turn, cell); err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make turn: %w", err)
		}
	}

	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logRoundResult(game)

	return game, nil
}

// Restart begins a new round in the same session. Empty mode or humanMark
// keep the current settings.
func (that *gamePlayService) Restart(ctx context.Context, gameID string, mode entity.Mode, humanMark entity.Mark) (*entity.Game, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err = game.Restart(mode, humanMark); err != nil {
		return nil, fmt.Errorf("failed to restart game: %w", err)
	}

	if err = that.startRound(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

// Hint searches the best cell for the side to move without changing the game.
func (that *gamePlayService) Hint(ctx context.Context, gameID string) (tictactoe.Outcome, error) {
	game, err := that.GetGame(ctx, gameID)
	if err != nil {
		return tictactoe.Outcome{Cell: tictactoe.NoMove}, err
	}

	if !game.IsOngoing() {
		return tictactoe.Outcome{Cell: tictactoe.NoMove}, apperror.ErrNoMovesAvailable
	}

	outcome, err := that.botService.Suggest(game.Board, game.Turn)
	if err != nil {
		return outcome, fmt.Errorf("failed to suggest move: %w", err)
	}

	return outcome, nil
}

func (that *gamePlayService) EndGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}
	return nil
}

// startRound lets the computer open when it holds the first mark, then saves.
func (that *gamePlayService) startRound(ctx context.Context, game *entity.Game) error {
	if game.IsBotTurn() {
		if err := that.botService.MakeTurn(game); err != nil {
			return fmt.Errorf("bot failed to make first turn: %w", err)
		}
	}

	if err := that.gameService.UpdateGame(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *gamePlayService) logRoundResult(game *entity.Game) {
	if !game.IsFinished() {
		return
	}

	that.logger.Info("round finished",
		"gameID", game.ID,
		"status", game.Status,
		"winner", game.Winner,
		"score", game.Score,
	)
}
