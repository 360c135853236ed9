package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/service"
	"github.com/rocketscienceinc/tictactoe-minimax/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	defaults, err := gameDefaults(conf.Game)
	if err != nil {
		return err
	}

	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.GameTTL)

	botService := service.NewBotService(logger)
	gameService := service.NewGameService(gameRepo)
	gamePlayService := service.NewGamePlayService(logger, gameService, botService)

	router := rest.NewRouter(logger, gamePlayService, botService, defaults)

	log.Info("Starting HTTP server", "port", conf.HTTPPort)
	if err = rest.Start(ctx, conf.HTTPPort, router); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func gameDefaults(conf config.Game) (rest.Defaults, error) {
	mode, err := entity.ParseMode(conf.DefaultMode)
	if err != nil {
		return rest.Defaults{}, fmt.Errorf("invalid game.default-mode: %w", err)
	}

	humanMark, err := entity.ParseMark(conf.HumanMark)
	if err != nil {
		return rest.Defaults{}, fmt.Errorf("invalid game.human-mark: %w", err)
	}

	return rest.Defaults{Mode: mode, HumanMark: humanMark}, nil
}
