package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/config"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/service"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/rest"
	"github.com/rocketscienceinc/tictactoe-lobby/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the lobby until a signal arrives or a server fails.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	recorder := usecase.DiscardResults
	var stats service.StatsService = service.DisabledStats{}

	if conf.Stats.Enabled {
		redisAddr := conf.Redis.GetRedisAddr()
		if conf.Redis.Host == "" {
			return ErrAddrNotFound
		}

		redisStorage, err := storage.New(ctx, redisAddr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		resultRepo := repository.NewResultRepository(redisStorage, conf.Stats.RecentResults)
		scoreboard := service.NewScoreboard(logger, resultRepo, conf.Stats.QueueSize)

		scoreboardDone := make(chan struct{})
		go func() {
			defer close(scoreboardDone)
			scoreboard.Run(ctx)
		}()
		// the scoreboard drains its queue before redis is closed
		defer func() {
			cancel()
			<-scoreboardDone
		}()

		recorder, stats = scoreboard, scoreboard

		log.Info("Scoreboard enabled", "redis", redisAddr)
	}

	lobby := usecase.NewLobby(logger, recorder)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort, rest.NewHandlers(logger, stats)); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, lobby)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
