package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const shutdownTimeout = 5 * time.Second

type lobby interface {
	Execute(player *entity.Player, command entity.Command)
	NumPlayers() int
}

// request is one command waiting for the dispatcher. A request with conn set
// is the final Leave of a closed connection.
type request struct {
	player  *entity.Player
	command entity.Command
	conn    *connection
}

type Server struct {
	logger   *slog.Logger
	lobby    lobby
	requests chan request
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, lobby lobby) *Server {
	return &Server{
		logger:   logger.With("component", "websocket"),
		lobby:    lobby,
		requests: make(chan request),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Start - runs the dispatcher and serves websockets on port until ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	log := that.logger.With("method", "Start")

	go that.Run(ctx)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(ctx),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Run executes queued commands one at a time until ctx is done. It is the
// only goroutine touching the lobby.
func (that *Server) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	for {
		select {
		case req := <-that.requests:
			that.lobby.Execute(req.player, req.command)

			if req.conn != nil {
				req.conn.close()
				log.Info("connection closed", "playerID", req.player.ID, "players", that.lobby.NumPlayers())
			}
		case <-ctx.Done():
			return
		}
	}
}

func (that *Server) submit(ctx context.Context, req request) bool {
	select {
	case that.requests <- req:
		return true
	case <-ctx.Done():
		return false
	}
}

func (that *Server) upgradeToWebSocket(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	ws, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied with an HTTP error
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	conn := newConnection(that.logger, ws)
	player := entity.NewPlayer(conn)
	conn.logger = that.logger.With("playerID", player.ID)

	log.Info("connection established", "playerID", player.ID, "remote", r.RemoteAddr)

	go conn.writePump()
	go func() {
		conn.readPump(func(command entity.Command) bool {
			return that.submit(ctx, request{player: player, command: command})
		})

		if !that.submit(ctx, request{player: player, command: entity.LeaveCommand{}, conn: conn}) {
			_ = ws.Close()
		}
	}()
}
