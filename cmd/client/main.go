package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/client"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

var (
	addr = flag.String("addr", getEnvOrDefault("SERVER_ADDR", "ws://localhost:3001/ws"), "websocket address of the server")
	name = flag.String("name", getEnvOrDefault("PLAYER_NAME", entity.DefaultName), "name shown to your opponent")
)

func getEnvOrDefault(key, def string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return def
}

func main() {
	flag.Parse()

	// the board owns stdout, so logs go to stderr and only when something fails
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	c := client.New(logger, client.NewView(os.Stdout))
	if err := c.Run(ctx, *addr, *name, os.Stdin); err != nil {
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		os.Exit(1)
	}
}
