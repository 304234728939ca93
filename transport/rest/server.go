package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const shutdownTimeout = 5 * time.Second

func NewRouter(handlers Handlers) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", handlers.PingHandler)
	mux.HandleFunc("GET /stats/{name}", handlers.StatsHandler)
	mux.HandleFunc("GET /results", handlers.ResultsHandler)

	return mux
}

// Start - serves the REST API on port until ctx is done.
func Start(ctx context.Context, port string, handlers Handlers) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(handlers),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	if err := <-shutdownErr; err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
