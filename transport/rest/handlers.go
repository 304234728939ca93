package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type statsService interface {
	Stats(ctx context.Context, name string) (*entity.PlayerStats, error)
	Recent(ctx context.Context, limit int64) ([]entity.GameResult, error)
}

type Handlers interface {
	PingHandler(w http.ResponseWriter, r *http.Request)
	StatsHandler(w http.ResponseWriter, r *http.Request)
	ResultsHandler(w http.ResponseWriter, r *http.Request)
}

type handlers struct {
	logger       *slog.Logger
	statsService statsService
}

func NewHandlers(logger *slog.Logger, statsService statsService) Handlers {
	return &handlers{
		logger:       logger.With("component", "rest"),
		statsService: statsService,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// StatsHandler - GET /stats/{name}.
func (that *handlers) StatsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "StatsHandler")

	stats, err := that.statsService.Stats(r.Context(), r.PathValue("name"))
	if err != nil {
		that.writeError(w, log, err)
		return
	}

	that.writeJSON(w, log, stats)
}

// ResultsHandler - GET /results?limit=n, newest first.
func (that *handlers) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ResultsHandler")

	limit := int64(defaultLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 1 {
			http.Error(w, "limit must be a positive number", http.StatusBadRequest)
			return
		}
		limit = min(parsed, maxLimit)
	}

	results, err := that.statsService.Recent(r.Context(), limit)
	if err != nil {
		that.writeError(w, log, err)
		return
	}

	that.writeJSON(w, log, results)
}

func (that *handlers) writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.Is(err, apperror.ErrStatsDisabled):
		http.Error(w, "Stats are disabled", http.StatusServiceUnavailable)
	default:
		log.Error("request failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (that *handlers) writeJSON(w http.ResponseWriter, log *slog.Logger, body any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("failed to encode response", "error", err)
	}
}
