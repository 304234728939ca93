package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const drainTimeout = 5 * time.Second

type resultRepo interface {
	Save(ctx context.Context, result entity.GameResult) error
	GetStats(ctx context.Context, name string) (*entity.PlayerStats, error)
	ListRecent(ctx context.Context, limit int64) ([]entity.GameResult, error)
}

// StatsService answers scoreboard queries.
type StatsService interface {
	Stats(ctx context.Context, name string) (*entity.PlayerStats, error)
	Recent(ctx context.Context, limit int64) ([]entity.GameResult, error)
}

// Scoreboard persists finished games off the lobby goroutine. Record never
// blocks: when the queue is full the result is dropped.
type Scoreboard struct {
	logger  *slog.Logger
	repo    resultRepo
	results chan entity.GameResult
}

func NewScoreboard(logger *slog.Logger, repo resultRepo, queueSize int) *Scoreboard {
	return &Scoreboard{
		logger:  logger.With("component", "scoreboard"),
		repo:    repo,
		results: make(chan entity.GameResult, queueSize),
	}
}

func (that *Scoreboard) Record(result entity.GameResult) {
	select {
	case that.results <- result:
	default:
		that.logger.Warn("result queue is full, dropping result", "resultID", result.ID, "outcome", result.Outcome)
	}
}

// Run saves queued results until ctx is done, then saves whatever is still
// queued within drainTimeout.
func (that *Scoreboard) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	for {
		select {
		case result := <-that.results:
			that.save(ctx, result)
		case <-ctx.Done():
			log.Info("draining result queue", "pending", len(that.results))
			that.drain(ctx)
			return
		}
	}
}

func (that *Scoreboard) drain(ctx context.Context) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), drainTimeout)
	defer cancel()

	for {
		select {
		case result := <-that.results:
			that.save(ctx, result)
		default:
			return
		}
	}
}

func (that *Scoreboard) save(ctx context.Context, result entity.GameResult) {
	log := that.logger.With("method", "save")

	if err := that.repo.Save(ctx, result); err != nil {
		log.Error("failed to save result", "resultID", result.ID, "error", err)
		return
	}

	log.Debug("result saved", "resultID", result.ID, "outcome", result.Outcome)
}

func (that *Scoreboard) Stats(ctx context.Context, name string) (*entity.PlayerStats, error) {
	stats, err := that.repo.GetStats(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get stats of %q: %w", name, err)
	}

	return stats, nil
}

func (that *Scoreboard) Recent(ctx context.Context, limit int64) ([]entity.GameResult, error) {
	results, err := that.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent results: %w", err)
	}

	return results, nil
}

// DisabledStats answers every query with apperror.ErrStatsDisabled.
type DisabledStats struct{}

func (DisabledStats) Stats(context.Context, string) (*entity.PlayerStats, error) {
	return nil, apperror.ErrStatsDisabled
}

func (DisabledStats) Recent(context.Context, int64) ([]entity.GameResult, error) {
	return nil, apperror.ErrStatsDisabled
}
