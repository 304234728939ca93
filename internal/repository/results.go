package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	statsKeyPrefix = "stats:"
	resultsKey     = "results"
)

const (
	fieldWon       = "won"
	fieldLost      = "lost"
	fieldTied      = "tied"
	fieldAbandoned = "abandoned"
	fieldForfeited = "forfeited"
)

type ResultRepository interface {
	Save(ctx context.Context, result entity.GameResult) error
	GetStats(ctx context.Context, name string) (*entity.PlayerStats, error)
	ListRecent(ctx context.Context, limit int64) ([]entity.GameResult, error)
}

type dbResult struct {
	client *redis.Client
	// keep is the length of the recent results list.
	keep int64
}

func NewResultRepository(client *redis.Client, keep int64) ResultRepository {
	return &dbResult{
		client: client,
		keep:   keep,
	}
}

// Save bumps the counters of both players and prepends the result to the
// capped list of recent results in one transaction.
func (that *dbResult) Save(ctx context.Context, result entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for piece, field := range counters(result) {
			pipe.HIncrBy(ctx, statsKeyPrefix+result.NameOf(piece), field, 1)
		}

		pipe.LPush(ctx, resultsKey, resultJSON)
		if that.keep > 0 {
			pipe.LTrim(ctx, resultsKey, 0, that.keep-1)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) GetStats(ctx context.Context, name string) (*entity.PlayerStats, error) {
	fields, err := that.client.HGetAll(ctx, statsKeyPrefix+name).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if len(fields) == 0 {
		return nil, apperror.ErrNotFound
	}

	stats := &entity.PlayerStats{Name: name}
	for field, target := range map[string]*int64{
		fieldWon:       &stats.Won,
		fieldLost:      &stats.Lost,
		fieldTied:      &stats.Tied,
		fieldAbandoned: &stats.Abandoned,
		fieldForfeited: &stats.Forfeited,
	} {
		raw, ok := fields[field]
		if !ok {
			continue
		}

		if *target, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, fmt.Errorf("failed to parse %s counter: %w", field, err)
		}
	}

	return stats, nil
}

func (that *dbResult) ListRecent(ctx context.Context, limit int64) ([]entity.GameResult, error) {
	if limit <= 0 {
		return []entity.GameResult{}, nil
	}

	items, err := that.client.LRange(ctx, resultsKey, 0, limit-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]entity.GameResult, 0, len(items))
	for _, item := range items {
		var result entity.GameResult
		if err = json.Unmarshal([]byte(item), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
		results = append(results, result)
	}

	return results, nil
}

// counters maps each piece of the game to the stats field it increments.
func counters(result entity.GameResult) map[entity.Piece]string {
	switch result.Outcome {
	case entity.OutcomeWon:
		return map[entity.Piece]string{
			result.Winner:         fieldWon,
			result.Winner.Other(): fieldLost,
		}
	case entity.OutcomeAbandoned:
		return map[entity.Piece]string{
			result.Forfeit:         fieldForfeited,
			result.Forfeit.Other(): fieldAbandoned,
		}
	default:
		return map[entity.Piece]string{
			entity.Cross: fieldTied,
			entity.Dot:   fieldTied,
		}
	}
}
