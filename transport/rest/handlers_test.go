package rest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/service"
)

type mockStats struct {
	mock.Mock
}

func (that *mockStats) Stats(ctx context.Context, name string) (*entity.PlayerStats, error) {
	args := that.Called(ctx, name)
	stats, _ := args.Get(0).(*entity.PlayerStats)
	return stats, args.Error(1)
}

func (that *mockStats) Recent(ctx context.Context, limit int64) ([]entity.GameResult, error) {
	args := that.Called(ctx, limit)
	results, _ := args.Get(0).([]entity.GameResult)
	return results, args.Error(1)
}

func serve(t *testing.T, stats statsService, target string) *httptest.ResponseRecorder {
	t.Helper()

	router := NewRouter(NewHandlers(slog.New(slog.NewJSONHandler(io.Discard, nil)), stats))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))

	return recorder
}

func TestPingHandler(t *testing.T) {
	resp := serve(t, service.DisabledStats{}, "/ping")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "pong", resp.Body.String())
}

func TestStatsHandler(t *testing.T) {
	t.Run("Returns the stats of a player", func(t *testing.T) {
		// Given: a service that knows Jake
		stats := &mockStats{}
		stats.On("Stats", mock.Anything, "Jake").
			Return(&entity.PlayerStats{Name: "Jake", Won: 3, Lost: 1}, nil).
			Once()

		// When: the stats are requested
		resp := serve(t, stats, "/stats/Jake")

		// Then: they are returned as JSON
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Equal(t, "application/json", resp.Header().Get("Content-Type"))
		assert.JSONEq(t,
			`{"name":"Jake","won":3,"lost":1,"tied":0,"abandoned":0,"forfeited":0}`,
			resp.Body.String())
		stats.AssertExpectations(t)
	})

	t.Run("Unknown player", func(t *testing.T) {
		stats := &mockStats{}
		stats.On("Stats", mock.Anything, "Nobody").
			Return(nil, apperror.ErrNotFound).
			Once()

		resp := serve(t, stats, "/stats/Nobody")

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})

	t.Run("Stats disabled", func(t *testing.T) {
		resp := serve(t, service.DisabledStats{}, "/stats/Jake")

		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})

	t.Run("Storage failure", func(t *testing.T) {
		stats := &mockStats{}
		stats.On("Stats", mock.Anything, "Jake").
			Return(nil, errors.New("redis down")).
			Once()

		resp := serve(t, stats, "/stats/Jake")

		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

func TestResultsHandler(t *testing.T) {
	t.Run("Default limit", func(t *testing.T) {
		// Given: a service with one recent result
		stats := &mockStats{}
		stats.On("Recent", mock.Anything, int64(defaultLimit)).
			Return([]entity.GameResult{{ID: "r1", Outcome: entity.OutcomeTied, Cross: "Jake", Dot: "Amy"}}, nil).
			Once()

		// When: the results are requested without a limit
		resp := serve(t, stats, "/results")

		// Then: the default limit is used
		require.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"id":"r1"`)
		stats.AssertExpectations(t)
	})

	t.Run("Limit is capped", func(t *testing.T) {
		stats := &mockStats{}
		stats.On("Recent", mock.Anything, int64(maxLimit)).
			Return([]entity.GameResult{}, nil).
			Once()

		resp := serve(t, stats, "/results?limit=5000")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[]`, resp.Body.String())
		stats.AssertExpectations(t)
	})

	t.Run("Invalid limit", func(t *testing.T) {
		resp := serve(t, &mockStats{}, "/results?limit=zero")

		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}
