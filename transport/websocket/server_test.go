package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/usecase"
)

type wireSnapshot struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Piece string `json:"piece"`
}

type wireEvent struct {
	Type     string       `json:"type"`
	Player   wireSnapshot `json:"player"`
	Opponent wireSnapshot `json:"opponent"`
	Position string       `json:"position"`
	Error    string       `json:"error"`
}

func startServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := New(logger, usecase.NewLobby(logger, nil))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go server.Run(ctx)

	httpServer := httptest.NewServer(server.Handler(ctx))
	t.Cleanup(httpServer.Close)

	return "ws" + strings.TrimPrefix(httpServer.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, frame string) {
	t.Helper()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(frame)))
}

func receive(t *testing.T, conn *websocket.Conn) wireEvent {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var event wireEvent
	require.NoError(t, json.Unmarshal(data, &event))

	return event
}

func TestServer_Game(t *testing.T) {
	url := startServer(t)

	// Given: two connected players that joined one after another
	jake := dial(t, url)
	send(t, jake, `{"type":"Join","name":"Jake"}`)

	ready := receive(t, jake)
	assert.Equal(t, "PlayerReady", ready.Type)
	assert.Equal(t, wireSnapshot{Name: "Jake", State: "waiting-game"}, ready.Player)

	amy := dial(t, url)
	send(t, amy, `{"type":"Join","name":"Amy"}`)

	assert.Equal(t, "PlayerReady", receive(t, amy).Type)

	// Then: both are told the game started, from their own perspective
	started := receive(t, amy)
	assert.Equal(t, "GameStarted", started.Type)
	assert.Equal(t, wireSnapshot{Name: "Amy", State: "waiting-turn", Piece: "dot"}, started.Player)
	assert.Equal(t, wireSnapshot{Name: "Jake", State: "taking-turn", Piece: "cross"}, started.Opponent)

	started = receive(t, jake)
	assert.Equal(t, "GameStarted", started.Type)
	assert.Equal(t, "cross", started.Player.Piece)

	// When: cross takes the center
	send(t, jake, `{"type":"Turn","position":"center"}`)

	// Then: both see the turn
	took := receive(t, jake)
	assert.Equal(t, "PlayerTookTurn", took.Type)
	assert.Equal(t, "center", took.Position)

	took = receive(t, amy)
	assert.Equal(t, "OpponentTookTurn", took.Type)
	assert.Equal(t, "taking-turn", took.Player.State)

	// When: dot sends garbage and then plays the taken center
	send(t, amy, `not json`)
	send(t, amy, `{"type":"Turn","position":"middle"}`)
	send(t, amy, `{"type":"Turn","position":"center"}`)

	// Then: the garbage is dropped and only the real turn is answered
	rejected := receive(t, amy)
	assert.Equal(t, "UnexpectedError", rejected.Type)
	assert.Equal(t, "PositionTaken", rejected.Error)

	// When: dot disconnects
	require.NoError(t, amy.Close())

	// Then: cross is abandoned
	abandoned := receive(t, jake)
	assert.Equal(t, "OpponentAbandoned", abandoned.Type)
	assert.Equal(t, "abandoned", abandoned.Player.State)
	assert.Equal(t, "Amy", abandoned.Opponent.Name)
}

func TestServer_RejectsPlainHTTP(t *testing.T) {
	// Given: a server
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	server := New(logger, usecase.NewLobby(logger, nil))

	// When: the endpoint is called without an upgrade
	recorder := httptest.NewRecorder()
	server.Handler(context.Background()).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ws", nil))

	// Then: the request is refused
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
