package websocket

import (
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const (
	sendQueueSize  = 64
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
)

// connection is the entity.Client of one websocket. Send and close are only
// called from the dispatcher goroutine; writePump owns all writes to ws.
type connection struct {
	logger *slog.Logger
	ws     *websocket.Conn
	send   chan []byte
	closed bool
}

func newConnection(logger *slog.Logger, ws *websocket.Conn) *connection {
	return &connection{
		logger: logger,
		ws:     ws,
		send:   make(chan []byte, sendQueueSize),
	}
}

// Send encodes event and queues it without blocking. A full queue drops the
// event.
func (that *connection) Send(event entity.Event) {
	log := that.logger.With("method", "Send")

	if that.closed {
		return
	}

	data, err := encodeEvent(event)
	if err != nil {
		log.Error("failed to encode event", "error", err)
		return
	}

	select {
	case that.send <- data:
	default:
		log.Warn("send queue is full, dropping event", "event", event.EventType())
	}
}

// close stops writePump, which then closes the socket.
func (that *connection) close() {
	if that.closed {
		return
	}

	that.closed = true
	close(that.send)
}

func (that *connection) writePump() {
	log := that.logger.With("method", "writePump")

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = that.ws.Close()
	}()

	for {
		select {
		case data, ok := <-that.send:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = that.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}

			if err := that.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug("write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = that.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := that.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Debug("ping failed", "error", err)
				return
			}
		}
	}
}

// readPump decodes frames until the socket fails, handing every command to
// submit. Malformed frames are logged and dropped.
func (that *connection) readPump(submit func(command entity.Command) bool) {
	log := that.logger.With("method", "readPump")

	that.ws.SetReadLimit(maxMessageSize)
	_ = that.ws.SetReadDeadline(time.Now().Add(pongWait))
	that.ws.SetPongHandler(func(string) error {
		return that.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := that.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("connection closed unexpectedly", "error", err)
			}
			return
		}

		command, err := decodeCommand(data)
		if err != nil {
			log.Warn("dropping malformed command", "error", err)
			continue
		}

		if !submit(command) {
			return
		}
	}
}
