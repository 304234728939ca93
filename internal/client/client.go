package client

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

const writeWait = 5 * time.Second

type Client struct {
	logger *slog.Logger
	view   *View
}

func New(logger *slog.Logger, view *View) *Client {
	return &Client{
		logger: logger.With("component", "client"),
		view:   view,
	}
}

// Run joins the server at url as name and plays until the user quits, the
// connection drops or ctx is done.
func (that *Client) Run(ctx context.Context, url, name string, input io.Reader) error {
	log := that.logger.With("method", "Run")

	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	defer ws.Close()

	if err = that.send(ws, entity.JoinCommand{Name: name}); err != nil {
		return err
	}

	readErr := make(chan error, 1)
	go func() {
		readErr <- that.readEvents(ws)
	}()

	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(input)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return that.quit(ws)

		case err = <-readErr:
			return err

		case line, ok := <-lines:
			if !ok {
				return that.quit(ws)
			}

			command, parseErr := ParseInput(line)
			if parseErr != nil {
				log.Debug("ignoring input", "error", parseErr)
				that.view.Notify("Type 1-9, a position such as center, replay or quit.")
				continue
			}

			if _, leaving := command.(entity.LeaveCommand); leaving {
				return that.quit(ws)
			}

			if err = that.send(ws, command); err != nil {
				return err
			}
		}
	}
}

func (that *Client) readEvents(ws *websocket.Conn) error {
	log := that.logger.With("method", "readEvents")

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil
			}
			return fmt.Errorf("connection lost: %w", err)
		}

		var event Event
		if err = json.Unmarshal(data, &event); err != nil {
			log.Warn("dropping malformed event", "error", err)
			continue
		}

		that.view.Apply(event)
	}
}

func (that *Client) send(ws *websocket.Conn, command entity.Command) error {
	data, err := EncodeCommand(command)
	if err != nil {
		return err
	}

	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err = ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("failed to send %s: %w", command.CommandType(), err)
	}

	return nil
}

// quit tells the server the player is leaving and closes the connection.
func (that *Client) quit(ws *websocket.Conn) error {
	if err := that.send(ws, entity.LeaveCommand{}); err != nil {
		return err
	}

	_ = ws.SetWriteDeadline(time.Now().Add(writeWait))
	err := ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		return fmt.Errorf("failed to close connection: %w", err)
	}

	return nil
}
