package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

var ErrUnrecognizedInput = errors.New("unrecognized input")

// wireCommand is the JSON shape of every command sent to the server.
type wireCommand struct {
	Type     entity.CommandType `json:"type"`
	Name     string             `json:"name,omitempty"`
	Position entity.Position    `json:"position,omitempty"`
}

// ParseInput turns a line typed by the user into a command. Cells are numbered
// 1-9 row by row and may also be given by name.
func ParseInput(line string) (entity.Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, ErrUnrecognizedInput
	}

	word := strings.ToLower(fields[0])

	switch word {
	case "replay", "r":
		return entity.ReplayCommand{}, nil
	case "leave", "quit", "exit", "q":
		return entity.LeaveCommand{}, nil
	case "join":
		return entity.JoinCommand{Name: strings.Join(fields[1:], " ")}, nil
	}

	if n, err := strconv.Atoi(word); err == nil {
		if n < 1 || n > len(entity.Positions) {
			return nil, fmt.Errorf("%w: cell %d", ErrUnrecognizedInput, n)
		}
		return entity.TurnCommand{Position: entity.Positions[n-1]}, nil
	}

	if position := entity.Position(word); position.IsValid() {
		return entity.TurnCommand{Position: position}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnrecognizedInput, line)
}

func EncodeCommand(command entity.Command) ([]byte, error) {
	wire := wireCommand{Type: command.CommandType()}

	switch cmd := command.(type) {
	case entity.JoinCommand:
		wire.Name = cmd.Name
	case entity.TurnCommand:
		wire.Position = cmd.Position
	}

	data, err := json.Marshal(wire)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", wire.Type, err)
	}

	return data, nil
}
