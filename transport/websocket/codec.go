package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/mitchellh/mapstructure"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// decodeCommand turns one text frame into a command. Anything that is not a
// well-formed command is an error and never reaches the lobby.
func decodeCommand(data []byte) (entity.Command, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal command: %w", err)
	}

	kind, _ := raw["type"].(string)

	switch entity.CommandType(kind) {
	case entity.CommandJoin:
		var cmd entity.JoinCommand
		if err := mapstructure.Decode(raw, &cmd); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		return cmd, nil

	case entity.CommandTurn:
		var cmd entity.TurnCommand
		if err := mapstructure.Decode(raw, &cmd); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		if !cmd.Position.IsValid() {
			return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidPosition, cmd.Position)
		}
		return cmd, nil

	case entity.CommandLeave:
		return entity.LeaveCommand{}, nil

	case entity.CommandReplay:
		return entity.ReplayCommand{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownCommand, kind)
	}
}

func encodeEvent(event entity.Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", event.EventType(), err)
	}

	return data, nil
}
