package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

func TestParseInput(t *testing.T) {
	t.Run("Recognised input", func(t *testing.T) {
		cases := map[string]entity.Command{
			"1":             entity.TurnCommand{Position: entity.TopLeft},
			"5":             entity.TurnCommand{Position: entity.Center},
			" 9 ":           entity.TurnCommand{Position: entity.BottomRight},
			"Bottom-Left":   entity.TurnCommand{Position: entity.BottomLeft},
			"replay":        entity.ReplayCommand{},
			"r":             entity.ReplayCommand{},
			"quit":          entity.LeaveCommand{},
			"leave":         entity.LeaveCommand{},
			"join Jake Doe": entity.JoinCommand{Name: "Jake Doe"},
		}

		for line, expected := range cases {
			command, err := ParseInput(line)

			require.NoError(t, err, line)
			assert.Equal(t, expected, command, line)
		}
	})

	t.Run("Unrecognised input", func(t *testing.T) {
		for _, line := range []string{"", "   ", "0", "10", "middle", "hello"} {
			_, err := ParseInput(line)

			require.ErrorIs(t, err, ErrUnrecognizedInput, line)
		}
	})
}

func TestEncodeCommand(t *testing.T) {
	cases := map[string]entity.Command{
		`{"type":"Join","name":"Jake"}`:       entity.JoinCommand{Name: "Jake"},
		`{"type":"Turn","position":"center"}`: entity.TurnCommand{Position: entity.Center},
		`{"type":"Leave"}`:                    entity.LeaveCommand{},
		`{"type":"Replay"}`:                   entity.ReplayCommand{},
	}

	for expected, command := range cases {
		data, err := EncodeCommand(command)

		require.NoError(t, err)
		assert.JSONEq(t, expected, string(data))
	}
}
