package entity

import (
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeWon       Outcome = "won"
	OutcomeTied      Outcome = "tied"
	OutcomeAbandoned Outcome = "abandoned"
)

// GameResult describes a game that reached a terminal state. For a won game
// Winner is the winning piece; for an abandoned game Forfeit is the piece of
// the player who left.
type GameResult struct {
	ID         string      `json:"id"`
	Outcome    Outcome     `json:"outcome"`
	Cross      string      `json:"cross"`
	Dot        string      `json:"dot"`
	Winner     Piece       `json:"winner,omitempty"`
	Forfeit    Piece       `json:"forfeit,omitempty"`
	Line       WinningLine `json:"line,omitempty"`
	FinishedAt time.Time   `json:"finished_at"`
}

func NewGameResult(outcome Outcome, player, opponent *Player) GameResult {
	result := GameResult{
		ID:         uuid.NewString(),
		Outcome:    outcome,
		FinishedAt: time.Now().UTC(),
	}

	for _, p := range []*Player{player, opponent} {
		switch p.Piece() {
		case Cross:
			result.Cross = p.Name
		case Dot:
			result.Dot = p.Name
		}
	}

	return result
}

// NameOf returns the name of the player that played piece.
func (that GameResult) NameOf(piece Piece) string {
	if piece == Cross {
		return that.Cross
	}
	return that.Dot
}

// PlayerStats aggregates the results of every game played under one name.
type PlayerStats struct {
	Name      string `json:"name"`
	Won       int64  `json:"won"`
	Lost      int64  `json:"lost"`
	Tied      int64  `json:"tied"`
	Abandoned int64  `json:"abandoned"`
	Forfeited int64  `json:"forfeited"`
}
