package entity

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
)

const DefaultName = "Anonymous"

type PlayerState string

const (
	StateJoining     PlayerState = "joining"
	StateWaitingGame PlayerState = "waiting-game"
	StateTakingTurn  PlayerState = "taking-turn"
	StateWaitingTurn PlayerState = "waiting-turn"
	StateWon         PlayerState = "won"
	StateLost        PlayerState = "lost"
	StateTied        PlayerState = "tied"
	StateAbandoned   PlayerState = "abandoned"
)

// Client is the outbound sink of one connection.
type Client interface {
	Send(event Event)
}

// PlayerSnapshot is the only externally visible view of a player.
type PlayerSnapshot struct {
	Name  string      `json:"name"`
	State PlayerState `json:"state"`
	Piece Piece       `json:"piece,omitempty"`
}

// Player is the per-connection game state. The opponent is a back-reference
// to the other player of the same game; it is never serialized and never
// owns the opponent.
type Player struct {
	ID    string
	Name  string
	State PlayerState

	client   Client
	board    *Board
	opponent *Player
	piece    Piece
}

func NewPlayer(client Client) *Player {
	return &Player{
		ID:     uuid.NewString(),
		Name:   DefaultName,
		State:  StateJoining,
		client: client,
	}
}

func (that *Player) Board() *Board {
	return that.board
}

func (that *Player) Opponent() *Player {
	return that.opponent
}

func (that *Player) Piece() Piece {
	return that.piece
}

func (that *Player) IsJoined() bool {
	return that.State != StateJoining
}

// HasGame reports whether a board, an opponent and a piece are assigned.
func (that *Player) HasGame() bool {
	return that.board != nil && that.opponent != nil && that.piece != NoPiece
}

// IsPairedWith reports whether both players still reference each other.
func (that *Player) IsPairedWith(other *Player) bool {
	return other != nil && that.opponent == other && other.opponent == that
}

// InGame reports whether the player's game is still being played.
func (that *Player) InGame() bool {
	return that.State == StateTakingTurn || that.State == StateWaitingTurn
}

func (that *Player) Send(event Event) {
	that.client.Send(event)
}

func (that *Player) Error(kind apperror.UnexpectedError) {
	that.Send(NewUnexpectedError(kind))
}

func (that *Player) Join(name string) {
	if name != "" {
		that.Name = name
	}

	that.Reset()
}

func (that *Player) Reset() {
	that.State = StateWaitingGame
	that.board = nil
	that.opponent = nil
	that.piece = NoPiece
}

// Start assigns a new game. state must be StateTakingTurn or StateWaitingTurn.
func (that *Player) Start(board *Board, opponent *Player, piece Piece, state PlayerState) {
	if state != StateTakingTurn && state != StateWaitingTurn {
		panic(fmt.Sprintf("player %s cannot start a game in state %q", that.ID, state))
	}

	that.State = state
	that.board = board
	that.opponent = opponent
	that.piece = piece
}

// Leave detaches the player from the lobby so that it is indistinguishable
// from a player that never joined.
func (that *Player) Leave() {
	that.Reset()
	that.State = StateJoining
}

func (that *Player) TakingTurn() { that.State = StateTakingTurn }
func (that *Player) WaitingTurn() { that.State = StateWaitingTurn }
func (that *Player) Won() { that.State = StateWon }
func (that *Player) Lost() { that.State = StateLost }
func (that *Player) Tied() { that.State = StateTied }
func (that *Player) Abandoned() { that.State = StateAbandoned }

func (that *Player) Snapshot() PlayerSnapshot {
	return PlayerSnapshot{
		Name:  that.Name,
		State: that.State,
		Piece: that.piece,
	}
}

func (that *Player) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.Snapshot())
}
