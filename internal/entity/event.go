package entity

import "github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"

type EventType string

const (
	EventPlayerReady       EventType = "PlayerReady"
	EventGameStarted       EventType = "GameStarted"
	EventPlayerTookTurn    EventType = "PlayerTookTurn"
	EventOpponentTookTurn  EventType = "OpponentTookTurn"
	EventPlayerWon         EventType = "PlayerWon"
	EventPlayerLost        EventType = "PlayerLost"
	EventPlayerTied        EventType = "PlayerTied"
	EventOpponentAbandoned EventType = "OpponentAbandoned"
	EventUnexpectedError   EventType = "UnexpectedError"
)

// Event is addressed to exactly one player. The Player field of every event
// describes the recipient and Opponent the other side of its game.
type Event interface {
	EventType() EventType
	isEvent()
}

type PlayerReadyEvent struct {
	Type   EventType      `json:"type"`
	Player PlayerSnapshot `json:"player"`
}

type GameStartedEvent struct {
	Type     EventType      `json:"type"`
	Player   PlayerSnapshot `json:"player"`
	Opponent PlayerSnapshot `json:"opponent"`
}

type PlayerTookTurnEvent struct {
	Type     EventType      `json:"type"`
	Player   PlayerSnapshot `json:"player"`
	Opponent PlayerSnapshot `json:"opponent"`
	Position Position       `json:"position"`
}

type OpponentTookTurnEvent struct {
	Type     EventType      `json:"type"`
	Player   PlayerSnapshot `json:"player"`
	Opponent PlayerSnapshot `json:"opponent"`
	Position Position       `json:"position"`
}

type PlayerWonEvent struct {
	Type     EventType      `json:"type"`
	Player   PlayerSnapshot `json:"player"`
	Opponent PlayerSnapshot `json:"opponent"`
	Line     WinningLine    `json:"line"`
}

type PlayerLostEvent struct {
	Type     EventType      `json:"type"`
	Player   PlayerSnapshot `json:"player"`
	Opponent PlayerSnapshot `json:"opponent"`
	Line     WinningLine    `json:"line"`
}

type PlayerTiedEvent struct {
	Type     EventType      `json:"type"`
	Player   PlayerSnapshot `json:"player"`
	Opponent PlayerSnapshot `json:"opponent"`
}

type OpponentAbandonedEvent struct {
	Type     EventType      `json:"type"`
	Player   PlayerSnapshot `json:"player"`
	Opponent PlayerSnapshot `json:"opponent"`
}

type UnexpectedErrorEvent struct {
	Type  EventType                `json:"type"`
	Error apperror.UnexpectedError `json:"error"`
}

func NewPlayerReady(player *Player) PlayerReadyEvent {
	return PlayerReadyEvent{Type: EventPlayerReady, Player: player.Snapshot()}
}

func NewGameStarted(player, opponent *Player) GameStartedEvent {
	return GameStartedEvent{Type: EventGameStarted, Player: player.Snapshot(), Opponent: opponent.Snapshot()}
}

func NewPlayerTookTurn(player, opponent *Player, position Position) PlayerTookTurnEvent {
	return PlayerTookTurnEvent{
		Type:     EventPlayerTookTurn,
		Player:   player.Snapshot(),
		Opponent: opponent.Snapshot(),
		Position: position,
	}
}

func NewOpponentTookTurn(player, opponent *Player, position Position) OpponentTookTurnEvent {
	return OpponentTookTurnEvent{
		Type:     EventOpponentTookTurn,
		Player:   player.Snapshot(),
		Opponent: opponent.Snapshot(),
		Position: position,
	}
}

func NewPlayerWon(player, opponent *Player, line WinningLine) PlayerWonEvent {
	return PlayerWonEvent{Type: EventPlayerWon, Player: player.Snapshot(), Opponent: opponent.Snapshot(), Line: line}
}

func NewPlayerLost(player, opponent *Player, line WinningLine) PlayerLostEvent {
	return PlayerLostEvent{Type: EventPlayerLost, Player: player.Snapshot(), Opponent: opponent.Snapshot(), Line: line}
}

func NewPlayerTied(player, opponent *Player) PlayerTiedEvent {
	return PlayerTiedEvent{Type: EventPlayerTied, Player: player.Snapshot(), Opponent: opponent.Snapshot()}
}

func NewOpponentAbandoned(player, opponent *Player) OpponentAbandonedEvent {
	return OpponentAbandonedEvent{Type: EventOpponentAbandoned, Player: player.Snapshot(), Opponent: opponent.Snapshot()}
}

func NewUnexpectedError(kind apperror.UnexpectedError) UnexpectedErrorEvent {
	return UnexpectedErrorEvent{Type: EventUnexpectedError, Error: kind}
}

func (that PlayerReadyEvent) EventType() EventType { return that.Type }
func (that GameStartedEvent) EventType() EventType { return that.Type }
func (that PlayerTookTurnEvent) EventType() EventType { return that.Type }
func (that OpponentTookTurnEvent) EventType() EventType { return that.Type }
func (that PlayerWonEvent) EventType() EventType { return that.Type }
func (that PlayerLostEvent) EventType() EventType { return that.Type }
func (that PlayerTiedEvent) EventType() EventType { return that.Type }
func (that OpponentAbandonedEvent) EventType() EventType { return that.Type }
func (that UnexpectedErrorEvent) EventType() EventType { return that.Type }

func (PlayerReadyEvent) isEvent() {}
func (GameStartedEvent) isEvent() {}
func (PlayerTookTurnEvent) isEvent() {}
func (OpponentTookTurnEvent) isEvent() {}
func (PlayerWonEvent) isEvent() {}
func (PlayerLostEvent) isEvent() {}
func (PlayerTiedEvent) isEvent() {}
func (OpponentAbandonedEvent) isEvent() {}
func (UnexpectedErrorEvent) isEvent() {}
