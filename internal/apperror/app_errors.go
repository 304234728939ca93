package apperror

import "errors"

// UnexpectedError is reported to a player whose command could not be applied.
// Its value is the wire representation carried by the UnexpectedError event.
type UnexpectedError string

const (
	ErrAlreadyJoined UnexpectedError = "AlreadyJoined"
	ErrPositionTaken UnexpectedError = "PositionTaken"
	ErrOutOfTurn     UnexpectedError = "OutOfTurn"
	ErrNotInGame     UnexpectedError = "NotInGame"
)

func (that UnexpectedError) Error() string {
	return string(that)
}

var (
	ErrUnknownCommand  = errors.New("unknown command")
	ErrInvalidPosition = errors.New("invalid position")
	ErrNotFound        = errors.New("not found")
	ErrStatsDisabled   = errors.New("stats are disabled")
)
