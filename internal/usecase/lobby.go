package usecase

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// ResultRecorder is told about every game that reaches a terminal state.
// Record is called on the lobby goroutine and must not block.
type ResultRecorder interface {
	Record(result entity.GameResult)
}

type discardResults struct{}

func (discardResults) Record(entity.GameResult) {}

// DiscardResults drops every result.
var DiscardResults ResultRecorder = discardResults{}

// Lobby pairs waiting players and coordinates their turns. It is not safe for
// concurrent use: the transport executes one command at a time.
type Lobby struct {
	logger   *slog.Logger
	recorder ResultRecorder

	// players holds every joined player in join order.
	players []*entity.Player
	// waiting holds players in StateWaitingGame, longest waiting first.
	waiting []*entity.Player
}

func NewLobby(logger *slog.Logger, recorder ResultRecorder) *Lobby {
	if recorder == nil {
		recorder = DiscardResults
	}

	return &Lobby{
		logger:   logger.With("component", "lobby"),
		recorder: recorder,
	}
}

func (that *Lobby) NumPlayers() int {
	return len(that.players)
}

// Execute applies command on behalf of player. Commands that cannot be
// applied are reported to the player as a single UnexpectedError event and
// leave all state untouched.
func (that *Lobby) Execute(player *entity.Player, command entity.Command) {
	var err error

	switch cmd := command.(type) {
	case entity.JoinCommand:
		err = that.join(player, cmd.Name)
	case entity.TurnCommand:
		err = that.turn(player, cmd.Position)
	case entity.LeaveCommand:
		that.leave(player)
	case entity.ReplayCommand:
		err = that.replay(player)
	default:
		panic(fmt.Sprintf("lobby: unhandled command %T", command))
	}

	if err == nil {
		return
	}

	var unexpected apperror.UnexpectedError
	if !errors.As(err, &unexpected) {
		panic(fmt.Sprintf("lobby: unexpected error type %T: %v", err, err))
	}

	that.logger.Debug("command rejected", "playerID", player.ID, "command", command.CommandType(), "error", unexpected)
	player.Error(unexpected)
}

func (that *Lobby) join(player *entity.Player, name string) error {
	if player.IsJoined() {
		return apperror.ErrAlreadyJoined
	}

	player.Join(name)
	that.players = append(that.players, player)

	that.logger.Info("player joined", "playerID", player.ID, "name", player.Name, "players", len(that.players))

	that.ready(player)

	return nil
}

func (that *Lobby) ready(player *entity.Player) {
	player.Send(entity.NewPlayerReady(player))
	that.start(player)
}

// start pairs player with the longest waiting player, if any. The player that
// was already waiting plays cross and moves first.
func (that *Lobby) start(player *entity.Player) {
	opponent := that.findOpponent(player)
	if opponent == nil {
		that.enqueue(player)
		return
	}

	that.dequeue(opponent)

	board := entity.NewBoard()

	opponent.Start(board, player, entity.Cross, entity.StateTakingTurn)
	player.Start(board, opponent, entity.Dot, entity.StateWaitingTurn)

	player.Send(entity.NewGameStarted(player, opponent))
	opponent.Send(entity.NewGameStarted(opponent, player))

	that.logger.Info("game started", "cross", opponent.ID, "dot", player.ID)
}

func (that *Lobby) turn(player *entity.Player, position entity.Position) error {
	if !player.HasGame() {
		return apperror.ErrNotInGame
	}

	if player.State != entity.StateTakingTurn {
		return apperror.ErrOutOfTurn
	}

	board := player.Board()
	if _, occupied := board.IsOccupied(position); occupied {
		return apperror.ErrPositionTaken
	}

	opponent := player.Opponent()

	board.Place(position, player.Piece())

	player.WaitingTurn()
	opponent.TakingTurn()

	player.Send(entity.NewPlayerTookTurn(player, opponent, position))
	opponent.Send(entity.NewOpponentTookTurn(opponent, player, position))

	// only the mover can have completed a line on this turn
	if line, won := board.HasWon(player.Piece()); won {
		player.Won()
		opponent.Lost()

		player.Send(entity.NewPlayerWon(player, opponent, line))
		opponent.Send(entity.NewPlayerLost(opponent, player, line))

		result := entity.NewGameResult(entity.OutcomeWon, player, opponent)
		result.Winner = player.Piece()
		result.Line = line
		that.recorder.Record(result)

		that.logger.Info("game won", "winner", player.ID, "loser", opponent.ID, "line", line)

		return nil
	}

	if board.IsTie() {
		player.Tied()
		opponent.Tied()

		player.Send(entity.NewPlayerTied(player, opponent))
		opponent.Send(entity.NewPlayerTied(opponent, player))

		that.recorder.Record(entity.NewGameResult(entity.OutcomeTied, player, opponent))

		that.logger.Info("game tied", "players", []string{player.ID, opponent.ID})
	}

	return nil
}

func (that *Lobby) replay(player *entity.Player) error {
	if !player.IsJoined() {
		return apperror.ErrNotInGame
	}

	// a finished game is simply left behind; one still running is abandoned
	if player.InGame() {
		that.abandon(player)
	}
	that.dequeue(player)

	player.Reset()
	that.ready(player)

	return nil
}

func (that *Lobby) leave(player *entity.Player) {
	that.abandon(player)

	that.dequeue(player)
	that.players = slices.DeleteFunc(that.players, func(p *entity.Player) bool {
		return p == player
	})

	player.Leave()

	that.logger.Info("player left", "playerID", player.ID, "players", len(that.players))
}

// abandon tells the opponent of player, if they are still paired, that player
// has gone.
func (that *Lobby) abandon(player *entity.Player) {
	opponent := player.Opponent()
	if !player.IsPairedWith(opponent) {
		return
	}

	if player.InGame() {
		result := entity.NewGameResult(entity.OutcomeAbandoned, player, opponent)
		result.Forfeit = player.Piece()
		that.recorder.Record(result)
	}

	opponent.Abandoned()
	opponent.Send(entity.NewOpponentAbandoned(opponent, player))

	that.logger.Info("game abandoned", "playerID", player.ID, "opponentID", opponent.ID)
}

func (that *Lobby) findOpponent(player *entity.Player) *entity.Player {
	for _, other := range that.waiting {
		if other != player && other.State == entity.StateWaitingGame {
			return other
		}
	}

	return nil
}

func (that *Lobby) enqueue(player *entity.Player) {
	if !slices.Contains(that.waiting, player) {
		that.waiting = append(that.waiting, player)
	}
}

func (that *Lobby) dequeue(player *entity.Player) {
	that.waiting = slices.DeleteFunc(that.waiting, func(p *entity.Player) bool {
		return p == player
	})
}
