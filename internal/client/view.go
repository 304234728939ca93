package client

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-lobby/internal/entity"
)

// Snapshot and Event mirror the server's wire format. Every event kind decodes
// into the same flat Event; fields an event does not carry stay empty.
type Snapshot struct {
	Name  string `json:"name"`
	State string `json:"state"`
	Piece string `json:"piece"`
}

type Event struct {
	Type     entity.EventType `json:"type"`
	Player   Snapshot         `json:"player"`
	Opponent Snapshot         `json:"opponent"`
	Position entity.Position  `json:"position"`
	Line     string           `json:"line"`
	Error    string           `json:"error"`
}

const (
	crossColor  = "1"
	dotColor    = "4"
	noticeColor = "3"
)

// View keeps the board as seen by one player and draws it to a terminal.
type View struct {
	mu  sync.Mutex
	out *termenv.Output

	cells    [9]entity.Piece
	player   Snapshot
	opponent Snapshot
	status   string
	notice   string
}

func NewView(w io.Writer, opts ...termenv.OutputOption) *View {
	return &View{
		out:    termenv.NewOutput(w, opts...),
		status: "Connecting...",
	}
}

// Apply updates the view with event and redraws it.
func (that *View) Apply(event Event) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.apply(event)
	that.draw()
}

// Notify shows message under the board until the next event.
func (that *View) Notify(message string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.notice = message
	that.draw()
}

func (that *View) apply(event Event) {
	that.notice = ""

	switch event.Type {
	case entity.EventPlayerReady:
		that.cells = [9]entity.Piece{}
		that.player, that.opponent = event.Player, Snapshot{}
		that.status = "Waiting for an opponent..."

	case entity.EventGameStarted:
		that.cells = [9]entity.Piece{}
		that.player, that.opponent = event.Player, event.Opponent
		that.status = that.turnStatus()

	case entity.EventPlayerTookTurn:
		that.player, that.opponent = event.Player, event.Opponent
		that.place(event.Position, event.Player.Piece)
		that.status = that.turnStatus()

	case entity.EventOpponentTookTurn:
		that.player, that.opponent = event.Player, event.Opponent
		that.place(event.Position, event.Opponent.Piece)
		that.status = that.turnStatus()

	case entity.EventPlayerWon:
		that.player, that.opponent = event.Player, event.Opponent
		that.status = fmt.Sprintf("You won on the %s! Type replay for a new game.", lineName(event.Line))

	case entity.EventPlayerLost:
		that.player, that.opponent = event.Player, event.Opponent
		that.status = fmt.Sprintf("%s won on the %s. Type replay for a new game.", event.Opponent.Name, lineName(event.Line))

	case entity.EventPlayerTied:
		that.player, that.opponent = event.Player, event.Opponent
		that.status = "It's a tie. Type replay for a new game."

	case entity.EventOpponentAbandoned:
		that.player, that.opponent = event.Player, event.Opponent
		that.status = fmt.Sprintf("%s left the game. Type replay for a new game.", event.Opponent.Name)

	case entity.EventUnexpectedError:
		that.notice = errorMessage(event.Error)
	}
}

func (that *View) place(position entity.Position, piece string) {
	for i, p := range entity.Positions {
		if p == position {
			that.cells[i] = entity.Piece(piece)
			return
		}
	}
}

func (that *View) turnStatus() string {
	if that.player.State == string(entity.StateTakingTurn) {
		return "Your turn: type 1-9 or a position such as top-left."
	}
	return fmt.Sprintf("Waiting for %s...", that.opponent.Name)
}

func (that *View) draw() {
	that.out.ClearScreen()
	_, _ = io.WriteString(that.out, that.render())
}

// render returns the whole screen: players, board, status and notice.
func (that *View) render() string {
	var b strings.Builder

	if that.opponent.Name != "" {
		fmt.Fprintf(&b, "%s (%s) vs %s (%s)\n\n",
			that.player.Name, that.mark(entity.Piece(that.player.Piece)),
			that.opponent.Name, that.mark(entity.Piece(that.opponent.Piece)))
	} else if that.player.Name != "" {
		fmt.Fprintf(&b, "%s\n\n", that.player.Name)
	}

	for row := 0; row < 3; row++ {
		cells := make([]string, 3)
		for col := 0; col < 3; col++ {
			i := row*3 + col
			if that.cells[i] == entity.NoPiece {
				cells[col] = fmt.Sprintf("%d", i+1)
			} else {
				cells[col] = that.mark(that.cells[i])
			}
		}

		fmt.Fprintf(&b, " %s \n", strings.Join(cells, " | "))
		if row < 2 {
			b.WriteString("---+---+---\n")
		}
	}

	fmt.Fprintf(&b, "\n%s\n", that.status)
	if that.notice != "" {
		fmt.Fprintf(&b, "%s\n", that.out.String(that.notice).Foreground(that.out.Color(noticeColor)).String())
	}

	return b.String()
}

func (that *View) mark(piece entity.Piece) string {
	switch piece {
	case entity.Cross:
		return that.out.String("X").Foreground(that.out.Color(crossColor)).Bold().String()
	case entity.Dot:
		return that.out.String("O").Foreground(that.out.Color(dotColor)).Bold().String()
	default:
		return " "
	}
}

func lineName(line string) string {
	return strings.ReplaceAll(line, "-", " ")
}

func errorMessage(kind string) string {
	switch kind {
	case "AlreadyJoined":
		return "You have already joined."
	case "PositionTaken":
		return "That position is taken."
	case "OutOfTurn":
		return "It is not your turn."
	case "NotInGame":
		return "You are not in a game."
	default:
		return "Error: " + kind
	}
}
