package entity

type CommandType string

const (
	CommandJoin   CommandType = "Join"
	CommandTurn   CommandType = "Turn"
	CommandLeave  CommandType = "Leave"
	CommandReplay CommandType = "Replay"
)

// Command is one of JoinCommand, TurnCommand, LeaveCommand or ReplayCommand.
type Command interface {
	CommandType() CommandType
	isCommand()
}

type JoinCommand struct {
	Name string `json:"name" mapstructure:"name"`
}

type TurnCommand struct {
	Position Position `json:"position" mapstructure:"position"`
}

type LeaveCommand struct{}

type ReplayCommand struct{}

func (JoinCommand) CommandType() CommandType { return CommandJoin }
func (TurnCommand) CommandType() CommandType { return CommandTurn }
func (LeaveCommand) CommandType() CommandType { return CommandLeave }
func (ReplayCommand) CommandType() CommandType { return CommandReplay }

func (JoinCommand) isCommand() {}
func (TurnCommand) isCommand() {}
func (LeaveCommand) isCommand() {}
func (ReplayCommand) isCommand() {}
