package battle

import "github.com/samdwyer/battlecore/internal/handle"

// Phase is the battle's coarse state-machine position.
type Phase int

const (
	NotStarted Phase = iota
	InputPhase
	ExecutionPhase
	Ended
)

func (p Phase) String() string {
	switch p {
	case NotStarted:
		return "NotStarted"
	case InputPhase:
		return "InputPhase"
	case ExecutionPhase:
		return "ExecutionPhase"
	default:
		return "Ended"
	}
}

// Result is the terminal (or in-progress) outcome of a battle.
type Result int

const (
	Ongoing Result = iota
	PlayerWin
	FoeWin
	Draw
	PlayerEscaped
)

func (r Result) String() string {
	switch r {
	case PlayerWin:
		return "PlayerWin"
	case FoeWin:
		return "FoeWin"
	case Draw:
		return "Draw"
	case PlayerEscaped:
		return "PlayerEscaped"
	default:
		return "Ongoing"
	}
}

// LogEntry is one append-only line in the battle's narration log.
type LogEntry struct {
	Turn   int
	Text   string
	Source handle.Handle
	Target handle.Handle
}

// state is the engine's mutable internal turn/queue bookkeeping.
type state struct {
	phase Phase
	turn  int

	queue           []QueuedAction
	playerSubmitted bool
	foeSubmitted    bool

	playerAwaitSwitch bool
	foeAwaitSwitch    bool

	result Result
	log    []LogEntry
}

// StateView is the read-only snapshot CurrentState returns to a host.
type StateView struct {
	Phase             Phase
	Turn              int
	Result            Result
	IsPvP             bool
	PlayerAwaitSwitch bool
	FoeAwaitSwitch    bool
	Log               []LogEntry
}
