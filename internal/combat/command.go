package combat

type CommandKind int

const (
	CmdWait CommandKind = iota
	CmdSummon
	CmdEvolve
)

func (k CommandKind) String() string {
	switch k {
	case CmdSummon:
		return "SUMMON"
	case CmdEvolve:
		return "EVOLVE"
	default:
		return "WAIT"
	}
}

// Command is a decision produced by an opponent policy. Generation carries
// the MatchID the decision was made for; empty means "current match".
type Command struct {
	Kind       CommandKind
	UnitID     string
	Generation string
}

// Decider is the opponent policy seen from the tick.
// Decide is called once per decision interval, Poll every tick and must not block.
type Decider interface {
	Decide(w *World)
	Poll() (Command, bool)
}
