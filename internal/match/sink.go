package match

import "log/slog"

// Result is what a finished match reports to its Sink.
type Result struct {
	Match      string  `json:"match"`
	Mode       string  `json:"mode"`
	Difficulty string  `json:"difficulty"`
	Outcome    string  `json:"outcome"` // won, lost or timeout
	Duration   float64 `json:"duration"`
	EliteKills int     `json:"elite_kills"`
}

// Sink receives match-end results, e.g. a player profile store.
type Sink interface {
	MatchEnded(Result)
}

type SinkFunc func(Result)

func (f SinkFunc) MatchEnded(r Result) { f(r) }

// LogSink records results in the log only.
type LogSink struct {
	Log *slog.Logger
}

func (s LogSink) MatchEnded(r Result) {
	l := s.Log
	if l == nil {
		l = slog.Default()
	}
	l.Info("match result", "match", r.Match, "outcome", r.Outcome, "duration", r.Duration, "elite_kills", r.EliteKills)
}
