package ai

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"lanewar/internal/combat"
)

// External asks a Provider for each decision. The call runs off the tick
// goroutine; its result lands in a one-slot inbox that Poll drains. While a
// call is outstanding Decide does nothing.
type External struct {
	provider Provider
	timeout  time.Duration
	log      *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	inflight atomic.Bool
	inbox    slot
}

// NewExternal returns a policy backed by p. A nil p never decides.
func NewExternal(p Provider, timeout time.Duration, log *slog.Logger) *External {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &External{
		provider: p,
		timeout:  timeout,
		log:      log,
		ctx:      ctx,
		cancel:   cancel,
		inbox:    newSlot(),
	}
}

func (e *External) Name() string { return string(combat.ModeExternal) }

func (e *External) Decide(w *combat.World) {
	if e.provider == nil || e.ctx.Err() != nil {
		return
	}
	if !e.inflight.CompareAndSwap(false, true) {
		return
	}
	snap := BuildSnapshot(w)
	prompt, err := Prompt(snap)
	if err != nil {
		e.inflight.Store(false)
		e.log.Warn("build prompt", "err", err)
		return
	}
	go e.ask(w.MatchID, prompt, snap.SummonableUnits)
}

func (e *External) ask(generation, prompt string, summonable []SummonOption) {
	defer e.inflight.Store(false)
	ctx, cancel := context.WithTimeout(e.ctx, e.timeout)
	defer cancel()

	start := time.Now()
	text, err := e.provider.Generate(ctx, prompt)
	if err != nil {
		e.log.Warn("provider decision failed", "match", generation, "elapsed", time.Since(start), "err", err)
		return
	}
	cmd := ParseResponse(text, summonable)
	cmd.Generation = generation
	e.log.Debug("provider decision", "match", generation, "cmd", cmd.Kind.String(), "unit", cmd.UnitID, "elapsed", time.Since(start))
	if cmd.Kind == combat.CmdWait {
		return
	}
	e.inbox.put(cmd)
}

func (e *External) Poll() (combat.Command, bool) { return e.inbox.take() }

// Busy reports whether a provider call is outstanding.
func (e *External) Busy() bool { return e.inflight.Load() }

// Stop abandons any outstanding call. Later Decide calls do nothing.
func (e *External) Stop() { e.cancel() }
