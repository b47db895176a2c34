// Package match runs one interactive session: it owns the current World,
// paces its ticks, applies player commands and fans snapshots out.
package match

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"lanewar/internal/ai"
	"lanewar/internal/combat"
	"lanewar/internal/config"
	"lanewar/internal/protocol"
)

var (
	ErrUnknownMode       = errors.New("match: unknown mode")
	ErrUnknownDifficulty = errors.New("match: unknown difficulty")
	ErrNoMatch           = errors.New("match: no match in progress")
	ErrBadSpeed          = errors.New("match: unsupported speed")
)

// Speeds are the accepted game speed multipliers.
var Speeds = []int{1, 2, 4}

func ParseMode(s string) (combat.Mode, error) {
	switch strings.ToLower(s) {
	case "scripted":
		return combat.ModeScripted, nil
	case "external", "ai":
		return combat.ModeExternal, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

type Options struct {
	Catalog *config.Catalog
	Clock   combat.Clock
	Logger  *slog.Logger
	// Provider backs external mode. Nil leaves the opponent idle in that mode.
	Provider        ai.Provider
	ProviderTimeout time.Duration
	Sink            Sink
}

// Match is driven by a single goroutine (Run, or the caller of Step and
// Handle when Run is not used). Send, Snapshot and Subscribe are safe from
// any goroutine.
type Match struct {
	Inbox chan any

	cat   *config.Catalog
	clock combat.Clock
	log   *slog.Logger
	opts  Options
	pacer *Pacer

	world      *combat.World
	policy     ai.Policy
	mode       combat.Mode
	difficulty string
	speed      int

	mu      sync.RWMutex
	latest  protocol.State
	subs    map[int]chan protocol.Message
	nextSub int
}

func New(opts Options) *Match {
	if opts.Clock == nil {
		opts.Clock = combat.SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	m := &Match{
		Inbox: make(chan any, 64),
		cat:   opts.Catalog,
		clock: opts.Clock,
		log:   opts.Logger,
		opts:  opts,
		pacer: NewPacer(opts.Catalog.TickRate),
		speed: 1,
		subs:  map[int]chan protocol.Message{},
	}
	m.latest = protocol.MenuState(m.speed)
	return m
}

// World is the live state. Only the driving goroutine may touch it.
func (m *Match) World() *combat.World { return m.world }

func (m *Match) Speed() int { return m.speed }

func (m *Match) Pacer() *Pacer { return m.pacer }

// Start discards any current match and begins a new one.
func (m *Match) Start(mode combat.Mode, difficulty string) error {
	if mode != combat.ModeScripted && mode != combat.ModeExternal {
		return fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	diff, ok := m.cat.Difficulty(difficulty)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownDifficulty, difficulty)
	}
	m.discard()

	w := combat.NewWorld(m.cat, diff, mode, m.clock)
	w.SetLogger(m.log.With("match", w.MatchID))
	w.OnEvent = m.onEvent
	switch mode {
	case combat.ModeExternal:
		m.policy = ai.NewExternal(m.opts.Provider, m.opts.ProviderTimeout, m.log.With("match", w.MatchID))
	default:
		m.policy = ai.NewScripted()
	}
	w.Policy = m.policy

	m.world, m.mode, m.difficulty = w, mode, diff.ID
	m.speed = 1
	m.pacer.Reset()
	m.log.Info("match started", "match", w.MatchID, "mode", mode, "difficulty", diff.ID, "external_provider", m.opts.Provider != nil)
	m.publish(m.clock.Now())
	return nil
}

// Restart drops the current match and returns to the menu.
func (m *Match) Restart() {
	if m.world != nil {
		m.log.Info("match discarded", "match", m.world.MatchID, "status", m.world.Status.String(), "time", m.world.Time)
	}
	m.discard()
	m.speed = 1
	m.publish(m.clock.Now())
}

func (m *Match) discard() {
	if s, ok := m.policy.(interface{ Stop() }); ok {
		s.Stop()
	}
	m.policy = nil
	m.world = nil
}

// Handle applies one command. Rejections leave the world untouched.
func (m *Match) Handle(cmd any) error {
	err := m.handle(cmd)
	if err != nil {
		m.log.Debug("command rejected", "cmd", fmt.Sprintf("%T", cmd), "err", err)
	}
	m.publish(m.clock.Now())
	return err
}

func (m *Match) handle(cmd any) error {
	switch c := cmd.(type) {
	case Start:
		return m.Start(c.Mode, c.Difficulty)
	case Restart:
		m.Restart()
		return nil
	case SetSpeed:
		if !slices.Contains(Speeds, c.Speed) {
			return fmt.Errorf("%w: %d", ErrBadSpeed, c.Speed)
		}
		m.speed = c.Speed
		return nil
	}

	w := m.world
	if w == nil {
		return ErrNoMatch
	}
	switch c := cmd.(type) {
	case Summon:
		_, err := w.Summon(combat.Human, c.Unit)
		return err
	case CastSpell:
		return w.CastSpell(c.Spell)
	case SelectTarget:
		return w.SelectSpellTarget(c.Unit)
	case CancelTargeting:
		w.CancelTargeting()
		return nil
	case Evolve:
		return w.Evolve(combat.Human, true)
	case PurchaseUpgrade:
		return w.PurchaseUpgrade(combat.Human, c.Upgrade)
	}
	return fmt.Errorf("unknown command %T", cmd)
}

// Send queues cmd for the Run loop.
func (m *Match) Send(ctx context.Context, cmd any) error {
	select {
	case m.Inbox <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Step reaps expired corpses and runs a tick if the pacer allows one.
// It reports whether a tick ran.
func (m *Match) Step(now time.Time) bool {
	if m.world == nil {
		return false
	}
	m.world.Reap(now)
	if !m.pacer.Due(now) {
		return false
	}
	m.world.Tick(m.pacer.Interval().Seconds() * float64(m.speed))
	m.publish(now)
	return true
}

// Run drives the match until ctx is done.
func (m *Match) Run(ctx context.Context) error {
	poll := m.pacer.Interval() / 4
	if poll <= 0 {
		poll = time.Millisecond
	}
	ticker := time.NewTicker(poll)
	defer ticker.Stop()
	defer m.discard()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case cmd := <-m.Inbox:
			_ = m.Handle(cmd)
		case <-ticker.C:
			m.Step(m.clock.Now())
		}
	}
}

func (m *Match) onEvent(ev combat.Event) {
	m.broadcast(protocol.Message{T: protocol.MsgEvent, P: protocol.FromEvent(ev)})
	if ev.Type != combat.EventMatchEnd || m.world == nil {
		return
	}
	w := m.world
	res := Result{
		Match:      w.MatchID,
		Mode:       string(m.mode),
		Difficulty: m.difficulty,
		Outcome:    w.Status.String(),
		Duration:   w.Time,
		EliteKills: w.Player(combat.Human).EliteKills,
	}
	m.log.Info("match ended", "match", res.Match, "outcome", res.Outcome, "duration", res.Duration)
	if m.opts.Sink != nil {
		m.opts.Sink.MatchEnded(res)
	}
}

func (m *Match) publish(now time.Time) {
	var s protocol.State
	if m.world == nil {
		s = protocol.MenuState(m.speed)
	} else {
		s = protocol.FromWorld(m.world, now, m.speed)
	}
	m.mu.Lock()
	m.latest = s
	m.mu.Unlock()
	m.broadcast(protocol.Message{T: protocol.MsgState, P: s})
}

// broadcast never blocks; a subscriber that is behind misses the message.
func (m *Match) broadcast(msg protocol.Message) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, ch := range m.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Snapshot is the most recently published state.
func (m *Match) Snapshot() protocol.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}

// Subscribe returns a stream of state and event messages and a func to stop it.
func (m *Match) Subscribe() (<-chan protocol.Message, func()) {
	ch := make(chan protocol.Message, 32)
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	m.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.subs, id)
			m.mu.Unlock()
		})
	}
}
