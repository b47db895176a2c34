package combat

import (
	"errors"
	"math"
	"testing"
	"time"

	"lanewar/internal/config"
)

const dt = 1.0 / 60

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestWorld(t *testing.T, difficulty string) (*World, *ManualClock) {
	t.Helper()
	cat, err := config.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	diff, ok := cat.Difficulty(difficulty)
	if !ok {
		t.Fatalf("difficulty %q missing", difficulty)
	}
	clock := NewManualClock(epoch)
	return NewWorld(cat, diff, ModeScripted, clock), clock
}

// place adds a unit directly, bypassing mana and age checks.
func place(t *testing.T, w *World, s Side, unitID string, pos float64) *Unit {
	t.Helper()
	p := w.Players[s]
	mana, age := p.Mana, p.Age
	p.Mana = p.MaxMana
	p.Age = len(w.Cat.Ages) - 1
	if !w.Cat.Ages[p.Age].HasUnit(unitID) {
		p.Age = 0
	}
	u, err := w.Summon(s, unitID)
	if err != nil {
		t.Fatalf("summon %s: %v", unitID, err)
	}
	p.Mana, p.Age = mana, age
	u.Position = pos
	return u
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

type stubPolicy struct {
	decided int
	queue   []Command
}

func (s *stubPolicy) Decide(*World) { s.decided++ }
func (s *stubPolicy) Poll() (Command, bool) {
	if len(s.queue) == 0 {
		return Command{}, false
	}
	c := s.queue[0]
	s.queue = s.queue[1:]
	return c, true
}

func TestNewWorldAppliesDifficultyToOpponent(t *testing.T) {
	w, _ := newTestWorld(t, "hard")
	h, o := w.Players[Human], w.Players[Opponent]
	if h.HP != 1000 || h.ManaRegen != 5 || h.MaxExp != 400 {
		t.Fatalf("human = %+v", h)
	}
	if !approx(o.HP, 1500) || !approx(o.MaxHP, 1500) {
		t.Fatalf("opponent hp = %v/%v, want 1500", o.HP, o.MaxHP)
	}
	if !approx(o.ManaRegen, 3.9) || !approx(o.Mana, 260) {
		t.Fatalf("opponent mana = %v regen = %v", o.Mana, o.ManaRegen)
	}
	if w.Status != Playing || w.MatchID == "" {
		t.Fatalf("status = %v id = %q", w.Status, w.MatchID)
	}
}

func TestSummonAffordableUnit(t *testing.T) {
	w, _ := newTestWorld(t, "normal")
	w.Players[Human].Mana = 100
	u, err := w.Summon(Human, "swordsman")
	if err != nil {
		t.Fatalf("summon: %v", err)
	}
	if w.Players[Human].Mana != 50 {
		t.Fatalf("mana = %v, want 50", w.Players[Human].Mana)
	}
	if len(w.Units) != 1 || u.Position != 0 || u.HP != 100 || u.MaxHP != 100 {
		t.Fatalf("unit = %+v", u)
	}
	if u.Status != Moving || u.AttackCooldown != 1 {
		t.Fatalf("unit status = %v cd = %v", u.Status, u.AttackCooldown)
	}
}

func TestSummonScalesHPByUpgrade(t *testing.T) {
	w, _ := newTestWorld(t, "normal")
	w.Players[Human].Upgrades["unit_hp"] = 2
	u, err := w.Summon(Human, "swordsman")
	if err != nil {
		t.Fatalf("summon: %v", err)
	}
	if u.HP != 120 || u.MaxHP != 120 {
		t.Fatalf("hp = %v/%v, want 120", u.HP, u.MaxHP)
	}
}

func TestOpponentSummonSpawnsAtFarBase(t *testing.T) {
	w, _ := newTestWorld(t, "hard")
	u, err := w.Summon(Opponent, "shieldman")
	if err != nil {
		t.Fatalf("summon: %v", err)
	}
	if u.Position != 100 || !approx(u.HP, 240) {
		t.Fatalf("unit = %+v", u)
	}
}

func TestRejectedSummonIsIdempotent(t *testing.T) {
	w, _ := newTestWorld(t, "normal")
	w.Players[Human].Mana = 40
	for i := 0; i < 10; i++ {
		if _, err := w.Summon(Human, "swordsman"); !errors.Is(err, ErrInsufficientMana) {
			t.Fatalf("err = %v, want ErrInsufficientMana", err)
		}
	}
	if w.Players[Human].Mana != 40 || len(w.Units) != 0 {
		t.Fatalf("state drifted: mana=%v units=%d", w.Players[Human].Mana, len(w.Units))
	}
	if _, err := w.Summon(Human, "dragon"); !errors.Is(err, ErrLocked) {
		t.Fatalf("dragon err = %v, want ErrLocked", err)
	}
	if _, err := w.Summon(Human, "nope"); !errors.Is(err, ErrUnknownUnit) {
		t.Fatalf("unknown err = %v", err)
	}
}

func TestReapRemovesAfterExactGrace(t *testing.T) {
	w, clock := newTestWorld(t, "normal")
	u := place(t, w, Opponent, "swordsman", 50)
	u.HP = 0
	w.Tick(dt)
	if u.Status != Dying {
		t.Fatalf("status = %v, want dying", u.Status)
	}
	clock.Advance(499 * time.Millisecond)
	if n := w.Reap(clock.Now()); n != 0 || len(w.Units) != 1 {
		t.Fatalf("reaped %d early", n)
	}
	clock.Advance(time.Millisecond)
	if n := w.Reap(clock.Now()); n != 1 || len(w.Units) != 0 {
		t.Fatalf("reaped %d at grace, units=%d", n, len(w.Units))
	}
}

func TestApplyDropsStaleGeneration(t *testing.T) {
	w, _ := newTestWorld(t, "normal")
	err := w.Apply(Opponent, Command{Kind: CmdSummon, UnitID: "swordsman", Generation: "old-match"})
	if !errors.Is(err, ErrStaleCommand) {
		t.Fatalf("err = %v, want ErrStaleCommand", err)
	}
	if len(w.Units) != 0 {
		t.Fatalf("stale command created a unit")
	}
	if err := w.Apply(Opponent, Command{Kind: CmdSummon, UnitID: "swordsman", Generation: w.MatchID}); err != nil {
		t.Fatalf("current generation rejected: %v", err)
	}
}

func TestPolicyConsultedOnInterval(t *testing.T) {
	w, _ := newTestWorld(t, "normal")
	pol := &stubPolicy{queue: []Command{{Kind: CmdSummon, UnitID: "archer"}}}
	w.Policy = pol
	w.Tick(dt)
	if pol.decided != 0 {
		t.Fatalf("decided before interval elapsed")
	}
	if len(w.Units) != 1 || w.Units[0].Owner != Opponent {
		t.Fatalf("queued command not applied: %d units", len(w.Units))
	}
	for w.Time <= w.DecisionInterval()+dt {
		w.Tick(dt)
	}
	if pol.decided != 1 {
		t.Fatalf("decided = %d, want 1", pol.decided)
	}
}

func TestManaStaysWithinBounds(t *testing.T) {
	w, _ := newTestWorld(t, "super_hard")
	for i := 0; i < 60*300; i++ {
		w.Tick(dt)
		for s, p := range w.Players {
			if p.Mana < 0 || p.Mana > p.MaxMana {
				t.Fatalf("side %d mana %v out of [0,%v]", s, p.Mana, p.MaxMana)
			}
			if p.HP < 0 || p.HP > p.MaxHP {
				t.Fatalf("side %d hp %v out of [0,%v]", s, p.HP, p.MaxHP)
			}
		}
	}
	if w.Players[Human].Mana != w.Players[Human].MaxMana {
		t.Fatalf("mana should saturate at max, got %v", w.Players[Human].Mana)
	}
}
