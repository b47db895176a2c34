package combat

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"lanewar/internal/config"
)

// World is the full mutable state of one match. It is owned by a single
// goroutine; every update goes through its methods.
type World struct {
	Cat        *config.Catalog
	Difficulty *config.DifficultyDef
	Mode       Mode
	MatchID    string

	Players      [2]*Player
	Units        []*Unit
	Projectiles  []*Projectile
	Effects      []Effect
	Texts        []FloatingText
	Cooldowns    map[string]float64
	PendingSpell string

	Time         float64
	Status       MatchStatus
	LastDecision float64

	// Policy drives the Opponent side. Nil means the opponent never acts.
	Policy  Decider
	OnEvent func(Event)

	clock Clock
	log   *slog.Logger
}

func NewWorld(cat *config.Catalog, diff *config.DifficultyDef, mode Mode, clock Clock) *World {
	if clock == nil {
		clock = SystemClock{}
	}
	w := &World{
		Cat:        cat,
		Difficulty: diff,
		Mode:       mode,
		MatchID:    uuid.NewString(),
		Cooldowns:  map[string]float64{},
		Status:     Playing,
		clock:      clock,
		log:        slog.Default(),
	}
	w.Players[Human] = newPlayer(cat, cat.Player.ManaRegen)
	opp := newPlayer(cat, cat.Player.OpponentManaRegen*diff.ManaMul)
	opp.HP *= diff.BaseHPMul
	opp.MaxHP *= diff.BaseHPMul
	opp.Mana = math.Min(opp.MaxMana, opp.Mana*diff.ManaMul)
	w.Players[Opponent] = opp
	return w
}

func newPlayer(cat *config.Catalog, regen float64) *Player {
	p := &Player{
		HP:        cat.Player.HP,
		MaxHP:     cat.Player.HP,
		Mana:      cat.Player.Mana,
		MaxMana:   cat.Player.MaxMana,
		ManaRegen: regen,
		Upgrades:  map[string]int{},
	}
	for _, u := range cat.Upgrades {
		p.Upgrades[u.ID] = 0
	}
	if a := cat.Age(0); a != nil {
		p.MaxExp = a.EvolveExp
	}
	return p
}

// SetLogger replaces the logger used for diagnostics.
func (w *World) SetLogger(l *slog.Logger) {
	if l != nil {
		w.log = l
	}
}

func (w *World) Clock() Clock { return w.clock }

func (w *World) Player(s Side) *Player { return w.Players[s] }

// Unit finds a unit by instance id, dying units included.
func (w *World) Unit(id string) *Unit {
	for _, u := range w.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// DecisionInterval is the match-time gap between opponent decisions.
func (w *World) DecisionInterval() float64 {
	if w.Mode == ModeExternal {
		return w.Difficulty.ExternalInterval
	}
	return w.Difficulty.ScriptedInterval
}

func (w *World) emit(typ string, payload map[string]any) {
	if w.OnEvent == nil {
		return
	}
	w.OnEvent(Event{T: w.Time, Type: typ, Payload: payload})
}

func (w *World) addEffect(kind string, x float64) {
	w.Effects = append(w.Effects, Effect{
		ID:        uuid.NewString(),
		Kind:      kind,
		Pos:       Vec2{X: x, Y: w.Cat.Combat.ProjectileHeight},
		CreatedAt: w.clock.Now(),
		Duration:  time.Duration(w.Cat.EffectMS(kind)) * time.Millisecond,
	})
}

func (w *World) addText(kind, text string, pos Vec2) {
	w.Texts = append(w.Texts, FloatingText{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      kind,
		Pos:       pos,
		CreatedAt: w.clock.Now(),
		Duration:  time.Duration(w.Cat.Combat.FloatingTextMS) * time.Millisecond,
	})
}

// damageText shows "-N" above a unit.
func (w *World) damageText(by Side, target *Unit, amount float64) {
	kind := TextPlayerDamage
	if by == Opponent {
		kind = TextEnemyDamage
	}
	w.addText(kind, fmt.Sprintf("-%d", int(math.Round(amount))), Vec2{X: target.Position, Y: target.Offset})
}

// upgradeLevel returns the purchased level of the upgrade with the given effect.
func (w *World) upgradeLevel(s Side, effect string) (int, *config.UpgradeDef) {
	up, ok := w.Cat.UpgradeFor(effect)
	if !ok {
		return 0, nil
	}
	return w.Players[s].Upgrades[up.ID], up
}

func (w *World) percentBonus(s Side, effect string) float64 {
	lvl, up := w.upgradeLevel(s, effect)
	if up == nil {
		return 1
	}
	return 1 + float64(lvl)*up.Amount/100
}

// Summon spends mana and places a new unit at the side's own base.
func (w *World) Summon(s Side, unitID string) (*Unit, error) {
	if w.Status != Playing {
		return nil, ErrNotPlaying
	}
	def, ok := w.Cat.Unit(unitID)
	if !ok {
		return nil, ErrUnknownUnit
	}
	p := w.Players[s]
	if age := w.Cat.Age(p.Age); age == nil || !age.HasUnit(unitID) {
		return nil, ErrLocked
	}
	if p.Mana < def.Cost {
		return nil, ErrInsufficientMana
	}
	p.Mana -= def.Cost

	hp := def.HP * w.percentBonus(s, config.UpgradeUnitHP)
	pos := 0.0
	if s == Opponent {
		hp *= w.Difficulty.UnitHPMul
		pos = w.Cat.LaneLength
	}
	u := &Unit{
		ID:             fmt.Sprintf("%s_%s_%s", s, def.ID, uuid.NewString()),
		UnitID:         def.ID,
		Owner:          s,
		HP:             hp,
		MaxHP:          hp,
		Position:       pos,
		AttackCooldown: 1 / def.AttackSpeed,
		Status:         Moving,
		def:            def,
	}
	w.Units = append(w.Units, u)
	w.emit(EventSummon, map[string]any{"side": s.String(), "unit": def.ID, "id": u.ID})
	return u, nil
}

// Reap removes units that have been dying for at least the grace delay.
// It runs on wall time, outside the tick.
func (w *World) Reap(now time.Time) int {
	grace := time.Duration(w.Cat.Combat.DeathGraceMS) * time.Millisecond
	kept := w.Units[:0]
	removed := 0
	for _, u := range w.Units {
		if u.Status == Dying && expired(u.DiedAt, grace, now) {
			removed++
			continue
		}
		kept = append(kept, u)
	}
	for i := len(kept); i < len(w.Units); i++ {
		w.Units[i] = nil
	}
	w.Units = kept
	return removed
}

// Apply executes a policy command for side s.
func (w *World) Apply(s Side, cmd Command) error {
	if cmd.Generation != "" && cmd.Generation != w.MatchID {
		return ErrStaleCommand
	}
	switch cmd.Kind {
	case CmdSummon:
		_, err := w.Summon(s, cmd.UnitID)
		return err
	case CmdEvolve:
		return w.Evolve(s, s == Human)
	default:
		return nil
	}
}
