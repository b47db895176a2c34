package combat

import (
	"math"
	"time"
)

// Tick advances the match by delta seconds of match time. Order:
// mana, opponent policy, formation, units, projectiles, transients,
// base damage, cooldowns, outcome.
func (w *World) Tick(delta float64) {
	if w.Status != Playing {
		return
	}
	w.Time += delta
	for _, p := range w.Players {
		p.Mana = math.Min(p.MaxMana, p.Mana+p.ManaRegen*delta)
	}

	w.consultPolicy()

	now := w.clock.Now()
	w.planFormation()

	var sc tickScratch
	w.resolveUnits(delta, &sc)
	w.advanceProjectiles(delta, now)
	w.Projectiles = append(w.Projectiles, sc.spawned...)

	w.pruneTransients(now)

	for s, dmg := range sc.baseDamage {
		if dmg > 0 {
			p := w.Players[s]
			p.HP = math.Max(0, p.HP-dmg)
		}
	}

	w.decayCooldowns(delta)
	w.checkOutcome()
}

func (w *World) consultPolicy() {
	if w.Policy == nil {
		return
	}
	if w.Time-w.LastDecision > w.DecisionInterval() {
		w.LastDecision = w.Time
		w.Policy.Decide(w)
	}
	cmd, ok := w.Policy.Poll()
	if !ok {
		return
	}
	if err := w.Apply(Opponent, cmd); err != nil {
		w.log.Debug("opponent command rejected", "match", w.MatchID, "cmd", cmd.Kind.String(), "unit", cmd.UnitID, "err", err)
	}
}

func (w *World) pruneTransients(now time.Time) {
	fx := w.Effects[:0]
	for _, e := range w.Effects {
		if !expired(e.CreatedAt, e.Duration, now) {
			fx = append(fx, e)
		}
	}
	w.Effects = fx

	texts := w.Texts[:0]
	for _, t := range w.Texts {
		if !expired(t.CreatedAt, t.Duration, now) {
			texts = append(texts, t)
		}
	}
	w.Texts = texts
}

func (w *World) checkOutcome() {
	switch {
	case w.Players[Human].HP <= 0:
		w.Status = Lost
	case w.Players[Opponent].HP <= 0:
		w.Status = Won
	default:
		return
	}
	w.emit(EventMatchEnd, map[string]any{
		"match":       w.MatchID,
		"outcome":     w.Status.String(),
		"duration":    w.Time,
		"elite_kills": w.Players[Human].EliteKills,
	})
}
