package ai

import (
	"math/rand"

	"lanewar/internal/combat"
	"lanewar/internal/util"
)

// Autopilot plays the human side in headless runs. Same seed, same choices.
type Autopilot struct {
	rng *rand.Rand

	// UpgradeChance and SpellChance are per-call probabilities.
	UpgradeChance float64
	SpellChance   float64
}

func NewAutopilot(seed int64) *Autopilot {
	return &Autopilot{rng: util.New(seed), UpgradeChance: 0.15, SpellChance: 0.3}
}

// Act issues at most one human command and returns what it did, or "" when
// nothing was affordable.
func (a *Autopilot) Act(w *combat.World) string {
	if w.Evolve(combat.Human, true) == nil {
		return "evolve"
	}
	if a.rng.Float64() < a.SpellChance {
		if name := a.castSpell(w); name != "" {
			return name
		}
	}
	if a.rng.Float64() < a.UpgradeChance {
		if up, ok := util.Pick(a.rng, w.Cat.Upgrades); ok && w.PurchaseUpgrade(combat.Human, up.ID) == nil {
			return "upgrade:" + up.ID
		}
	}
	return a.summon(w)
}

func (a *Autopilot) summon(w *combat.World) string {
	age := w.Cat.Age(w.Player(combat.Human).Age)
	if age == nil {
		return ""
	}
	mana := w.Player(combat.Human).Mana
	var options []string
	for _, id := range age.Units {
		if def, ok := w.Cat.Unit(id); ok && def.Cost <= mana {
			options = append(options, id)
		}
	}
	id, ok := util.Pick(a.rng, options)
	if !ok {
		return ""
	}
	if _, err := w.Summon(combat.Human, id); err != nil {
		return ""
	}
	return "summon:" + id
}

// castSpell tries the current age's spells in order. Targeted spells go at
// the enemy unit furthest down the lane.
func (a *Autopilot) castSpell(w *combat.World) string {
	age := w.Cat.Age(w.Player(combat.Human).Age)
	if age == nil {
		return ""
	}
	for _, id := range age.Spells {
		spell, ok := w.Cat.Spell(id)
		if !ok {
			continue
		}
		if spell.RequiresTarget {
			target := frontEnemy(w)
			if target == nil {
				continue
			}
			if w.CastSpell(id) != nil {
				continue
			}
			if w.SelectSpellTarget(target.ID) == nil {
				return "cast:" + id
			}
			w.CancelTargeting()
			continue
		}
		if !hasWounded(w) {
			continue
		}
		if w.CastSpell(id) == nil {
			return "cast:" + id
		}
	}
	return ""
}

func frontEnemy(w *combat.World) *combat.Unit {
	var best *combat.Unit
	for _, u := range w.Units {
		if u.Owner != combat.Opponent || !u.Alive() {
			continue
		}
		if best == nil || u.Position < best.Position {
			best = u
		}
	}
	return best
}

func hasWounded(w *combat.World) bool {
	for _, u := range w.Units {
		if u.Owner == combat.Human && u.Alive() && u.HP < u.MaxHP {
			return true
		}
	}
	return false
}
