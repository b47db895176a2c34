package combat

import (
	"fmt"
	"math"

	"lanewar/internal/config"
)

func (w *World) spellReady(id string) bool { return w.Cooldowns[id] <= 0 }

// CastSpell starts a human spell. Instant spells resolve now; targeted spells
// only arm the pending marker and wait for SelectSpellTarget.
func (w *World) CastSpell(id string) error {
	if w.Status != Playing {
		return ErrNotPlaying
	}
	spell, ok := w.Cat.Spell(id)
	if !ok {
		return ErrUnknownSpell
	}
	p := w.Players[Human]
	if age := w.Cat.Age(p.Age); age == nil || !age.HasSpell(id) {
		return ErrLocked
	}
	if p.Mana < spell.Cost {
		return ErrInsufficientMana
	}
	if !w.spellReady(id) {
		return ErrOnCooldown
	}
	if spell.RequiresTarget {
		w.PendingSpell = id
		return nil
	}
	w.trigger(spell)
	if spell.Effect == config.SpellHeal {
		w.healAll(Human, spell.Amount)
	}
	return nil
}

// SelectSpellTarget resolves the pending spell against unitID. The marker is
// cleared whatever the outcome.
func (w *World) SelectSpellTarget(unitID string) error {
	if w.PendingSpell == "" {
		return ErrNoPendingSpell
	}
	id := w.PendingSpell
	w.PendingSpell = ""
	if w.Status != Playing {
		return ErrNotPlaying
	}
	spell, ok := w.Cat.Spell(id)
	if !ok {
		return ErrUnknownSpell
	}
	target := w.Unit(unitID)
	if target == nil || target.Owner != Opponent || !target.Alive() {
		return ErrInvalidTarget
	}
	if w.Players[Human].Mana < spell.Cost {
		return ErrInsufficientMana
	}
	w.trigger(spell)
	if spell.Effect == config.SpellDamage {
		// a lethal hit is picked up by the target's own death check next tick
		target.HP -= spell.Amount
		w.addText(TextSpell, fmt.Sprintf("-%d", int(math.Round(spell.Amount))), Vec2{X: target.Position, Y: target.Offset})
		w.addEffect(FxFireballImpact, target.Position)
	}
	return nil
}

func (w *World) CancelTargeting() { w.PendingSpell = "" }

func (w *World) trigger(spell *config.SpellDef) {
	w.Players[Human].Mana -= spell.Cost
	w.Cooldowns[spell.ID] = spell.Cooldown
	w.emit(EventCast, map[string]any{"spell": spell.ID})
}

func (w *World) healAll(s Side, amount float64) {
	for _, u := range w.Units {
		if u.Owner != s || !u.Alive() {
			continue
		}
		before := u.HP
		u.HP = math.Min(u.MaxHP, u.HP+amount)
		if healed := u.HP - before; healed > 0 {
			w.addText(TextHeal, fmt.Sprintf("+%d", int(math.Round(healed))), Vec2{X: u.Position, Y: u.Offset})
		}
	}
	w.addEffect(FxHeal, w.Cat.LaneLength/5)
}

func (w *World) decayCooldowns(delta float64) {
	for id, cd := range w.Cooldowns {
		w.Cooldowns[id] = math.Max(0, cd-delta)
	}
}
