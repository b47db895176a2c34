package combat

import "lanewar/internal/config"

// Evolve advances side s to the next age. requireExp gates on experience as
// well as mana; the opponent policy evolves on mana alone.
func (w *World) Evolve(s Side, requireExp bool) error {
	if w.Status != Playing {
		return ErrNotPlaying
	}
	p := w.Players[s]
	cur := w.Cat.Age(p.Age)
	next := w.Cat.Age(p.Age + 1)
	if cur == nil || next == nil {
		return ErrNoNextAge
	}
	if p.Mana < cur.EvolveCost {
		return ErrInsufficientMana
	}
	if requireExp && p.Exp < cur.EvolveExp {
		return ErrInsufficientExp
	}
	p.Mana -= cur.EvolveCost
	p.Age++
	p.Exp = 0
	p.MaxExp = next.EvolveExp
	w.emit(EventEvolve, map[string]any{"side": s.String(), "age": p.Age, "name": next.Name})
	return nil
}

// CanEvolve reports the mana gate only, as shown to opponent policies.
func (w *World) CanEvolve(s Side) bool {
	p := w.Players[s]
	cur := w.Cat.Age(p.Age)
	return cur != nil && w.Cat.Age(p.Age+1) != nil && p.Mana >= cur.EvolveCost
}

// PurchaseUpgrade buys one level of an upgrade for side s.
func (w *World) PurchaseUpgrade(s Side, id string) error {
	if w.Status != Playing {
		return ErrNotPlaying
	}
	up, ok := w.Cat.Upgrade(id)
	if !ok {
		return ErrUnknownUpgrade
	}
	p := w.Players[s]
	level := p.Upgrades[id]
	if level >= up.MaxLevel {
		return ErrMaxLevel
	}
	cost := up.Cost(level)
	if p.Mana < cost {
		return ErrInsufficientMana
	}
	p.Mana -= cost
	p.Upgrades[id] = level + 1
	switch up.Effect {
	case config.UpgradeBaseHP:
		p.MaxHP += up.Amount
		p.HP += up.Amount
	case config.UpgradeManaRegen:
		p.ManaRegen += up.Amount
	}
	w.emit(EventUpgrade, map[string]any{"side": s.String(), "upgrade": id, "level": level + 1})
	return nil
}
