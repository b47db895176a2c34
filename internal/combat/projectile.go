package combat

import "time"

// advanceProjectiles homes every projectile on its target's current position.
// A projectile whose target is gone or dying vanishes without effect.
func (w *World) advanceProjectiles(delta float64, now time.Time) {
	eps := w.Cat.Combat.ImpactEpsilon
	height := w.Cat.Combat.ProjectileHeight
	kept := w.Projectiles[:0]
	for _, p := range w.Projectiles {
		target := w.Unit(p.TargetID)
		if target == nil || !target.Alive() {
			continue
		}
		aim := Vec2{X: target.Position, Y: height}
		if aim.Sub(p.Pos).Len() < eps {
			w.hitUnit(p.Owner, target, p.Damage, now)
			continue
		}
		p.Pos = p.Pos.StepToward(aim, p.Speed*delta)
		kept = append(kept, p)
	}
	for i := len(kept); i < len(w.Projectiles); i++ {
		w.Projectiles[i] = nil
	}
	w.Projectiles = kept
}
