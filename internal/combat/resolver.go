package combat

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"lanewar/internal/config"
)

// tickScratch collects effects that are applied once at the end of a tick.
type tickScratch struct {
	baseDamage [2]float64 // damage taken by each side's base
	spawned    []*Projectile
}

// resolveUnits runs movement, targeting and combat for every live unit in
// list order. Mutations are visible to units later in the same pass.
func (w *World) resolveUnits(delta float64, sc *tickScratch) {
	formation := [2]float64{w.formationSpeed(Human), w.formationSpeed(Opponent)}
	now := w.clock.Now()

	for _, u := range w.Units {
		if !u.Alive() {
			continue
		}
		if u.HP <= 0 {
			w.markDying(u, now)
			continue
		}

		target, dist := w.closestOpponent(u)
		if target != nil && dist <= u.def.Range {
			u.Status = Attacking
			if w.strike(u, delta, now) {
				dmg := w.attackDamage(u.Owner, u.def)
				if u.def.Projectile != "" {
					sc.spawned = append(sc.spawned, w.newProjectile(u, target, dmg))
				} else {
					w.hitUnit(u.Owner, target, dmg, now)
				}
			}
			continue
		}

		u.Status = Moving
		speed := formation[u.Owner]
		if speed <= 0 {
			speed = u.def.Speed
		}
		u.Position += u.Owner.Direction() * speed * delta

		goal := w.enemyBase(u.Owner)
		if (u.Owner == Human && u.Position >= goal) || (u.Owner == Opponent && u.Position <= goal) {
			u.Position = goal
			u.Status = Attacking
			if w.strike(u, delta, now) {
				dmg := w.attackDamage(u.Owner, u.def)
				sc.baseDamage[u.Owner.Other()] += dmg
				kind := TextPlayerDamage
				if u.Owner == Opponent {
					kind = TextEnemyDamage
				}
				w.addText(kind, fmt.Sprintf("-%d", int(math.Round(dmg))), Vec2{X: goal})
			}
		}
	}
}

// closestOpponent picks the nearest live enemy unit by lane distance. Ties go
// to the first one in list order.
func (w *World) closestOpponent(u *Unit) (*Unit, float64) {
	var best *Unit
	bestDist := math.Inf(1)
	for _, o := range w.Units {
		if o.Owner == u.Owner || !o.Alive() {
			continue
		}
		if d := laneDist(u.Position, o.Position); d < bestDist {
			best, bestDist = o, d
		}
	}
	return best, bestDist
}

// strike advances the attack cooldown and reports whether an attack fires now.
func (w *World) strike(u *Unit, delta float64, now time.Time) bool {
	u.AttackCooldown -= delta
	if u.AttackCooldown > 0 {
		return false
	}
	u.AttackCooldown = 1 / u.def.AttackSpeed
	u.AttackAnimEnd = now.Add(time.Duration(w.Cat.Combat.AttackAnimMS) * time.Millisecond)
	return true
}

func (w *World) attackDamage(s Side, def *config.UnitDef) float64 {
	dmg := def.Attack * w.percentBonus(s, config.UpgradeUnitAttack)
	if s == Opponent {
		dmg *= w.Difficulty.UnitAttackMul
	}
	return dmg
}

func (w *World) enemyBase(s Side) float64 {
	if s == Human {
		return w.Cat.LaneLength
	}
	return 0
}

func (w *World) newProjectile(from, target *Unit, dmg float64) *Projectile {
	return &Projectile{
		ID:       uuid.NewString(),
		Owner:    from.Owner,
		Damage:   dmg,
		Kind:     from.def.Projectile,
		Pos:      Vec2{X: from.Position, Y: w.Cat.Combat.ProjectileHeight},
		Speed:    w.Cat.Combat.ProjectileSpeed,
		TargetID: target.ID,
	}
}

// hitUnit applies direct damage from side by and runs death bookkeeping.
func (w *World) hitUnit(by Side, target *Unit, dmg float64, now time.Time) {
	target.HP -= dmg
	w.damageText(by, target, dmg)
	if target.HP <= 0 && target.Alive() {
		w.kill(target, by, now)
	}
	w.addEffect(FxHitSpark, target.Position)
}

// kill marks a unit dying and credits the human side with experience and
// elite kills when it landed the blow.
func (w *World) kill(u *Unit, by Side, now time.Time) {
	w.markDying(u, now)
	if by != Human {
		return
	}
	p := w.Players[Human]
	p.Exp += math.Floor(u.def.Cost / w.Cat.Combat.ExpDivisor)
	if u.def.Role == RoleElite {
		p.EliteKills++
	}
}

func (w *World) markDying(u *Unit, now time.Time) {
	u.Status = Dying
	u.DiedAt = now
	if u.def.Role == RoleElite {
		w.addEffect(FxEliteDeath, u.Position)
	} else {
		w.addEffect(FxDeathPuff, u.Position)
	}
	w.emit(EventDeath, map[string]any{"id": u.ID, "unit": u.UnitID, "side": u.Owner.String()})
}
