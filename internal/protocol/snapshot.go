package protocol

import (
	"maps"
	"time"

	"lanewar/internal/combat"
)

// MenuState is what clients see between matches.
func MenuState(speed int) State {
	return State{
		Status:      combat.Menu.String(),
		Speed:       speed,
		Units:       []UnitSnapshot{},
		Projectiles: []ProjectileSnap{},
		Effects:     []EffectSnapshot{},
		Texts:       []TextSnapshot{},
	}
}

// FromWorld copies w into a State. now places transient effects on their timelines.
func FromWorld(w *combat.World, now time.Time, speed int) State {
	s := State{
		Match:        w.MatchID,
		Status:       w.Status.String(),
		Mode:         string(w.Mode),
		Difficulty:   w.Difficulty.ID,
		Time:         w.Time,
		Speed:        speed,
		PendingSpell: w.PendingSpell,
		Player:       playerSnapshot(w, combat.Human),
		Enemy:        playerSnapshot(w, combat.Opponent),
		Units:        make([]UnitSnapshot, 0, len(w.Units)),
		Projectiles:  make([]ProjectileSnap, 0, len(w.Projectiles)),
		Effects:      make([]EffectSnapshot, 0, len(w.Effects)),
		Texts:        make([]TextSnapshot, 0, len(w.Texts)),
		Cooldowns:    maps.Clone(w.Cooldowns),
	}
	for _, u := range w.Units {
		def := u.Def()
		s.Units = append(s.Units, UnitSnapshot{
			ID:        u.ID,
			Unit:      u.UnitID,
			Owner:     u.Owner.String(),
			HP:        u.HP,
			MaxHP:     u.MaxHP,
			X:         u.Position,
			Offset:    u.Offset,
			Status:    u.Status.String(),
			Attacking: now.Before(u.AttackAnimEnd),
			Vision:    def.Vision,
		})
	}
	for _, p := range w.Projectiles {
		s.Projectiles = append(s.Projectiles, ProjectileSnap{ID: p.ID, Kind: p.Kind, Owner: p.Owner.String(), X: p.Pos.X, Y: p.Pos.Y})
	}
	for _, e := range w.Effects {
		s.Effects = append(s.Effects, EffectSnapshot{ID: e.ID, Kind: e.Kind, X: e.Pos.X, Y: e.Pos.Y, Progress: progress(e.CreatedAt, e.Duration, now)})
	}
	for _, t := range w.Texts {
		s.Texts = append(s.Texts, TextSnapshot{ID: t.ID, Text: t.Text, Kind: t.Kind, X: t.Pos.X, Y: t.Pos.Y, Progress: progress(t.CreatedAt, t.Duration, now)})
	}
	return s
}

func playerSnapshot(w *combat.World, side combat.Side) PlayerSnapshot {
	p := w.Player(side)
	ps := PlayerSnapshot{
		HP:         p.HP,
		MaxHP:      p.MaxHP,
		Mana:       p.Mana,
		MaxMana:    p.MaxMana,
		ManaRegen:  p.ManaRegen,
		Age:        p.Age,
		Exp:        p.Exp,
		MaxExp:     p.MaxExp,
		EliteKills: p.EliteKills,
		Upgrades:   maps.Clone(p.Upgrades),
	}
	if a := w.Cat.Age(p.Age); a != nil {
		ps.AgeName = a.Name
	}
	return ps
}

func progress(created time.Time, d time.Duration, now time.Time) float64 {
	if d <= 0 {
		return 1
	}
	f := float64(now.Sub(created)) / float64(d)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func FromEvent(ev combat.Event) Event {
	return Event{T: ev.T, Type: ev.Type, Payload: ev.Payload}
}
