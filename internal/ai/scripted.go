package ai

import (
	"sort"

	"lanewar/internal/combat"
	"lanewar/internal/config"
)

// Scripted evolves as soon as it can afford to, otherwise summons the most
// expensive unit it can pay for.
type Scripted struct {
	next slot
}

func NewScripted() *Scripted { return &Scripted{next: newSlot()} }

func (s *Scripted) Name() string { return string(combat.ModeScripted) }

func (s *Scripted) Decide(w *combat.World) {
	s.next.put(ScriptedChoice(w))
}

func (s *Scripted) Poll() (combat.Command, bool) { return s.next.take() }

// ScriptedChoice is the pure decision rule behind Scripted.
func ScriptedChoice(w *combat.World) combat.Command {
	cmd := combat.Command{Kind: combat.CmdWait, Generation: w.MatchID}
	if w.CanEvolve(combat.Opponent) {
		cmd.Kind = combat.CmdEvolve
		return cmd
	}
	mana := w.Player(combat.Opponent).Mana
	for _, def := range byCostDesc(w.Cat, w.Player(combat.Opponent).Age) {
		if mana >= def.Cost {
			cmd.Kind = combat.CmdSummon
			cmd.UnitID = def.ID
			return cmd
		}
	}
	return cmd
}

func byCostDesc(cat *config.Catalog, age int) []*config.UnitDef {
	a := cat.Age(age)
	if a == nil {
		return nil
	}
	defs := make([]*config.UnitDef, 0, len(a.Units))
	for _, id := range a.Units {
		if def, ok := cat.Unit(id); ok {
			defs = append(defs, def)
		}
	}
	sort.SliceStable(defs, func(i, j int) bool { return defs[i].Cost > defs[j].Cost })
	return defs
}
