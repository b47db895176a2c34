package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"lanewar/internal/combat"
)

type SummonOption struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// Snapshot is the state the opponent reasons about.
type Snapshot struct {
	AIMana          float64        `json:"ai_mana"`
	AIHP            float64        `json:"ai_hp"`
	AIAge           string         `json:"ai_age"`
	AIUnits         []string       `json:"ai_units"`
	PlayerHP        float64        `json:"player_hp"`
	PlayerAge       string         `json:"player_age"`
	PlayerUnits     []string       `json:"player_units"`
	SummonableUnits []SummonOption `json:"summonable_units"`
	CanEvolve       bool           `json:"can_evolve"`
}

func BuildSnapshot(w *combat.World) Snapshot {
	ai, human := w.Player(combat.Opponent), w.Player(combat.Human)
	snap := Snapshot{
		AIMana:          ai.Mana,
		AIHP:            ai.HP,
		AIAge:           ageName(w, ai.Age),
		AIUnits:         []string{},
		PlayerHP:        human.HP,
		PlayerAge:       ageName(w, human.Age),
		PlayerUnits:     []string{},
		SummonableUnits: []SummonOption{},
		CanEvolve:       w.CanEvolve(combat.Opponent),
	}
	for _, u := range w.Units {
		if !u.Alive() {
			continue
		}
		if u.Owner == combat.Opponent {
			snap.AIUnits = append(snap.AIUnits, u.Def().Name)
		} else {
			snap.PlayerUnits = append(snap.PlayerUnits, u.Def().Name)
		}
	}
	if age := w.Cat.Age(ai.Age); age != nil {
		for _, id := range age.Units {
			if def, ok := w.Cat.Unit(id); ok {
				snap.SummonableUnits = append(snap.SummonableUnits, SummonOption{ID: def.ID, Name: def.Name, Cost: def.Cost})
			}
		}
	}
	return snap
}

func ageName(w *combat.World, idx int) string {
	if a := w.Cat.Age(idx); a != nil {
		return a.Name
	}
	return ""
}

// Prompt renders the fixed instruction block followed by the snapshot.
func Prompt(s Snapshot) (string, error) {
	state, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	var b strings.Builder
	b.WriteString("You are the opponent commander in a lane battle. Decide the best action: SUMMON, EVOLVE, or WAIT.\n")
	b.WriteString("- To summon a unit: 'SUMMON unit_id' (e.g., 'SUMMON swordsman').\n")
	b.WriteString("- To evolve to the next age: 'EVOLVE'.\n")
	b.WriteString("- To save mana: 'WAIT'.\n")
	b.WriteString("Current game state: ")
	b.Write(state)
	b.WriteString("\nYour decision (one line):")
	return b.String(), nil
}

// ParseResponse reads the first two whitespace-separated tokens. Anything it
// does not understand, including unit ids outside summonable, becomes WAIT.
func ParseResponse(text string, summonable []SummonOption) combat.Command {
	wait := combat.Command{Kind: combat.CmdWait}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return wait
	}
	switch strings.ToUpper(fields[0]) {
	case "EVOLVE":
		return combat.Command{Kind: combat.CmdEvolve}
	case "SUMMON":
		if len(fields) < 2 {
			return wait
		}
		for _, opt := range summonable {
			if strings.EqualFold(opt.ID, fields[1]) {
				return combat.Command{Kind: combat.CmdSummon, UnitID: opt.ID}
			}
		}
	}
	return wait
}
