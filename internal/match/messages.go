package match

import "lanewar/internal/combat"

// Commands accepted by Handle and through the Inbox.

type Start struct {
	Mode       combat.Mode
	Difficulty string
}

// Restart discards the current match and returns to the menu.
type Restart struct{}

type Summon struct {
	Unit string
}

type CastSpell struct {
	Spell string
}

type SelectTarget struct {
	Unit string // instance id
}

type CancelTargeting struct{}

type Evolve struct{}

type PurchaseUpgrade struct {
	Upgrade string
}

type SetSpeed struct {
	Speed int
}
