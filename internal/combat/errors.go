package combat

import "errors"

// Command rejections. Callers treat all of them as "no effect".
var (
	ErrNotPlaying       = errors.New("match not in progress")
	ErrUnknownUnit      = errors.New("unknown unit")
	ErrUnknownSpell     = errors.New("unknown spell")
	ErrUnknownUpgrade   = errors.New("unknown upgrade")
	ErrLocked           = errors.New("not unlocked in current age")
	ErrInsufficientMana = errors.New("insufficient mana")
	ErrInsufficientExp  = errors.New("insufficient experience")
	ErrOnCooldown       = errors.New("spell on cooldown")
	ErrMaxLevel         = errors.New("upgrade at max level")
	ErrNoNextAge        = errors.New("no next age")
	ErrInvalidTarget    = errors.New("invalid spell target")
	ErrNoPendingSpell   = errors.New("no spell awaiting a target")
	ErrStaleCommand     = errors.New("command from a discarded match")
)
