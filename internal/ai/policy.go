// Package ai holds the decision policies that drive the opponent side.
package ai

import (
	"context"

	"lanewar/internal/combat"
)

// Policy is a combat.Decider with a name for logs and summaries.
type Policy interface {
	combat.Decider
	Name() string
}

// Provider turns a prompt into one line of text. Implemented by provider.Client.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// slot is a single-entry mailbox. A newer decision replaces an unread one.
type slot chan combat.Command

func newSlot() slot { return make(slot, 1) }

func (s slot) put(cmd combat.Command) {
	for {
		select {
		case s <- cmd:
			return
		default:
		}
		select {
		case <-s:
		default:
		}
	}
}

func (s slot) take() (combat.Command, bool) {
	select {
	case cmd := <-s:
		return cmd, true
	default:
		return combat.Command{}, false
	}
}
