package feed

import (
	"fmt"

	"lanewar/internal/match"
	"lanewar/internal/protocol"
)

// toCommand maps a client envelope onto a match command.
func toCommand(env protocol.Envelope) (any, error) {
	switch env.T {
	case protocol.MsgStart:
		p, err := protocol.DecodePayload[protocol.Start](env)
		if err != nil {
			return nil, err
		}
		mode, err := match.ParseMode(p.Mode)
		if err != nil {
			return nil, err
		}
		return match.Start{Mode: mode, Difficulty: p.Difficulty}, nil
	case protocol.MsgRestart:
		return match.Restart{}, nil
	case protocol.MsgSummon:
		p, err := protocol.DecodePayload[protocol.Summon](env)
		return match.Summon{Unit: p.Unit}, err
	case protocol.MsgCast:
		p, err := protocol.DecodePayload[protocol.Cast](env)
		return match.CastSpell{Spell: p.Spell}, err
	case protocol.MsgTarget:
		p, err := protocol.DecodePayload[protocol.Target](env)
		return match.SelectTarget{Unit: p.Unit}, err
	case protocol.MsgCancel:
		return match.CancelTargeting{}, nil
	case protocol.MsgEvolve:
		return match.Evolve{}, nil
	case protocol.MsgUpgrade:
		p, err := protocol.DecodePayload[protocol.Upgrade](env)
		return match.PurchaseUpgrade{Upgrade: p.Upgrade}, err
	case protocol.MsgSpeed:
		p, err := protocol.DecodePayload[protocol.Speed](env)
		return match.SetSpeed{Speed: p.Speed}, err
	}
	return nil, fmt.Errorf("unknown message type %q", env.T)
}
