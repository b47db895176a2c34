// Package protocol is the wire format between a match and its clients.
package protocol

import "encoding/json"

// Client -> server.
const (
	MsgStart   = "start"
	MsgRestart = "restart"
	MsgSummon  = "summon"
	MsgCast    = "cast"
	MsgTarget  = "target"
	MsgCancel  = "cancel"
	MsgEvolve  = "evolve"
	MsgUpgrade = "upgrade"
	MsgSpeed   = "speed"
)

// Server -> client.
const (
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgEvent   = "event"
)

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p,omitempty"` // raw payload bytes
}

// Message is an outbound payload before it is encoded for a particular client.
type Message struct {
	T string
	P any
}
