package protocol

// payloads coming in from the client

type Start struct {
	Mode       string `json:"mode"`
	Difficulty string `json:"difficulty"`
}

type Summon struct {
	Unit string `json:"unit"`
}

type Cast struct {
	Spell string `json:"spell"`
}

type Target struct {
	Unit string `json:"unit"` // instance id
}

type Upgrade struct {
	Upgrade string `json:"upgrade"`
}

type Speed struct {
	Speed int `json:"speed"` // 1, 2 or 4
}
