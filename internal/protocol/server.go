package protocol

type Welcome struct {
	TickHz int    `json:"tickHz" msgpack:"tickHz"`
	Speeds []int  `json:"speeds" msgpack:"speeds"`
	Format string `json:"format" msgpack:"format"`
}

type State struct {
	Match        string             `json:"match,omitempty" msgpack:"match,omitempty"`
	Status       string             `json:"status" msgpack:"status"`
	Mode         string             `json:"mode,omitempty" msgpack:"mode,omitempty"`
	Difficulty   string             `json:"difficulty,omitempty" msgpack:"difficulty,omitempty"`
	Time         float64            `json:"time" msgpack:"time"`
	Speed        int                `json:"speed" msgpack:"speed"`
	PendingSpell string             `json:"pendingSpell,omitempty" msgpack:"pendingSpell,omitempty"`
	Player       PlayerSnapshot     `json:"player" msgpack:"player"`
	Enemy        PlayerSnapshot     `json:"enemy" msgpack:"enemy"`
	Units        []UnitSnapshot     `json:"units" msgpack:"units"`
	Projectiles  []ProjectileSnap   `json:"projectiles" msgpack:"projectiles"`
	Effects      []EffectSnapshot   `json:"effects" msgpack:"effects"`
	Texts        []TextSnapshot     `json:"texts" msgpack:"texts"`
	Cooldowns    map[string]float64 `json:"cooldowns,omitempty" msgpack:"cooldowns,omitempty"`
}

type PlayerSnapshot struct {
	HP         float64        `json:"hp" msgpack:"hp"`
	MaxHP      float64        `json:"maxHp" msgpack:"maxHp"`
	Mana       float64        `json:"mana" msgpack:"mana"`
	MaxMana    float64        `json:"maxMana" msgpack:"maxMana"`
	ManaRegen  float64        `json:"manaRegen" msgpack:"manaRegen"`
	Age        int            `json:"age" msgpack:"age"`
	AgeName    string         `json:"ageName" msgpack:"ageName"`
	Exp        float64        `json:"exp" msgpack:"exp"`
	MaxExp     float64        `json:"maxExp" msgpack:"maxExp"`
	EliteKills int            `json:"eliteKills" msgpack:"eliteKills"`
	Upgrades   map[string]int `json:"upgrades" msgpack:"upgrades"`
}

type UnitSnapshot struct {
	ID        string  `json:"id" msgpack:"id"`
	Unit      string  `json:"unit" msgpack:"unit"`
	Owner     string  `json:"owner" msgpack:"owner"`
	HP        float64 `json:"hp" msgpack:"hp"`
	MaxHP     float64 `json:"maxHp" msgpack:"maxHp"`
	X         float64 `json:"x" msgpack:"x"`
	Offset    float64 `json:"offset" msgpack:"offset"`
	Status    string  `json:"status" msgpack:"status"`
	Attacking bool    `json:"attacking,omitempty" msgpack:"attacking,omitempty"` // inside the attack animation window
	Vision    float64 `json:"vision" msgpack:"vision"`
}

type ProjectileSnap struct {
	ID    string  `json:"id" msgpack:"id"`
	Kind  string  `json:"kind" msgpack:"kind"`
	Owner string  `json:"owner" msgpack:"owner"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
}

type EffectSnapshot struct {
	ID       string  `json:"id" msgpack:"id"`
	Kind     string  `json:"kind" msgpack:"kind"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	Progress float64 `json:"progress" msgpack:"progress"` // 0..1
}

type TextSnapshot struct {
	ID       string  `json:"id" msgpack:"id"`
	Text     string  `json:"text" msgpack:"text"`
	Kind     string  `json:"kind" msgpack:"kind"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	Progress float64 `json:"progress" msgpack:"progress"`
}

type Event struct {
	T       float64        `json:"t" msgpack:"t"`
	Type    string         `json:"type" msgpack:"type"`
	Payload map[string]any `json:"payload,omitempty" msgpack:"payload,omitempty"`
}
