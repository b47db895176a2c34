package combat

import (
	"time"

	"lanewar/internal/config"
)

// Event is a discrete simulation event for listeners (logging, match-end sinks).
type Event struct {
	T       float64        `json:"t"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

const (
	EventSummon   = "Summon"
	EventDeath    = "Death"
	EventEvolve   = "Evolve"
	EventUpgrade  = "Upgrade"
	EventCast     = "Cast"
	EventMatchEnd = "MatchEnd"
)

// Side identifies one of the two bases. Human walks toward the lane end,
// Opponent walks toward 0.
type Side int

const (
	Human Side = iota
	Opponent
)

func (s Side) Other() Side {
	if s == Human {
		return Opponent
	}
	return Human
}

func (s Side) String() string {
	if s == Human {
		return "player"
	}
	return "enemy"
}

// Direction along the lane.
func (s Side) Direction() float64 {
	if s == Human {
		return 1
	}
	return -1
}

type UnitStatus int

const (
	Moving UnitStatus = iota
	Attacking
	Dying
)

func (s UnitStatus) String() string {
	switch s {
	case Moving:
		return "moving"
	case Attacking:
		return "attacking"
	default:
		return "dying"
	}
}

type MatchStatus int

const (
	Menu MatchStatus = iota
	Playing
	Won
	Lost
)

func (s MatchStatus) String() string {
	return [...]string{"menu", "playing", "won", "lost"}[s]
}

// Mode selects the opponent policy for a match.
type Mode string

const (
	ModeScripted Mode = "scripted"
	ModeExternal Mode = "external"
)

type Player struct {
	HP         float64
	MaxHP      float64
	Mana       float64
	MaxMana    float64
	ManaRegen  float64
	Age        int
	Exp        float64
	MaxExp     float64
	EliteKills int
	Upgrades   map[string]int
}

type Unit struct {
	ID             string
	UnitID         string
	Owner          Side
	HP             float64
	MaxHP          float64
	Position       float64
	Offset         float64 // lateral, cosmetic
	AttackCooldown float64
	Status         UnitStatus
	AttackAnimEnd  time.Time
	DiedAt         time.Time

	def *config.UnitDef
}

func (u *Unit) Def() *config.UnitDef { return u.def }
func (u *Unit) Alive() bool          { return u.Status != Dying }

type Projectile struct {
	ID       string
	Owner    Side
	Damage   float64
	Kind     string
	Pos      Vec2
	Speed    float64
	TargetID string
}

// Effect kinds.
const (
	FxHitSpark       = "hit_spark"
	FxDeathPuff      = "death_puff"
	FxEliteDeath     = "elite_death"
	FxHeal           = "heal"
	FxFireballImpact = "fireball_impact"
)

type Effect struct {
	ID        string
	Kind      string
	Pos       Vec2
	CreatedAt time.Time
	Duration  time.Duration
}

// Floating text kinds.
const (
	TextPlayerDamage = "player_damage"
	TextEnemyDamage  = "enemy_damage"
	TextHeal         = "heal"
	TextSpell        = "spell"
)

type FloatingText struct {
	ID        string
	Text      string
	Kind      string
	Pos       Vec2
	CreatedAt time.Time
	Duration  time.Duration
}

// RoleElite marks units that count as elite kills and get a distinct death effect.
const RoleElite = "elite"

func expired(created time.Time, d time.Duration, now time.Time) bool {
	return now.Sub(created) >= d
}
