package config

import "fmt"

// Catalog is the static game data: units, spells, upgrades, ages and the
// difficulty table. It is read-only once loaded.
type Catalog struct {
	TickRate     float64            `yaml:"tick_rate"`
	LaneLength   float64            `yaml:"lane_length"`
	BaseVision   float64            `yaml:"base_vision"`
	Combat       CombatTuning       `yaml:"combat"`
	Player       PlayerDef          `yaml:"player"`
	Units        []UnitDef          `yaml:"units"`
	Spells       []SpellDef         `yaml:"spells"`
	Upgrades     []UpgradeDef       `yaml:"upgrades"`
	Ages         []AgeDef           `yaml:"ages"`
	Difficulties []DifficultyDef    `yaml:"difficulties"`
	Formation    map[string]float64 `yaml:"formation"`
	EffectsMS    map[string]int     `yaml:"effects_ms"`

	units        map[string]*UnitDef
	spells       map[string]*SpellDef
	upgrades     map[string]*UpgradeDef
	difficulties map[string]*DifficultyDef
}

type CombatTuning struct {
	ProjectileSpeed    float64 `yaml:"projectile_speed"`
	ProjectileHeight   float64 `yaml:"projectile_height"`
	ImpactEpsilon      float64 `yaml:"impact_epsilon"`
	ExpDivisor         float64 `yaml:"exp_divisor"`
	FormationSmoothing float64 `yaml:"formation_smoothing"`
	DeathGraceMS       int     `yaml:"death_grace_ms"`
	AttackAnimMS       int     `yaml:"attack_anim_ms"`
	FloatingTextMS     int     `yaml:"floating_text_ms"`
}

type PlayerDef struct {
	HP                float64 `yaml:"hp"`
	Mana              float64 `yaml:"mana"`
	MaxMana           float64 `yaml:"max_mana"`
	ManaRegen         float64 `yaml:"mana_regen"`
	OpponentManaRegen float64 `yaml:"opponent_mana_regen"`
}

type UnitDef struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Cost        float64 `yaml:"cost"`
	HP          float64 `yaml:"hp"`
	Attack      float64 `yaml:"attack"`
	Range       float64 `yaml:"range"`
	Speed       float64 `yaml:"speed"`
	AttackSpeed float64 `yaml:"attack_speed"`
	Projectile  string  `yaml:"projectile"`
	Role        string  `yaml:"role"`
	Vision      float64 `yaml:"vision"`
}

// Spell effect kinds.
const (
	SpellHeal   = "heal"
	SpellDamage = "damage"
)

type SpellDef struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description"`
	Cost           float64 `yaml:"cost"`
	Cooldown       float64 `yaml:"cooldown"`
	RequiresTarget bool    `yaml:"requires_target"`
	Effect         string  `yaml:"effect"`
	Amount         float64 `yaml:"amount"`
}

// Upgrade effect kinds. base_hp and mana_regen apply at purchase time,
// unit_hp and unit_attack are percentage bonuses read by combat formulas.
const (
	UpgradeBaseHP     = "base_hp"
	UpgradeManaRegen  = "mana_regen"
	UpgradeUnitHP     = "unit_hp"
	UpgradeUnitAttack = "unit_attack"
)

type UpgradeDef struct {
	ID       string  `yaml:"id"`
	Name     string  `yaml:"name"`
	MaxLevel int     `yaml:"max_level"`
	CostStep float64 `yaml:"cost_step"`
	Effect   string  `yaml:"effect"`
	Amount   float64 `yaml:"amount"`
	Describe string  `yaml:"describe"`
}

// Cost of buying the next level when the current level is level.
func (u *UpgradeDef) Cost(level int) float64 {
	return u.CostStep * float64(level+1)
}

func (u *UpgradeDef) Description(level int) string {
	return fmt.Sprintf(u.Describe, u.Amount*float64(level))
}

type AgeDef struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Units       []string `yaml:"units"`
	Spells      []string `yaml:"spells"`
	EvolveCost  float64  `yaml:"evolve_cost"`
	EvolveExp   float64  `yaml:"evolve_exp"`
}

func (a *AgeDef) HasUnit(id string) bool {
	for _, u := range a.Units {
		if u == id {
			return true
		}
	}
	return false
}

func (a *AgeDef) HasSpell(id string) bool {
	for _, s := range a.Spells {
		if s == id {
			return true
		}
	}
	return false
}

type DifficultyDef struct {
	ID               string  `yaml:"id"`
	Label            string  `yaml:"label"`
	ExternalInterval float64 `yaml:"external_interval"`
	ScriptedInterval float64 `yaml:"scripted_interval"`
	BaseHPMul        float64 `yaml:"base_hp_mul"`
	ManaMul          float64 `yaml:"mana_mul"`
	UnitHPMul        float64 `yaml:"unit_hp_mul"`
	UnitAttackMul    float64 `yaml:"unit_attack_mul"`
}

func (c *Catalog) Unit(id string) (*UnitDef, bool) {
	u, ok := c.units[id]
	return u, ok
}

func (c *Catalog) Spell(id string) (*SpellDef, bool) {
	s, ok := c.spells[id]
	return s, ok
}

func (c *Catalog) Upgrade(id string) (*UpgradeDef, bool) {
	u, ok := c.upgrades[id]
	return u, ok
}

func (c *Catalog) Difficulty(id string) (*DifficultyDef, bool) {
	d, ok := c.difficulties[id]
	return d, ok
}

// UpgradeFor returns the upgrade carrying the given effect kind.
func (c *Catalog) UpgradeFor(effect string) (*UpgradeDef, bool) {
	for i := range c.Upgrades {
		if c.Upgrades[i].Effect == effect {
			return &c.Upgrades[i], true
		}
	}
	return nil, false
}

// Age returns nil when idx is out of range.
func (c *Catalog) Age(idx int) *AgeDef {
	if idx < 0 || idx >= len(c.Ages) {
		return nil
	}
	return &c.Ages[idx]
}

func (c *Catalog) Spread(role string) float64 {
	return c.Formation[role]
}

func (c *Catalog) EffectMS(kind string) int {
	return c.EffectsMS[kind]
}

func (c *Catalog) index() {
	c.units = make(map[string]*UnitDef, len(c.Units))
	for i := range c.Units {
		c.units[c.Units[i].ID] = &c.Units[i]
	}
	c.spells = make(map[string]*SpellDef, len(c.Spells))
	for i := range c.Spells {
		c.spells[c.Spells[i].ID] = &c.Spells[i]
	}
	c.upgrades = make(map[string]*UpgradeDef, len(c.Upgrades))
	for i := range c.Upgrades {
		c.upgrades[c.Upgrades[i].ID] = &c.Upgrades[i]
	}
	c.difficulties = make(map[string]*DifficultyDef, len(c.Difficulties))
	for i := range c.Difficulties {
		c.difficulties[c.Difficulties[i].ID] = &c.Difficulties[i]
	}
}
