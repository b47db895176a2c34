package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Default parses the catalog shipped with the binary.
func Default() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(defaultCatalog, &c); err != nil {
		return nil, fmt.Errorf("parse embedded catalog: %w", err)
	}
	return finish(&c)
}

// LoadCatalog reads a catalog file. Empty path falls back to Default.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	var c Catalog
	if err := loadYAML(path, &c); err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return finish(&c)
}

func finish(c *Catalog) (*Catalog, error) {
	applyDefaults(c)
	c.index()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func applyDefaults(c *Catalog) {
	if c.TickRate == 0 {
		c.TickRate = 60
	}
	if c.LaneLength == 0 {
		c.LaneLength = 100
	}
	t := &c.Combat
	if t.ProjectileSpeed == 0 {
		t.ProjectileSpeed = 25
	}
	if t.ImpactEpsilon == 0 {
		t.ImpactEpsilon = 1
	}
	if t.ExpDivisor == 0 {
		t.ExpDivisor = 4
	}
	if t.FormationSmoothing == 0 {
		t.FormationSmoothing = 0.95
	}
	if t.DeathGraceMS == 0 {
		t.DeathGraceMS = 500
	}
	if t.AttackAnimMS == 0 {
		t.AttackAnimMS = 300
	}
	if t.FloatingTextMS == 0 {
		t.FloatingTextMS = 1500
	}
	if c.Player.OpponentManaRegen == 0 {
		c.Player.OpponentManaRegen = c.Player.ManaRegen
	}
	for i := range c.Difficulties {
		d := &c.Difficulties[i]
		if d.Label == "" {
			d.Label = d.ID
		}
		for _, m := range []*float64{&d.BaseHPMul, &d.ManaMul, &d.UnitHPMul, &d.UnitAttackMul} {
			if *m == 0 {
				*m = 1
			}
		}
	}
	if c.Formation == nil {
		c.Formation = map[string]float64{}
	}
	if c.EffectsMS == nil {
		c.EffectsMS = map[string]int{}
	}
}

// Validate checks cross references. A failing catalog is a packaging defect.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.Ages) == 0 {
		errs = append(errs, errors.New("catalog: no ages"))
	}
	if len(c.Difficulties) == 0 {
		errs = append(errs, errors.New("catalog: no difficulties"))
	}
	if c.Player.HP <= 0 || c.Player.MaxMana <= 0 {
		errs = append(errs, errors.New("catalog: player hp and max_mana must be > 0"))
	}
	for _, u := range c.Units {
		if u.AttackSpeed <= 0 {
			errs = append(errs, fmt.Errorf("unit %s: attack_speed must be > 0", u.ID))
		}
		if u.HP <= 0 {
			errs = append(errs, fmt.Errorf("unit %s: hp must be > 0", u.ID))
		}
		if _, ok := c.Formation[u.Role]; !ok {
			errs = append(errs, fmt.Errorf("unit %s: role %q has no formation spread", u.ID, u.Role))
		}
	}
	for _, s := range c.Spells {
		if s.Effect != SpellHeal && s.Effect != SpellDamage {
			errs = append(errs, fmt.Errorf("spell %s: unknown effect %q", s.ID, s.Effect))
		}
	}
	for _, u := range c.Upgrades {
		if u.MaxLevel <= 0 {
			errs = append(errs, fmt.Errorf("upgrade %s: max_level must be > 0", u.ID))
		}
		switch u.Effect {
		case UpgradeBaseHP, UpgradeManaRegen, UpgradeUnitHP, UpgradeUnitAttack:
		default:
			errs = append(errs, fmt.Errorf("upgrade %s: unknown effect %q", u.ID, u.Effect))
		}
	}
	for i, a := range c.Ages {
		for _, id := range a.Units {
			if _, ok := c.units[id]; !ok {
				errs = append(errs, fmt.Errorf("age %d: unknown unit %q", i, id))
			}
		}
		for _, id := range a.Spells {
			if _, ok := c.spells[id]; !ok {
				errs = append(errs, fmt.Errorf("age %d: unknown spell %q", i, id))
			}
		}
	}
	return errors.Join(errs...)
}
