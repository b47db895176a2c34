package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalogIndexesEverything(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(c.Ages) != 3 {
		t.Fatalf("ages = %d, want 3", len(c.Ages))
	}
	sw, ok := c.Unit("swordsman")
	if !ok {
		t.Fatalf("swordsman missing")
	}
	if sw.Cost != 50 || sw.Attack != 10 || sw.Projectile != "" {
		t.Fatalf("swordsman = %+v", sw)
	}
	if _, ok := c.Spell("fireball"); !ok {
		t.Fatalf("fireball missing")
	}
	if d, ok := c.Difficulty("normal"); !ok || d.UnitAttackMul != 1 {
		t.Fatalf("normal difficulty = %+v ok=%v", d, ok)
	}
	if c.Age(3) != nil || c.Age(-1) != nil {
		t.Fatalf("out of range ages must be nil")
	}
}

func TestUpgradeCostAndDescription(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	u, ok := c.Upgrade("base_hp")
	if !ok {
		t.Fatalf("base_hp missing")
	}
	for lvl, want := range []float64{100, 200, 300, 400, 500} {
		if got := u.Cost(lvl); got != want {
			t.Fatalf("cost(%d) = %v, want %v", lvl, got, want)
		}
	}
	if got := u.Description(2); !strings.Contains(got, "+500 HP") {
		t.Fatalf("description = %q", got)
	}
	regen, _ := c.Upgrade("mana_regen")
	if got := regen.Description(3); !strings.Contains(got, "+1.5/s") {
		t.Fatalf("regen description = %q", got)
	}
}

func TestLoadCatalogFillsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mini.yaml")
	doc := `
player: {hp: 500, mana: 100, max_mana: 300, mana_regen: 2}
units:
  - {id: grunt, cost: 10, hp: 20, attack: 2, range: 1, speed: 1, attack_speed: 1, role: melee}
ages:
  - {name: only, units: [grunt]}
difficulties:
  - {id: normal}
formation: {melee: 5}
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.TickRate != 60 || c.LaneLength != 100 || c.Combat.DeathGraceMS != 500 {
		t.Fatalf("defaults not applied: %+v", c.Combat)
	}
	if c.Player.OpponentManaRegen != 2 {
		t.Fatalf("opponent regen = %v, want 2", c.Player.OpponentManaRegen)
	}
	d, _ := c.Difficulty("normal")
	if d.UnitHPMul != 1 || d.Label != "normal" {
		t.Fatalf("difficulty defaults = %+v", d)
	}
}

func TestLoadCatalogRejectsDanglingReferences(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	doc := `
player: {hp: 500, max_mana: 300}
units:
  - {id: grunt, hp: 20, attack_speed: 1, role: melee}
ages:
  - {name: only, units: [grunt, ghost]}
difficulties:
  - {id: normal}
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadCatalog(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, `unknown unit "ghost"`) || !strings.Contains(msg, "formation spread") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadEnvReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	doc := "LANEWAR_PROVIDER_URL=http://localhost:9999/gen\nLANEWAR_PROVIDER_KEY=k\nLANEWAR_PROVIDER_TIMEOUT=2s\nLANEWAR_LOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, k := range []string{"LANEWAR_PROVIDER_URL", "LANEWAR_PROVIDER_KEY", "LANEWAR_PROVIDER_TIMEOUT", "LANEWAR_LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	e, err := LoadEnv(path)
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if !e.ProviderConfigured() {
		t.Fatalf("provider should be configured: %+v", e)
	}
	if e.ProviderTimeout.Seconds() != 2 {
		t.Fatalf("timeout = %v", e.ProviderTimeout)
	}
	if e.LogLevel.String() != "DEBUG" {
		t.Fatalf("level = %v", e.LogLevel)
	}
}

func TestLoadEnvMissingFileIsFine(t *testing.T) {
	if _, err := LoadEnv(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
}
