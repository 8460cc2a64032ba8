package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validUniverse = `
server:
  addr: ":9090"
store:
  driver: sqlite3
  dsn: ":memory:"
game_balance:
  mission_budget: 400000000
  minimum_funding: 436000000
  loan_multipliers: [1.1, 1.2, 1.3, 1.5, 1.75, 2.0, 2.5]
  daily_operating_cost: 350000
  daily_yield_factor: 0.30
  max_mission_days: 64
  hull_wear_per_day: 2
  repair_cost_per_point: 75000
  projected_value_per_kg: 12000
ship_defaults:
  capacity_kg: 50000
  mining_power: 500
  hull: 100
  shield: 100
elements:
  - name: Iron
    value_per_kg: 300
    uses: [construction]
  - name: Gold
    value_per_kg: 52000
    uses: [electronics]
asteroids:
  - full_name: "101955 Bennu (1999 RQ36)"
    name: Bennu
    moid_days: 10
    elements:
      - name: Iron
        mass_kg: 40000
      - name: Gold
        mass_kg: 100
`

func writeUniverse(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "universe.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidUniverse(t *testing.T) {
	uni, err := Load(writeUniverse(t, validUniverse))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if uni.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", uni.Server.Addr)
	}
	if uni.Balance.MissionBudget != 400000000 {
		t.Errorf("mission budget = %d, want 400000000", uni.Balance.MissionBudget)
	}
	if len(uni.Balance.LoanMultipliers) != 7 || uni.Balance.LoanMultipliers[6] != 2.5 {
		t.Errorf("loan multipliers = %v", uni.Balance.LoanMultipliers)
	}
	if len(uni.Elements) != 2 || uni.Elements[1].ValuePerKg != 52000 {
		t.Errorf("elements = %+v", uni.Elements)
	}

	a := uni.Asteroids[0]
	if a.ID != "101955 Bennu (1999 RQ36)" {
		t.Errorf("missing id should default to the full name, got %q", a.ID)
	}
	if a.MassKg != 40100 {
		t.Errorf("missing mass_kg should default to the element sum, got %d", a.MassKg)
	}
}

func TestLoadFillsServerAndStoreDefaults(t *testing.T) {
	minimal := `
game_balance:
  mission_budget: 1000
  loan_multipliers: [1.1]
  daily_yield_factor: 0.5
  max_mission_days: 10
ship_defaults:
  capacity_kg: 100
  mining_power: 10
`
	uni, err := Load(writeUniverse(t, minimal))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if uni.Server.Addr != ":8081" {
		t.Errorf("default addr = %q, want :8081", uni.Server.Addr)
	}
	if uni.Store.Driver != "sqlite3" || uni.Store.DSN != "deepcore.db" {
		t.Errorf("default store = %+v", uni.Store)
	}
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name    string
		mangle  func(string) string
		wantMsg string
	}{
		{
			name:    "Zero Budget",
			mangle:  func(s string) string { return strings.Replace(s, "mission_budget: 400000000", "mission_budget: 0", 1) },
			wantMsg: "mission_budget",
		},
		{
			name: "Empty Loan Schedule",
			mangle: func(s string) string {
				return strings.Replace(s, "loan_multipliers: [1.1, 1.2, 1.3, 1.5, 1.75, 2.0, 2.5]", "loan_multipliers: []", 1)
			},
			wantMsg: "loan_multipliers",
		},
		{
			name: "Decreasing Loan Schedule",
			mangle: func(s string) string {
				return strings.Replace(s, "loan_multipliers: [1.1, 1.2, 1.3, 1.5, 1.75, 2.0, 2.5]", "loan_multipliers: [1.5, 1.1]", 1)
			},
			wantMsg: "non-decreasing",
		},
		{
			name: "Sub-Unity Multiplier",
			mangle: func(s string) string {
				return strings.Replace(s, "loan_multipliers: [1.1, 1.2, 1.3, 1.5, 1.75, 2.0, 2.5]", "loan_multipliers: [0.9]", 1)
			},
			wantMsg: "below 1.0",
		},
		{
			name:    "Yield Factor Above One",
			mangle:  func(s string) string { return strings.Replace(s, "daily_yield_factor: 0.30", "daily_yield_factor: 1.5", 1) },
			wantMsg: "daily_yield_factor",
		},
		{
			name:    "Zero Mission Ceiling",
			mangle:  func(s string) string { return strings.Replace(s, "max_mission_days: 64", "max_mission_days: 0", 1) },
			wantMsg: "max_mission_days",
		},
		{
			name:    "Zero Ship Capacity",
			mangle:  func(s string) string { return strings.Replace(s, "capacity_kg: 50000", "capacity_kg: 0", 1) },
			wantMsg: "ship_defaults",
		},
		{
			name:    "Duplicate Element",
			mangle:  func(s string) string { return strings.Replace(s, "name: Gold", "name: Iron", 1) },
			wantMsg: "duplicate",
		},
		{
			name:    "Negative Element Value",
			mangle:  func(s string) string { return strings.Replace(s, "value_per_kg: 52000", "value_per_kg: -5", 1) },
			wantMsg: "value_per_kg",
		},
		{
			name: "Asteroid Without Full Name",
			mangle: func(s string) string {
				return strings.Replace(s, `full_name: "101955 Bennu (1999 RQ36)"`, `full_name: ""`, 1)
			},
			wantMsg: "full_name",
		},
		{
			name: "Asteroid Mass Mismatch",
			mangle: func(s string) string {
				return strings.Replace(s, "moid_days: 10", "moid_days: 10\n    mass_kg: 999", 1)
			},
			wantMsg: "does not match element sum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeUniverse(t, tt.mangle(validUniverse)))
			if err == nil {
				t.Fatal("Load() accepted an invalid universe")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want mention of %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() on a missing file returned no error")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	if _, err := Load(writeUniverse(t, "server: [not: a: mapping")); err == nil {
		t.Fatal("Load() accepted malformed yaml")
	}
}
