/*
Package config
File: config.go
Description:
    Loads and validates 'universe.yaml': economy balance, ship defaults,
    element market values, the asteroid catalog and server/store settings.
    Everything downstream receives plain values from here; no package reads
    the file on its own.
*/

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/everforgeworks/deepcore-mining/internal/game"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig selects the SQL driver and data source for persistence.
// Supported drivers are the ones registered in main: sqlite3 and postgres.
type StoreConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Universe is the root configuration struct, mapping to the entire
// 'universe.yaml' file.
type Universe struct {
	Server       ServerConfig        `yaml:"server"`
	Store        StoreConfig         `yaml:"store"`
	Balance      game.GameBalance    `yaml:"game_balance"`
	ShipDefaults game.ShipDefaults   `yaml:"ship_defaults"`
	Elements     []game.ElementValue `yaml:"elements"`
	Asteroids    []game.Asteroid     `yaml:"asteroids"`
}

// Load reads and validates the universe file.
func Load(path string) (*Universe, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var uni Universe
	if err := yaml.Unmarshal(f, &uni); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := uni.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &uni, nil
}

func (u *Universe) validate() error {
	if u.Server.Addr == "" {
		u.Server.Addr = ":8081"
	}
	if u.Store.Driver == "" {
		u.Store.Driver = "sqlite3"
	}
	if u.Store.DSN == "" {
		u.Store.DSN = "deepcore.db"
	}

	if u.Balance.MissionBudget <= 0 {
		return fmt.Errorf("game_balance.mission_budget must be positive")
	}
	if len(u.Balance.LoanMultipliers) == 0 {
		return fmt.Errorf("game_balance.loan_multipliers must not be empty")
	}
	prev := 0.0
	for i, m := range u.Balance.LoanMultipliers {
		if m < 1.0 {
			return fmt.Errorf("game_balance.loan_multipliers[%d] = %v is below 1.0", i, m)
		}
		if m < prev {
			return fmt.Errorf("game_balance.loan_multipliers must be non-decreasing")
		}
		prev = m
	}
	if u.Balance.DailyYieldFactor <= 0 || u.Balance.DailyYieldFactor > 1 {
		return fmt.Errorf("game_balance.daily_yield_factor must be in (0, 1]")
	}
	if u.Balance.MaxMissionDays <= 0 {
		return fmt.Errorf("game_balance.max_mission_days must be positive")
	}

	if u.ShipDefaults.CapacityKg <= 0 || u.ShipDefaults.MiningPower <= 0 {
		return fmt.Errorf("ship_defaults capacity and mining power must be positive")
	}

	seen := map[string]bool{}
	for i, e := range u.Elements {
		if e.Name == "" {
			return fmt.Errorf("elements[%d]: name is required", i)
		}
		if seen[e.Name] {
			return fmt.Errorf("elements: duplicate entry for %s", e.Name)
		}
		if e.ValuePerKg < 0 {
			return fmt.Errorf("elements[%d] (%s): value_per_kg must not be negative", i, e.Name)
		}
		seen[e.Name] = true
	}

	for i := range u.Asteroids {
		a := &u.Asteroids[i]
		if a.FullName == "" {
			return fmt.Errorf("asteroids[%d]: full_name is required", i)
		}
		if a.ID == "" {
			a.ID = a.FullName
		}
		total := int64(0)
		for j, e := range a.Elements {
			if e.MassKg < 0 {
				return fmt.Errorf("asteroids[%d] (%s): elements[%d] mass must not be negative", i, a.FullName, j)
			}
			total += e.MassKg
		}
		if a.MassKg == 0 {
			a.MassKg = total
		}
		if a.MassKg != total {
			return fmt.Errorf("asteroids[%d] (%s): mass_kg %d does not match element sum %d", i, a.FullName, a.MassKg, total)
		}
	}

	return nil
}
