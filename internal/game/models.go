/*
Package game
File: models.go
Description:
    Defines all data structures (Structs) used throughout the Deepcore universe.
    This file serves as the "schema" for the application, mapping directly to
    YAML configuration files, JSON API responses and store documents.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

import "time"

// GameBalance stores global tuning variables loaded from 'universe.yaml'.
// These values control the macro-economy of the operation; the engine treats
// them as inputs so the economics stay testable.
type GameBalance struct {
	MissionBudget       int64     `yaml:"mission_budget" json:"mission_budget"`                 // Fixed capital cost of launching one mission
	MinimumFunding      int64     `yaml:"minimum_funding" json:"minimum_funding"`               // Bank balance required to self-fund (below this a loan is issued)
	LoanMultipliers     []float64 `yaml:"loan_multipliers" json:"loan_multipliers"`             // Repayment schedule indexed by loan count, clamped at the last entry
	DailyOperatingCost  int64     `yaml:"daily_operating_cost" json:"daily_operating_cost"`     // Credits burned per mission day (crew, fuel, comms)
	DailyYieldFactor    float64   `yaml:"daily_yield_factor" json:"daily_yield_factor"`         // Fraction of theoretical 24h output a real mining day achieves
	MaxMissionDays      int       `yaml:"max_mission_days" json:"max_mission_days"`             // Hard schedule ceiling: travel + mining + return
	HullWearPerDay      int       `yaml:"hull_wear_per_day" json:"hull_wear_per_day"`           // Hull points lost per mining day
	RepairCostPerPoint  int64     `yaml:"repair_cost_per_point" json:"repair_cost_per_point"`   // Credits per hull point, charged at settlement
	ProjectedValuePerKg int64     `yaml:"projected_value_per_kg" json:"projected_value_per_kg"` // Coarse planning value used by the estimator
}

// ShipDefaults describes the vessel issued to an operator on first use.
type ShipDefaults struct {
	CapacityKg  int64 `yaml:"capacity_kg" json:"capacity_kg"`   // Cargo hold limit
	MiningPower int64 `yaml:"mining_power" json:"mining_power"` // Extraction rate in kg per hour
	Hull        int   `yaml:"hull" json:"hull"`
	Shield      int   `yaml:"shield" json:"shield"`
}

// ElementStock is one named element and its remaining (or carried) mass.
// It appears both in asteroid compositions and in ship cargo holds.
type ElementStock struct {
	Name   string `yaml:"name" json:"name"`
	MassKg int64  `yaml:"mass_kg" json:"mass_kg"`
}

// ElementValue is the market record for one element: what a kilogram sells
// for and which industrial use cases it feeds (leaderboard buckets).
type ElementValue struct {
	Name       string   `yaml:"name" json:"name"`
	ValuePerKg int64    `yaml:"value_per_kg" json:"value_per_kg"`
	Uses       []string `yaml:"uses" json:"uses"`
}

// Asteroid is an immutable template description of a mineable body.
// Templates are reference data: mining never mutates them, it mutates the
// per-operator MinedAsteroid clone.
type Asteroid struct {
	ID       string         `yaml:"id" json:"id"`
	Name     string         `yaml:"name" json:"name"`
	FullName string         `yaml:"full_name" json:"full_name"`
	MoidDays int            `yaml:"moid_days" json:"moid_days"` // One-way travel days at closest approach
	Elements []ElementStock `yaml:"elements" json:"elements"`
	MassKg   int64          `yaml:"mass_kg" json:"mass_kg"`
}

// MinedAsteroid is the depletable resource ledger: a per-operator copy of an
// asteroid template. Exactly one exists per (asteroid, operator) pair.
type MinedAsteroid struct {
	ID          string         `json:"id"`
	AsteroidID  string         `json:"asteroid_id"`
	FullName    string         `json:"full_name"`
	Operator    string         `json:"operator"`
	Elements    []ElementStock `json:"elements"`
	TotalMassKg int64          `json:"total_mass_kg"` // Invariant: equals the sum of element masses
	MinedMassKg int64          `json:"mined_mass_kg"` // Lifetime extraction counter
	LastMined   time.Time      `json:"last_mined"`
}

// Ship represents an operator's vessel, including its current cargo state.
type Ship struct {
	ID            string         `json:"id"`
	Operator      string         `json:"operator"`
	Name          string         `json:"name"`
	Shield        int            `json:"shield"`
	Hull          int            `json:"hull"`
	MiningPower   int64          `json:"mining_power"` // kg per hour
	CapacityKg    int64          `json:"capacity_kg"`
	Cargo         []ElementStock `json:"cargo"`
	Location      float64        `json:"location"` // Days out from the home dock; 0 means docked
	Active        bool           `json:"active"`
	DaysInService int            `json:"days_in_service"`
	Missions      []string       `json:"missions"`
	Created       time.Time      `json:"created"`
}

// MissionStatus is the lifecycle state of a mission.
// Planned exists only transiently during funding; persisted missions are
// always Active or Completed.
type MissionStatus int

const (
	MissionPlanned MissionStatus = iota
	MissionActive
	MissionCompleted
)

func (s MissionStatus) String() string {
	switch s {
	case MissionPlanned:
		return "planned"
	case MissionActive:
		return "active"
	case MissionCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CompletionReason records which terminal condition ended a mission.
type CompletionReason string

const (
	ReasonNone            CompletionReason = ""
	ReasonDepleted        CompletionReason = "asteroid_depleted"
	ReasonCargoFull       CompletionReason = "cargo_full"
	ReasonScheduleElapsed CompletionReason = "schedule_elapsed"
)

// DailySummary is the immutable record of one mission day.
// Day values are contiguous starting at 1; travel days produce a summary
// with no mined elements.
type DailySummary struct {
	Day              int              `json:"day"`
	ElementsMined    map[string]int64 `json:"elements_mined"`
	DailyMassKg      int64            `json:"daily_mass_kg"`
	CumulativeMassKg int64            `json:"cumulative_mass_kg"`
}

// Mission is the full record of one extraction operation.
type Mission struct {
	ID               string           `json:"id"`
	Operator         string           `json:"operator"`
	Company          string           `json:"company"`
	ShipID           string           `json:"ship_id"`
	ShipName         string           `json:"ship_name"`
	AsteroidID       string           `json:"asteroid_id"`
	AsteroidFullName string           `json:"asteroid_full_name"`
	Status           MissionStatus    `json:"status"`
	TravelDays       int              `json:"travel_days"`    // One-way
	MiningDays       int              `json:"mining_days"`    // Allotted extraction window
	ScheduledDays    int              `json:"scheduled_days"` // travel + mining + return
	Budget           int64            `json:"budget"`
	Cost             int64            `json:"cost"`
	Revenue          int64            `json:"revenue"`
	Penalties        int64            `json:"penalties"`
	Profit           int64            `json:"profit"`
	HullWear         int              `json:"hull_wear"`
	TargetYieldKg    int64            `json:"target_yield_kg"`
	TotalYieldKg     int64            `json:"total_yield_kg"`
	DailySummaries   []DailySummary   `json:"daily_summaries"`
	Confidence       float64          `json:"confidence"`
	ProjectionMin    int64            `json:"projection_min"`
	ProjectionMax    int64            `json:"projection_max"`
	CompletionReason CompletionReason `json:"completion_reason"`
	Created          time.Time        `json:"created"`
}

// Account is an operator's financial standing. The loan is not a separate
// entity: it lives here as (CurrentLoan, LoanCount), and LoanCount only
// ever increases.
type Account struct {
	Operator    string `json:"operator"`
	Company     string `json:"company"`
	Bank        int64  `json:"bank"`
	LoanCount   int    `json:"loan_count"`
	CurrentLoan int64  `json:"current_loan"`
}

// Projection is the estimator's screening result for a candidate mission.
type Projection struct {
	Confidence float64 `json:"confidence"` // Percentage, clamped to [0, 100]
	ProfitMin  int64   `json:"profit_min"`
	ProfitMax  int64   `json:"profit_max"`
}

// FundingDecision reports how a mission was financed at creation.
type FundingDecision struct {
	Loaned     bool    `json:"loaned"`
	LoanAmount int64   `json:"loan_amount"`
	Multiplier float64 `json:"multiplier"`
}

// SettlementDelta is the one-time financial reconciliation of a completed
// mission. The engine returns it as an effect; the caller applies it to the
// owning account.
type SettlementDelta struct {
	Profit      int64 `json:"profit"`
	LoanRepaid  int64 `json:"loan_repaid"`
	NetToOwner  int64 `json:"net_to_owner"`
	LoanCleared bool  `json:"loan_cleared"`
}
