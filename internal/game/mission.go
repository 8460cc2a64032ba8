/*
Package game
File: mission.go
Description:
    The mission state machine. A mission is created directly into Active
    (funding resolves at creation), advances one day at a time, and
    transitions to Completed exactly once when a terminal condition is met.
    Advancement is a pure, synchronous computation over the records passed
    in; persistence and account mutation belong to the caller.
*/

package game

import (
	"fmt"
	"time"
)

// AdvanceResult is the outcome of one day's advancement. On the terminal
// day Completed is set and Settlement carries the financial delta for the
// caller to apply to the owning account.
type AdvanceResult struct {
	Summary    DailySummary     `json:"summary"`
	Mined      []ElementStock   `json:"mined"`
	Completed  bool             `json:"completed"`
	Reason     CompletionReason `json:"reason,omitempty"`
	Settlement *SettlementDelta `json:"settlement,omitempty"`
}

// PlanMission resolves funding against the operator's account and creates
// the mission record in Active state. The ship is committed to the mission
// but remains docked until the first day is advanced.
func PlanMission(account *Account, ship *Ship, target Asteroid, travelDays int, proj Projection, bal GameBalance, now time.Time) (Mission, FundingDecision) {
	funding := IssueLoanIfNeeded(account, bal)

	targetYield := ship.CapacityKg
	rate := DailyYieldRate(ship.MiningPower, bal)

	// Allot enough mining days to reach the target at the planned rate,
	// inside whatever the schedule ceiling leaves after the round trip.
	miningDays := 1
	if rate > 0 {
		miningDays = int((targetYield + rate - 1) / rate)
	}
	maxMining := bal.MaxMissionDays - 2*travelDays
	if maxMining < 1 {
		maxMining = 1
	}
	if miningDays > maxMining {
		miningDays = maxMining
	}
	if miningDays < 1 {
		miningDays = 1
	}

	mission := Mission{
		ID:               NewID("MSN"),
		Operator:         account.Operator,
		Company:          account.Company,
		ShipID:           ship.ID,
		ShipName:         ship.Name,
		AsteroidID:       target.ID,
		AsteroidFullName: target.FullName,
		Status:           MissionActive,
		TravelDays:       travelDays,
		MiningDays:       miningDays,
		ScheduledDays:    2*travelDays + miningDays,
		Budget:           bal.MissionBudget,
		Cost:             bal.MissionBudget, // Capital spend lands up front; operating cost accrues daily
		TargetYieldKg:    targetYield,
		DailySummaries:   []DailySummary{},
		Confidence:       proj.Confidence,
		ProjectionMin:    proj.ProfitMin,
		ProjectionMax:    proj.ProfitMax,
		Created:          now,
	}

	ship.Missions = append(ship.Missions, mission.ID)
	return mission, funding
}

// NextDay returns the day index AdvanceDay expects next.
func (m *Mission) NextDay() int {
	return len(m.DailySummaries) + 1
}

// AdvanceDay simulates one mission day against the ship and the operator's
// resource ledger for the target asteroid.
//
// Day indices are strictly sequential starting at 1; a mismatch fails with
// ErrOutOfOrderDay and a terminal mission fails with ErrAlreadyCompleted,
// so a retried request observes a clean no-op instead of duplicating a day.
//
// Days 1..TravelDays are outbound travel, the next MiningDays days each run
// 24 hourly extraction steps, and the remainder of the schedule is the
// return leg. Terminal conditions are evaluated after the day's steps in
// priority order: ledger depleted, cargo full, schedule elapsed. On the
// terminal day the mission settles against loanOutstanding and the returned
// settlement delta is the caller's to apply.
func AdvanceDay(m *Mission, ship *Ship, ledger *MinedAsteroid, day int, loanOutstanding int64, values ElementIndex, bal GameBalance, now time.Time) (AdvanceResult, error) {
	if m.Status == MissionCompleted {
		return AdvanceResult{}, ErrAlreadyCompleted
	}
	if day != m.NextDay() {
		return AdvanceResult{}, fmt.Errorf("%w: got day %d, expected %d", ErrOutOfOrderDay, day, m.NextDay())
	}
	if ledger.AsteroidID != m.AsteroidID {
		return AdvanceResult{}, fmt.Errorf("%w: ledger is for %q, mission targets %q", ErrMissingTarget, ledger.AsteroidID, m.AsteroidID)
	}

	m.Cost += bal.DailyOperatingCost
	ship.DaysInService++

	elementsMined := map[string]int64{}
	var dayMass, dayRevenue int64
	var mined []ElementStock

	switch {
	case day <= m.TravelDays:
		// Outbound leg.
		ship.Location = float64(day)

	case day <= m.TravelDays+m.MiningDays:
		// On station: one extraction step per simulated hour.
		ship.Location = float64(m.TravelDays)
		for hour := 0; hour < 24; hour++ {
			headroom := ship.CapacityKg - CargoMass(ship.Cargo)
			hourly := ExtractStep(ledger, ship.MiningPower, headroom, now)
			if len(hourly) == 0 {
				break
			}
			ship.Cargo = AddToCargo(ship.Cargo, hourly)
			mined = append(mined, hourly...)
			for _, e := range hourly {
				elementsMined[e.Name] += e.MassKg
				dayMass += e.MassKg
				dayRevenue += e.MassKg * values.ValuePerKg(e.Name)
			}
		}
		wear := bal.HullWearPerDay
		if ship.Hull < wear {
			wear = ship.Hull
		}
		ship.Hull -= wear
		m.HullWear += wear

	default:
		// Return leg.
		remaining := m.ScheduledDays - day
		if remaining < 0 {
			remaining = 0
		}
		ship.Location = float64(remaining)
	}

	m.TotalYieldKg += dayMass
	m.Revenue += dayRevenue

	summary := DailySummary{
		Day:              day,
		ElementsMined:    elementsMined,
		DailyMassKg:      dayMass,
		CumulativeMassKg: m.TotalYieldKg,
	}
	m.DailySummaries = append(m.DailySummaries, summary)

	result := AdvanceResult{Summary: summary, Mined: mined}

	reason := ReasonNone
	switch {
	case ledger.Depleted():
		reason = ReasonDepleted
	case CargoMass(ship.Cargo) >= ship.CapacityKg:
		reason = ReasonCargoFull
	case day >= m.ScheduledDays:
		reason = ReasonScheduleElapsed
	}

	if reason != ReasonNone {
		m.Status = MissionCompleted
		m.CompletionReason = reason
		m.Penalties = int64(m.HullWear) * bal.RepairCostPerPoint
		m.Profit = m.Revenue - m.Cost - m.Penalties
		ship.Location = 0

		delta := Settle(m.Profit, loanOutstanding)
		result.Completed = true
		result.Reason = reason
		result.Settlement = &delta
	}

	return result, nil
}

// RunToCompletion advances a mission day by day until it settles. Batch
// completion is nothing more than repeated single-day advancement, so each
// iteration carries the same atomic-persist obligation for the caller; the
// step callback exists so callers can persist and publish per day.
func RunToCompletion(m *Mission, ship *Ship, ledger *MinedAsteroid, loanOutstanding int64, values ElementIndex, bal GameBalance, now time.Time, step func(AdvanceResult) error) (*SettlementDelta, error) {
	for m.Status != MissionCompleted {
		result, err := AdvanceDay(m, ship, ledger, m.NextDay(), loanOutstanding, values, bal, now)
		if err != nil {
			return nil, err
		}
		if step != nil {
			if err := step(result); err != nil {
				return nil, err
			}
		}
		if result.Completed {
			return result.Settlement, nil
		}
	}
	return nil, ErrAlreadyCompleted
}
