/*
Package game
File: confidence.go
Description:
    The risk/confidence estimator used to screen a candidate mission before
    any money moves. Pure arithmetic over the mission parameters; no state.
*/

package game

// DailyYieldRate converts a ship's hourly mining power into the planning
// figure for one real mining day. DailyYieldFactor accounts for the slice of
// a day actually spent extracting rather than maneuvering.
func DailyYieldRate(miningPower int64, bal GameBalance) int64 {
	return int64(float64(miningPower) * 24 * bal.DailyYieldFactor)
}

// Estimate maps a candidate mission to a confidence percentage and a profit
// range. Two effects pull against each other: longer travel eats mining days
// out of the fixed schedule (lower confidence, lower ceiling), while higher
// mining power relative to the target raises the odds of filling the hold in
// time (higher confidence, higher floor).
//
// Guarantees: confidence is clamped to [0, 100], is non-increasing in
// travelDays and non-decreasing in miningPower; ProfitMin <= ProfitMax.
func Estimate(travelDays int, miningPower, targetYieldKg, dailyYieldRateKg int64, bal GameBalance) Projection {
	if targetYieldKg <= 0 || dailyYieldRateKg <= 0 {
		return Projection{}
	}

	miningDays := bal.MaxMissionDays - 2*travelDays
	if miningDays < 0 {
		miningDays = 0
	}

	achievableKg := dailyYieldRateKg * int64(miningDays)
	if achievableKg > targetYieldKg {
		achievableKg = targetYieldKg
	}

	// Fill ratio: what fraction of the target the schedule allows.
	fill := float64(achievableKg) / float64(targetYieldKg)

	// Power ratio: theoretical single-day output against the whole target.
	// Capped at 1 so oversized rigs don't inflate confidence past certainty.
	power := float64(miningPower*24) / float64(targetYieldKg)
	if power > 1 {
		power = 1
	}

	confidence := 100 * fill * (0.6 + 0.4*power)
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	gross := achievableKg * bal.ProjectedValuePerKg
	profitMax := gross - bal.MissionBudget

	// The floor discounts the ceiling by the unconfident share of the gross.
	// The spread is never negative, so ProfitMin <= ProfitMax holds.
	spread := int64((1 - confidence/100) * float64(gross))
	profitMin := profitMax - spread

	return Projection{
		Confidence: confidence,
		ProfitMin:  profitMin,
		ProfitMax:  profitMax,
	}
}
