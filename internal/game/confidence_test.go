package game

import "testing"

func testBalance() GameBalance {
	return GameBalance{
		MissionBudget:       400000000,
		MinimumFunding:      436000000,
		LoanMultipliers:     []float64{1.1, 1.2, 1.3, 1.5, 1.75, 2.0, 2.5},
		DailyOperatingCost:  350000,
		DailyYieldFactor:    0.30,
		MaxMissionDays:      64,
		HullWearPerDay:      2,
		RepairCostPerPoint:  75000,
		ProjectedValuePerKg: 12000,
	}
}

func TestEstimateConfidenceFallsWithTravelTime(t *testing.T) {
	bal := testBalance()
	rate := DailyYieldRate(500, bal)

	near := Estimate(5, 500, 50000, rate, bal)
	far := Estimate(20, 500, 50000, rate, bal)
	extreme := Estimate(30, 500, 50000, rate, bal)

	if near.Confidence < far.Confidence {
		t.Errorf("confidence rose with travel time: 5d=%.2f, 20d=%.2f", near.Confidence, far.Confidence)
	}
	if far.Confidence < extreme.Confidence {
		t.Errorf("confidence rose with travel time: 20d=%.2f, 30d=%.2f", far.Confidence, extreme.Confidence)
	}
	// At 30 travel days only 4 mining days remain out of 64; the schedule
	// can no longer reach the target and confidence must strictly drop.
	if extreme.Confidence >= near.Confidence {
		t.Errorf("confidence did not drop on a schedule-starved mission: 5d=%.2f, 30d=%.2f", near.Confidence, extreme.Confidence)
	}
}

func TestEstimateConfidenceRisesWithMiningPower(t *testing.T) {
	bal := testBalance()

	weak := Estimate(10, 200, 50000, 1440, bal)
	strong := Estimate(10, 800, 50000, 1440, bal)

	if strong.Confidence < weak.Confidence {
		t.Errorf("confidence fell with mining power: 200=%.2f, 800=%.2f", weak.Confidence, strong.Confidence)
	}
}

func TestEstimateBounds(t *testing.T) {
	bal := testBalance()

	travelDays := []int{0, 1, 5, 10, 20, 31, 32, 50}
	powers := []int64{1, 100, 500, 2000, 100000}
	targets := []int64{1, 500, 50000, 5000000}

	for _, td := range travelDays {
		for _, p := range powers {
			for _, target := range targets {
				proj := Estimate(td, p, target, DailyYieldRate(p, bal), bal)

				if proj.Confidence < 0 || proj.Confidence > 100 {
					t.Fatalf("Estimate(td=%d, p=%d, target=%d) confidence = %.2f, outside [0,100]", td, p, target, proj.Confidence)
				}
				if proj.ProfitMin > proj.ProfitMax {
					t.Fatalf("Estimate(td=%d, p=%d, target=%d) min %d > max %d", td, p, target, proj.ProfitMin, proj.ProfitMax)
				}
			}
		}
	}
}

func TestEstimateDegenerateInputs(t *testing.T) {
	bal := testBalance()

	if proj := Estimate(5, 500, 0, 3600, bal); proj != (Projection{}) {
		t.Errorf("zero target should produce a zero projection, got %+v", proj)
	}
	if proj := Estimate(5, 500, 50000, 0, bal); proj != (Projection{}) {
		t.Errorf("zero yield rate should produce a zero projection, got %+v", proj)
	}
}

func TestDailyYieldRate(t *testing.T) {
	bal := testBalance()
	// 500 kg/hr * 24 hr * 0.30 duty factor.
	if got := DailyYieldRate(500, bal); got != 3600 {
		t.Errorf("DailyYieldRate(500) = %d, want 3600", got)
	}
}
