package game

import (
	"errors"
	"testing"
	"time"
)

func testTemplate() Asteroid {
	return Asteroid{
		ID:       "test-rock",
		Name:     "Test Rock",
		FullName: "0001 Test Rock (2026 TR)",
		MoidDays: 5,
		Elements: []ElementStock{
			{Name: "Iron", MassKg: 1000},
			{Name: "Nickel", MassKg: 500},
		},
		MassKg: 1500,
	}
}

func TestCloneIsIndependentOfTemplate(t *testing.T) {
	template := testTemplate()
	ledger := Clone(template, "operator-a")

	if ledger.TotalMassKg != 1500 {
		t.Fatalf("clone total = %d, want 1500", ledger.TotalMassKg)
	}
	if ledger.Operator != "operator-a" {
		t.Errorf("clone operator = %q, want operator-a", ledger.Operator)
	}

	if err := ledger.ApplyDepletion(map[string]int64{"Iron": 1000}, time.Now()); err != nil {
		t.Fatalf("ApplyDepletion() error = %v", err)
	}

	if template.Elements[0].MassKg != 1000 {
		t.Errorf("template Iron mass changed to %d; clones must copy by value", template.Elements[0].MassKg)
	}

	other := Clone(template, "operator-b")
	if other.TotalMassKg != 1500 {
		t.Errorf("second operator's clone total = %d, want 1500", other.TotalMassKg)
	}
}

func TestApplyDepletionMaintainsTotalInvariant(t *testing.T) {
	ledger := Clone(testTemplate(), "op")

	steps := []map[string]int64{
		{"Iron": 250},
		{"Iron": 250, "Nickel": 100},
		{"Nickel": 400},
		{"Iron": 500},
	}

	for i, deltas := range steps {
		if got, want := ledger.TotalMassKg, ledger.RemainingMass(); got != want {
			t.Fatalf("before step %d: TotalMassKg = %d, element sum = %d", i, got, want)
		}
		if err := ledger.ApplyDepletion(deltas, time.Now()); err != nil {
			t.Fatalf("step %d: ApplyDepletion() error = %v", i, err)
		}
		if got, want := ledger.TotalMassKg, ledger.RemainingMass(); got != want {
			t.Fatalf("after step %d: TotalMassKg = %d, element sum = %d", i, got, want)
		}
	}

	if !ledger.Depleted() {
		t.Errorf("ledger should be depleted, total = %d", ledger.TotalMassKg)
	}
	if len(ledger.Elements) != 2 {
		t.Errorf("depleted elements must stay listed at zero, got %d entries", len(ledger.Elements))
	}
	if ledger.MinedMassKg != 1500 {
		t.Errorf("MinedMassKg = %d, want 1500", ledger.MinedMassKg)
	}
}

func TestApplyDepletionRejectsInvalidDeltas(t *testing.T) {
	tests := []struct {
		name   string
		deltas map[string]int64
	}{
		{name: "Exceeds Remaining Mass", deltas: map[string]int64{"Iron": 1001}},
		{name: "Unknown Element", deltas: map[string]int64{"Unobtanium": 1}},
		{name: "Negative Delta", deltas: map[string]int64{"Iron": -5}},
		{name: "One Bad Entry Fails The Whole Call", deltas: map[string]int64{"Iron": 10, "Nickel": 501}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := Clone(testTemplate(), "op")

			err := ledger.ApplyDepletion(tt.deltas, time.Now())
			if !errors.Is(err, ErrInvalidDepletion) {
				t.Fatalf("ApplyDepletion() error = %v, want ErrInvalidDepletion", err)
			}

			// The failed call must not have touched anything.
			if ledger.TotalMassKg != 1500 {
				t.Errorf("TotalMassKg = %d after rejected depletion, want 1500", ledger.TotalMassKg)
			}
			if ledger.Elements[0].MassKg != 1000 || ledger.Elements[1].MassKg != 500 {
				t.Errorf("element masses mutated by rejected depletion: %+v", ledger.Elements)
			}
		})
	}
}

func TestCargoHelpers(t *testing.T) {
	cargo := []ElementStock{{Name: "Iron", MassKg: 100}}
	cargo = AddToCargo(cargo, []ElementStock{
		{Name: "Iron", MassKg: 50},
		{Name: "Gold", MassKg: 5},
	})

	if got := CargoMass(cargo); got != 155 {
		t.Errorf("CargoMass() = %d, want 155", got)
	}
	if len(cargo) != 2 {
		t.Errorf("cargo entries = %d, want one merged entry per element", len(cargo))
	}
	if cargo[0].MassKg != 150 {
		t.Errorf("Iron mass = %d, want 150", cargo[0].MassKg)
	}
}
