package game

import "testing"

func TestLoanMultiplierClampsAtScheduleEnd(t *testing.T) {
	schedule := []float64{1.1, 1.2, 1.3, 1.5, 1.75, 2.0, 2.5}

	want := []float64{1.1, 1.2, 1.3, 1.5, 1.75, 2.0, 2.5, 2.5, 2.5, 2.5, 2.5}
	for count := 0; count <= 10; count++ {
		if got := LoanMultiplier(count, schedule); got != want[count] {
			t.Errorf("LoanMultiplier(%d) = %v, want %v", count, got, want[count])
		}
	}
}

func TestIssueLoanIfNeeded(t *testing.T) {
	bal := testBalance()

	t.Run("Funded Operator Takes No Loan", func(t *testing.T) {
		acct := Account{Operator: "rich", Bank: bal.MinimumFunding}

		funding := IssueLoanIfNeeded(&acct, bal)

		if funding.Loaned {
			t.Errorf("funded operator was issued a loan: %+v", funding)
		}
		if acct.LoanCount != 0 || acct.CurrentLoan != 0 {
			t.Errorf("account mutated without a loan: %+v", acct)
		}
	})

	t.Run("First Loan Uses First Multiplier", func(t *testing.T) {
		acct := Account{Operator: "new", Bank: 0}

		funding := IssueLoanIfNeeded(&acct, bal)

		if !funding.Loaned {
			t.Fatal("broke operator was not issued a loan")
		}
		wantAmount := int64(float64(bal.MissionBudget) * 1.1)
		if funding.LoanAmount != wantAmount {
			t.Errorf("loan amount = %d, want %d", funding.LoanAmount, wantAmount)
		}
		if acct.LoanCount != 1 {
			t.Errorf("loan count = %d, want 1", acct.LoanCount)
		}
		if acct.CurrentLoan != wantAmount {
			t.Errorf("outstanding loan = %d, want %d", acct.CurrentLoan, wantAmount)
		}
	})

	t.Run("Repeat Borrower Pays The Clamped Rate", func(t *testing.T) {
		acct := Account{Operator: "serial", Bank: 0, LoanCount: 9}

		funding := IssueLoanIfNeeded(&acct, bal)

		if funding.Multiplier != 2.5 {
			t.Errorf("multiplier = %v, want clamped 2.5", funding.Multiplier)
		}
		if acct.LoanCount != 10 {
			t.Errorf("loan count = %d, want 10 (only ever increases)", acct.LoanCount)
		}
	})
}

func TestSettle(t *testing.T) {
	tests := []struct {
		name            string
		profit          int64
		loanOutstanding int64
		want            SettlementDelta
	}{
		{
			name:            "Profit Repays Loan And Banks The Rest",
			profit:          1000000,
			loanOutstanding: 600000,
			want:            SettlementDelta{Profit: 1000000, LoanRepaid: 600000, NetToOwner: 400000, LoanCleared: true},
		},
		{
			name:            "Loss Moves Nothing",
			profit:          -50000,
			loanOutstanding: 600000,
			want:            SettlementDelta{Profit: -50000},
		},
		{
			name:   "Profit Without Loan Goes Straight To Owner",
			profit: 250000,
			want:   SettlementDelta{Profit: 250000, NetToOwner: 250000},
		},
		{
			name:            "Small Profit Still Clears The Loan",
			profit:          500000,
			loanOutstanding: 600000,
			want:            SettlementDelta{Profit: 500000, LoanRepaid: 500000, NetToOwner: 0, LoanCleared: true},
		},
		{
			name: "Break Even Moves Nothing",
			want: SettlementDelta{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settle(tt.profit, tt.loanOutstanding)
			if got != tt.want {
				t.Errorf("Settle(%d, %d) = %+v, want %+v", tt.profit, tt.loanOutstanding, got, tt.want)
			}
		})
	}
}

func TestApplySettlement(t *testing.T) {
	acct := Account{Operator: "op", Bank: 100, CurrentLoan: 600000, LoanCount: 1}

	ApplySettlement(&acct, SettlementDelta{Profit: 1000000, LoanRepaid: 600000, NetToOwner: 400000, LoanCleared: true})

	if acct.Bank != 400100 {
		t.Errorf("bank = %d, want 400100", acct.Bank)
	}
	if acct.CurrentLoan != 0 {
		t.Errorf("loan = %d, want cleared to 0", acct.CurrentLoan)
	}
	if acct.LoanCount != 1 {
		t.Errorf("loan count = %d, must never decrease", acct.LoanCount)
	}

	// A loss leaves the account alone.
	before := acct
	ApplySettlement(&acct, SettlementDelta{Profit: -50000})
	if acct != before {
		t.Errorf("loss settlement mutated the account: %+v -> %+v", before, acct)
	}
}
