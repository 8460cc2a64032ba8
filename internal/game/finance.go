/*
Package game
File: finance.go
Description:
    The financial ledger: loan issuance at mission creation and the one-time
    settlement when a mission completes. Both operate on plain values and
    return effects; applying them to the owning account is the caller's job.
*/

package game

// LoanMultiplier returns the repayment multiplier for an operator's next
// loan. The schedule index is the number of loans already taken, clamped at
// the last entry once the schedule is exhausted.
func LoanMultiplier(loanCount int, schedule []float64) float64 {
	if len(schedule) == 0 {
		return 1.0
	}
	idx := loanCount
	if idx > len(schedule)-1 {
		idx = len(schedule) - 1
	}
	return schedule[idx]
}

// IssueLoanIfNeeded decides mission funding. An operator whose bank balance
// meets the minimum-funding threshold pays out of pocket; anyone else is
// issued a loan of budget * multiplier and their loan count advances.
func IssueLoanIfNeeded(account *Account, bal GameBalance) FundingDecision {
	if account.Bank >= bal.MinimumFunding {
		return FundingDecision{}
	}

	mult := LoanMultiplier(account.LoanCount, bal.LoanMultipliers)
	amount := int64(float64(bal.MissionBudget) * mult)
	account.CurrentLoan = amount
	account.LoanCount++

	return FundingDecision{Loaned: true, LoanAmount: amount, Multiplier: mult}
}

// Settle reconciles a completed mission against the outstanding loan.
//
// A positive profit first repays the loan (capped at the profit), the loan
// is cleared, and the remainder goes to the owner. A loss moves no funds and
// leaves the loan untouched: losses are absorbed, never converted into
// additional debt.
//
// Settlement runs exactly once per mission; the state machine's terminal
// guard enforces that, so it is not re-checked here.
func Settle(profit, loanOutstanding int64) SettlementDelta {
	delta := SettlementDelta{Profit: profit}

	if profit <= 0 {
		return delta
	}

	if loanOutstanding > 0 {
		repaid := profit
		if loanOutstanding < repaid {
			repaid = loanOutstanding
		}
		delta.LoanRepaid = repaid
		delta.NetToOwner = profit - repaid
		delta.LoanCleared = true
		return delta
	}

	delta.NetToOwner = profit
	return delta
}

// ApplySettlement folds a settlement delta into the owning account.
// Kept next to Settle so the two halves of the money movement read together.
func ApplySettlement(account *Account, delta SettlementDelta) {
	account.Bank += delta.NetToOwner
	if delta.LoanCleared {
		account.CurrentLoan = 0
	}
}
