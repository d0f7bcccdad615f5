// Package plan holds the lifecycle of a debt payoff plan: collecting debts,
// selecting a strategy, simulating and tracking progress on the dashboard.
package plan

import (
	"time"

	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/google/uuid"
)

// DebtPlan is a committed simulation together with its tracking state.
type DebtPlan struct {
	payoff.Outputs
	CheckedInMonths     []int      `json:"checkedInMonths"`                                                    // Months confirmed as paid, ascending
	AutomatedPaymentRef *uuid.UUID `json:"automatedPaymentRef" example:"1d2b6ab9-2f1e-4bd4-9cfd-8a3c80de33c0"` // ID of the recurring payment in the ledger
	Version             int        `json:"version" example:"3"`                                                // Incremented on every stored change
}

// New creates a plan for the simulation result.
func New(outputs payoff.Outputs) *DebtPlan {
	return &DebtPlan{
		Outputs:         outputs,
		CheckedInMonths: []int{},
	}
}

// Progress returns the progress derived from the checked in months.
func (p DebtPlan) Progress() payoff.Progress {
	return payoff.ProgressOf(p.Outputs, p.CheckedInMonths)
}

// CheckInAllowed reports if the next month of the plan can be checked in
// on the given day. It is false once all months are checked in.
func (p DebtPlan) CheckInAllowed(today time.Time) bool {
	next := p.Progress().Next
	if next == nil {
		return false
	}

	return payoff.CheckInAllowed(p.Outputs, *next, today)
}

// Automated reports if a recurring payment exists for the plan.
func (p DebtPlan) Automated() bool {
	return p.AutomatedPaymentRef != nil
}
