package models

import (
	"encoding/json"

	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/envelope-zero/payoff/internal/plan"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Plan is the stored payoff plan of a budget.
//
// The simulation result is stored as computed. Amounts are floats since the
// simulation works with floats.
type Plan struct {
	DefaultModel
	Budget                 Budget    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	BudgetID               uuid.UUID `gorm:"uniqueIndex"`
	Strategy               payoff.Strategy
	TotalMonths            int
	TotalInterest          float64
	TotalPaid              float64
	MonthlyPayment         float64
	ExtraMonthlyPayment    float64
	PaidOff                bool
	OriginalDebts          []payoff.Debt        `gorm:"serializer:json"`
	Roadmap                []payoff.RoadmapItem `gorm:"serializer:json"`
	CheckedInMonths        []int                `gorm:"serializer:json"`
	AutomatedTransactionID *uuid.UUID
	Version                int // Incremented with every change, used to detect concurrent changes
}

// NewPlan returns the model for a plan of the budget.
func NewPlan(budgetID uuid.UUID, p *plan.DebtPlan) Plan {
	m := Plan{BudgetID: budgetID}
	m.Update(p)

	return m
}

// Update sets all values from the plan. The version is not changed.
func (p *Plan) Update(d *plan.DebtPlan) {
	p.Strategy = d.Strategy
	p.TotalMonths = d.TotalMonths
	p.TotalInterest = d.TotalInterest
	p.TotalPaid = d.TotalPaid
	p.MonthlyPayment = d.MonthlyPayment
	p.ExtraMonthlyPayment = d.ExtraMonthlyPayment
	p.PaidOff = d.PaidOff
	p.OriginalDebts = d.OriginalDebts
	p.Roadmap = d.Roadmap
	p.CheckedInMonths = d.CheckedInMonths
	p.AutomatedTransactionID = d.AutomatedPaymentRef
}

// DebtPlan returns the plan for use with a plan.Machine.
func (p Plan) DebtPlan() *plan.DebtPlan {
	d := plan.New(payoff.Outputs{
		Strategy:            p.Strategy,
		TotalMonths:         p.TotalMonths,
		TotalInterest:       p.TotalInterest,
		TotalPaid:           p.TotalPaid,
		MonthlyPayment:      p.MonthlyPayment,
		ExtraMonthlyPayment: p.ExtraMonthlyPayment,
		OriginalDebts:       p.OriginalDebts,
		Roadmap:             p.Roadmap,
		PaidOff:             p.PaidOff,
	})

	if p.CheckedInMonths != nil {
		d.CheckedInMonths = p.CheckedInMonths
	}
	d.AutomatedPaymentRef = p.AutomatedTransactionID
	d.Version = p.Version

	return d
}

// SaveVersioned stores all changes of the plan if it has not been changed
// since it was read. ErrPlanVersionConflict is returned otherwise.
func (p *Plan) SaveVersioned(tx *gorm.DB) error {
	read := p.Version
	p.Version++

	result := tx.Model(p).Where("version = ?", read).Select("*").Omit("CreatedAt", "Budget").Updates(p)
	if result.Error != nil {
		p.Version = read
		return result.Error
	}

	if result.RowsAffected == 0 {
		p.Version = read
		return ErrPlanVersionConflict
	}

	return nil
}

// Returns all plans on this instance for export
func (Plan) Export() (json.RawMessage, error) {
	return export[Plan]()
}
