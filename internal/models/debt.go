package models

import (
	"encoding/json"
	"strings"

	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Debt is a liability of a budget that can become part of the budget's plan.
type Debt struct {
	DefaultModel
	Budget     Budget    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	BudgetID   uuid.UUID `gorm:"index"`
	Name       string
	Note       string
	Balance    decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Amount owed
	APR        decimal.Decimal `gorm:"type:DECIMAL(20,8)"` // Annual percentage rate, in percent
	MinPayment decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	PaymentDay int             // Day of the month the payment is due
	Position   int             // Order of the debt in the input
}

func (d *Debt) BeforeCreate(tx *gorm.DB) error {
	_ = d.DefaultModel.BeforeCreate(tx)

	return tx.First(&Budget{}, d.BudgetID).Error
}

func (d *Debt) BeforeUpdate(tx *gorm.DB) error {
	if tx.Statement.Changed("BudgetID") {
		toSave, ok := tx.Statement.Dest.(Debt)
		if ok {
			return tx.First(&Budget{}, toSave.BudgetID).Error
		}
	}

	return nil
}

func (d *Debt) BeforeSave(_ *gorm.DB) error {
	d.Name = strings.TrimSpace(d.Name)
	d.Note = strings.TrimSpace(d.Note)

	return nil
}

// AfterSave validates the debt. Updated values are only set on the
// receiver after the update, so this is not done before saving.
func (d *Debt) AfterSave(_ *gorm.DB) error {
	if d.PaymentDay < 1 || d.PaymentDay > 31 {
		return ErrDebtPaymentDayInvalid
	}

	if d.Balance.IsNegative() || d.APR.IsNegative() || d.MinPayment.IsNegative() {
		return ErrDebtAmountNegative
	}

	return nil
}

// ToPayoff returns the debt as input for a simulation.
func (d Debt) ToPayoff() payoff.Debt {
	return payoff.Debt{
		Name:              d.Name,
		Balance:           d.Balance.InexactFloat64(),
		APR:               d.APR.InexactFloat64(),
		MinPayment:        d.MinPayment.InexactFloat64(),
		PaymentDayOfMonth: d.PaymentDay,
	}
}

// Returns all debts on this instance for export
func (Debt) Export() (json.RawMessage, error) {
	return export[Debt]()
}
