package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction is a record in the ledger of a budget.
//
// Recurring transactions repeat every month, starting at Date.
type Transaction struct {
	DefaultModel
	Budget    Budget          `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	BudgetID  uuid.UUID       `gorm:"index"`
	Amount    decimal.Decimal `gorm:"type:DECIMAL(20,8)"`
	Category  string
	Note      string
	Date      time.Time
	Recurring bool
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	_ = t.DefaultModel.BeforeCreate(tx)

	return tx.First(&Budget{}, t.BudgetID).Error
}

func (t *Transaction) BeforeSave(_ *gorm.DB) error {
	t.Category = strings.TrimSpace(t.Category)
	t.Note = strings.TrimSpace(t.Note)

	return nil
}

func (t *Transaction) AfterSave(_ *gorm.DB) error {
	if !t.Amount.IsPositive() {
		return ErrTransactionAmountNotPositive
	}

	return nil
}

// AfterFind sets the date to UTC, see DefaultModel.AfterFind.
func (t *Transaction) AfterFind(tx *gorm.DB) error {
	_ = t.DefaultModel.AfterFind(tx)
	t.Date = t.Date.In(time.UTC)

	return nil
}

// Returns all transactions on this instance for export
func (Transaction) Export() (json.RawMessage, error) {
	return export[Transaction]()
}
