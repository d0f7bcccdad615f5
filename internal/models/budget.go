package models

import (
	"encoding/json"
	"strings"

	"gorm.io/gorm"
)

// Budget represents a budget
//
// A budget is the highest level of organization, debts, the plan and
// transactions reference it directly.
type Budget struct {
	DefaultModel
	Name     string
	Note     string
	Currency string
}

func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Name = strings.TrimSpace(b.Name)
	b.Note = strings.TrimSpace(b.Note)
	b.Currency = strings.TrimSpace(b.Currency)

	return nil
}

// Debts returns the debts of the budget in the order they were entered in.
func (b Budget) Debts(db *gorm.DB) ([]Debt, error) {
	var debts []Debt
	err := db.
		Where(&Debt{BudgetID: b.ID}).
		Order("position ASC, created_at ASC").
		Find(&debts).Error
	if err != nil {
		return nil, err
	}

	return debts, nil
}

// Returns all budgets on this instance for export
func (Budget) Export() (json.RawMessage, error) {
	return export[Budget]()
}
