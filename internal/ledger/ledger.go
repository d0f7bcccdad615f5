// Package ledger stores the recurring payments of plans as transactions of
// the plan's budget.
package ledger

import (
	"context"
	"time"

	"github.com/envelope-zero/payoff/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger is the transaction ledger of one budget.
type Ledger struct {
	db       *gorm.DB
	budgetID uuid.UUID
}

func New(db *gorm.DB, budgetID uuid.UUID) Ledger {
	return Ledger{db: db, budgetID: budgetID}
}

// CreateRecurringPayment creates a recurring transaction for the amount,
// repeating every month from start on.
func (l Ledger) CreateRecurringPayment(ctx context.Context, amount float64, category string, start time.Time) (uuid.UUID, error) {
	transaction := models.Transaction{
		BudgetID:  l.budgetID,
		Amount:    decimal.NewFromFloat(amount).Round(2),
		Category:  category,
		Note:      "Automated payment for the debt payoff plan",
		Date:      start,
		Recurring: true,
	}

	err := l.db.WithContext(ctx).Create(&transaction).Error
	if err != nil {
		return uuid.Nil, err
	}

	return transaction.ID, nil
}

// DeleteRecord deletes the transaction. Transactions of other budgets are
// not found.
func (l Ledger) DeleteRecord(ctx context.Context, id uuid.UUID) error {
	var transaction models.Transaction
	err := l.db.WithContext(ctx).Where(&models.Transaction{BudgetID: l.budgetID}).First(&transaction, id).Error
	if err != nil {
		return err
	}

	return l.db.WithContext(ctx).Delete(&transaction).Error
}
