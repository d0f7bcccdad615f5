package plan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Category is the category of the recurring payment records created for plans.
const Category = "Debt Payment"

var (
	ErrAutomationActive = errors.New("the plan already has an automated payment")
	ErrNoAutomation     = errors.New("the plan has no automated payment")
)

// Ledger stores recurring payments.
type Ledger interface {
	CreateRecurringPayment(ctx context.Context, amount float64, category string, start time.Time) (uuid.UUID, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) error
}

// StartAutomation creates a recurring payment for the plan's monthly payment
// in the ledger, starting on the first payment date.
//
// The reference is only stored once the ledger accepted the payment.
func (m *Machine) StartAutomation(ctx context.Context, ledger Ledger, firstPaymentDate time.Time) (uuid.UUID, error) {
	if err := m.expect("starting the automation", Dashboard); err != nil {
		return uuid.Nil, err
	}

	if m.plan.Automated() {
		return uuid.Nil, ErrAutomationActive
	}

	id, err := ledger.CreateRecurringPayment(ctx, m.plan.MonthlyPayment, Category, firstPaymentDate)
	if err != nil {
		return uuid.Nil, fmt.Errorf("creating the recurring payment failed: %w", err)
	}

	m.plan.AutomatedPaymentRef = &id
	log.Debug().Str("id", id.String()).Float64("amount", m.plan.MonthlyPayment).Msg("Plan automation started")

	return id, nil
}

// CancelAutomation deletes the plan's recurring payment from the ledger.
//
// The reference is only cleared once the ledger deleted the payment.
func (m *Machine) CancelAutomation(ctx context.Context, ledger Ledger) error {
	if err := m.expect("cancelling the automation", Dashboard); err != nil {
		return err
	}

	if !m.plan.Automated() {
		return ErrNoAutomation
	}

	id := *m.plan.AutomatedPaymentRef
	if err := ledger.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("deleting the recurring payment failed: %w", err)
	}

	m.plan.AutomatedPaymentRef = nil
	log.Debug().Str("id", id.String()).Msg("Plan automation cancelled")

	return nil
}
