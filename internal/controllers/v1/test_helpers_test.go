package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/envelope-zero/payoff/internal/controllers/v1"
	"github.com/envelope-zero/payoff/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func createTestBudget(t *testing.T, b v1.BudgetEditable, expectedStatus ...int) v1.BudgetResponse {
	if b.Name == "" {
		b.Name = uuid.NewString()
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.BudgetEditable{b}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/budgets", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var budget v1.BudgetCreateResponse
	test.DecodeResponse(t, &r, &budget)

	if r.Code == http.StatusCreated {
		return budget.Data[0]
	}

	return v1.BudgetResponse{}
}

// createTestDebt creates a debt. Debts without values get a viable default
// with the payment due on the first so that check-ins are always allowed.
func createTestDebt(t *testing.T, d v1.DebtEditable, expectedStatus ...int) v1.DebtResponse {
	if d.BudgetID == uuid.Nil {
		d.BudgetID = createTestBudget(t, v1.BudgetEditable{Name: "Testing budget"}).Data.ID
	}

	if d.Name == "" {
		d.Name = uuid.NewString()
	}

	if d.Balance.IsZero() && d.MinPayment.IsZero() {
		d.Balance = decimal.NewFromFloat(1000)
		d.APR = decimal.NewFromFloat(12)
		d.MinPayment = decimal.NewFromFloat(100)
	}

	if d.PaymentDay == 0 {
		d.PaymentDay = 1
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	body := []v1.DebtEditable{d}

	r := test.Request(t, http.MethodPost, "http://example.com/v1/debts", body)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var debt v1.DebtCreateResponse
	test.DecodeResponse(t, &r, &debt)

	if r.Code == http.StatusCreated {
		return debt.Data[0]
	}

	return v1.DebtResponse{}
}

// createTestPlan creates a plan for the budget. The strategy defaults to
// avalanche.
func createTestPlan(t *testing.T, budgetID uuid.UUID, p v1.PlanCreate, expectedStatus ...int) v1.PlanResponse {
	if p.Strategy == "" {
		p.Strategy = "avalanche"
	}

	// Default to 201 Created as expected status
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusCreated)
	}

	r := test.Request(t, http.MethodPost, planURL(budgetID), p)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var plan v1.PlanResponse
	test.DecodeResponse(t, &r, &plan)

	return plan
}

// createTestBudgetWithDebts creates a budget with a high interest credit
// card and a low interest car loan.
func createTestBudgetWithDebts(t *testing.T) v1.BudgetResponse {
	b := createTestBudget(t, v1.BudgetEditable{Name: "Debts"})

	createTestDebt(t, v1.DebtEditable{
		BudgetID:   b.Data.ID,
		Name:       "Credit card",
		Balance:    decimal.NewFromFloat(1000),
		APR:        decimal.NewFromFloat(18),
		MinPayment: decimal.NewFromFloat(100),
		Position:   1,
	})

	createTestDebt(t, v1.DebtEditable{
		BudgetID:   b.Data.ID,
		Name:       "Car",
		Balance:    decimal.NewFromFloat(3000),
		APR:        decimal.NewFromFloat(5),
		MinPayment: decimal.NewFromFloat(150),
		Position:   2,
	})

	return b
}

func planURL(budgetID uuid.UUID) string {
	return fmt.Sprintf("http://example.com/v1/budgets/%s/plan", budgetID)
}
