package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/envelope-zero/payoff/internal/controllers/v1"
	"github.com/envelope-zero/payoff/internal/models"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/envelope-zero/payoff/internal/plan"
	"github.com/envelope-zero/payoff/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getTestPlan(t *testing.T, budgetID uuid.UUID, expectedStatus ...int) v1.PlanResponse {
	if len(expectedStatus) == 0 {
		expectedStatus = append(expectedStatus, http.StatusOK)
	}

	r := test.Request(t, http.MethodGet, planURL(budgetID), nil)
	test.AssertHTTPStatus(t, &r, expectedStatus...)

	var response v1.PlanResponse
	test.DecodeResponse(t, &r, &response)

	return response
}

func transactionCount(t *testing.T, budgetID uuid.UUID) int64 {
	var count int64
	require.Nil(t, models.DB.Model(&models.Transaction{}).Where(&models.Transaction{BudgetID: budgetID}).Count(&count).Error)

	return count
}

func (suite *TestSuiteStandard) TestPlanCreate() {
	t := suite.T()
	b := createTestBudgetWithDebts(t)

	p := createTestPlan(t, b.Data.ID, v1.PlanCreate{ExtraMonthlyPayment: 50})
	require.NotNil(t, p.Data)
	assert.Nil(t, p.Warning)

	assert.Equal(t, payoff.Avalanche, p.Data.Strategy)
	assert.Equal(t, float64(300), p.Data.MonthlyPayment)
	assert.Equal(t, float64(50), p.Data.ExtraMonthlyPayment)
	assert.True(t, p.Data.PaidOff)
	assert.Len(t, p.Data.Roadmap, p.Data.TotalMonths)
	assert.Equal(t, []int{}, p.Data.CheckedInMonths)
	assert.Nil(t, p.Data.AutomatedPaymentRef)
	assert.Equal(t, 0, p.Data.Version)

	// The credit card has the highest APR
	assert.Equal(t, "Credit card", p.Data.Roadmap[0].FocusDebtName)

	assert.Equal(t, 0, p.Data.Progress.Index)
	require.NotNil(t, p.Data.Progress.Next)
	assert.Equal(t, 1, p.Data.Progress.Next.Month)
	assert.True(t, p.Data.CheckInAllowed, "Check-in must be allowed since all debts are due on the first")

	assert.Equal(t, planURL(b.Data.ID), p.Data.Links.Self)
	assert.Equal(t, planURL(b.Data.ID)+"/check-ins", p.Data.Links.CheckIns)

	suite.T().Run("Second plan", func(t *testing.T) {
		p := createTestPlan(t, b.Data.ID, v1.PlanCreate{}, http.StatusConflict)
		require.NotNil(t, p.Error)
		assert.Equal(t, models.ErrPlanExists.Error(), *p.Error)
	})
}

func (suite *TestSuiteStandard) TestPlanCreateFails() {
	withDebts := createTestBudgetWithDebts(suite.T())
	withoutDebts := createTestBudget(suite.T(), v1.BudgetEditable{})

	withUnviableDebts := createTestBudget(suite.T(), v1.BudgetEditable{})
	_ = createTestDebt(suite.T(), v1.DebtEditable{BudgetID: withUnviableDebts.Data.ID, Name: "Paid off", MinPayment: decimal.NewFromFloat(25)})

	tests := []struct {
		name           string
		budgetID       uuid.UUID
		body           any
		expectedStatus int
		expectedError  string
	}{
		{"No debts", withoutDebts.Data.ID, v1.PlanCreate{Strategy: "avalanche"}, http.StatusBadRequest, plan.ErrNoViableDebts.Error()},
		{"No viable debts", withUnviableDebts.Data.ID, v1.PlanCreate{Strategy: "snowball"}, http.StatusBadRequest, plan.ErrNoViableDebts.Error()},
		{"Invalid strategy", withDebts.Data.ID, v1.PlanCreate{Strategy: "lottery"}, http.StatusBadRequest, payoff.ErrInvalidStrategy.Error()},
		{"Missing strategy", withDebts.Data.ID, map[string]any{"extraMonthlyPayment": 10}, http.StatusBadRequest, payoff.ErrInvalidStrategy.Error()},
		{"Negative extra payment", withDebts.Data.ID, v1.PlanCreate{Strategy: "avalanche", ExtraMonthlyPayment: -20}, http.StatusBadRequest, ""},
		{"Budget does not exist", uuid.New(), v1.PlanCreate{Strategy: "avalanche"}, http.StatusNotFound, "there is no budget matching your query"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, planURL(tt.budgetID), tt.body)
			test.AssertHTTPStatus(t, &r, tt.expectedStatus)

			var response v1.PlanResponse
			test.DecodeResponse(t, &r, &response)
			require.NotNil(t, response.Error)

			if tt.expectedError != "" {
				assert.Contains(t, *response.Error, tt.expectedError)
			}
		})
	}

	var count int64
	require.Nil(suite.T(), models.DB.Model(&models.Plan{}).Count(&count).Error)
	assert.Equal(suite.T(), int64(0), count, "No plan must be created")
}

// TestPlanMonthCap verifies that a plan is created when the debts are not
// paid off and that the warning is returned with the plan.
func (suite *TestSuiteStandard) TestPlanMonthCap() {
	b := createTestBudget(suite.T(), v1.BudgetEditable{})
	_ = createTestDebt(suite.T(), v1.DebtEditable{
		BudgetID:   b.Data.ID,
		Name:       "Loan shark",
		Balance:    decimal.NewFromFloat(10000),
		APR:        decimal.NewFromFloat(24),
		MinPayment: decimal.NewFromFloat(100),
	})

	p := createTestPlan(suite.T(), b.Data.ID, v1.PlanCreate{Strategy: "recommended"})
	require.NotNil(suite.T(), p.Warning)
	assert.Equal(suite.T(), payoff.ErrMonthCapReached.Error(), *p.Warning)
	assert.False(suite.T(), p.Data.PaidOff)
	assert.Equal(suite.T(), payoff.MaxMonths, p.Data.TotalMonths)

	p = getTestPlan(suite.T(), b.Data.ID)
	require.NotNil(suite.T(), p.Warning)
}

func (suite *TestSuiteStandard) TestPlanGet() {
	b := createTestBudgetWithDebts(suite.T())
	created := createTestPlan(suite.T(), b.Data.ID, v1.PlanCreate{Strategy: "snowball"})

	p := getTestPlan(suite.T(), b.Data.ID)
	assert.Equal(suite.T(), created.Data.ID, p.Data.ID)
	assert.Equal(suite.T(), payoff.Snowball, p.Data.Strategy)
	assert.Equal(suite.T(), created.Data.Roadmap, p.Data.Roadmap)
	assert.Equal(suite.T(), created.Data.OriginalDebts, p.Data.OriginalDebts)

	suite.T().Run("No plan", func(t *testing.T) {
		other := createTestBudget(t, v1.BudgetEditable{})
		p := getTestPlan(t, other.Data.ID, http.StatusNotFound)
		assert.Equal(t, "there is no plan matching your query", *p.Error)
	})

	suite.T().Run("No budget", func(t *testing.T) {
		p := getTestPlan(t, uuid.New(), http.StatusNotFound)
		assert.Equal(t, "there is no budget matching your query", *p.Error)
	})

	suite.T().Run("Invalid ID", func(t *testing.T) {
		r := test.Request(t, http.MethodGet, "http://example.com/v1/budgets/nope/plan", nil)
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
	})
}

func (suite *TestSuiteStandard) TestPlanCheckIn() {
	b := createTestBudgetWithDebts(suite.T())
	created := createTestPlan(suite.T(), b.Data.ID, v1.PlanCreate{})
	url := created.Data.Links.CheckIns

	tests := []struct {
		name            string
		body            any
		expectedStatus  int
		checkedInMonths []int
		version         int
	}{
		{"First month", v1.CheckInCreate{Month: 1}, http.StatusOK, []int{1}, 1},
		{"Out of order", v1.CheckInCreate{Month: 3}, http.StatusOK, []int{1, 3}, 2},
		{"Twice", v1.CheckInCreate{Month: 3}, http.StatusOK, []int{1, 3}, 3},
		{"Month 0", v1.CheckInCreate{Month: 0}, http.StatusBadRequest, []int{1, 3}, 3},
		{"After the last month", v1.CheckInCreate{Month: created.Data.TotalMonths + 1}, http.StatusBadRequest, []int{1, 3}, 3},
		{"Broken body", `{ "month": "one" }`, http.StatusBadRequest, []int{1, 3}, 3},
		{"Outdated version", map[string]any{"month": 2, "version": 1}, http.StatusConflict, []int{1, 3}, 3},
		{"Current version", map[string]any{"month": 2, "version": 3}, http.StatusOK, []int{1, 2, 3}, 4},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.expectedStatus)

			p := getTestPlan(t, b.Data.ID)
			assert.Equal(t, tt.checkedInMonths, p.Data.CheckedInMonths)
			assert.Equal(t, tt.version, p.Data.Version)
			assert.Equal(t, len(tt.checkedInMonths), p.Data.Progress.Index)
		})
	}

	suite.T().Run("Progress", func(t *testing.T) {
		p := getTestPlan(t, b.Data.ID)

		var interest float64
		for _, item := range p.Data.Roadmap[:3] {
			interest += item.TotalInterestPaid
		}

		assert.InDelta(t, p.Data.Roadmap[2].TotalRemainingBalance, p.Data.Progress.RemainingBalance, 0.001)
		assert.InDelta(t, 4000-p.Data.Roadmap[2].TotalRemainingBalance, p.Data.Progress.PaidToDate, 0.001)
		assert.InDelta(t, interest, p.Data.Progress.InterestPaidToDate, 0.001)
		require.NotNil(t, p.Data.Progress.Next)
		assert.Equal(t, 4, p.Data.Progress.Next.Month)
	})

	suite.T().Run("No plan", func(t *testing.T) {
		other := createTestBudget(t, v1.BudgetEditable{})
		r := test.Request(t, http.MethodPost, planURL(other.Data.ID)+"/check-ins", v1.CheckInCreate{Month: 1})
		test.AssertHTTPStatus(t, &r, http.StatusNotFound)
	})
}

func (suite *TestSuiteStandard) TestPlanScenario() {
	b := createTestBudgetWithDebts(suite.T())
	created := createTestPlan(suite.T(), b.Data.ID, v1.PlanCreate{ExtraMonthlyPayment: 50})
	url := created.Data.Links.Scenario

	suite.T().Run("Preview", func(t *testing.T) {
		r := test.Request(t, http.MethodGet, url+"?extraMonthlyPayment=250", nil)
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		var response v1.ScenarioResponse
		test.DecodeResponse(t, &r, &response)
		assert.Nil(t, response.Warning)
		assert.Greater(t, response.Data.MonthsSaved, 0)
		assert.Greater(t, response.Data.InterestSaved, float64(0))
		assert.Equal(t, float64(250), response.Data.Candidate.ExtraMonthlyPayment)
		assert.Equal(t, created.Data.Strategy, response.Data.Candidate.Strategy)

		// The plan is not changed by the preview
		p := getTestPlan(t, b.Data.ID)
		assert.Equal(t, float64(50), p.Data.ExtraMonthlyPayment)
		assert.Equal(t, 0, p.Data.Version)
	})

	suite.T().Run("Preview with less", func(t *testing.T) {
		r := test.Request(t, http.MethodGet, url+"?extraMonthlyPayment=0", nil)
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		var response v1.ScenarioResponse
		test.DecodeResponse(t, &r, &response)
		assert.Less(t, response.Data.MonthsSaved, 0)
	})

	for _, query := range []string{"", "?extraMonthlyPayment=-5", "?extraMonthlyPayment=lots"} {
		suite.T().Run(fmt.Sprintf("Invalid query %q", query), func(t *testing.T) {
			r := test.Request(t, http.MethodGet, url+query, nil)
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.ScenarioResponse
			test.DecodeResponse(t, &r, &response)
			assert.NotNil(t, response.Error)
		})
	}

	suite.T().Run("Implement", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, created.Data.Links.CheckIns, v1.CheckInCreate{Month: 1})
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		r = test.Request(t, http.MethodPost, url, v1.ScenarioImplement{ExtraMonthlyPayment: 250})
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		var response v1.PlanResponse
		test.DecodeResponse(t, &r, &response)
		assert.Equal(t, float64(250), response.Data.ExtraMonthlyPayment)
		assert.Equal(t, float64(500), response.Data.MonthlyPayment)
		assert.Less(t, response.Data.TotalMonths, created.Data.TotalMonths)
		assert.Equal(t, created.Data.Strategy, response.Data.Strategy)
		assert.Equal(t, created.Data.OriginalDebts, response.Data.OriginalDebts)
		assert.Equal(t, []int{1}, response.Data.CheckedInMonths, "Check-ins must be kept")
		assert.Equal(t, 2, response.Data.Version)
	})

	suite.T().Run("Implement outdated version", func(t *testing.T) {
		version := 0
		r := test.Request(t, http.MethodPost, url, v1.ScenarioImplement{ExtraMonthlyPayment: 10, Version: &version})
		test.AssertHTTPStatus(t, &r, http.StatusConflict)
	})

	suite.T().Run("Implement negative extra payment", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, url, v1.ScenarioImplement{ExtraMonthlyPayment: -10})
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
	})
}

// TestPlanScenarioDropsCheckIns verifies that check-ins for months that the
// new roadmap does not have are dropped.
func (suite *TestSuiteStandard) TestPlanScenarioDropsCheckIns() {
	t := suite.T()

	b := createTestBudgetWithDebts(t)
	created := createTestPlan(t, b.Data.ID, v1.PlanCreate{})
	last := created.Data.TotalMonths

	for _, month := range []int{1, last} {
		r := test.Request(t, http.MethodPost, created.Data.Links.CheckIns, v1.CheckInCreate{Month: month})
		test.AssertHTTPStatus(t, &r, http.StatusOK)
	}

	r := test.Request(t, http.MethodPost, created.Data.Links.Scenario, v1.ScenarioImplement{ExtraMonthlyPayment: 1000})
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	var response v1.PlanResponse
	test.DecodeResponse(t, &r, &response)
	require.Less(t, response.Data.TotalMonths, last)
	assert.Equal(t, []int{1}, response.Data.CheckedInMonths)
}

func (suite *TestSuiteStandard) TestPlanAutomation() {
	b := createTestBudgetWithDebts(suite.T())
	created := createTestPlan(suite.T(), b.Data.ID, v1.PlanCreate{})
	url := created.Data.Links.Automation

	suite.T().Run("Outdated version", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, url, map[string]any{"version": 7})
		test.AssertHTTPStatus(t, &r, http.StatusConflict)
		assert.Equal(t, int64(0), transactionCount(t, b.Data.ID))
	})

	suite.T().Run("Cancel without automation", func(t *testing.T) {
		r := test.Request(t, http.MethodDelete, url, nil)
		test.AssertHTTPStatus(t, &r, http.StatusNotFound)

		var response v1.PlanResponse
		test.DecodeResponse(t, &r, &response)
		assert.Equal(t, plan.ErrNoAutomation.Error(), *response.Error)
	})

	suite.T().Run("Start without body", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, url, nil)
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		var response v1.PlanResponse
		test.DecodeResponse(t, &r, &response)
		require.NotNil(t, response.Data.AutomatedPaymentRef)

		var transaction models.Transaction
		require.Nil(t, models.DB.First(&transaction, *response.Data.AutomatedPaymentRef).Error)
		assert.True(t, transaction.Recurring)
		assert.True(t, transaction.Amount.Equal(decimal.NewFromFloat(250)))
		assert.Equal(t, b.Data.ID, transaction.BudgetID)
	})

	suite.T().Run("Start twice", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, url, v1.AutomationCreate{})
		test.AssertHTTPStatus(t, &r, http.StatusConflict)
		assert.Equal(t, int64(1), transactionCount(t, b.Data.ID))
	})

	suite.T().Run("Cancel", func(t *testing.T) {
		r := test.Request(t, http.MethodDelete, url, nil)
		test.AssertHTTPStatus(t, &r, http.StatusOK)

		var response v1.PlanResponse
		test.DecodeResponse(t, &r, &response)
		assert.Nil(t, response.Data.AutomatedPaymentRef)
		assert.Equal(t, int64(0), transactionCount(t, b.Data.ID))
	})

	suite.T().Run("Cancel twice", func(t *testing.T) {
		r := test.Request(t, http.MethodDelete, url, nil)
		test.AssertHTTPStatus(t, &r, http.StatusNotFound)
	})

	suite.T().Run("Broken body", func(t *testing.T) {
		r := test.Request(t, http.MethodPost, url, `{ "firstPaymentDate": "tomorrow" }`)
		test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
	})
}

// TestPlanAutomationTransactionDeleted verifies that the automation cannot be
// cancelled when the transaction is gone and the plan stays unchanged.
func (suite *TestSuiteStandard) TestPlanAutomationTransactionDeleted() {
	t := suite.T()

	b := createTestBudgetWithDebts(t)
	created := createTestPlan(t, b.Data.ID, v1.PlanCreate{})

	r := test.Request(t, http.MethodPost, created.Data.Links.Automation, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)

	require.Nil(t, models.DB.Where(&models.Transaction{BudgetID: b.Data.ID}).Delete(&models.Transaction{}).Error)

	r = test.Request(t, http.MethodDelete, created.Data.Links.Automation, nil)
	test.AssertHTTPStatus(t, &r, http.StatusNotFound)

	p := getTestPlan(t, b.Data.ID)
	assert.NotNil(t, p.Data.AutomatedPaymentRef)
	assert.Equal(t, 1, p.Data.Version)
}

// TestPlanDelete verifies that resetting a plan also cancels its automation.
func (suite *TestSuiteStandard) TestPlanDelete() {
	t := suite.T()

	b := createTestBudgetWithDebts(t)
	created := createTestPlan(t, b.Data.ID, v1.PlanCreate{})

	r := test.Request(t, http.MethodPost, created.Data.Links.Automation, nil)
	test.AssertHTTPStatus(t, &r, http.StatusOK)
	require.Equal(t, int64(1), transactionCount(t, b.Data.ID))

	r = test.Request(t, http.MethodDelete, created.Data.Links.Self, nil)
	test.AssertHTTPStatus(t, &r, http.StatusNoContent)

	assert.Equal(t, int64(0), transactionCount(t, b.Data.ID))
	_ = getTestPlan(t, b.Data.ID, http.StatusNotFound)

	r = test.Request(t, http.MethodDelete, created.Data.Links.Self, nil)
	test.AssertHTTPStatus(t, &r, http.StatusNotFound)

	// A new plan can be created after the reset
	_ = createTestPlan(t, b.Data.ID, v1.PlanCreate{Strategy: "snowball"})
}

func (suite *TestSuiteStandard) TestPlanDBClosed() {
	b := createTestBudgetWithDebts(suite.T())
	_ = createTestPlan(suite.T(), b.Data.ID, v1.PlanCreate{})

	suite.CloseDB()

	_ = getTestPlan(suite.T(), b.Data.ID, http.StatusInternalServerError)

	r := test.Request(suite.T(), http.MethodPost, planURL(b.Data.ID)+"/check-ins", v1.CheckInCreate{Month: 1})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	var response v1.PlanResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *response.Error)

	r = test.Request(suite.T(), http.MethodPost, planURL(b.Data.ID)+"/automation", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	r = test.Request(suite.T(), http.MethodDelete, planURL(b.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)

	response = v1.PlanResponse{}
	test.DecodeResponse(suite.T(), &r, &response)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), models.ErrGeneral.Error(), *response.Error)
}
