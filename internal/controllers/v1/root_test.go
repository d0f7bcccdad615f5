package v1_test

import (
	"encoding/json"
	"net/http"

	v1 "github.com/envelope-zero/payoff/internal/controllers/v1"
	"github.com/envelope-zero/payoff/internal/models"
	"github.com/envelope-zero/payoff/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) TestRootGet() {
	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.Response
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), v1.Links{
		Budgets:      "http://example.com/v1/budgets",
		Debts:        "http://example.com/v1/debts",
		Transactions: "http://example.com/v1/transactions",
		Simulations:  "http://example.com/v1/simulations",
		Comparisons:  "http://example.com/v1/comparisons",
		Export:       "http://example.com/v1/export",
	}, response.Links)
}

func (suite *TestSuiteStandard) TestRootCleanup() {
	b := createTestBudgetWithDebts(suite.T())
	_ = createTestPlan(suite.T(), b.Data.ID, v1.PlanCreate{})

	r := test.Request(suite.T(), http.MethodPost, planURL(b.Data.ID)+"/automation", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	for _, query := range []string{"", "?confirm=yes"} {
		r = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1"+query, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}

	r = test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	for _, model := range []any{&models.Budget{}, &models.Debt{}, &models.Plan{}, &models.Transaction{}} {
		var count int64
		require.Nil(suite.T(), models.DB.Model(model).Count(&count).Error)
		assert.Equal(suite.T(), int64(0), count, "%T has not been deleted", model)
	}
}

func (suite *TestSuiteStandard) TestRootCleanupDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}

func (suite *TestSuiteStandard) TestExport() {
	b := createTestBudgetWithDebts(suite.T())
	_ = createTestPlan(suite.T(), b.Data.ID, v1.PlanCreate{})

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.ExportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	assert.Equal(suite.T(), "GNU Terry Pratchett", response.Clacks)
	assert.Equal(suite.T(), "0.0.0", response.Version)
	assert.Len(suite.T(), response.Data, len(models.Registry))

	var debts []models.Debt
	require.Nil(suite.T(), json.Unmarshal(response.Data["Debt"], &debts))
	assert.Len(suite.T(), debts, 2)

	var plans []models.Plan
	require.Nil(suite.T(), json.Unmarshal(response.Data["Plan"], &plans))
	require.Len(suite.T(), plans, 1)
	assert.Equal(suite.T(), b.Data.ID, plans[0].BudgetID)
}

func (suite *TestSuiteStandard) TestExportDBClosed() {
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/export", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
