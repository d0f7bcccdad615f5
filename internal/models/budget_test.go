package models_test

import (
	"encoding/json"

	"github.com/envelope-zero/payoff/internal/models"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestBudgetTrimWhitespace() {
	budget := suite.createTestBudget(models.Budget{
		Name:     "\t Household ",
		Note:     "  shared expenses\n",
		Currency: " € ",
	})

	suite.Assert().Equal("Household", budget.Name)
	suite.Assert().Equal("shared expenses", budget.Note)
	suite.Assert().Equal("€", budget.Currency)
}

func (suite *TestSuiteStandard) TestBudgetDebtsOrder() {
	budget := suite.createTestBudget(models.Budget{})
	other := suite.createTestBudget(models.Budget{})

	_ = suite.createTestDebt(models.Debt{BudgetID: budget.ID, Name: "Third", Position: 3, Balance: decimal.NewFromFloat(10)})
	_ = suite.createTestDebt(models.Debt{BudgetID: budget.ID, Name: "First", Position: 1, Balance: decimal.NewFromFloat(10)})
	_ = suite.createTestDebt(models.Debt{BudgetID: other.ID, Name: "Other budget", Position: 2, Balance: decimal.NewFromFloat(10)})
	_ = suite.createTestDebt(models.Debt{BudgetID: budget.ID, Name: "Second", Position: 2, Balance: decimal.NewFromFloat(10)})

	debts, err := budget.Debts(models.DB)
	suite.Require().Nil(err)
	suite.Require().Len(debts, 3)
	suite.Assert().Equal("First", debts[0].Name)
	suite.Assert().Equal("Second", debts[1].Name)
	suite.Assert().Equal("Third", debts[2].Name)
}

// TestBudgetDeleteCascades verifies that all resources of a budget are
// deleted with it.
func (suite *TestSuiteStandard) TestBudgetDeleteCascades() {
	budget := suite.createTestBudget(models.Budget{})
	debt := suite.createTestDebt(models.Debt{BudgetID: budget.ID, Balance: decimal.NewFromFloat(100)})
	transaction := suite.createTestTransaction(models.Transaction{BudgetID: budget.ID, Amount: decimal.NewFromFloat(25)})

	suite.Require().Nil(models.DB.Delete(&budget).Error)

	suite.Assert().ErrorIs(models.DB.First(&models.Debt{}, debt.ID).Error, models.ErrResourceNotFound)
	suite.Assert().ErrorIs(models.DB.First(&models.Transaction{}, transaction.ID).Error, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestExportRegistry() {
	budget := suite.createTestBudget(models.Budget{Name: "Exported"})
	_ = suite.createTestDebt(models.Debt{BudgetID: budget.ID, Balance: decimal.NewFromFloat(100)})

	for _, model := range models.Registry {
		raw, err := model.Export()
		suite.Require().Nil(err)

		var resources []map[string]any
		suite.Require().Nil(json.Unmarshal(raw, &resources))
	}

	raw, err := models.Budget{}.Export()
	suite.Require().Nil(err)

	var budgets []models.Budget
	suite.Require().Nil(json.Unmarshal(raw, &budgets))
	suite.Require().Len(budgets, 1)
	suite.Assert().Equal("Exported", budgets[0].Name)
}
