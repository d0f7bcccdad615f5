package models_test

import (
	"time"

	"github.com/envelope-zero/payoff/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionAmountNotPositive() {
	budget := suite.createTestBudget(models.Budget{})

	for _, amount := range []float64{0, -10} {
		transaction := models.Transaction{BudgetID: budget.ID, Amount: decimal.NewFromFloat(amount)}
		suite.Assert().ErrorIs(models.DB.Create(&transaction).Error, models.ErrTransactionAmountNotPositive, "Amount %f", amount)
	}
}

func (suite *TestSuiteStandard) TestTransactionBudgetDoesNotExist() {
	transaction := models.Transaction{BudgetID: uuid.New(), Amount: decimal.NewFromFloat(10)}
	suite.Assert().ErrorIs(models.DB.Create(&transaction).Error, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionDateUTC() {
	berlin := time.FixedZone("CET", 60*60)

	transaction := suite.createTestTransaction(models.Transaction{
		BudgetID:  suite.createTestBudget(models.Budget{}).ID,
		Amount:    decimal.NewFromFloat(330),
		Category:  " Debt Payment ",
		Date:      time.Date(2024, 3, 15, 12, 0, 0, 0, berlin),
		Recurring: true,
	})
	suite.Assert().Equal("Debt Payment", transaction.Category)

	var stored models.Transaction
	suite.Require().Nil(models.DB.First(&stored, transaction.ID).Error)
	suite.Assert().Equal(time.UTC, stored.Date.Location())
	suite.Assert().True(stored.Date.Equal(transaction.Date))
	suite.Assert().True(stored.Recurring)
}
