package models_test

import (
	"strings"

	"github.com/envelope-zero/payoff/internal/models"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestDebtTrimWhitespace() {
	name := "\t Student loan  "
	note := "  Consolidated in 2019\n"

	debt := suite.createTestDebt(models.Debt{
		BudgetID: suite.createTestBudget(models.Budget{}).ID,
		Name:     name,
		Note:     note,
		Balance:  decimal.NewFromFloat(12000),
	})

	suite.Assert().Equal(strings.TrimSpace(name), debt.Name)
	suite.Assert().Equal(strings.TrimSpace(note), debt.Note)
}

func (suite *TestSuiteStandard) TestDebtBudgetDoesNotExist() {
	debt := models.Debt{BudgetID: uuid.New(), PaymentDay: 1}

	err := models.DB.Create(&debt).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
	suite.Assert().Contains(err.Error(), "budget")
}

func (suite *TestSuiteStandard) TestDebtUpdateBudgetDoesNotExist() {
	debt := suite.createTestDebt(models.Debt{
		BudgetID: suite.createTestBudget(models.Budget{}).ID,
		Balance:  decimal.NewFromFloat(100),
	})

	err := models.DB.Model(&debt).Updates(models.Debt{BudgetID: uuid.New()}).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestDebtValidation() {
	budget := suite.createTestBudget(models.Budget{})

	tests := []struct {
		name string
		debt models.Debt
		err  error
	}{
		{"Payment day zero", models.Debt{PaymentDay: 0}, models.ErrDebtPaymentDayInvalid},
		{"Payment day 32", models.Debt{PaymentDay: 32}, models.ErrDebtPaymentDayInvalid},
		{"Negative balance", models.Debt{PaymentDay: 5, Balance: decimal.NewFromFloat(-1)}, models.ErrDebtAmountNegative},
		{"Negative APR", models.Debt{PaymentDay: 5, APR: decimal.NewFromFloat(-0.5)}, models.ErrDebtAmountNegative},
		{"Negative minimum payment", models.Debt{PaymentDay: 5, MinPayment: decimal.NewFromFloat(-25)}, models.ErrDebtAmountNegative},
		{"Valid", models.Debt{PaymentDay: 31, Balance: decimal.NewFromFloat(500)}, nil},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			debt := tt.debt
			debt.BudgetID = budget.ID

			err := models.DB.Create(&debt).Error
			if tt.err == nil {
				suite.Assert().Nil(err)
				return
			}
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

// TestDebtUpdateValidation verifies that the values are validated on updates
// also.
func (suite *TestSuiteStandard) TestDebtUpdateValidation() {
	debt := suite.createTestDebt(models.Debt{
		BudgetID: suite.createTestBudget(models.Budget{}).ID,
		Balance:  decimal.NewFromFloat(100),
	})

	err := models.DB.Model(&debt).Updates(models.Debt{PaymentDay: 40}).Error
	suite.Assert().ErrorIs(err, models.ErrDebtPaymentDayInvalid)

	var stored models.Debt
	suite.Require().Nil(models.DB.First(&stored, debt.ID).Error)
	suite.Assert().Equal(1, stored.PaymentDay, "Invalid update has been stored")
}

func (suite *TestSuiteStandard) TestDebtToPayoff() {
	debt := models.Debt{
		Name:       "Car loan",
		Balance:    decimal.NewFromFloat(8450.25),
		APR:        decimal.NewFromFloat(6.9),
		MinPayment: decimal.NewFromFloat(215),
		PaymentDay: 12,
	}

	suite.Assert().Equal(payoff.Debt{
		Name:              "Car loan",
		Balance:           8450.25,
		APR:               6.9,
		MinPayment:        215,
		PaymentDayOfMonth: 12,
	}, debt.ToPayoff())
}
