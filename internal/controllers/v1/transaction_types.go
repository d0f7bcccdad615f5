package v1

import (
	"fmt"
	"time"

	"github.com/envelope-zero/payoff/internal/models"
	ez_uuid "github.com/envelope-zero/payoff/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"` // The transaction itself
	Budget string `json:"budget" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`    // The budget of the transaction
}

// Transaction is the API v1 representation of a Transaction.
//
// Transactions are created by the automation of a plan, they cannot be
// edited through the API.
type Transaction struct {
	models.DefaultModel
	BudgetID  uuid.UUID        `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the budget
	Amount    decimal.Decimal  `json:"amount" example:"1250"`                                   // The amount of the transaction
	Category  string           `json:"category" example:"Debt Payment"`                         // The category of the transaction
	Note      string           `json:"note" example:"Automated payment for the debt payoff plan"`
	Date      time.Time        `json:"date" example:"2024-05-15T00:00:00Z"` // Date of the transaction. For recurring transactions, the date of the first occurrence
	Recurring bool             `json:"recurring" example:"true"`            // Does the transaction repeat every month?
	Links     TransactionLinks `json:"links"`
}

func newTransaction(c *gin.Context, model models.Transaction) Transaction {
	url := c.GetString(string(models.DBContextURL))

	return Transaction{
		DefaultModel: model.DefaultModel,
		BudgetID:     model.BudgetID,
		Amount:       model.Amount,
		Category:     model.Category,
		Note:         model.Note,
		Date:         model.Date,
		Recurring:    model.Recurring,
		Links: TransactionLinks{
			Self:   fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Budget: fmt.Sprintf("%s/v1/budgets/%s", url, model.BudgetID),
		},
	}
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type TransactionQueryFilter struct {
	BudgetID  ez_uuid.UUID `form:"budget"`                     // By ID of the budget
	Category  string       `form:"category"`                   // By category
	Recurring bool         `form:"recurring"`                  // Is the transaction recurring?
	Offset    uint         `form:"offset" filterField:"false"` // The offset of the first transaction returned. Defaults to 0.
	Limit     int          `form:"limit" filterField:"false"`  // Maximum number of transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		BudgetID:  f.BudgetID.UUID,
		Category:  f.Category,
		Recurring: f.Recurring,
	}
}
