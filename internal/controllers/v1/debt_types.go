package v1

import (
	"fmt"

	"github.com/envelope-zero/payoff/internal/models"
	ez_uuid "github.com/envelope-zero/payoff/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DebtEditable represents all user configurable parameters
type DebtEditable struct {
	BudgetID uuid.UUID `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the budget the debt belongs to
	Name     string    `json:"name" example:"Credit card" default:""`                   // Name of the debt
	Note     string    `json:"note" example:"The one with the high APR" default:""`     // A note

	// The maximum value is "999999999999.99999999", swagger unfortunately rounds this.
	Balance    decimal.Decimal `json:"balance" example:"2500" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"`  // The amount owed
	APR        decimal.Decimal `json:"apr" example:"19.99" minimum:"0"`                                                             // Annual percentage rate, in percent
	MinPayment decimal.Decimal `json:"minPayment" example:"75" minimum:"0" maximum:"999999999999.99999999" multipleOf:"0.00000001"` // The minimum monthly payment

	PaymentDay int `json:"paymentDay" example:"15" minimum:"1" maximum:"31"` // Day of the month the payment is due
	Position   int `json:"position" example:"2" default:"0"`                 // Position of the debt in the budget's list of debts
}

func (editable DebtEditable) model() models.Debt {
	return models.Debt{
		BudgetID:   editable.BudgetID,
		Name:       editable.Name,
		Note:       editable.Note,
		Balance:    editable.Balance,
		APR:        editable.APR,
		MinPayment: editable.MinPayment,
		PaymentDay: editable.PaymentDay,
		Position:   editable.Position,
	}
}

type DebtLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/debts/0c0e7a5c-9f1b-4a57-8d0a-2a7ad0a6f9e4"`     // The debt itself
	Budget string `json:"budget" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // The budget of the debt
}

// Debt is the API v1 representation of a Debt.
type Debt struct {
	models.DefaultModel
	DebtEditable
	Links DebtLinks `json:"links"`

	// This field is computed
	Viable bool `json:"viable" example:"true"` // Can the debt take part in a plan? It needs a name, a balance and a minimum payment
}

func newDebt(c *gin.Context, model models.Debt) Debt {
	url := c.GetString(string(models.DBContextURL))

	return Debt{
		DefaultModel: model.DefaultModel,
		DebtEditable: DebtEditable{
			BudgetID:   model.BudgetID,
			Name:       model.Name,
			Note:       model.Note,
			Balance:    model.Balance,
			APR:        model.APR,
			MinPayment: model.MinPayment,
			PaymentDay: model.PaymentDay,
			Position:   model.Position,
		},
		Links: DebtLinks{
			Self:   fmt.Sprintf("%s/v1/debts/%s", url, model.ID),
			Budget: fmt.Sprintf("%s/v1/budgets/%s", url, model.BudgetID),
		},
		Viable: model.ToPayoff().Viable(),
	}
}

type DebtListResponse struct {
	Data       []Debt      `json:"data"`                                                          // List of debts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type DebtCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []DebtResponse `json:"data"`                                                          // List of created debts
}

func (d *DebtCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	d.Data = append(d.Data, DebtResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type DebtResponse struct {
	Data  *Debt   `json:"data"`                                                          // Data for the debt
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type DebtQueryFilter struct {
	BudgetID ez_uuid.UUID `form:"budget"`                     // By ID of the budget
	Name     string       `form:"name"`                       // By name, exact match
	Match    string       `form:"match" filterField:"false"`  // By name, glob pattern. Globbing is case sensitive
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first debt returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of debts to return. Defaults to 50.
}

func (f DebtQueryFilter) model() models.Debt {
	return models.Debt{
		BudgetID: f.BudgetID.UUID,
		Name:     f.Name,
	}
}
