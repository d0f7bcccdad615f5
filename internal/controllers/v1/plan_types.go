package v1

import (
	"fmt"
	"time"

	"github.com/envelope-zero/payoff/internal/models"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/envelope-zero/payoff/internal/plan"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PlanCreate struct {
	Strategy            payoff.Choice `json:"strategy" example:"recommended" enums:"avalanche,snowball,recommended"` // The strategy to pay off the debts with
	ExtraMonthlyPayment float64       `json:"extraMonthlyPayment" example:"250" binding:"gte=0"`                     // Amount paid every month in addition to the minimum payments
}

type CheckInCreate struct {
	Month   int  `json:"month" example:"3"`   // The month of the roadmap that has been paid
	Version *int `json:"version" example:"2"` // Version of the plan this change is based on. If set, the change is refused when the plan has been changed since
}

type ScenarioQuery struct {
	ExtraMonthlyPayment *float64 `form:"extraMonthlyPayment" binding:"required,gte=0"` // The extra monthly payment to preview
}

type ScenarioImplement struct {
	ExtraMonthlyPayment float64 `json:"extraMonthlyPayment" example:"400" binding:"gte=0"` // The new extra monthly payment
	Version             *int    `json:"version" example:"2"`                               // Version of the plan this change is based on. If set, the change is refused when the plan has been changed since
}

type AutomationCreate struct {
	FirstPaymentDate time.Time `json:"firstPaymentDate" example:"2024-06-01T00:00:00Z"` // Date of the first automated payment. Defaults to the current date
	Version          *int      `json:"version" example:"2"`                             // Version of the plan this change is based on. If set, the change is refused when the plan has been changed since
}

type PlanLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/plan"`                  // The plan itself
	Budget     string `json:"budget" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf"`                     // The budget of the plan
	CheckIns   string `json:"checkIns" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/plan/check-ins"`    // Endpoint to check in months
	Scenario   string `json:"scenario" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/plan/scenario"`     // Endpoint to preview and implement other extra payments
	Automation string `json:"automation" example:"https://example.com/api/v1/budgets/550dc009-cea6-4c12-b2a5-03446eb7b7cf/plan/automation"` // Endpoint to manage the automated payment
}

// Plan is the API v1 representation of a stored payoff plan.
type Plan struct {
	models.DefaultModel
	BudgetID uuid.UUID `json:"budgetId" example:"550dc009-cea6-4c12-b2a5-03446eb7b7cf"` // ID of the budget
	plan.DebtPlan
	Links PlanLinks `json:"links"`

	// These fields are computed
	Progress       payoff.Progress `json:"progress"`                      // Progress derived from the checked in months
	CheckInAllowed bool            `json:"checkInAllowed" example:"true"` // Can the next month be checked in today?
}

func newPlan(c *gin.Context, model models.Plan, today time.Time) Plan {
	url := c.GetString(string(models.DBContextURL))
	self := fmt.Sprintf("%s/v1/budgets/%s/plan", url, model.BudgetID)

	debtPlan := model.DebtPlan()

	return Plan{
		DefaultModel: model.DefaultModel,
		BudgetID:     model.BudgetID,
		DebtPlan:     *debtPlan,
		Links: PlanLinks{
			Self:       self,
			Budget:     fmt.Sprintf("%s/v1/budgets/%s", url, model.BudgetID),
			CheckIns:   self + "/check-ins",
			Scenario:   self + "/scenario",
			Automation: self + "/automation",
		},
		Progress:       debtPlan.Progress(),
		CheckInAllowed: debtPlan.CheckInAllowed(today),
	}
}

type PlanResponse struct {
	Data    *Plan   `json:"data"`                                                                                                  // Data for the plan
	Error   *string `json:"error" example:"there is no plan matching your query"`                                                  // The error, if any occurred
	Warning *string `json:"warning" example:"the debts are not paid off after 600 months, the payments do not cover the interest"` // Set when the debts are not paid off
}

type ScenarioResponse struct {
	Data    *payoff.Scenario `json:"data"`                                                                                                  // The preview of the scenario
	Error   *string          `json:"error" example:"ExtraMonthlyPayment is required"`                                                       // The error, if any occurred
	Warning *string          `json:"warning" example:"the debts are not paid off after 600 months, the payments do not cover the interest"` // Set when the debts are not paid off in the scenario
}
