package v1

import (
	"github.com/envelope-zero/payoff/internal/payoff"
)

type SimulationRequest struct {
	Debts               []payoff.Debt `json:"debts"`                                                                 // The debts to pay off
	Strategy            payoff.Choice `json:"strategy" example:"recommended" enums:"avalanche,snowball,recommended"` // The strategy to use
	ExtraMonthlyPayment float64       `json:"extraMonthlyPayment" example:"250" binding:"gte=0"`                     // Amount paid every month in addition to the minimum payments
}

type SimulationResponse struct {
	Data    *payoff.Outputs `json:"data"`                                                                                                  // The result of the simulation
	Error   *string         `json:"error" example:"the strategy must be one of avalanche, snowball or recommended"`                        // The error, if any occurred
	Warning *string         `json:"warning" example:"the debts are not paid off after 600 months, the payments do not cover the interest"` // Set when the debts are not paid off
}

type ComparisonRequest struct {
	Debts               []payoff.Debt `json:"debts"`                                             // The debts to pay off
	ExtraMonthlyPayment float64       `json:"extraMonthlyPayment" example:"250" binding:"gte=0"` // Amount paid every month in addition to the minimum payments
}

type ComparisonResponse struct {
	Data    *payoff.Comparison `json:"data"`                                                                                                  // The comparison of the strategies
	Error   *string            `json:"error" example:"at least one debt needs a name, a balance, an APR of 0 or more and a minimum payment"`  // The error, if any occurred
	Warning *string            `json:"warning" example:"the debts are not paid off after 600 months, the payments do not cover the interest"` // Set when at least one strategy does not pay off the debts
}
