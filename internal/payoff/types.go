// Package payoff implements the multi-debt amortization engine.
//
// Everything in this package is pure: given the same debts, strategy and
// extra payment, the same roadmap is produced.
package payoff

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Epsilon is the balance at or below which a debt counts as paid off.
	Epsilon = 0.01

	// MaxMonths caps the simulation so that debts that cannot be paid off
	// with the given payments do not loop forever.
	MaxMonths = 600

	// AllPaidOff is the focus debt name once no debt has a balance left.
	AllPaidOff = "All Paid Off!"
)

var (
	ErrMonthCapReached = fmt.Errorf("the debts are not paid off after %d months, the payments do not cover the interest", MaxMonths)
	ErrInvalidMonth    = errors.New("the month does not exist in the roadmap")
	ErrInvalidStrategy = errors.New("the strategy must be one of avalanche, snowball or recommended")
)

// Debt is a single liability line item.
type Debt struct {
	Name              string  `json:"name" toml:"name" example:"Credit card"`
	Balance           float64 `json:"balance" toml:"balance" example:"2500"`             // Amount owed
	APR               float64 `json:"apr" toml:"apr" example:"19.99"`                    // Annual percentage rate, in percent
	MinPayment        float64 `json:"minPayment" toml:"min_payment" example:"75"`        // Minimum monthly payment
	PaymentDayOfMonth int     `json:"paymentDayOfMonth" toml:"payment_day" example:"15"` // Day of the month the payment is due
}

// Viable reports if the debt can take part in a plan.
func (d Debt) Viable() bool {
	return d.Balance > 0 && d.APR >= 0 && d.MinPayment > 0 && strings.TrimSpace(d.Name) != ""
}

// monthlyRate is the periodic interest rate for one month.
func (d Debt) monthlyRate() float64 {
	return d.APR / 100 / 12
}

// Viable returns the debts that can take part in a plan, keeping their order.
func Viable(debts []Debt) []Debt {
	viable := make([]Debt, 0, len(debts))
	for _, d := range debts {
		if d.Viable() {
			viable = append(viable, d)
		}
	}

	return viable
}

// swagger:enum Strategy
type Strategy string

const (
	Avalanche Strategy = "avalanche" // Highest APR first
	Snowball  Strategy = "snowball"  // Lowest balance first
)

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case Avalanche:
		return Avalanche, nil
	case Snowball:
		return Snowball, nil
	}

	return "", fmt.Errorf("%w: '%s'", ErrInvalidStrategy, s)
}

// swagger:enum Choice
type Choice string

// Recommended lets the planner choose the strategy.
const Recommended Choice = "recommended"

// ParseChoice parses the strategy selection of a user.
func ParseChoice(s string) (Choice, error) {
	if Choice(strings.ToLower(strings.TrimSpace(s))) == Recommended {
		return Recommended, nil
	}

	strategy, err := ParseStrategy(s)
	if err != nil {
		return "", err
	}

	return Choice(strategy), nil
}

// Resolve returns the strategy for the choice.
//
// The recommendation is a fixed mapping to avalanche, no comparison between
// the strategies takes place.
func (c Choice) Resolve() Strategy {
	if c == Recommended {
		return Avalanche
	}

	return Strategy(c)
}

// PaymentDetail is the outcome of one month for one debt.
type PaymentDetail struct {
	DebtName         string  `json:"debtName" example:"Credit card"`
	Payment          float64 `json:"payment" example:"420.5"`
	InterestPaid     float64 `json:"interestPaid" example:"41.65"`
	PrincipalPaid    float64 `json:"principalPaid" example:"378.85"`
	RemainingBalance float64 `json:"remainingBalance" example:"2162.8"`
}

// RoadmapItem is the outcome of one simulated month.
type RoadmapItem struct {
	Month                 int             `json:"month" example:"1"`
	TotalPayment          float64         `json:"totalPayment" example:"1250"`
	TotalInterestPaid     float64         `json:"totalInterestPaid" example:"83.12"`
	TotalPrincipalPaid    float64         `json:"totalPrincipalPaid" example:"1166.88"`
	TotalRemainingBalance float64         `json:"totalRemainingBalance" example:"10833.12"`
	FocusDebtName         string          `json:"focusDebtName" example:"Credit card"` // The debt that receives extra payments first
	FocusDebtIndex        int             `json:"focusDebtIndex" example:"0"`          // Position of the focus debt in the input, -1 once all debts are paid off
	PaymentDetails        []PaymentDetail `json:"paymentDetails"`                      // One entry per debt, in input order
}

// Outputs is the result of a simulation.
type Outputs struct {
	Strategy            Strategy      `json:"strategy" example:"avalanche"`
	TotalMonths         int           `json:"totalMonths" example:"23"`
	TotalInterest       float64       `json:"totalInterest" example:"1043.77"`
	TotalPaid           float64       `json:"totalPaid" example:"13543.77"`
	MonthlyPayment      float64       `json:"monthlyPayment" example:"1250"` // Sum of all minimum payments and the extra payment
	ExtraMonthlyPayment float64       `json:"extraMonthlyPayment" example:"500"`
	OriginalDebts       []Debt        `json:"originalDebts"`
	Roadmap             []RoadmapItem `json:"roadmap"`
	PaidOff             bool          `json:"paidOff" example:"true"` // False if the month cap was reached before all debts were paid off
}

// Err returns ErrMonthCapReached when the roadmap does not end with all
// debts being paid off.
func (o Outputs) Err() error {
	if !o.PaidOff {
		return ErrMonthCapReached
	}

	return nil
}

// InitialBalance is the sum of the balances of all debts at the start.
func (o Outputs) InitialBalance() float64 {
	var balance float64
	for _, d := range o.OriginalDebts {
		if d.Balance > Epsilon {
			balance += d.Balance
		}
	}

	return balance
}

// debt returns the original debt at position i.
func (o Outputs) debt(i int) (Debt, bool) {
	if i < 0 || i >= len(o.OriginalDebts) {
		return Debt{}, false
	}

	return o.OriginalDebts[i], true
}
