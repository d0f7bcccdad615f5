package payoff

// Comparison reports the outcome of both strategies for the same debts.
type Comparison struct {
	Avalanche    Outputs  `json:"avalanche"`
	Snowball     Outputs  `json:"snowball"`
	Cheaper      Strategy `json:"cheaper" example:"avalanche"`   // Strategy with the lower total interest
	MonthsDiff   int      `json:"monthsDiff" example:"2"`        // Months of snowball minus months of avalanche
	InterestDiff float64  `json:"interestDiff" example:"154.23"` // Interest of snowball minus interest of avalanche
	BothPaidOff  bool     `json:"bothPaidOff" example:"true"`    // False if at least one of the strategies hit the month cap
}

// Compare simulates both strategies with the same debts and extra payment.
//
// The cheaper strategy is the one with less total interest. On equal interest,
// fewer months win, and avalanche wins a complete tie.
func Compare(debts []Debt, extraMonthlyPayment float64) Comparison {
	c := Comparison{
		Avalanche: Simulate(debts, Avalanche, extraMonthlyPayment),
		Snowball:  Simulate(debts, Snowball, extraMonthlyPayment),
	}

	c.MonthsDiff = c.Snowball.TotalMonths - c.Avalanche.TotalMonths
	c.InterestDiff = c.Snowball.TotalInterest - c.Avalanche.TotalInterest
	c.BothPaidOff = c.Avalanche.PaidOff && c.Snowball.PaidOff

	c.Cheaper = Avalanche
	switch {
	case c.InterestDiff < -Epsilon:
		c.Cheaper = Snowball
	case c.InterestDiff <= Epsilon && c.MonthsDiff < 0:
		c.Cheaper = Snowball
	}

	return c
}
