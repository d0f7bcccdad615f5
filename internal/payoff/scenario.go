package payoff

// Scenario is a hypothetical re-simulation of a committed plan with a
// different extra payment.
type Scenario struct {
	Candidate     Outputs `json:"candidate"`
	MonthsSaved   int     `json:"monthsSaved" example:"4"`        // Negative if the candidate takes longer
	InterestSaved float64 `json:"interestSaved" example:"812.37"` // Negative if the candidate costs more interest
}

// Preview re-simulates the committed plan's debts and strategy with another
// extra monthly payment. The committed plan is not modified.
func Preview(committed Outputs, extraMonthlyPayment float64) Scenario {
	candidate := Simulate(committed.OriginalDebts, committed.Strategy, extraMonthlyPayment)

	return Scenario{
		Candidate:     candidate,
		MonthsSaved:   committed.TotalMonths - candidate.TotalMonths,
		InterestSaved: committed.TotalInterest - candidate.TotalInterest,
	}
}
