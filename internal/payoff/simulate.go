package payoff

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// account is the working state of one debt during a simulation.
type account struct {
	index   int // Position of the debt in the input
	debt    Debt
	balance float64
}

// Simulate computes the month by month payoff roadmap for the debts.
//
// Debts with a balance at or below Epsilon are ignored. If no debt is left,
// the zero plan is returned. A debt is retired once its balance is at or below
// Epsilon, the residue is not paid and its remaining balance is 0 from then on.
// TotalPaid is the initial balance plus interest and includes written off
// residues. The simulation stops after MaxMonths, in which
// case PaidOff is false and the result must not be presented as a payoff date.
func Simulate(debts []Debt, strategy Strategy, extraMonthlyPayment float64) Outputs {
	if extraMonthlyPayment < 0 {
		extraMonthlyPayment = 0
	}

	out := Outputs{
		Strategy:            strategy,
		ExtraMonthlyPayment: extraMonthlyPayment,
		OriginalDebts:       slices.Clone(debts),
		Roadmap:             []RoadmapItem{},
		PaidOff:             true,
	}

	if out.OriginalDebts == nil {
		out.OriginalDebts = []Debt{}
	}

	var accounts []*account
	for i, d := range debts {
		if d.Balance <= Epsilon {
			continue
		}

		accounts = append(accounts, &account{index: i, debt: d, balance: d.Balance})
		out.MonthlyPayment += d.MinPayment
	}

	if len(accounts) == 0 {
		out.MonthlyPayment = 0
		return out
	}
	out.MonthlyPayment += extraMonthlyPayment

	active := slices.Clone(accounts)
	for month := 1; len(active) > 0; month++ {
		if month > MaxMonths {
			out.PaidOff = false
			break
		}

		item := simulateMonth(month, accounts, active, strategy, extraMonthlyPayment)
		out.Roadmap = append(out.Roadmap, item)
		out.TotalInterest += item.TotalInterestPaid

		active = slices.DeleteFunc(active, func(a *account) bool {
			return a.balance <= Epsilon
		})
	}

	out.TotalMonths = len(out.Roadmap)
	out.TotalPaid = out.InitialBalance() + out.TotalInterest

	return out
}

// simulateMonth advances all active accounts by one month and returns the
// roadmap entry for it. accounts holds every simulated debt in input order,
// active the ones that still have a balance.
func simulateMonth(month int, accounts, active []*account, strategy Strategy, extra float64) RoadmapItem {
	interest := make(map[int]float64, len(active))
	payments := make(map[int]float64, len(active))

	item := RoadmapItem{
		Month:          month,
		FocusDebtName:  AllPaidOff,
		FocusDebtIndex: -1,
	}

	// Interest accrues before anything is paid
	for _, a := range active {
		i := a.balance * a.debt.monthlyRate()
		a.balance += i
		interest[a.index] = i
		item.TotalInterestPaid += i
	}

	pool := extra
	for _, a := range active {
		pool += a.debt.MinPayment
	}

	for _, a := range active {
		p := min(a.balance, a.debt.MinPayment)
		a.balance -= p
		pool -= p
		payments[a.index] += p
	}

	order := prioritize(active, strategy)
	for _, a := range order {
		if pool <= 0 {
			break
		}

		p := min(a.balance, pool)
		a.balance -= p
		pool -= p
		payments[a.index] += p
	}

	// The residue of a retired debt is written off
	for _, a := range active {
		if a.balance <= Epsilon {
			a.balance = 0
		}
	}

	for _, a := range order {
		if a.balance > Epsilon {
			item.FocusDebtName = a.debt.Name
			item.FocusDebtIndex = a.index
			break
		}
	}

	item.PaymentDetails = make([]PaymentDetail, 0, len(accounts))
	for _, a := range accounts {
		payment := payments[a.index]
		item.PaymentDetails = append(item.PaymentDetails, PaymentDetail{
			DebtName:         a.debt.Name,
			Payment:          payment,
			InterestPaid:     interest[a.index],
			PrincipalPaid:    max(payment-interest[a.index], 0),
			RemainingBalance: max(a.balance, 0),
		})

		item.TotalPayment += payment
		item.TotalRemainingBalance += max(a.balance, 0)
	}

	// Aggregate principal is not clamped so that payment = interest + principal
	// holds for every month
	item.TotalPrincipalPaid = item.TotalPayment - item.TotalInterestPaid

	return item
}

// prioritize returns the accounts that still have a balance in the order in
// which the strategy assigns extra payments to them. Ties keep input order.
func prioritize(active []*account, strategy Strategy) []*account {
	order := make([]*account, 0, len(active))
	for _, a := range active {
		if a.balance > Epsilon {
			order = append(order, a)
		}
	}

	switch strategy {
	case Snowball:
		slices.SortStableFunc(order, func(a, b *account) int {
			return cmp.Compare(a.balance, b.balance)
		})
	default:
		slices.SortStableFunc(order, func(a, b *account) int {
			return cmp.Compare(b.debt.APR, a.debt.APR)
		})
	}

	return order
}
