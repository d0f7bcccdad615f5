package payoff

import (
	"fmt"
	"time"

	"golang.org/x/exp/slices"
)

// Progress is the real-world progress of a plan, derived from the months
// that have been checked in.
type Progress struct {
	Index               int          `json:"index" example:"3"` // Number of checked in months
	RemainingBalance    float64      `json:"remainingBalance" example:"8400.12"`
	PaidToDate          float64      `json:"paidToDate" example:"4099.88"`
	InterestPaidToDate  float64      `json:"interestPaidToDate" example:"312.45"`
	PrincipalPaidToDate float64      `json:"principalPaidToDate" example:"3787.43"`
	Next                *RoadmapItem `json:"next"` // Next month to check in, nil once every month is checked in
}

// CheckIn adds the month to the checked in months.
//
// The result is sorted ascending and free of duplicates. Checking in a month
// twice is a no-op. ErrInvalidMonth is returned for months outside of
// 1..totalMonths, the ordering of check-ins is not validated.
func CheckIn(checked []int, month, totalMonths int) ([]int, error) {
	if month < 1 || month > totalMonths {
		return checked, fmt.Errorf("%w: %d is not in 1..%d", ErrInvalidMonth, month, totalMonths)
	}

	out := make([]int, 0, len(checked)+1)
	out = append(out, checked...)
	out = append(out, month)

	slices.Sort(out)
	return slices.Compact(out), nil
}

// ProgressOf computes the progress for the checked in months.
func ProgressOf(o Outputs, checked []int) Progress {
	index := min(len(checked), len(o.Roadmap))
	initial := o.InitialBalance()

	p := Progress{
		Index:            index,
		RemainingBalance: initial,
	}

	if index > 0 {
		p.RemainingBalance = o.Roadmap[index-1].TotalRemainingBalance
	}

	for _, item := range o.Roadmap[:index] {
		p.InterestPaidToDate += item.TotalInterestPaid
	}

	p.PaidToDate = initial - p.RemainingBalance
	p.PrincipalPaidToDate = p.PaidToDate - p.InterestPaidToDate

	if index < len(o.Roadmap) {
		next := o.Roadmap[index]
		p.Next = &next
	}

	return p
}

// CheckInAllowed reports if the roadmap item may be checked in on the
// given day.
//
// This is the case once the day of the month is on or after the payment day
// of the item's focus debt. The focus debt is looked up by its position, not
// by name. Payment days after the end of the month are treated as the last
// day of the month.
func CheckInAllowed(o Outputs, item RoadmapItem, today time.Time) bool {
	if item.FocusDebtName == AllPaidOff {
		return true
	}

	debt, ok := o.debt(item.FocusDebtIndex)
	if !ok || debt.PaymentDayOfMonth < 1 {
		return true
	}

	// Day 0 of the next month is the last day of this month
	last := time.Date(today.Year(), today.Month()+1, 0, 0, 0, 0, 0, today.Location()).Day()

	return today.Day() >= min(debt.PaymentDayOfMonth, last)
}
