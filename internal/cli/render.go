package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/envelope-zero/payoff/internal/payoff"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	goodStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorOrange)
)

// Title renders a title in a rounded box.
func Title(title string) string {
	return titleStyle.Render(title)
}

// Table renders rows as a bordered table.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorBorder)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...).
		Rows(rows...)

	return t.String()
}

// keyValues renders aligned "label  value" lines.
func keyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, len(p[0]))
	}

	var b strings.Builder
	for _, p := range pairs {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-*s", width, p[0])))
		b.WriteString("  ")
		b.WriteString(p[1])
		b.WriteString("\n")
	}

	return b.String()
}

// Warning renders the month cap warning for simulations that do not pay off
// the debts. It is empty otherwise.
func Warning(o payoff.Outputs) string {
	if err := o.Err(); err != nil {
		return warnStyle.Render("Warning: "+err.Error()) + "\n"
	}

	return ""
}

// Summary renders the totals of a simulation.
func Summary(f Formatter, o payoff.Outputs) string {
	return keyValues([][2]string{
		{"Strategy", string(o.Strategy)},
		{"Months", f.Number(o.TotalMonths)},
		{"Monthly payment", f.Amount(o.MonthlyPayment)},
		{"Extra payment", f.Amount(o.ExtraMonthlyPayment)},
		{"Total interest", f.Amount(o.TotalInterest)},
		{"Total paid", f.Amount(o.TotalPaid)},
	}) + Warning(o)
}

// Roadmap renders the months of the roadmap, at most limit months. A limit
// of 0 renders all months.
func Roadmap(f Formatter, o payoff.Outputs, limit int) string {
	items := o.Roadmap
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.Itoa(item.Month),
			f.Amount(item.TotalPayment),
			f.Amount(item.TotalInterestPaid),
			f.Amount(item.TotalPrincipalPaid),
			f.Amount(item.TotalRemainingBalance),
			item.FocusDebtName,
		})
	}

	out := Table([]string{"Month", "Payment", "Interest", "Principal", "Remaining", "Focus"}, rows)
	if len(items) < len(o.Roadmap) {
		out += fmt.Sprintf("\n%d more months not shown\n", len(o.Roadmap)-len(items))
	}

	return out
}

// Comparison renders both strategies side by side.
func Comparison(f Formatter, c payoff.Comparison) string {
	rows := [][]string{
		{"Months", f.Number(c.Avalanche.TotalMonths), f.Number(c.Snowball.TotalMonths)},
		{"Total interest", f.Amount(c.Avalanche.TotalInterest), f.Amount(c.Snowball.TotalInterest)},
		{"Total paid", f.Amount(c.Avalanche.TotalPaid), f.Amount(c.Snowball.TotalPaid)},
		{"Paid off", yesNo(c.Avalanche.PaidOff), yesNo(c.Snowball.PaidOff)},
	}

	out := Table([]string{"", string(payoff.Avalanche), string(payoff.Snowball)}, rows) + "\n"
	out += goodStyle.Render(fmt.Sprintf("%s is cheaper by %s", c.Cheaper, f.Amount(abs(c.InterestDiff)))) + "\n"

	if !c.BothPaidOff {
		out += warnStyle.Render("Warning: "+payoff.ErrMonthCapReached.Error()) + "\n"
	}

	return out
}

// Scenario renders the comparison of a scenario with the committed plan.
func Scenario(f Formatter, committed payoff.Outputs, s payoff.Scenario) string {
	rows := [][]string{
		{"Extra payment", f.Amount(committed.ExtraMonthlyPayment), f.Amount(s.Candidate.ExtraMonthlyPayment)},
		{"Months", f.Number(committed.TotalMonths), f.Number(s.Candidate.TotalMonths)},
		{"Total interest", f.Amount(committed.TotalInterest), f.Amount(s.Candidate.TotalInterest)},
	}

	out := Table([]string{"", "Plan", "Scenario"}, rows) + "\n"
	out += keyValues([][2]string{
		{"Months saved", f.Number(s.MonthsSaved)},
		{"Interest saved", f.Amount(s.InterestSaved)},
	})

	return out + Warning(s.Candidate)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}

	return v
}
