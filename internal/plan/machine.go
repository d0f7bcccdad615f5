package plan

import (
	"errors"
	"fmt"

	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// State is a step in the lifecycle of a plan.
type State int

const (
	Input State = iota
	StrategySelection
	Calculating
	Dashboard
)

func (s State) String() string {
	switch s {
	case Input:
		return "input"
	case StrategySelection:
		return "strategy selection"
	case Calculating:
		return "calculating"
	case Dashboard:
		return "dashboard"
	}

	return fmt.Sprintf("unknown state %d", int(s))
}

var (
	ErrWrongState    = errors.New("the operation is not possible in the current state of the plan")
	ErrNoViableDebts = errors.New("at least one debt needs a name, a balance, an APR of 0 or more and a minimum payment")
	ErrDebtIndex     = errors.New("there is no debt at this position")
)

// Machine drives a plan from the input of debts to the dashboard.
//
// A Machine is owned by exactly one session, it is not safe for concurrent use.
type Machine struct {
	state  State
	debts  []payoff.Debt
	choice payoff.Choice
	plan   *DebtPlan
}

// NewMachine creates a Machine. If a plan exists, the machine starts on the
// dashboard, otherwise it starts with an empty debt form.
func NewMachine(existing *DebtPlan) *Machine {
	if existing != nil {
		return &Machine{
			state: Dashboard,
			debts: slices.Clone(existing.OriginalDebts),
			plan:  existing,
		}
	}

	return &Machine{
		state: Input,
		debts: defaultDebts(),
	}
}

// defaultDebts is the input form shown for a new plan.
func defaultDebts() []payoff.Debt {
	return []payoff.Debt{{PaymentDayOfMonth: 1}}
}

func (m *Machine) State() State {
	return m.state
}

// Debts returns a copy of the debts currently entered.
func (m *Machine) Debts() []payoff.Debt {
	return slices.Clone(m.debts)
}

// Choice returns the strategy choice. It is empty before a choice was made.
func (m *Machine) Choice() payoff.Choice {
	return m.choice
}

// Plan returns the committed plan, nil if there is none.
func (m *Machine) Plan() *DebtPlan {
	return m.plan
}

func (m *Machine) expect(operation string, state State) error {
	if m.state != state {
		return fmt.Errorf("%w: %s needs state %s, the plan is in state %s", ErrWrongState, operation, state, m.state)
	}

	return nil
}

func (m *Machine) transition(to State) {
	log.Debug().Str("from", m.state.String()).Str("to", to.String()).Msg("Plan")
	m.state = to
}

// SetDebts replaces all debts.
func (m *Machine) SetDebts(debts []payoff.Debt) error {
	if err := m.expect("setting debts", Input); err != nil {
		return err
	}

	m.debts = slices.Clone(debts)
	return nil
}

// AddDebt appends a debt.
func (m *Machine) AddDebt(debt payoff.Debt) error {
	if err := m.expect("adding a debt", Input); err != nil {
		return err
	}

	m.debts = append(m.debts, debt)
	return nil
}

// UpdateDebt replaces the debt at position i.
func (m *Machine) UpdateDebt(i int, debt payoff.Debt) error {
	if err := m.expect("updating a debt", Input); err != nil {
		return err
	}

	if i < 0 || i >= len(m.debts) {
		return fmt.Errorf("%w: %d", ErrDebtIndex, i)
	}

	m.debts[i] = debt
	return nil
}

// RemoveDebt removes the debt at position i.
func (m *Machine) RemoveDebt(i int) error {
	if err := m.expect("removing a debt", Input); err != nil {
		return err
	}

	if i < 0 || i >= len(m.debts) {
		return fmt.Errorf("%w: %d", ErrDebtIndex, i)
	}

	m.debts = slices.Delete(m.debts, i, i+1)
	return nil
}

// Proceed moves on to the strategy selection.
//
// This is refused with ErrNoViableDebts unless at least one debt can take
// part in a plan.
func (m *Machine) Proceed() error {
	if err := m.expect("proceeding to the strategy selection", Input); err != nil {
		return err
	}

	if len(payoff.Viable(m.debts)) == 0 {
		return ErrNoViableDebts
	}

	m.transition(StrategySelection)
	return nil
}

// Back returns to the debt input.
func (m *Machine) Back() error {
	if err := m.expect("going back to the debt input", StrategySelection); err != nil {
		return err
	}

	m.transition(Input)
	return nil
}

// Choose selects the strategy and moves on to the calculation.
func (m *Machine) Choose(choice payoff.Choice) error {
	if err := m.expect("choosing a strategy", StrategySelection); err != nil {
		return err
	}

	parsed, err := payoff.ParseChoice(string(choice))
	if err != nil {
		return err
	}

	m.choice = parsed
	m.transition(Calculating)
	return nil
}

// Calculate simulates the viable debts with the chosen strategy and commits
// the result as the plan.
//
// When the simulation hits the month cap, the plan is still committed and
// payoff.ErrMonthCapReached is returned alongside it as a warning.
func (m *Machine) Calculate(extraMonthlyPayment float64) (*DebtPlan, error) {
	if err := m.expect("calculating the plan", Calculating); err != nil {
		return nil, err
	}

	strategy := m.choice.Resolve()
	outputs := payoff.Simulate(payoff.Viable(m.debts), strategy, extraMonthlyPayment)

	m.plan = New(outputs)
	m.transition(Dashboard)

	log.Debug().
		Str("strategy", string(strategy)).
		Int("months", outputs.TotalMonths).
		Float64("interest", outputs.TotalInterest).
		Msg("Plan calculated")

	return m.plan, warn(outputs)
}

// CheckIn confirms that the payment for the month has been made.
func (m *Machine) CheckIn(month int) error {
	if err := m.expect("checking in", Dashboard); err != nil {
		return err
	}

	checked, err := payoff.CheckIn(m.plan.CheckedInMonths, month, m.plan.TotalMonths)
	if err != nil {
		return err
	}

	m.plan.CheckedInMonths = checked
	return nil
}

// Preview re-simulates the plan with another extra payment without
// changing it.
func (m *Machine) Preview(extraMonthlyPayment float64) (payoff.Scenario, error) {
	if err := m.expect("previewing a scenario", Dashboard); err != nil {
		return payoff.Scenario{}, err
	}

	return payoff.Preview(m.plan.Outputs, extraMonthlyPayment), nil
}

// Implement replaces the plan's simulation with a re-simulation for the
// extra payment. Debts and strategy stay the same.
//
// Check-ins and the automation reference are kept. Check-ins for months
// the new roadmap does not have anymore are dropped.
func (m *Machine) Implement(extraMonthlyPayment float64) (*DebtPlan, error) {
	if err := m.expect("implementing a scenario", Dashboard); err != nil {
		return nil, err
	}

	outputs := payoff.Preview(m.plan.Outputs, extraMonthlyPayment).Candidate

	m.plan.Outputs = outputs
	m.plan.CheckedInMonths = slices.DeleteFunc(m.plan.CheckedInMonths, func(month int) bool {
		return month > outputs.TotalMonths
	})

	return m.plan, warn(outputs)
}

// Reset discards the plan and starts over with an empty debt form.
//
// A plan with an active automation cannot be reset, the automation must be
// cancelled first.
func (m *Machine) Reset() error {
	if err := m.expect("resetting", Dashboard); err != nil {
		return err
	}

	if m.plan.Automated() {
		return ErrAutomationActive
	}

	m.plan = nil
	m.choice = ""
	m.debts = defaultDebts()
	m.transition(Input)
	return nil
}

// warn returns the month cap error for simulations that do not pay off the
// debts and logs it.
func warn(outputs payoff.Outputs) error {
	err := outputs.Err()
	if err != nil {
		log.Warn().Str("strategy", string(outputs.Strategy)).Int("months", outputs.TotalMonths).Msg(err.Error())
	}

	return err
}
