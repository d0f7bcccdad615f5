package main

import (
	"fmt"

	"github.com/envelope-zero/payoff/internal/cli"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/spf13/cobra"
)

func newScenarioCmd(opts *options) *cobra.Command {
	var candidate float64

	cmd := &cobra.Command{
		Use:   "scenario <file>",
		Short: "Compare the plan from the file with another extra monthly payment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if candidate < 0 {
				return fmt.Errorf("the candidate extra monthly payment must not be negative, got %v", candidate)
			}

			f, formatter, err := load(cmd, opts, args[0])
			if err != nil {
				return err
			}

			if f.Strategy == "" {
				f.Strategy = string(payoff.Recommended)
			}

			choice, err := payoff.ParseChoice(f.Strategy)
			if err != nil {
				return err
			}

			committed := payoff.Simulate(f.Debts, choice.Resolve(), f.ExtraMonthlyPayment)
			s := payoff.Preview(committed, candidate)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.Title("SCENARIO"))
			fmt.Fprintln(out, cli.Scenario(formatter, committed, s))

			return nil
		},
	}

	cmd.Flags().Float64Var(&candidate, "candidate", 0, "Extra monthly payment of the scenario")
	_ = cmd.MarkFlagRequired("candidate")

	return cmd
}
