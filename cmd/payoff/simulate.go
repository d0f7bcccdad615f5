package main

import (
	"fmt"

	"github.com/envelope-zero/payoff/internal/cli"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/spf13/cobra"
)

func newSimulateCmd(opts *options) *cobra.Command {
	var (
		strategy string
		months   int
	)

	cmd := &cobra.Command{
		Use:   "simulate <file>",
		Short: "Simulate the payoff of the debts in the file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, formatter, err := load(cmd, opts, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("strategy") || f.Strategy == "" {
				f.Strategy = strategy
			}

			choice, err := payoff.ParseChoice(f.Strategy)
			if err != nil {
				return err
			}

			o := payoff.Simulate(f.Debts, choice.Resolve(), f.ExtraMonthlyPayment)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.Title(fmt.Sprintf("PAYOFF PLAN  %s", formatter.Currency())))
			fmt.Fprintln(out, cli.Summary(formatter, o))
			fmt.Fprintln(out, cli.Roadmap(formatter, o, months))

			return nil
		},
	}

	cmd.Flags().StringVarP(&strategy, "strategy", "s", string(payoff.Recommended), "Strategy: avalanche, snowball or recommended")
	cmd.Flags().IntVarP(&months, "months", "m", 12, "Months of the roadmap to show, 0 shows all")

	return cmd
}
