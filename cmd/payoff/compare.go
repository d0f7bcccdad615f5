package main

import (
	"fmt"

	"github.com/envelope-zero/payoff/internal/cli"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/spf13/cobra"
)

func newCompareCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "compare <file>",
		Short: "Compare the avalanche and snowball strategies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, formatter, err := load(cmd, opts, args[0])
			if err != nil {
				return err
			}

			c := payoff.Compare(f.Debts, f.ExtraMonthlyPayment)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.Title("STRATEGY COMPARISON"))
			fmt.Fprintln(out, cli.Comparison(formatter, c))

			return nil
		},
	}
}
