package main

import (
	"fmt"

	"github.com/envelope-zero/payoff/internal/cli"
	"github.com/envelope-zero/payoff/internal/payoff"
	"github.com/spf13/cobra"
)

type options struct {
	locale   string
	currency string
	extra    float64
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:          "payoff",
		Short:        "Debt payoff planner",
		Long:         "Simulate paying off debts with the avalanche or snowball strategy.",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.locale, "locale", "l", "en-US", "Locale for number formatting")
	cmd.PersistentFlags().StringVarP(&opts.currency, "currency", "c", "", "ISO 4217 currency code, defaults to the currency of the locale")
	cmd.PersistentFlags().Float64VarP(&opts.extra, "extra", "e", 0, "Extra monthly payment, overrides the value from the file")

	cmd.AddCommand(
		newSimulateCmd(&opts),
		newCompareCmd(&opts),
		newScenarioCmd(&opts),
	)

	return cmd
}

// load reads the debt file and applies the flags that override it.
func load(cmd *cobra.Command, opts *options, path string) (cli.DebtFile, cli.Formatter, error) {
	f, err := cli.LoadDebtFile(path)
	if err != nil {
		return cli.DebtFile{}, cli.Formatter{}, err
	}

	if cmd.Flags().Changed("extra") {
		f.ExtraMonthlyPayment = opts.extra
	}

	if f.ExtraMonthlyPayment < 0 {
		return cli.DebtFile{}, cli.Formatter{}, fmt.Errorf("the extra monthly payment must not be negative, got %v", f.ExtraMonthlyPayment)
	}

	viable := payoff.Viable(f.Debts)
	if len(viable) == 0 {
		return cli.DebtFile{}, cli.Formatter{}, fmt.Errorf("none of the debts in %s can be paid off: a debt needs a name, a balance, an APR of 0 or more and a minimum payment", path)
	}
	f.Debts = viable

	formatter, err := cli.NewFormatter(opts.locale, opts.currency)
	if err != nil {
		return cli.DebtFile{}, cli.Formatter{}, err
	}

	return f, formatter, nil
}
