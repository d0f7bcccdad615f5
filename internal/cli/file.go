package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/envelope-zero/payoff/internal/payoff"
)

var ErrNoDebts = errors.New("the file does not contain any debts")

// DebtFile is the content of a TOML file with debts, e.g.
//
//	strategy = "avalanche"
//	extra_monthly_payment = 200
//
//	[[debts]]
//	name = "Credit card"
//	balance = 2500
//	apr = 19.99
//	min_payment = 75
//	payment_day = 15
type DebtFile struct {
	Strategy            string        `toml:"strategy"`
	ExtraMonthlyPayment float64       `toml:"extra_monthly_payment"`
	Debts               []payoff.Debt `toml:"debts"`
}

// LoadDebtFile reads the debts from a TOML file.
//
// Unknown keys are an error. Debts without a payment day are due on the
// first of the month.
func LoadDebtFile(path string) (DebtFile, error) {
	var f DebtFile

	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return DebtFile{}, fmt.Errorf("reading %s failed: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return DebtFile{}, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if len(f.Debts) == 0 {
		return DebtFile{}, fmt.Errorf("%w: %s", ErrNoDebts, path)
	}

	for i := range f.Debts {
		if f.Debts[i].PaymentDayOfMonth == 0 {
			f.Debts[i].PaymentDayOfMonth = 1
		}
	}

	return f, nil
}
