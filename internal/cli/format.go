// Package cli renders simulation results for the terminal.
package cli

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter formats amounts for a locale.
type Formatter struct {
	printer *message.Printer
	unit    currency.Unit
}

// NewFormatter returns a Formatter for the locale, e.g. "en-US".
//
// If code is set, it is used as ISO 4217 currency code. Otherwise, the
// currency of the locale's region is used.
func NewFormatter(locale, code string) (Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return Formatter{}, fmt.Errorf("invalid locale '%s': %w", locale, err)
	}

	var unit currency.Unit
	if code != "" {
		unit, err = currency.ParseISO(strings.ToUpper(strings.TrimSpace(code)))
		if err != nil {
			return Formatter{}, fmt.Errorf("invalid currency '%s': %w", code, err)
		}
	} else {
		var conf language.Confidence
		unit, conf = currency.FromTag(tag)
		if conf == language.No {
			unit = currency.USD
		}
	}

	return Formatter{
		printer: message.NewPrinter(tag),
		unit:    unit,
	}, nil
}

// Currency is the ISO 4217 code of the currency amounts are formatted with.
func (f Formatter) Currency() string {
	return f.unit.String()
}

// Amount formats an amount with the currency symbol and two decimals.
func (f Formatter) Amount(v float64) string {
	// Avoid "-0.00"
	if v > -0.005 && v < 0.005 {
		v = 0
	}

	return f.printer.Sprintf("%v %.2f", currency.Symbol(f.unit), v)
}

// Number formats an integer with the locale's grouping.
func (f Formatter) Number(n int) string {
	return f.printer.Sprintf("%d", n)
}
