package finance

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format returns amount rounded and formatted with the rules of the currency, e.g. "$2,000.00".
// Without a currency the amount is printed with two decimals.
func Format(amount float64, currency string) (string, error) {
	dec := decimal.NewFromFloat(amount)
	if currency == "" {
		return dec.StringFixed(2), nil
	}
	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return "", fmt.Errorf("unknown currency %q", currency)
	}
	minor := dec.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart()), nil
}

// Percent is a rate expressed in percent.
type Percent float64

// Rate converts a fraction (0.05) into a Percent (5%).
func Rate(r float64) Percent { return Percent(r * 100) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
