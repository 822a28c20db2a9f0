package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/etnz/fuzzydate/finance"
	"github.com/etnz/fuzzydate/renderer"
	"github.com/google/subcommands"
)

// pvCmd holds the flags for the 'pv' subcommand.
type pvCmd struct {
	kind     string
	value    float64
	rate     float64
	growth   float64
	years    float64
	currency string
}

func (*pvCmd) Name() string     { return "pv" }
func (*pvCmd) Synopsis() string { return "present value of annuities and perpetuities" }
func (*pvCmd) Usage() string {
	return `fz pv -kind <kind> -value <amount> -rate <rate> [-growth <rate>] [-years <n>] [-currency <code>]

  Computes the present value of a cash flow. See 'fz topic pv'.
`
}

func (c *pvCmd) SetFlags(f *flag.FlagSet) {
	var kinds []string
	for _, k := range finance.Kinds {
		kinds = append(kinds, k.String())
	}
	f.StringVar(&c.kind, "kind", finance.Perpetuity.String(), "formula: "+strings.Join(kinds, ", "))
	f.Float64Var(&c.value, "value", 0, "periodic cash flow, or the future value for future-value")
	f.Float64Var(&c.rate, "rate", 0, "discount rate per period, 0.05 for 5%")
	f.Float64Var(&c.growth, "growth", 0, "growth rate per period of growing formulas")
	f.Float64Var(&c.years, "years", 0, "number of periods of finite formulas")
	f.StringVar(&c.currency, "currency", "", "ISO 4217 currency of the result. Defaults to "+EnvCurrency)
}

func (c *pvCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	kind, err := finance.ParseKind(c.kind)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing kind: %v\n", err)
		return subcommands.ExitUsageError
	}
	set := make(map[string]bool)
	f.Visit(func(fl *flag.Flag) { set[fl.Name] = true })
	if kind.Finite() && !set["years"] {
		fmt.Fprintf(os.Stderr, "-years is required by %s\n", kind)
		return subcommands.ExitUsageError
	}
	if !kind.Growing() && set["growth"] {
		slog.Warn("growth is ignored", "kind", kind)
	}
	currency := c.currency
	if currency == "" {
		currency = config.Currency
	}

	in := finance.Inputs{Value: c.value, Rate: c.rate, Growth: c.growth, Years: c.years}
	pv, err := finance.Compute(kind, in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing %s: %v\n", kind, err)
		return subcommands.ExitFailure
	}
	value, err := finance.Format(c.value, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting value: %v\n", err)
		return subcommands.ExitUsageError
	}
	result, err := finance.Format(pv, currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting result: %v\n", err)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.RenderPresentValue(renderer.NewPresentValue(kind, in, value, result)))
	return subcommands.ExitSuccess
}
