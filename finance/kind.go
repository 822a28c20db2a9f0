package finance

import (
	"fmt"
	"strings"
)

// Kind identifies one of the present value formulas.
type Kind int

const (
	Annuity Kind = iota
	FutureValue
	GrowingAnnuity
	Perpetuity
	GrowingPerpetuity
)

func (k Kind) String() string {
	switch k {
	case Annuity:
		return "annuity"
	case FutureValue:
		return "future-value"
	case GrowingAnnuity:
		return "growing-annuity"
	case Perpetuity:
		return "perpetuity"
	case GrowingPerpetuity:
		return "growing-perpetuity"
	default:
		panic(fmt.Sprintf("unknown kind %d", k))
	}
}

// Kinds lists all formulas.
var Kinds = []Kind{Annuity, FutureValue, GrowingAnnuity, Perpetuity, GrowingPerpetuity}

// ParseKind reads a formula name, as printed by Kind.String, or a short alias.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "annuity":
		return Annuity, nil
	case "future-value", "future", "fv":
		return FutureValue, nil
	case "growing-annuity":
		return GrowingAnnuity, nil
	case "perpetuity":
		return Perpetuity, nil
	case "growing-perpetuity":
		return GrowingPerpetuity, nil
	default:
		return Annuity, fmt.Errorf("unknown present value formula %q", s)
	}
}

// Growing reports whether the formula uses a growth rate.
func (k Kind) Growing() bool { return k == GrowingAnnuity || k == GrowingPerpetuity }

// Finite reports whether the formula uses a number of years.
func (k Kind) Finite() bool { return k == Annuity || k == FutureValue || k == GrowingAnnuity }

// Inputs are the operands of a formula. Growth and Years are ignored by the formulas that do not use them.
type Inputs struct {
	Value  float64 // the periodic cash flow, or the future value
	Rate   float64 // discount rate per period
	Growth float64 // growth rate per period
	Years  float64 // number of periods
}

// Compute returns the present value of in with formula k.
func Compute(k Kind, in Inputs) (float64, error) {
	switch k {
	case Annuity:
		return PVAnnuity(in.Value, in.Rate, in.Years)
	case FutureValue:
		return PVFutureValue(in.Value, in.Rate, in.Years)
	case GrowingAnnuity:
		return PVGrowingAnnuity(in.Value, in.Rate, in.Growth, in.Years)
	case Perpetuity:
		return PVPerpetuity(in.Value, in.Rate)
	case GrowingPerpetuity:
		return PVGrowingPerpetuity(in.Value, in.Rate, in.Growth)
	default:
		return 0, fmt.Errorf("unknown present value formula %d", k)
	}
}
