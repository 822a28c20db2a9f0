package renderer

import (
	"strconv"

	"github.com/etnz/fuzzydate/finance"
)

// expressions are the formulas as printed for each kind.
var expressions = map[finance.Kind]string{
	finance.Annuity:           "value × (1 − (1+rate)^−years) / rate",
	finance.FutureValue:       "value / (1+rate)^years",
	finance.GrowingAnnuity:    "value × (1+growth) × (1 − ((1+growth)/(1+rate))^years) / (rate − growth)",
	finance.Perpetuity:        "value / rate",
	finance.GrowingPerpetuity: "value × (1+growth) / (rate − growth)",
}

// Input is one operand of a present value calculation.
type Input struct {
	Name  string
	Value string
}

// PresentValue is the printable view of a present value calculation.
type PresentValue struct {
	Formula    string
	Expression string
	Inputs     []Input
	Result     string
}

// NewPresentValue formats the result of finance.Compute. result is the already formatted amount.
func NewPresentValue(k finance.Kind, in finance.Inputs, value, result string) *PresentValue {
	pv := &PresentValue{
		Formula:    k.String(),
		Expression: expressions[k],
		Result:     result,
		Inputs: []Input{
			{Name: "value", Value: value},
			{Name: "rate", Value: finance.Rate(in.Rate).String()},
		},
	}
	if k.Growing() {
		pv.Inputs = append(pv.Inputs, Input{Name: "growth", Value: finance.Rate(in.Growth).String()})
	}
	if k.Finite() {
		pv.Inputs = append(pv.Inputs, Input{Name: "years", Value: strconv.FormatFloat(in.Years, 'f', -1, 64)})
	}
	return pv
}

// RenderPresentValue renders the PresentValue struct to a markdown string.
func RenderPresentValue(pv *PresentValue) string {
	return renderTemplate("presentValue", "present_value.md", nil, pv)
}
