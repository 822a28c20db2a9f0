// Package finance provides closed form time-value-of-money formulas: the
// present value of an annuity, a future value, a growing annuity, a perpetuity
// and a growing perpetuity.
//
// Rates are fractions per period (0.05 for 5%) and every formula returns an
// error rather than an infinite or undefined value.
package finance

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrZeroRate         = errors.New("discount rate is zero")
	ErrRateEqualsGrowth = errors.New("discount rate equals growth rate")
	ErrTotalLoss        = errors.New("discount rate is -100%")
	ErrUndefined        = errors.New("present value is undefined")
)

// checked turns a non finite result into an error.
func checked(pv float64) (float64, error) {
	if math.IsNaN(pv) || math.IsInf(pv, 0) {
		return math.NaN(), fmt.Errorf("%w: got %v", ErrUndefined, pv)
	}
	return pv, nil
}

// PVAnnuity returns the present value of value paid at the end of each period for years periods.
//
//	value * (1 - (1+rate)^-years) / rate
func PVAnnuity(value, rate, years float64) (float64, error) {
	if rate == 0 {
		return math.NaN(), ErrZeroRate
	}
	if rate == -1 {
		return math.NaN(), ErrTotalLoss
	}
	return checked(value * (1 - math.Pow(1+rate, -years)) / rate)
}

// PVFutureValue returns the present value of a single amount received in years periods.
//
//	fv / (1+rate)^years
func PVFutureValue(fv, rate, years float64) (float64, error) {
	if rate == -1 {
		return math.NaN(), ErrTotalLoss
	}
	return checked(fv / math.Pow(1+rate, years))
}

// PVGrowingAnnuity returns the present value of a cash flow growing at growth
// per period, starting at value*(1+growth), for years periods.
//
//	value * (1+growth) * (1 - ((1+growth)/(1+rate))^years) / (rate-growth)
func PVGrowingAnnuity(value, rate, growth, years float64) (float64, error) {
	if rate == growth {
		return math.NaN(), ErrRateEqualsGrowth
	}
	if rate == -1 {
		return math.NaN(), ErrTotalLoss
	}
	return checked(value * (1 + growth) * (1 - math.Pow((1+growth)/(1+rate), years)) / (rate - growth))
}

// PVPerpetuity returns the present value of value paid every period forever.
//
//	value / rate
func PVPerpetuity(value, rate float64) (float64, error) {
	if rate == 0 {
		return math.NaN(), ErrZeroRate
	}
	return checked(value / rate)
}

// PVGrowingPerpetuity returns the present value of a cash flow growing forever at growth per period.
//
//	value * (1+growth) / (rate-growth)
func PVGrowingPerpetuity(value, rate, growth float64) (float64, error) {
	if rate == growth {
		return math.NaN(), ErrRateEqualsGrowth
	}
	return checked(value * (1 + growth) / (rate - growth))
}
