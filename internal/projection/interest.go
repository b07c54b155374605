package projection

import (
	"math"

	"github.com/shopspring/decimal"
)

// GrowthForMonth returns the value of principal after monthsElapsed months.
// ratePercent is monthly when isMonthlyRate is set, annual otherwise (then split in 12).
func GrowthForMonth(principal, ratePercent float64, isMonthlyRate bool, monthsElapsed int, isCompound bool) float64 {
	if monthsElapsed <= 0 {
		return principal
	}

	monthlyRate := ratePercent / 100
	if !isMonthlyRate {
		monthlyRate = ratePercent / 12 / 100
	}

	if isCompound {
		return principal * math.Pow(1+monthlyRate, float64(monthsElapsed))
	}
	return principal * (1 + monthlyRate*float64(monthsElapsed))
}

// RoundCents rounds a money amount half away from zero to two decimal places
func RoundCents(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
