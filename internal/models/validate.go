package models

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

func validateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("amount must be a number")
	}
	if v <= 0 {
		return errors.New("amount must be greater than zero")
	}
	if d := decimal.NewFromFloat(v); !d.Equal(d.Round(2)) {
		return errors.New("amount must not have fractions of a cent")
	}
	return nil
}

func validateRate(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return errors.New("rate must be a number")
	}
	if v <= 0 {
		return errors.New("rate must be greater than zero")
	}
	return nil
}
