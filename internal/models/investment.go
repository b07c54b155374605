package models

import (
	"errors"
	"fmt"
	"time"
)

// RatePeriod is the period a percentage rate refers to
type RatePeriod string

const (
	PeriodMonthly RatePeriod = "monthly"
	PeriodAnnual  RatePeriod = "annual"
)

// Investment represents an amount applied at a fixed rate.
// Once IsFinalized is set the investment no longer takes part in projections.
type Investment struct {
	ID            string     `json:"id"`
	UserID        string     `json:"-"`
	Description   string     `json:"description"`
	Amount        float64    `json:"amount"`
	Rate          float64    `json:"rate"`
	Period        RatePeriod `json:"period"`
	StartDate     time.Time  `json:"startDate"`
	IsCompound    bool       `json:"isCompound"`
	IsFinalized   bool       `json:"isFinalized,omitempty"`
	FinalizedDate *time.Time `json:"finalizedDate,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// IsMonthly reports whether Rate is a monthly percentage
func (i *Investment) IsMonthly() bool {
	return i.Period == PeriodMonthly
}

type CreateInvestmentParams struct {
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Rate        float64    `json:"rate"`
	Period      RatePeriod `json:"period"`
	StartDate   time.Time  `json:"startDate"`
	IsCompound  bool       `json:"isCompound"`
	// UseKeyRate fills an absent rate with the current annual reference key rate
	UseKeyRate bool `json:"useKeyRate,omitempty"`
}

func (p *CreateInvestmentParams) Validate() error {
	if p.Description == "" {
		return errors.New("description is required")
	}
	if err := validateAmount(p.Amount); err != nil {
		return err
	}
	if err := validateRate(p.Rate); err != nil {
		return err
	}
	if p.Period != PeriodMonthly && p.Period != PeriodAnnual {
		return fmt.Errorf("unknown rate period %q", p.Period)
	}
	if p.StartDate.IsZero() {
		return errors.New("startDate is required")
	}
	return nil
}

// FinalizationResult is what finalizing an investment realized
type FinalizationResult struct {
	Investment   *Investment `json:"investment"`
	CurrentValue float64     `json:"currentValue"`
	Principal    *Income     `json:"principal"`
	Returns      *Income     `json:"returns,omitempty"`
}
