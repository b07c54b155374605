package models

import (
	"errors"
	"fmt"
	"time"
)

// IncomeCategory classifies an income record
type IncomeCategory string

const (
	IncomeSalary                  IncomeCategory = "salary"
	IncomeFoodAllowance           IncomeCategory = "food-allowance"
	IncomeTransportationAllowance IncomeCategory = "transportation-allowance"
	IncomeInvestmentReturns       IncomeCategory = "investment_returns"
	IncomeOther                   IncomeCategory = "other"
)

// Valid reports whether c is one of the known income categories
func (c IncomeCategory) Valid() bool {
	switch c {
	case IncomeSalary, IncomeFoodAllowance, IncomeTransportationAllowance, IncomeInvestmentReturns, IncomeOther:
		return true
	}
	return false
}

// Income represents a recorded income of a user
type Income struct {
	ID          string         `json:"id"`
	UserID      string         `json:"-"`
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Date        time.Time      `json:"date"`
	Category    IncomeCategory `json:"category"`
	Recurring   *Recurrence    `json:"recurring,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CreateIncomeParams struct {
	Description string         `json:"description"`
	Amount      float64        `json:"amount"`
	Date        time.Time      `json:"date"`
	Category    IncomeCategory `json:"category"`
	Recurring   *Recurrence    `json:"recurring,omitempty"`
}

func (p *CreateIncomeParams) Validate() error {
	if p.Description == "" {
		return errors.New("description is required")
	}
	if err := validateAmount(p.Amount); err != nil {
		return err
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	if !p.Category.Valid() {
		return fmt.Errorf("unknown income category %q", p.Category)
	}
	p.Recurring = normalizeRecurrence(p.Recurring)
	if p.Recurring != nil {
		if err := p.Recurring.Validate(); err != nil {
			return err
		}
	}
	return nil
}
