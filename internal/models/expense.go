package models

import (
	"errors"
	"fmt"
	"time"
)

// Installment tracks an expense split into monthly payments
type Installment struct {
	Total     int `json:"total"`
	Current   int `json:"current"`
	Remaining int `json:"remaining"`
}

// Left returns the number of installments still to be paid.
// Remaining is recomputed from Total and Current; the stored value is not trusted.
func (i Installment) Left() int {
	left := i.Total - i.Current
	if left < 0 {
		return 0
	}
	return left
}

// Expense represents a recorded expense of a user
type Expense struct {
	ID             string          `json:"id"`
	UserID         string          `json:"-"`
	Description    string          `json:"description"`
	Amount         float64         `json:"amount"`
	Category       string          `json:"category"`
	Date           time.Time       `json:"date"`
	SourceCategory *IncomeCategory `json:"sourceCategory,omitempty"`
	Recurring      *Recurrence     `json:"recurring,omitempty"`
	Installment    *Installment    `json:"installment,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type CreateExpenseParams struct {
	Description    string          `json:"description"`
	Amount         float64         `json:"amount"`
	Category       string          `json:"category"`
	Date           time.Time       `json:"date"`
	SourceCategory *IncomeCategory `json:"sourceCategory,omitempty"`
	Recurring      *Recurrence     `json:"recurring,omitempty"`
	Installment    *Installment    `json:"installment,omitempty"`
}

func (p *CreateExpenseParams) Validate() error {
	if p.Description == "" {
		return errors.New("description is required")
	}
	if err := validateAmount(p.Amount); err != nil {
		return err
	}
	if p.Category == "" {
		return errors.New("category is required")
	}
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	if p.SourceCategory != nil && !p.SourceCategory.Valid() {
		return fmt.Errorf("unknown source category %q", *p.SourceCategory)
	}
	p.Recurring = normalizeRecurrence(p.Recurring)
	if p.Recurring != nil {
		if err := p.Recurring.Validate(); err != nil {
			return err
		}
	}
	if p.Installment != nil {
		if p.Installment.Total < 1 {
			return errors.New("installment total must be at least 1")
		}
		if p.Installment.Current < 1 || p.Installment.Current > p.Installment.Total {
			return fmt.Errorf("installment current must be between 1 and %d", p.Installment.Total)
		}
		p.Installment.Remaining = p.Installment.Left()
	}
	return nil
}
