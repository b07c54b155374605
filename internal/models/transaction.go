package models

import "time"

// TransactionType is the kind of cash-flow event in a projection
type TransactionType string

const (
	TypeIncome          TransactionType = "income"
	TypeExpense         TransactionType = "expense"
	TypeInvestment      TransactionType = "investment"
	TypeInvestmentValue TransactionType = "investment_value"
)

// CategoryInvestmentValue is the category of every investment_value event
const CategoryInvestmentValue = "investment_value"

// OriginKind tells where a future transaction came from
type OriginKind string

const (
	OriginOriginal        OriginKind = "original"
	OriginRecurring       OriginKind = "recurring"
	OriginInstallment     OriginKind = "installment"
	OriginInvestmentValue OriginKind = "investment_value"
)

// Origin is the provenance of a future transaction. ParentID is the id of the
// persisted record that produced it; Index is the occurrence number for synthetic kinds.
type Origin struct {
	Kind     OriginKind `json:"kind"`
	ParentID string     `json:"parentId"`
	Index    int        `json:"index,omitempty"`
}

// Synthetic reports whether the transaction is a repetition of a stored record,
// produced by a recurrence or an installment plan. A stored record wins over a
// synthetic one when both describe the same entry.
func (o Origin) Synthetic() bool {
	return o.Kind == OriginRecurring || o.Kind == OriginInstallment
}

// FutureTransaction is a derived, never persisted, projected cash-flow event
type FutureTransaction struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	Description    string          `json:"description"`
	Amount         float64         `json:"amount"`
	Type           TransactionType `json:"type"`
	Category       string          `json:"category"`
	SourceCategory *IncomeCategory `json:"sourceCategory,omitempty"`
	ParentID       string          `json:"parentId,omitempty"`
	Origin         Origin          `json:"origin"`
}

// Finances is the full snapshot of a user's records
type Finances struct {
	Incomes     []Income     `json:"incomes"`
	Expenses    []Expense    `json:"expenses"`
	Investments []Investment `json:"investments"`
}
