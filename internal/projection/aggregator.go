package projection

import (
	"sort"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// DefaultLookaheadMonths is the projection window used when none is configured
const DefaultLookaheadMonths = 12

// Options control a projection run
type Options struct {
	// Now is the reference date; nothing synthetic is generated on or before it
	Now time.Time
	// LookaheadMonths is the window size; zero or less means DefaultLookaheadMonths
	LookaheadMonths int
}

func (o Options) months() int {
	if o.LookaheadMonths <= 0 {
		return DefaultLookaheadMonths
	}
	return o.LookaheadMonths
}

// Project expands a finance snapshot into a date-ordered list of future transactions:
// every stored income and expense, their recurrences and installments, and the
// initial and value events of each active investment. Entries with equal dates keep
// the order they were generated in, so identical inputs give identical output.
func Project(f models.Finances, opts Options) []models.FutureTransaction {
	months := opts.months()
	out := make([]models.FutureTransaction, 0, len(f.Incomes)+len(f.Expenses)+len(f.Investments))

	for _, in := range f.Incomes {
		out = append(out, models.FutureTransaction{
			ID:          in.ID,
			Date:        in.Date,
			Description: in.Description,
			Amount:      in.Amount,
			Type:        models.TypeIncome,
			Category:    string(in.Category),
			Origin:      models.Origin{Kind: models.OriginOriginal, ParentID: in.ID},
		})
		if in.Recurring != nil {
			out = append(out, ExpandRecurrence(IncomeSource(in), opts.Now, months)...)
		}
	}

	for _, ex := range f.Expenses {
		out = append(out, models.FutureTransaction{
			ID:             ex.ID,
			Date:           ex.Date,
			Description:    ex.Description,
			Amount:         ex.Amount,
			Type:           models.TypeExpense,
			Category:       ex.Category,
			SourceCategory: ex.SourceCategory,
			Origin:         models.Origin{Kind: models.OriginOriginal, ParentID: ex.ID},
		})
		out = append(out, ExpandInstallments(ex)...)
		if ex.Recurring != nil {
			out = append(out, ExpandRecurrence(ExpenseSource(ex), opts.Now, months)...)
		}
	}

	for _, inv := range f.Investments {
		if inv.IsFinalized {
			continue
		}
		out = append(out, ProjectInvestment(inv, opts.Now, months)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
