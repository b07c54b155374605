package projection

import (
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// weeklyOffsets approximates a weekly cadence as four fixed days of every month
var weeklyOffsets = []int{1, 8, 15, 22}

// RecurringSource is the part of an income or expense the recurrence expander needs
type RecurringSource struct {
	ID             string
	Description    string
	Amount         float64
	Date           time.Time
	Type           models.TransactionType
	Category       string
	SourceCategory *models.IncomeCategory
	Rule           models.Recurrence
}

// IncomeSource adapts an income for ExpandRecurrence
func IncomeSource(in models.Income) RecurringSource {
	src := RecurringSource{
		ID:          in.ID,
		Description: in.Description,
		Amount:      in.Amount,
		Date:        in.Date,
		Type:        models.TypeIncome,
		Category:    string(in.Category),
	}
	if in.Recurring != nil {
		src.Rule = *in.Recurring
	}
	return src
}

// ExpenseSource adapts an expense for ExpandRecurrence
func ExpenseSource(ex models.Expense) RecurringSource {
	src := RecurringSource{
		ID:             ex.ID,
		Description:    ex.Description,
		Amount:         ex.Amount,
		Date:           ex.Date,
		Type:           models.TypeExpense,
		Category:       ex.Category,
		SourceCategory: ex.SourceCategory,
	}
	if ex.Recurring != nil {
		src.Rule = *ex.Recurring
	}
	return src
}

// ExpandRecurrence generates the future occurrences of a recurring record over
// months calendar months starting with the month of reference. Only occurrences
// strictly after both reference and the record's own date are returned.
// Unknown rule types yield no occurrences.
func ExpandRecurrence(src RecurringSource, reference time.Time, months int) []models.FutureTransaction {
	if !src.Rule.Type.Valid() || months <= 0 {
		return nil
	}

	lowerBound := dateOf(reference)
	if recordDate := dateOf(src.Date); recordDate.After(lowerBound) {
		lowerBound = recordDate
	}

	var out []models.FutureTransaction
	base := monthStart(reference)
	for i := 0; i < months; i++ {
		month := base.AddDate(0, i, 0)
		for _, day := range occurrenceDays(src.Rule, src.Date.Day(), month.Year(), month.Month()) {
			date := time.Date(month.Year(), month.Month(), day, 0, 0, 0, 0, time.UTC)
			if !date.After(lowerBound) {
				continue
			}
			out = append(out, models.FutureTransaction{
				ID:             fmt.Sprintf("%s-recurring-%s-%02d", src.ID, date.Format("2006-01"), day),
				Date:           date,
				Description:    src.Description,
				Amount:         src.Amount,
				Type:           src.Type,
				Category:       src.Category,
				SourceCategory: src.SourceCategory,
				ParentID:       src.ID,
				Origin: models.Origin{
					Kind:     models.OriginRecurring,
					ParentID: src.ID,
					Index:    len(out) + 1,
				},
			})
		}
	}
	return out
}

// occurrenceDays lists the days of year/month a rule fires on, already clamped
// to the month length and without repeats.
func occurrenceDays(rule models.Recurrence, recordDay int, year int, month time.Month) []int {
	last := daysIn(year, month)

	var days []int
	switch rule.Type {
	case models.RecurrenceDaily:
		days = make([]int, 0, last)
		for d := 1; d <= last; d++ {
			days = append(days, d)
		}
		return days
	case models.RecurrenceWeekly:
		return weeklyOffsets
	case models.RecurrenceMonthly:
		days = rule.Days
		if len(days) == 0 {
			days = []int{recordDay}
		}
	default:
		return nil
	}

	seen := make(map[int]struct{}, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < 1 {
			continue
		}
		if d > last {
			d = last
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}
