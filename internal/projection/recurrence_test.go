package projection

import (
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recurringIncome(date time.Time, rule models.Recurrence) RecurringSource {
	return IncomeSource(models.Income{
		ID:          "inc-1",
		Description: "Salary",
		Amount:      5000,
		Date:        date,
		Category:    models.IncomeSalary,
		Recurring:   &rule,
	})
}

func TestExpandRecurrence_MonthlyClampsToMonthEnd(t *testing.T) {
	src := recurringIncome(day(2026, time.December, 31), models.Recurrence{
		Type: models.RecurrenceMonthly,
		Days: []int{31},
	})

	got := ExpandRecurrence(src, day(2027, time.January, 15), 3)

	assert.Equal(t, []time.Time{
		day(2027, time.January, 31),
		day(2027, time.February, 28),
		day(2027, time.March, 31),
	}, datesOf(got))
}

func TestExpandRecurrence_MonthlyDefaultsToRecordDay(t *testing.T) {
	src := recurringIncome(day(2026, time.September, 10), models.Recurrence{Type: models.RecurrenceMonthly})

	got := ExpandRecurrence(src, now, 2)

	require.Len(t, got, 1)
	assert.Equal(t, day(2026, time.November, 10), got[0].Date)
	assert.Equal(t, "inc-1-recurring-2026-11-10", got[0].ID)
	assert.Equal(t, models.Origin{Kind: models.OriginRecurring, ParentID: "inc-1", Index: 1}, got[0].Origin)
	assert.Equal(t, "inc-1", got[0].ParentID)
	assert.Equal(t, models.TypeIncome, got[0].Type)
	assert.Equal(t, "salary", got[0].Category)
}

func TestExpandRecurrence_MonthlyClampedDaysDoNotRepeat(t *testing.T) {
	src := recurringIncome(day(2026, time.January, 1), models.Recurrence{
		Type: models.RecurrenceMonthly,
		Days: []int{29, 30, 31},
	})

	got := ExpandRecurrence(src, day(2027, time.February, 1), 1)

	assert.Equal(t, []time.Time{day(2027, time.February, 28)}, datesOf(got))
}

func TestExpandRecurrence_Weekly(t *testing.T) {
	src := recurringIncome(day(2026, time.January, 1), models.Recurrence{Type: models.RecurrenceWeekly})

	got := ExpandRecurrence(src, now, 2)

	assert.Equal(t, []time.Time{
		day(2026, time.October, 22),
		day(2026, time.November, 1),
		day(2026, time.November, 8),
		day(2026, time.November, 15),
		day(2026, time.November, 22),
	}, datesOf(got))
}

func TestExpandRecurrence_Daily(t *testing.T) {
	src := recurringIncome(day(2026, time.January, 1), models.Recurrence{Type: models.RecurrenceDaily})

	got := ExpandRecurrence(src, now, 1)

	require.Len(t, got, 14)
	assert.Equal(t, day(2026, time.October, 18), got[0].Date)
	assert.Equal(t, day(2026, time.October, 31), got[13].Date)
}

func TestExpandRecurrence_StartsAfterFutureRecordDate(t *testing.T) {
	src := recurringIncome(day(2026, time.November, 20), models.Recurrence{Type: models.RecurrenceMonthly})

	got := ExpandRecurrence(src, now, 3)

	assert.Equal(t, []time.Time{day(2026, time.December, 20)}, datesOf(got))
}

func TestExpandRecurrence_UnknownTypeYieldsNothing(t *testing.T) {
	src := recurringIncome(day(2026, time.January, 1), models.Recurrence{Type: "yearly"})

	assert.Empty(t, ExpandRecurrence(src, now, 12))
}

func TestExpandRecurrence_NeverOnOrBeforeReference(t *testing.T) {
	rules := []models.Recurrence{
		{Type: models.RecurrenceDaily},
		{Type: models.RecurrenceWeekly},
		{Type: models.RecurrenceMonthly},
		{Type: models.RecurrenceMonthly, Days: []int{1, 17, 31}},
	}

	for _, rule := range rules {
		got := ExpandRecurrence(recurringIncome(day(2026, time.March, 17), rule), now, 6)
		require.NotEmpty(t, got)
		for _, tx := range got {
			assert.True(t, tx.Date.After(now), "%s generated %s", rule.Type, tx.Date)
		}
	}
}

func TestExpandRecurrence_ExpenseKeepsSourceCategory(t *testing.T) {
	source := models.IncomeFoodAllowance
	ex := models.Expense{
		ID:             "exp-1",
		Description:    "Groceries",
		Amount:         300,
		Category:       "food",
		Date:           day(2026, time.October, 1),
		SourceCategory: &source,
		Recurring:      &models.Recurrence{Type: models.RecurrenceMonthly},
	}

	got := ExpandRecurrence(ExpenseSource(ex), now, 2)

	require.Len(t, got, 1)
	assert.Equal(t, models.TypeExpense, got[0].Type)
	assert.Equal(t, &source, got[0].SourceCategory)
}
