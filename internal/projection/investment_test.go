package projection

import (
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func investment(start time.Time) models.Investment {
	return models.Investment{
		ID:          "inv-1",
		Description: "CDB",
		Amount:      1000,
		Rate:        10,
		Period:      models.PeriodMonthly,
		StartDate:   start,
		IsCompound:  true,
	}
}

func TestProjectInvestment_CurrentMonthStart(t *testing.T) {
	got := ProjectInvestment(investment(day(2026, time.October, 5)), now, 12)

	require.Len(t, got, 13)

	initial := got[0]
	assert.Equal(t, models.TypeInvestment, initial.Type)
	assert.Equal(t, "inv-1", initial.ID)
	assert.Equal(t, 1000.0, initial.Amount)
	assert.Equal(t, day(2026, time.October, 5), initial.Date)

	first := got[1]
	assert.Equal(t, models.TypeInvestmentValue, first.Type)
	assert.Equal(t, models.CategoryInvestmentValue, first.Category)
	assert.Equal(t, "inv-1-value-1", first.ID)
	assert.Equal(t, day(2026, time.November, 5), first.Date)
	assert.Equal(t, 1100.0, first.Amount)
	assert.Equal(t, models.Origin{Kind: models.OriginInvestmentValue, ParentID: "inv-1", Index: 1}, first.Origin)

	last := got[12]
	assert.Equal(t, day(2027, time.October, 5), last.Date)
	assert.Equal(t, 3138.43, last.Amount)
}

func TestProjectInvestment_PastStartHasNoInitialEvent(t *testing.T) {
	got := ProjectInvestment(investment(day(2026, time.June, 1)), now, 3)

	assert.Empty(t, ofType(got, models.TypeInvestment))
	require.Len(t, got, 3)
	// June to November is five months of growth
	assert.Equal(t, RoundCents(GrowthForMonth(1000, 10, true, 5, true)), got[0].Amount)
}

func TestProjectInvestment_FutureStart(t *testing.T) {
	got := ProjectInvestment(investment(day(2027, time.March, 10)), now, 12)

	require.Len(t, ofType(got, models.TypeInvestment), 1)
	values := ofType(got, models.TypeInvestmentValue)
	require.Len(t, values, 7)
	assert.Equal(t, day(2027, time.April, 10), values[0].Date)
	assert.Equal(t, 1100.0, values[0].Amount)
}

func TestProjectInvestment_OneSnapshotPerMonth(t *testing.T) {
	got := ProjectInvestment(investment(day(2025, time.January, 31)), now, 24)

	values := ofType(got, models.TypeInvestmentValue)
	assert.LessOrEqual(t, len(values), 24)

	seen := make(map[string]bool)
	for _, v := range values {
		key := v.Date.Format("2006-01")
		assert.False(t, seen[key], "second snapshot in %s", key)
		seen[key] = true
		assert.True(t, v.Date.After(now))
	}
}

func TestProjectInvestment_StopsAfterFinalizedDate(t *testing.T) {
	inv := investment(day(2026, time.October, 5))
	finalized := day(2027, time.January, 15)
	inv.FinalizedDate = &finalized

	values := ofType(ProjectInvestment(inv, now, 12), models.TypeInvestmentValue)

	assert.Equal(t, []time.Time{
		day(2026, time.November, 5),
		day(2026, time.December, 5),
		day(2027, time.January, 5),
	}, datesOf(values))
}

func TestProjectInvestment_SimpleAnnual(t *testing.T) {
	inv := investment(day(2026, time.October, 1))
	inv.Rate = 12
	inv.Period = models.PeriodAnnual
	inv.IsCompound = false

	values := ofType(ProjectInvestment(inv, now, 2), models.TypeInvestmentValue)

	require.Len(t, values, 2)
	assert.Equal(t, 1010.0, values[0].Amount)
	assert.Equal(t, 1020.0, values[1].Amount)
}

func TestCurrentValue(t *testing.T) {
	inv := investment(day(2025, time.October, 20))

	assert.Equal(t, 3138.43, CurrentValue(inv, now))
	assert.Equal(t, 1000.0, CurrentValue(inv, day(2025, time.October, 30)))
}
