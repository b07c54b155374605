package projection

import (
	"fmt"
	"testing"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tx(id string, date time.Time, kind models.OriginKind) models.FutureTransaction {
	return models.FutureTransaction{
		ID:          id,
		Date:        date,
		Description: "Rent",
		Amount:      1200,
		Type:        models.TypeExpense,
		Category:    "housing",
		Origin:      models.Origin{Kind: kind, ParentID: "exp-1"},
	}
}

func TestDedup_PrefersStoredRecord(t *testing.T) {
	list := []models.FutureTransaction{
		tx("exp-1-recurring-2026-11-05", day(2026, time.November, 5), models.OriginRecurring),
		tx("exp-9", day(2026, time.November, 5), models.OriginOriginal),
		tx("exp-1-recurring-2026-12-05", day(2026, time.December, 5), models.OriginRecurring),
	}

	got := Dedup(list)

	require.Len(t, got, 2)
	assert.Equal(t, "exp-9", got[0].ID)
	assert.Equal(t, "exp-1-recurring-2026-12-05", got[1].ID)
}

func TestDedup_KeepsFirstOfEqualRank(t *testing.T) {
	list := []models.FutureTransaction{
		tx("exp-1-installment-2", day(2026, time.November, 1), models.OriginInstallment),
		tx("exp-1-recurring-2026-11-20", day(2026, time.November, 20), models.OriginRecurring),
	}

	got := Dedup(list)

	require.Len(t, got, 1)
	assert.Equal(t, "exp-1-installment-2", got[0].ID)
}

func TestDedup_DistinctSignaturesSurvive(t *testing.T) {
	base := tx("a", day(2026, time.November, 5), models.OriginOriginal)

	otherAmount := base
	otherAmount.ID, otherAmount.Amount = "b", 1200.5
	otherType := base
	otherType.ID, otherType.Type = "c", models.TypeIncome
	otherCategory := base
	otherCategory.ID, otherCategory.Category = "d", "misc"
	otherDescription := base
	otherDescription.ID, otherDescription.Description = "e", "Rent (garage)"

	list := []models.FutureTransaction{base, otherAmount, otherType, otherCategory, otherDescription}

	assert.Equal(t, list, Dedup(list))
}

func TestDedup_StoredDuplicatesCollapse(t *testing.T) {
	list := []models.FutureTransaction{
		tx("exp-1", day(2026, time.November, 5), models.OriginOriginal),
		tx("exp-2", day(2026, time.November, 25), models.OriginOriginal),
	}

	got := Dedup(list)

	require.Len(t, got, 1)
	assert.Equal(t, "exp-1", got[0].ID)
}

func TestDedup_Idempotent(t *testing.T) {
	list := Project(sampleFinances(), Options{Now: now, LookaheadMonths: 12})
	list = append(list, tx("exp-x-recurring-2026-11-05", day(2026, time.November, 5), models.OriginRecurring))
	list = append(list, tx("exp-y", day(2026, time.November, 9), models.OriginOriginal))

	once := Dedup(list)
	assert.Equal(t, once, Dedup(once))
	assert.Len(t, once, len(list)-1)
}

func TestDedup_Empty(t *testing.T) {
	assert.Empty(t, Dedup(nil))
}

func TestDeduplicator_CachesPerInstance(t *testing.T) {
	d := NewDeduplicator(8)
	list := []models.FutureTransaction{
		tx("exp-1-recurring-2026-11-05", day(2026, time.November, 5), models.OriginRecurring),
		tx("exp-9", day(2026, time.November, 5), models.OriginOriginal),
	}

	first := d.Dedup("dashboard", list)
	require.Len(t, first, 1)

	// mutating a returned slice must not leak into the cache
	first[0].Description = "changed"
	assert.Equal(t, "Rent", d.Dedup("dashboard", list)[0].Description)

	assert.Equal(t, Dedup(list), d.Dedup("transactions", list))

	changed := append(list, tx("exp-3", day(2026, time.December, 5), models.OriginOriginal))
	assert.Len(t, d.Dedup("dashboard", changed), 2)
}

func TestDeduplicator_BoundedAcrossInstances(t *testing.T) {
	d := NewDeduplicator(4)
	list := Project(sampleFinances(), Options{Now: now, LookaheadMonths: 12})
	want := Dedup(list)

	for i := 0; i < 1000; i++ {
		assert.Equal(t, want, d.Dedup(fmt.Sprintf("user-1/view-%d", i), list))
	}
	assert.Equal(t, 4, d.Len())

	// the most recent keys survive eviction
	for i := 996; i < 1000; i++ {
		assert.Equal(t, want, d.Dedup(fmt.Sprintf("user-1/view-%d", i), list))
	}
	assert.Equal(t, 4, d.Len())
}

func TestDeduplicator_SameKeyKeepsOneEntry(t *testing.T) {
	d := NewDeduplicator(4)
	list := []models.FutureTransaction{tx("exp-9", day(2026, time.November, 5), models.OriginOriginal)}

	for i := 0; i < 10; i++ {
		list = append(list, tx(fmt.Sprintf("exp-%d", i), day(2026, time.December, 5), models.OriginOriginal))
		d.Dedup("user-1/default", list)
	}
	assert.Equal(t, 1, d.Len())
}
