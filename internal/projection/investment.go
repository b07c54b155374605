package projection

import (
	"fmt"
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// ProjectInvestment emits the initial event of an investment, when its start date
// is today or later or falls in the current month, followed by at most one
// investment_value snapshot per calendar month of the lookahead window.
func ProjectInvestment(inv models.Investment, now time.Time, months int) []models.FutureTransaction {
	today := dateOf(now)
	start := dateOf(inv.StartDate)

	var out []models.FutureTransaction
	if !start.Before(today) || sameMonth(start, today) {
		out = append(out, models.FutureTransaction{
			ID:          inv.ID,
			Date:        start,
			Description: inv.Description,
			Amount:      inv.Amount,
			Type:        models.TypeInvestment,
			Category:    string(models.TypeInvestment),
			Origin:      models.Origin{Kind: models.OriginOriginal, ParentID: inv.ID},
		})
	}

	if inv.IsFinalized && inv.FinalizedDate == nil {
		return out
	}

	reportedMonths := make(map[string]struct{}, months)
	base := monthStart(today)
	for i := 1; i <= months; i++ {
		target := base.AddDate(0, i, 0)

		monthsActive := monthsBetween(start, target)
		if monthsActive <= 0 {
			continue
		}
		if inv.FinalizedDate != nil && monthsBetween(dateOf(*inv.FinalizedDate), target) > 0 {
			continue
		}

		key := target.Format("2006-01")
		if _, ok := reportedMonths[key]; ok {
			continue
		}
		reportedMonths[key] = struct{}{}

		totalValue := GrowthForMonth(inv.Amount, inv.Rate, inv.IsMonthly(), monthsActive, inv.IsCompound)
		out = append(out, models.FutureTransaction{
			ID:          fmt.Sprintf("%s-value-%d", inv.ID, i),
			Date:        clampedDate(target.Year(), target.Month(), start.Day()),
			Description: fmt.Sprintf("%s (current value)", inv.Description),
			Amount:      RoundCents(totalValue),
			Type:        models.TypeInvestmentValue,
			Category:    models.CategoryInvestmentValue,
			ParentID:    inv.ID,
			Origin: models.Origin{
				Kind:     models.OriginInvestmentValue,
				ParentID: inv.ID,
				Index:    i,
			},
		})
	}
	return out
}

// CurrentValue is the value of an investment at the given date, rounded to cents
func CurrentValue(inv models.Investment, at time.Time) float64 {
	elapsed := monthsBetween(dateOf(inv.StartDate), dateOf(at))
	return RoundCents(GrowthForMonth(inv.Amount, inv.Rate, inv.IsMonthly(), elapsed, inv.IsCompound))
}
