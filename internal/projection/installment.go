package projection

import (
	"fmt"

	"github.com/Dan9191/finance-tracker/internal/models"
)

// ExpandInstallments emits one occurrence per installment still to be paid, monthly
// from one month after the expense date. The count is always Total-Current, whatever
// the lookahead window is.
func ExpandInstallments(ex models.Expense) []models.FutureTransaction {
	if ex.Installment == nil {
		return nil
	}
	inst := *ex.Installment
	left := inst.Left()
	if left == 0 {
		return nil
	}

	out := make([]models.FutureTransaction, 0, left)
	for i := 1; i <= left; i++ {
		n := inst.Current + i
		out = append(out, models.FutureTransaction{
			ID:             fmt.Sprintf("%s-installment-%d", ex.ID, n),
			Date:           addMonths(ex.Date, i),
			Description:    fmt.Sprintf("%s (%d/%d)", ex.Description, n, inst.Total),
			Amount:         ex.Amount,
			Type:           models.TypeExpense,
			Category:       ex.Category,
			SourceCategory: ex.SourceCategory,
			ParentID:       ex.ID,
			Origin: models.Origin{
				Kind:     models.OriginInstallment,
				ParentID: ex.ID,
				Index:    n,
			},
		})
	}
	return out
}
