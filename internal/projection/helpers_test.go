package projection

import (
	"time"

	"github.com/Dan9191/finance-tracker/internal/models"
)

var now = day(2026, time.October, 17)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datesOf(txs []models.FutureTransaction) []time.Time {
	out := make([]time.Time, 0, len(txs))
	for _, t := range txs {
		out = append(out, t.Date)
	}
	return out
}

func ofType(txs []models.FutureTransaction, typ models.TransactionType) []models.FutureTransaction {
	var out []models.FutureTransaction
	for _, t := range txs {
		if t.Type == typ {
			out = append(out, t)
		}
	}
	return out
}
