package projection

import (
	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/shopspring/decimal"
)

// Balance is the sum of all incomes minus the sum of all expenses
func Balance(incomes []models.Income, expenses []models.Expense) float64 {
	return sumIncomes(incomes, false).Sub(sumExpenses(expenses)).InexactFloat64()
}

// BalanceExcludingInvestmentReturns is Balance without investment_returns incomes,
// so realized investment gains are not counted as regular cash flow
func BalanceExcludingInvestmentReturns(incomes []models.Income, expenses []models.Expense) float64 {
	return sumIncomes(incomes, true).Sub(sumExpenses(expenses)).InexactFloat64()
}

// ActivePrincipal sums the principal of every investment not yet finalized
func ActivePrincipal(investments []models.Investment) float64 {
	total := decimal.Zero
	for _, inv := range investments {
		if inv.IsFinalized {
			continue
		}
		total = total.Add(decimal.NewFromFloat(inv.Amount))
	}
	return total.InexactFloat64()
}

// Summarize computes every balance figure of a snapshot
func Summarize(f models.Finances) models.BalanceSummary {
	income := sumIncomes(f.Incomes, false)
	expense := sumExpenses(f.Expenses)
	balance := income.Sub(expense)
	principal := decimal.NewFromFloat(ActivePrincipal(f.Investments))

	return models.BalanceSummary{
		Income:                 income.InexactFloat64(),
		Expense:                expense.InexactFloat64(),
		Balance:                balance.InexactFloat64(),
		BalanceExcludingReturn: BalanceExcludingInvestmentReturns(f.Incomes, f.Expenses),
		ActivePrincipal:        principal.InexactFloat64(),
		NetWorth:               principal.Add(balance).InexactFloat64(),
	}
}

func sumIncomes(incomes []models.Income, skipReturns bool) decimal.Decimal {
	total := decimal.Zero
	for _, in := range incomes {
		if skipReturns && in.Category == models.IncomeInvestmentReturns {
			continue
		}
		total = total.Add(decimal.NewFromFloat(in.Amount))
	}
	return total
}

func sumExpenses(expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, ex := range expenses {
		total = total.Add(decimal.NewFromFloat(ex.Amount))
	}
	return total
}
