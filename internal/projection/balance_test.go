package projection

import (
	"testing"

	"github.com/Dan9191/finance-tracker/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestBalance(t *testing.T) {
	incomes := []models.Income{
		{Amount: 500, Category: models.IncomeInvestmentReturns},
		{Amount: 1000, Category: models.IncomeSalary},
	}

	assert.Equal(t, 1500.0, Balance(incomes, nil))
	assert.Equal(t, 1000.0, BalanceExcludingInvestmentReturns(incomes, nil))

	expenses := []models.Expense{{Amount: 300.1}, {Amount: 0.2}}
	assert.Equal(t, 1199.7, Balance(incomes, expenses))
	assert.Equal(t, 699.7, BalanceExcludingInvestmentReturns(incomes, expenses))
}

func TestBalance_Empty(t *testing.T) {
	assert.Zero(t, Balance(nil, nil))
	assert.Zero(t, BalanceExcludingInvestmentReturns(nil, nil))
	assert.Zero(t, ActivePrincipal(nil))
}

func TestSummarize(t *testing.T) {
	f := models.Finances{
		Incomes:  []models.Income{{Amount: 3000, Category: models.IncomeSalary}, {Amount: 100, Category: models.IncomeInvestmentReturns}},
		Expenses: []models.Expense{{Amount: 1200}},
		Investments: []models.Investment{
			{Amount: 1000},
			{Amount: 700, IsFinalized: true},
		},
	}

	got := Summarize(f)

	assert.Equal(t, models.BalanceSummary{
		Income:                 3100,
		Expense:                1200,
		Balance:                1900,
		BalanceExcludingReturn: 1800,
		ActivePrincipal:        1000,
		NetWorth:               2900,
	}, got)
}
