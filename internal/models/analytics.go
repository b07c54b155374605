package models

// BalanceSummary represents the balances of a user's finance snapshot
type BalanceSummary struct {
	Income                 float64 `json:"income"`
	Expense                float64 `json:"expense"`
	Balance                float64 `json:"balance"`
	BalanceExcludingReturn float64 `json:"balance_excluding_returns"`
	ActivePrincipal        float64 `json:"active_principal"`
	NetWorth               float64 `json:"net_worth"` // ActivePrincipal + Balance
}
