package dashboard

import "github.com/shopspring/decimal"

// Metrics carries the headline figures shown on the landing page.
type Metrics struct {
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	OutstandingInvoices  decimal.Decimal `json:"outstandingInvoices"`
	CashBalance          decimal.Decimal `json:"cashBalance"`
	MonthlyExpenses      decimal.Decimal `json:"monthlyExpenses"`
	OverdueInvoicesCount int64           `json:"overdueInvoicesCount"`
	BankAccountsCount    int64           `json:"bankAccountsCount"`
	// Growth figures compare the current month against the previous one,
	// expressed as a percentage rounded to one decimal place.
	RevenueGrowth decimal.Decimal `json:"revenueGrowth"`
	ExpenseGrowth decimal.Decimal `json:"expenseGrowth"`
}
