package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/accounts"
)

// ProfitAndLossAccount represents a revenue or expense account summary.
type ProfitAndLossAccount struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// ProfitAndLossSection groups accounts by nature.
type ProfitAndLossSection struct {
	Label    string                 `json:"label"`
	Accounts []ProfitAndLossAccount `json:"accounts"`
	Total    decimal.Decimal        `json:"total"`
}

// ProfitAndLoss contains the structured output for the report.
type ProfitAndLoss struct {
	StartDate time.Time            `json:"startDate"`
	EndDate   time.Time            `json:"endDate"`
	Revenue   ProfitAndLossSection `json:"revenue"`
	Expense   ProfitAndLossSection `json:"expense"`
	NetIncome decimal.Decimal      `json:"netIncome"`
}

// BuildProfitAndLoss aggregates in-window activity into revenue and expense
// sections. Each account contributes under its own normal side.
func BuildProfitAndLoss(rows []AccountBalance, start, end time.Time) ProfitAndLoss {
	revenue := ProfitAndLossSection{Label: "Revenue", Total: decimal.Zero}
	expense := ProfitAndLossSection{Label: "Expense", Total: decimal.Zero}

	for _, acc := range rows {
		row := ProfitAndLossAccount{Code: acc.Code, Name: acc.Name, Amount: acc.Signed()}
		switch acc.Type {
		case accounts.AccountTypeRevenue:
			revenue.Accounts = append(revenue.Accounts, row)
			revenue.Total = revenue.Total.Add(row.Amount)
		case accounts.AccountTypeExpense:
			expense.Accounts = append(expense.Accounts, row)
			expense.Total = expense.Total.Add(row.Amount)
		}
	}

	sort.Slice(revenue.Accounts, func(i, j int) bool { return revenue.Accounts[i].Code < revenue.Accounts[j].Code })
	sort.Slice(expense.Accounts, func(i, j int) bool { return expense.Accounts[i].Code < expense.Accounts[j].Code })

	return ProfitAndLoss{
		StartDate: start,
		EndDate:   end,
		Revenue:   revenue,
		Expense:   expense,
		NetIncome: revenue.Total.Sub(expense.Total),
	}
}
