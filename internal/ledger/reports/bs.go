package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/accounts"
)

// BalanceSheetAccount summarises an account for assets, liabilities, or equity.
type BalanceSheetAccount struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceSheetSection contains the accounts and totals for a classification.
type BalanceSheetSection struct {
	Label    string                `json:"label"`
	Accounts []BalanceSheetAccount `json:"accounts"`
	Total    decimal.Decimal       `json:"total"`
}

// BalanceSheet is the structured response for the balance sheet report.
type BalanceSheet struct {
	AsOf                      time.Time           `json:"asOf"`
	Assets                    BalanceSheetSection `json:"assets"`
	Liabilities               BalanceSheetSection `json:"liabilities"`
	Equity                    BalanceSheetSection `json:"equity"`
	TotalLiabilitiesAndEquity decimal.Decimal     `json:"totalLiabilitiesAndEquity"`
}

// BuildBalanceSheet aggregates cumulative balances into assets, liabilities,
// and equity. Undistributed profit to date enters equity as a synthetic
// "Current Earnings" row so that assets always equal liabilities plus equity.
func BuildBalanceSheet(rows []AccountBalance, asOf time.Time) BalanceSheet {
	assets := BalanceSheetSection{Label: "Assets", Total: decimal.Zero}
	liabilities := BalanceSheetSection{Label: "Liabilities", Total: decimal.Zero}
	equity := BalanceSheetSection{Label: "Equity", Total: decimal.Zero}
	earnings := decimal.Zero

	for _, acc := range rows {
		balance := acc.SignedClosing()
		row := BalanceSheetAccount{Code: acc.Code, Name: acc.Name, Balance: balance}
		switch acc.Type {
		case accounts.AccountTypeAsset:
			assets.Accounts = append(assets.Accounts, row)
			assets.Total = assets.Total.Add(balance)
		case accounts.AccountTypeLiability:
			liabilities.Accounts = append(liabilities.Accounts, row)
			liabilities.Total = liabilities.Total.Add(balance)
		case accounts.AccountTypeEquity:
			equity.Accounts = append(equity.Accounts, row)
			equity.Total = equity.Total.Add(balance)
		case accounts.AccountTypeRevenue:
			earnings = earnings.Add(balance)
		case accounts.AccountTypeExpense:
			earnings = earnings.Sub(balance)
		}
	}

	sort.Slice(assets.Accounts, func(i, j int) bool { return assets.Accounts[i].Code < assets.Accounts[j].Code })
	sort.Slice(liabilities.Accounts, func(i, j int) bool { return liabilities.Accounts[i].Code < liabilities.Accounts[j].Code })
	sort.Slice(equity.Accounts, func(i, j int) bool { return equity.Accounts[i].Code < equity.Accounts[j].Code })

	if !earnings.IsZero() {
		equity.Accounts = append(equity.Accounts, BalanceSheetAccount{Name: "Current Earnings", Balance: earnings})
		equity.Total = equity.Total.Add(earnings)
	}

	return BalanceSheet{
		AsOf:                      asOf,
		Assets:                    assets,
		Liabilities:               liabilities,
		Equity:                    equity,
		TotalLiabilitiesAndEquity: liabilities.Total.Add(equity.Total),
	}
}
