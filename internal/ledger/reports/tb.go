package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceAccount represents a row inside a trial balance group.
type TrialBalanceAccount struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Opening decimal.Decimal `json:"opening"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Closing decimal.Decimal `json:"closing"`
}

// TrialBalanceGroup aggregates accounts for presentation.
type TrialBalanceGroup struct {
	Key      string                `json:"key"`
	Accounts []TrialBalanceAccount `json:"accounts"`
	Opening  decimal.Decimal       `json:"opening"`
	Debit    decimal.Decimal       `json:"debit"`
	Credit   decimal.Decimal       `json:"credit"`
	Closing  decimal.Decimal       `json:"closing"`
}

// TrialBalance is the final structure returned by the API.
type TrialBalance struct {
	StartDate    time.Time           `json:"startDate"`
	EndDate      time.Time           `json:"endDate"`
	Groups       []TrialBalanceGroup `json:"groups"`
	TotalDebit   decimal.Decimal     `json:"totalDebit"`
	TotalCredit  decimal.Decimal     `json:"totalCredit"`
	TotalOpening decimal.Decimal     `json:"totalOpening"`
	TotalClosing decimal.Decimal     `json:"totalClosing"`
}

// BuildTrialBalance converts account balances into grouped trial balance data.
// All amounts stay on the debit-normal convention so the grand debit and
// credit totals match for balanced books.
func BuildTrialBalance(rows []AccountBalance, start, end time.Time) TrialBalance {
	groups := make(map[string]*TrialBalanceGroup)
	keys := make([]string, 0)
	for _, acc := range rows {
		key := acc.GroupKey()
		grp, ok := groups[key]
		if !ok {
			grp = &TrialBalanceGroup{Key: key, Opening: decimal.Zero, Debit: decimal.Zero, Credit: decimal.Zero, Closing: decimal.Zero}
			groups[key] = grp
			keys = append(keys, key)
		}
		row := TrialBalanceAccount{
			Code:    acc.Code,
			Name:    acc.Name,
			Opening: acc.Opening,
			Debit:   acc.Debit,
			Credit:  acc.Credit,
			Closing: acc.Closing(),
		}
		grp.Accounts = append(grp.Accounts, row)
		grp.Opening = grp.Opening.Add(row.Opening)
		grp.Debit = grp.Debit.Add(row.Debit)
		grp.Credit = grp.Credit.Add(row.Credit)
		grp.Closing = grp.Closing.Add(row.Closing)
	}

	sort.Strings(keys)
	result := TrialBalance{StartDate: start, EndDate: end, TotalDebit: decimal.Zero, TotalCredit: decimal.Zero, TotalOpening: decimal.Zero, TotalClosing: decimal.Zero}
	for _, key := range keys {
		grp := groups[key]
		sort.Slice(grp.Accounts, func(i, j int) bool {
			return grp.Accounts[i].Code < grp.Accounts[j].Code
		})
		result.Groups = append(result.Groups, *grp)
		result.TotalOpening = result.TotalOpening.Add(grp.Opening)
		result.TotalDebit = result.TotalDebit.Add(grp.Debit)
		result.TotalCredit = result.TotalCredit.Add(grp.Credit)
		result.TotalClosing = result.TotalClosing.Add(grp.Closing)
	}
	return result
}
