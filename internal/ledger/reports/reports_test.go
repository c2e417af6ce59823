package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/accounts"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func row(code, name string, typ accounts.AccountType, opening, debit, credit string, t *testing.T) AccountBalance {
	return AccountBalance{
		AccountID: uuid.New(),
		Code:      code,
		Name:      name,
		Type:      typ,
		Opening:   d(t, opening),
		Debit:     d(t, debit),
		Credit:    d(t, credit),
	}
}

func TestBuildProfitAndLoss(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	rows := []AccountBalance{
		row("4000", "Sales", accounts.AccountTypeRevenue, "0", "10.00", "510.00", t),
		row("5000", "Rent", accounts.AccountTypeExpense, "0", "200.00", "0", t),
		row("1110", "Cash", accounts.AccountTypeAsset, "0", "510.00", "200.00", t),
	}

	pl := BuildProfitAndLoss(rows, start, end)
	require.Len(t, pl.Revenue.Accounts, 1)
	require.Len(t, pl.Expense.Accounts, 1)
	require.True(t, pl.Revenue.Total.Equal(d(t, "500.00")), "got %s", pl.Revenue.Total)
	require.True(t, pl.Expense.Total.Equal(d(t, "200.00")))
	require.True(t, pl.NetIncome.Equal(d(t, "300.00")))
}

func TestBuildBalanceSheetIdentity(t *testing.T) {
	asOf := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	rows := []AccountBalance{
		row("1110", "Cash", accounts.AccountTypeAsset, "0", "800.00", "100.00", t),
		row("2000", "Loans", accounts.AccountTypeLiability, "0", "0", "300.00", t),
		row("3000", "Capital", accounts.AccountTypeEquity, "0", "0", "100.00", t),
		row("4000", "Sales", accounts.AccountTypeRevenue, "0", "0", "500.00", t),
		row("5000", "Rent", accounts.AccountTypeExpense, "0", "200.00", "0", t),
	}

	bs := BuildBalanceSheet(rows, asOf)
	require.True(t, bs.Assets.Total.Equal(d(t, "700.00")), "got %s", bs.Assets.Total)
	require.True(t, bs.TotalLiabilitiesAndEquity.Equal(bs.Assets.Total),
		"identity broken: assets %s vs liabilities+equity %s", bs.Assets.Total, bs.TotalLiabilitiesAndEquity)

	last := bs.Equity.Accounts[len(bs.Equity.Accounts)-1]
	require.Equal(t, "Current Earnings", last.Name)
	require.True(t, last.Balance.Equal(d(t, "300.00")))
}

func TestCashFlowClassificationPrecedence(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	entries := []CashEntry{
		{EntryID: uuid.New(), EntryDate: start, Description: "Cash sale", CashChange: d(t, "500.00"), TouchesRevExpense: true},
		{EntryID: uuid.New(), EntryDate: start, Description: "Bought equipment", CashChange: d(t, "-1200.00"), TouchesNonCashAsset: true},
		{EntryID: uuid.New(), EntryDate: start, Description: "Owner injection", CashChange: d(t, "2000.00")},
		// Revenue counterparty wins even when a non-cash asset is present.
		{EntryID: uuid.New(), EntryDate: start, Description: "Sale on partial credit", CashChange: d(t, "100.00"), TouchesRevExpense: true, TouchesNonCashAsset: true},
	}

	cf := BuildCashFlow(entries, d(t, "50.00"), start, end)
	require.True(t, cf.Operating.Total.Equal(d(t, "600.00")), "got %s", cf.Operating.Total)
	require.True(t, cf.Investing.Total.Equal(d(t, "-1200.00")))
	require.True(t, cf.Financing.Total.Equal(d(t, "2000.00")))
	require.True(t, cf.NetChange.Equal(d(t, "1400.00")))
	require.True(t, cf.ClosingCash.Equal(d(t, "1450.00")))
}

func TestCashFlowNetChangeMatchesCashLineMovement(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	// The checking account is cash because a bank account links to it; it
	// carries no sub type of its own.
	checking := uuid.New()
	equipment := uuid.New()
	sales := uuid.New()
	capital := uuid.New()
	types := map[uuid.UUID]accounts.AccountType{
		checking:  accounts.AccountTypeAsset,
		equipment: accounts.AccountTypeAsset,
		sales:     accounts.AccountTypeRevenue,
		capital:   accounts.AccountTypeEquity,
	}
	cash := map[uuid.UUID]bool{checking: true}

	type line struct {
		account       uuid.UUID
		debit, credit string
	}
	postings := []struct {
		desc  string
		lines []line
	}{
		{"Cash sale", []line{{checking, "500.00", "0"}, {sales, "0", "500.00"}}},
		{"Bought equipment", []line{{equipment, "1200.00", "0"}, {checking, "0", "1200.00"}}},
		{"Owner injection", []line{{checking, "2000.00", "0"}, {capital, "0", "2000.00"}}},
	}

	var entries []CashEntry
	movement := decimal.Zero
	for _, p := range postings {
		e := CashEntry{EntryID: uuid.New(), EntryDate: start, Description: p.desc}
		for _, l := range p.lines {
			if cash[l.account] {
				e.CashChange = e.CashChange.Add(d(t, l.debit).Sub(d(t, l.credit)))
				continue
			}
			switch types[l.account] {
			case accounts.AccountTypeRevenue, accounts.AccountTypeExpense:
				e.TouchesRevExpense = true
			case accounts.AccountTypeAsset:
				e.TouchesNonCashAsset = true
			}
		}
		movement = movement.Add(e.CashChange)
		entries = append(entries, e)
	}

	opening := d(t, "50.00")
	cf := BuildCashFlow(entries, opening, start, end)
	require.True(t, cf.NetChange.Equal(movement), "net change %s vs cash line movement %s", cf.NetChange, movement)
	require.True(t, cf.ClosingCash.Equal(opening.Add(movement)))
	require.True(t, cf.Operating.Total.Equal(d(t, "500.00")))
	require.True(t, cf.Investing.Total.Equal(d(t, "-1200.00")))
	require.True(t, cf.Financing.Total.Equal(d(t, "2000.00")))
}

func TestBuildTrialBalanceTotalsMatch(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	rows := []AccountBalance{
		row("1110", "Cash", accounts.AccountTypeAsset, "100.00", "500.00", "200.00", t),
		row("1120", "AR", accounts.AccountTypeAsset, "0", "50.00", "0", t),
		row("4000", "Sales", accounts.AccountTypeRevenue, "-100.00", "0", "550.00", t),
		row("5000", "Rent", accounts.AccountTypeExpense, "0", "200.00", "0", t),
	}

	tb := BuildTrialBalance(rows, start, end)
	require.True(t, tb.TotalDebit.Equal(d(t, "750.00")), "got %s", tb.TotalDebit)
	require.True(t, tb.TotalCredit.Equal(d(t, "750.00")))
	require.True(t, tb.TotalClosing.Equal(tb.TotalOpening), "balanced books keep closing equal to opening on the signed convention")
	require.Len(t, tb.Groups, 3)
}

type countingRepo struct {
	Repository
	calls int
	rows  []AccountBalance
}

func (c *countingRepo) AccountBalances(context.Context, time.Time, time.Time) ([]AccountBalance, error) {
	c.calls++
	return c.rows, nil
}

func TestServiceCachesUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := &countingRepo{rows: []AccountBalance{
		row("4000", "Sales", accounts.AccountTypeRevenue, "0", "0", "500.00", t),
		row("1110", "Cash", accounts.AccountTypeAsset, "0", "500.00", "0", t),
	}}
	svc := NewService(repo, NewCache(client, time.Minute))
	ctx := context.Background()
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	first, err := svc.ProfitAndLoss(ctx, start, end)
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls)

	second, err := svc.ProfitAndLoss(ctx, start, end)
	require.NoError(t, err)
	require.Equal(t, 1, repo.calls, "second call must be served from cache")
	require.True(t, second.NetIncome.Equal(first.NetIncome))

	require.NoError(t, svc.Invalidate(ctx))
	_, err = svc.ProfitAndLoss(ctx, start, end)
	require.NoError(t, err)
	require.Equal(t, 2, repo.calls, "bump must force a reload")
}
