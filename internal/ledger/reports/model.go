package reports

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/accounts"
)

// AccountBalance models a general ledger account with aggregated posted
// amounts. Opening covers activity before the report window, Debit and
// Credit the activity inside it.
type AccountBalance struct {
	AccountID uuid.UUID            `json:"accountId"`
	Code      string               `json:"code"`
	Name      string               `json:"name"`
	Type      accounts.AccountType `json:"type"`
	SubType   *string              `json:"subType,omitempty"`
	Opening   decimal.Decimal      `json:"opening"`
	Debit     decimal.Decimal      `json:"debit"`
	Credit    decimal.Decimal      `json:"credit"`
}

// Closing computes the closing balance on the debit-normal convention.
func (a AccountBalance) Closing() decimal.Decimal {
	return a.Opening.Add(a.Debit).Sub(a.Credit)
}

// GroupKey returns a key used for grouping trial balance rows.
func (a AccountBalance) GroupKey() string {
	if idx := strings.Index(a.Code, "."); idx > 0 {
		return a.Code[:idx]
	}
	if len(a.Code) >= 2 {
		return a.Code[:2]
	}
	return a.Code
}

// Signed returns the account's in-window amount under its own normal side.
func (a AccountBalance) Signed() decimal.Decimal {
	return a.Type.BalanceEffect(a.Debit, a.Credit)
}

// SignedClosing returns the cumulative balance under the account's normal side.
func (a AccountBalance) SignedClosing() decimal.Decimal {
	return a.Type.BalanceEffect(a.Opening.Add(a.Debit), a.Credit)
}
