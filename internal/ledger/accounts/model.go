package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType enumerates chart-of-accounts categories.
type AccountType string

const (
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
	AccountTypeRevenue   AccountType = "revenue"
	AccountTypeExpense   AccountType = "expense"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// DebitNormal reports whether the account type increases on the debit side.
func (t AccountType) DebitNormal() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// BalanceEffect returns the signed balance change a debit/credit pair causes
// for this account type. Assets and expenses grow with debits; liabilities,
// equity, and revenue grow with credits.
func (t AccountType) BalanceEffect(debit, credit decimal.Decimal) decimal.Decimal {
	if t.DebitNormal() {
		return debit.Sub(credit)
	}
	return credit.Sub(debit)
}

// Account models a chart-of-accounts node. Balance is the cached running
// balance maintained by journal posting.
type Account struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Type        AccountType     `json:"type"`
	SubType     *string         `json:"subType,omitempty"`
	ParentID    *uuid.UUID      `json:"parentId,omitempty"`
	Description *string         `json:"description,omitempty"`
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`
	CreatedAt   time.Time       `json:"createdAt"`
}
