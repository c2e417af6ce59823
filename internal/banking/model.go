package banking

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BankAccountType enumerates bank account kinds.
type BankAccountType string

const (
	TypeChecking   BankAccountType = "checking"
	TypeSavings    BankAccountType = "savings"
	TypeCreditCard BankAccountType = "credit_card"
)

// BankAccount is a real-world bank account, optionally linked to a ledger
// account for reporting.
type BankAccount struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	AccountNumber *string         `json:"accountNumber,omitempty"`
	BankName      *string         `json:"bankName,omitempty"`
	AccountType   BankAccountType `json:"accountType"`
	Balance       decimal.Decimal `json:"balance"`
	IsActive      bool            `json:"isActive"`
	LedgerAccount *uuid.UUID      `json:"accountId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// TransactionType enumerates the direction of a bank transaction.
type TransactionType string

const (
	// TransactionDebit is money leaving the account.
	TransactionDebit TransactionType = "debit"
	// TransactionCredit is money entering the account.
	TransactionCredit TransactionType = "credit"
)

// Transaction is one bank statement line. Balance snapshots the account
// balance right after the transaction applied.
type Transaction struct {
	ID            uuid.UUID        `json:"id"`
	BankAccountID uuid.UUID        `json:"bankAccountId"`
	Date          time.Time        `json:"transactionDate"`
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	Type          TransactionType  `json:"type"`
	Balance       *decimal.Decimal `json:"balance,omitempty"`
	IsReconciled  bool             `json:"isReconciled"`
	ReconciledAt  *time.Time       `json:"reconciledAt,omitempty"`
	MatchedID     *uuid.UUID       `json:"matchedTransactionId,omitempty"`
	ImportedFrom  *string          `json:"importedFrom,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// Signed returns the balance effect of the transaction: credits add, debits
// subtract.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type == TransactionCredit {
		return t.Amount
	}
	return t.Amount.Neg()
}
