package journals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/shared"
)

// PostingLineInput is one leg of a posting request.
type PostingLineInput struct {
	AccountID    uuid.UUID       `json:"accountId" validate:"required"`
	Description  *string         `json:"description,omitempty"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
}

// PostingInput carries a journal entry to create. Draft controls whether the
// entry is stored without touching balances.
type PostingInput struct {
	EntryNumber string             `json:"entryNumber" validate:"required,max=50"`
	EntryDate   time.Time          `json:"entryDate" validate:"required"`
	Description string             `json:"description" validate:"required"`
	Reference   *string            `json:"reference,omitempty"`
	Draft       bool               `json:"draft"`
	Lines       []PostingLineInput `json:"lineItems" validate:"required"`
}

// Validate enforces the double-entry rules: at least two lines, non-negative
// amounts, exactly one nonzero side per line, and total debit equal to total
// credit at two decimal places. Drafts skip the balance check; it is applied
// again when the draft is posted.
func (in PostingInput) Validate() (decimal.Decimal, decimal.Decimal, error) {
	if len(in.Lines) < 2 {
		return decimal.Zero, decimal.Zero, shared.ErrTooFewLines
	}
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, line := range in.Lines {
		if line.DebitAmount.IsNegative() || line.CreditAmount.IsNegative() {
			return decimal.Zero, decimal.Zero, shared.ErrNegativeAmount
		}
		if line.DebitAmount.IsZero() == line.CreditAmount.IsZero() {
			return decimal.Zero, decimal.Zero, shared.ErrLineAmounts
		}
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	if !in.Draft && !totalDebit.Round(2).Equal(totalCredit.Round(2)) {
		return decimal.Zero, decimal.Zero, shared.ErrUnbalanced
	}
	return totalDebit.Round(2), totalCredit.Round(2), nil
}
