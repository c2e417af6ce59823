package journals

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryStatus enumerates journal entry lifecycle states.
type EntryStatus string

const (
	EntryStatusDraft  EntryStatus = "draft"
	EntryStatusPosted EntryStatus = "posted"
)

// JournalEntry is a double-entry journal header with its lines.
type JournalEntry struct {
	ID          uuid.UUID       `json:"id"`
	EntryNumber string          `json:"entryNumber"`
	EntryDate   time.Time       `json:"entryDate"`
	Description string          `json:"description"`
	Reference   *string         `json:"reference,omitempty"`
	Status      EntryStatus     `json:"status"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	CreatedAt   time.Time       `json:"createdAt"`
	Lines       []JournalLine   `json:"lineItems,omitempty"`
}

// JournalLine is one leg of a journal entry. Exactly one of DebitAmount and
// CreditAmount is nonzero.
type JournalLine struct {
	ID             uuid.UUID       `json:"id"`
	JournalEntryID uuid.UUID       `json:"journalEntryId"`
	AccountID      uuid.UUID       `json:"accountId"`
	Description    *string         `json:"description,omitempty"`
	DebitAmount    decimal.Decimal `json:"debitAmount"`
	CreditAmount   decimal.Decimal `json:"creditAmount"`
}
