// Package shared holds sentinel errors common to the ledger packages.
package shared

import (
	"fmt"

	"github.com/accountancy-cloud/accountancy-cloud/internal/platform/httpx"
)

var (
	// ErrUnbalanced indicates debit != credit on a posting.
	ErrUnbalanced = fmt.Errorf("%w: journal lines must balance", httpx.ErrValidation)
	// ErrTooFewLines indicates less than two lines.
	ErrTooFewLines = fmt.Errorf("%w: journal requires at least two lines", httpx.ErrValidation)
	// ErrLineAmounts indicates a line violating the exactly-one-nonzero rule.
	ErrLineAmounts = fmt.Errorf("%w: each line must carry exactly one of debit or credit", httpx.ErrValidation)
	// ErrNegativeAmount indicates a negative debit or credit.
	ErrNegativeAmount = fmt.Errorf("%w: amounts must not be negative", httpx.ErrValidation)
	// ErrDuplicateRequest indicates a replayed idempotency key.
	ErrDuplicateRequest = fmt.Errorf("%w: request already processed", httpx.ErrConflict)
	// ErrDuplicateEntryNumber indicates an entry number collision.
	ErrDuplicateEntryNumber = fmt.Errorf("%w: entry number already used", httpx.ErrConflict)
	// ErrEntryNotFound indicates a missing journal entry.
	ErrEntryNotFound = fmt.Errorf("%w: journal entry not found", httpx.ErrNotFound)
	// ErrNotDraft indicates a posting attempt on a non-draft entry.
	ErrNotDraft = fmt.Errorf("%w: entry is not a draft", httpx.ErrValidation)
	// ErrAccountNotFound indicates a missing account.
	ErrAccountNotFound = fmt.Errorf("%w: account not found", httpx.ErrNotFound)
	// ErrAccountInactive indicates a posting against a deactivated account.
	ErrAccountInactive = fmt.Errorf("%w: account is inactive", httpx.ErrValidation)
	// ErrDuplicateAccountCode indicates an account code collision.
	ErrDuplicateAccountCode = fmt.Errorf("%w: account code already used", httpx.ErrConflict)
	// ErrAccountCycle indicates a parent link that would close a cycle.
	ErrAccountCycle = fmt.Errorf("%w: parent link would create a cycle", httpx.ErrValidation)
	// ErrTypeImmutable indicates a type change on an account with postings.
	ErrTypeImmutable = fmt.Errorf("%w: account type cannot change once journal lines reference it", httpx.ErrValidation)
)
