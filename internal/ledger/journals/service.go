package journals

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/accountancy-cloud/accountancy-cloud/internal/ledger/shared"
	internalShared "github.com/accountancy-cloud/accountancy-cloud/internal/shared"
)

type AuditPort interface {
	Record(ctx context.Context, log internalShared.AuditLog) error
}

type IdempotencyPort interface {
	CheckAndInsert(ctx context.Context, key, module string) error
	Delete(ctx context.Context, key string) error
}

// InvalidatorPort drops derived caches after a posting commits.
type InvalidatorPort interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo       Repository
	audit      AuditPort
	idem       IdempotencyPort
	invalidate InvalidatorPort
	now        func() time.Time
}

func NewService(repo Repository, audit AuditPort, idem IdempotencyPort) *Service {
	return &Service{repo: repo, audit: audit, idem: idem, now: time.Now}
}

func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) WithInvalidator(inv InvalidatorPort) {
	s.invalidate = inv
}

func (s *Service) List(ctx context.Context) ([]JournalEntry, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (JournalEntry, error) {
	return s.repo.Get(ctx, id)
}

// Post validates and stores a journal entry. Posted entries lock and adjust
// the referenced account balances in the same transaction; drafts are stored
// untouched. idemKey, when non-empty, makes the call replay-safe.
func (s *Service) Post(ctx context.Context, input PostingInput, idemKey string) (JournalEntry, error) {
	totalDebit, totalCredit, err := input.Validate()
	if err != nil {
		return JournalEntry{}, err
	}
	if idemKey != "" && s.idem != nil {
		if err := s.idem.CheckAndInsert(ctx, idemKey, "journals"); err != nil {
			if errors.Is(err, internalShared.ErrIdempotencyConflict) {
				return JournalEntry{}, shared.ErrDuplicateRequest
			}
			return JournalEntry{}, err
		}
	}

	status := EntryStatusPosted
	if input.Draft {
		status = EntryStatusDraft
	}
	entry := JournalEntry{
		ID:          uuid.New(),
		EntryNumber: input.EntryNumber,
		EntryDate:   input.EntryDate,
		Description: input.Description,
		Reference:   input.Reference,
		Status:      status,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		CreatedAt:   s.now(),
	}
	for _, line := range input.Lines {
		entry.Lines = append(entry.Lines, JournalLine{
			ID:             uuid.New(),
			JournalEntryID: entry.ID,
			AccountID:      line.AccountID,
			Description:    line.Description,
			DebitAmount:    line.DebitAmount.Round(2),
			CreditAmount:   line.CreditAmount.Round(2),
		})
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if entry.Status == EntryStatusPosted {
			if err := applyLines(ctx, tx, entry.Lines); err != nil {
				return err
			}
		}
		if err := tx.InsertEntry(ctx, entry); err != nil {
			return err
		}
		return tx.InsertLines(ctx, entry.Lines)
	})
	if err != nil {
		if idemKey != "" && s.idem != nil {
			_ = s.idem.Delete(ctx, idemKey)
		}
		return JournalEntry{}, err
	}

	if entry.Status == EntryStatusPosted {
		s.bumpCaches(ctx)
	}
	if s.audit != nil && entry.Status == EntryStatusPosted {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			Action:   "journal.post",
			Entity:   "journal_entry",
			EntityID: entry.ID.String(),
			Meta:     map[string]any{"entryNumber": entry.EntryNumber},
			At:       s.now(),
		})
	}
	return entry, nil
}

// PostDraft promotes a stored draft to posted, applying its balance effects.
func (s *Service) PostDraft(ctx context.Context, id uuid.UUID) (JournalEntry, error) {
	var entry JournalEntry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetEntryWithLines(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != EntryStatusDraft {
			return shared.ErrNotDraft
		}
		if err := checkBalanced(current.Lines); err != nil {
			return err
		}
		if err := applyLines(ctx, tx, current.Lines); err != nil {
			return err
		}
		if err := tx.SetPosted(ctx, current.ID); err != nil {
			return err
		}
		current.Status = EntryStatusPosted
		entry = current
		return nil
	})
	if err != nil {
		return JournalEntry{}, err
	}
	s.bumpCaches(ctx)
	if s.audit != nil {
		_ = s.audit.Record(ctx, internalShared.AuditLog{
			Action:   "journal.post",
			Entity:   "journal_entry",
			EntityID: entry.ID.String(),
			Meta:     map[string]any{"entryNumber": entry.EntryNumber, "fromDraft": true},
			At:       s.now(),
		})
	}
	return entry, nil
}

// checkBalanced re-validates a draft's totals at posting time. Drafts may be
// stored unbalanced; posted entries never are.
func checkBalanced(lines []JournalLine) error {
	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.DebitAmount)
		totalCredit = totalCredit.Add(line.CreditAmount)
	}
	if !totalDebit.Round(2).Equal(totalCredit.Round(2)) {
		return shared.ErrUnbalanced
	}
	return nil
}

func (s *Service) bumpCaches(ctx context.Context) {
	if s.invalidate != nil {
		_ = s.invalidate.Bump(ctx)
	}
}

// applyLines locks the referenced accounts and shifts each cached balance by
// the line's effect under the account's normal side.
func applyLines(ctx context.Context, tx TxRepository, lines []JournalLine) error {
	deltasByAccount := make(map[uuid.UUID]struct {
		debit  decimal.Decimal
		credit decimal.Decimal
	})
	ids := make([]uuid.UUID, 0, len(lines))
	for _, line := range lines {
		agg, seen := deltasByAccount[line.AccountID]
		if !seen {
			ids = append(ids, line.AccountID)
		}
		agg.debit = agg.debit.Add(line.DebitAmount)
		agg.credit = agg.credit.Add(line.CreditAmount)
		deltasByAccount[line.AccountID] = agg
	}
	locked, err := tx.LockAccounts(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		account, ok := locked[id]
		if !ok {
			return shared.ErrAccountNotFound
		}
		if !account.IsActive {
			return shared.ErrAccountInactive
		}
	}
	for _, id := range ids {
		account := locked[id]
		agg := deltasByAccount[id]
		delta := account.Type.BalanceEffect(agg.debit, agg.credit)
		if err := tx.ApplyBalanceChange(ctx, id, delta); err != nil {
			return err
		}
	}
	return nil
}
