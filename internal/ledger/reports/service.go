package reports

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// Service builds financial reports on top of posted journal activity, with a
// versioned Redis cache and request coalescing in front of the queries.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

const dateKey = "2006-01-02"

func (s *Service) ProfitAndLoss(ctx context.Context, start, end time.Time) (ProfitAndLoss, error) {
	var out ProfitAndLoss
	err := s.fetch(ctx, []string{"reports", "pl", start.Format(dateKey), end.Format(dateKey)}, &out, func(ctx context.Context) (any, error) {
		rows, err := s.repo.AccountBalances(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return BuildProfitAndLoss(rows, start, end), nil
	})
	return out, err
}

func (s *Service) BalanceSheet(ctx context.Context, asOf time.Time) (BalanceSheet, error) {
	var out BalanceSheet
	err := s.fetch(ctx, []string{"reports", "bs", asOf.Format(dateKey)}, &out, func(ctx context.Context) (any, error) {
		rows, err := s.repo.BalancesAsOf(ctx, asOf)
		if err != nil {
			return nil, err
		}
		return BuildBalanceSheet(rows, asOf), nil
	})
	return out, err
}

func (s *Service) CashFlow(ctx context.Context, start, end time.Time) (CashFlow, error) {
	var out CashFlow
	err := s.fetch(ctx, []string{"reports", "cf", start.Format(dateKey), end.Format(dateKey)}, &out, func(ctx context.Context) (any, error) {
		entries, err := s.repo.CashActivity(ctx, start, end)
		if err != nil {
			return nil, err
		}
		opening, err := s.repo.CashBalanceAsOf(ctx, start)
		if err != nil {
			return nil, err
		}
		return BuildCashFlow(entries, opening, start, end), nil
	})
	return out, err
}

func (s *Service) TrialBalance(ctx context.Context, start, end time.Time) (TrialBalance, error) {
	var out TrialBalance
	err := s.fetch(ctx, []string{"reports", "tb", start.Format(dateKey), end.Format(dateKey)}, &out, func(ctx context.Context) (any, error) {
		rows, err := s.repo.AccountBalances(ctx, start, end)
		if err != nil {
			return nil, err
		}
		return BuildTrialBalance(rows, start, end), nil
	})
	return out, err
}

// Invalidate drops all cached reports. Called after journal postings.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}

// fetch runs the loader at most once per cache key across concurrent callers
// and stores the result in Redis.
func (s *Service) fetch(ctx context.Context, parts []string, dest any, loader func(context.Context) (any, error)) error {
	key, err := s.cache.BuildKey(ctx, parts...)
	if err != nil {
		return err
	}
	resultChan := s.group.DoChan(key, func() (any, error) {
		var err error
		inner := func(ctx context.Context) (any, error) { return loader(ctx) }
		err = s.cache.FetchJSON(ctx, key, dest, inner)
		return nil, err
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-resultChan:
		if res.Err != nil {
			return res.Err
		}
		if res.Shared {
			// Another caller populated dest; read back from the cache.
			return s.cache.FetchJSON(ctx, key, dest, func(ctx context.Context) (any, error) { return loader(ctx) })
		}
		return nil
	}
}
