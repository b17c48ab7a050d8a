package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GetTree returns a page of root accounts, each with its full subtree and
// debit/credit rollups. Grand totals always cover every root. The account
// list may come from the tree cache; journal totals are always read fresh.
func (s *AccountTreeService) GetTree(ctx context.Context, query TreeQuery) (resp *TreeResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "GetTree")
	defer func() { s.finish(span, OperationReadTree, err) }()

	page, pageSize := s.normalizePage(query)
	telemetry.SetAttributes(span, "page", page, "page_size", pageSize)

	cached, generation, cacheable := s.cachedAccounts(ctx)
	telemetry.SetAttribute(span, "cache_hit", cached != nil)

	var (
		roots  []*ledger.Node
		grand  ledger.Totals
		loaded []ledger.Account
	)
	events, err := s.transact(ctx, func(ctx context.Context, store ledger.Store, events *eventBuffer) error {
		loaded = nil
		accounts := cached
		if accounts == nil || events.roots > 0 {
			all, err := store.Accounts().FindAll(ctx)
			if err != nil {
				return fmt.Errorf("load accounts: %w", err)
			}
			accounts = all
			if events.roots == 0 {
				loaded = all
			}
		}
		totals, err := store.Journal().TotalsByName(ctx)
		if err != nil {
			return fmt.Errorf("load journal totals: %w", err)
		}

		started := time.Now()
		roots = ledger.BuildForest(accounts)
		grand = ledger.Aggregate(roots, totals)
		s.metrics.ObserveRollup(time.Since(started), len(accounts))
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)

	if cacheable && loaded != nil {
		if err := s.cache.Set(ctx, NewAccountSnapshot(loaded, generation), s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache account tree", zap.Error(err))
		}
	}
	return paginateTree(toRollupNodes(roots), grand, page, pageSize), nil
}

// GetByParentName returns the account named exactly name with its full subtree
func (s *AccountTreeService) GetByParentName(ctx context.Context, name string) (resp *AccountNode, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "GetByParentName")
	defer func() { s.finish(span, OperationReadByParent, err) }()
	telemetry.SetAttribute(span, telemetry.SpanAttrParentName, name)

	events, err := s.transact(ctx, func(ctx context.Context, store ledger.Store, _ *eventBuffer) error {
		top, err := s.findByName(ctx, store, name)
		if err != nil {
			return err
		}
		accounts, err := ledger.LoadSubtree(ctx, store.Accounts(), top)
		if err != nil {
			return err
		}
		nodes := toAccountNodes(ledger.BuildForest(accounts))
		if len(nodes) == 0 {
			return ledger.NewAccountNameNotFoundError(name)
		}
		resp = nodes[0]
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	return resp, nil
}

// GetAccountBalance returns an account with its own and subtree totals and the
// balance signed by the account's nature
func (s *AccountTreeService) GetAccountBalance(ctx context.Context, id uuid.UUID) (resp *AccountBalanceResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "GetAccountBalance")
	defer func() { s.finish(span, OperationReadBalance, err) }()
	telemetry.SetAttribute(span, telemetry.SpanAttrAccountID, id.String())

	events, err := s.transact(ctx, func(ctx context.Context, store ledger.Store, _ *eventBuffer) error {
		account, err := store.Accounts().FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ledger.NewAccountNotFoundError(id)
			}
			return fmt.Errorf("load account: %w", err)
		}
		accounts, err := ledger.LoadSubtree(ctx, store.Accounts(), account)
		if err != nil {
			return err
		}
		names := make([]string, 0, len(accounts))
		for i := range accounts {
			names = append(names, accounts[i].Name)
		}
		totals, err := store.Journal().TotalsForNames(ctx, names)
		if err != nil {
			return fmt.Errorf("load journal totals: %w", err)
		}

		roots := ledger.BuildForest(accounts)
		ledger.Aggregate(roots, totals)
		top := roots[0]

		resp = &AccountBalanceResponse{
			AccountResponse: ToAccountResponse(top.Account),
			OwnDebit:        top.Own.Debit,
			OwnCredit:       top.Own.Credit,
			DebitAmount:     top.Subtree.Debit,
			CreditAmount:    top.Subtree.Credit,
			Balance:         top.Subtree.BalanceFor(top.Account.Nature),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)
	return resp, nil
}

func (s *AccountTreeService) findByName(ctx context.Context, store ledger.Store, name string) (*ledger.Account, error) {
	account, err := store.Accounts().FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ledger.NewAccountNameNotFoundError(name)
		}
		return nil, fmt.Errorf("load account by name: %w", err)
	}
	return account, nil
}

// cachedAccounts returns the cached accounts of the current generation, or nil
// on a miss. cacheable is false when the cache is off or unreadable.
func (s *AccountTreeService) cachedAccounts(ctx context.Context) (accounts []ledger.Account, generation int64, cacheable bool) {
	if s.cache == nil {
		return nil, 0, false
	}
	generation, err := s.cache.Generation(ctx)
	if err != nil {
		s.logger.Warn("failed to read account tree cache generation", zap.Error(err))
		return nil, 0, false
	}
	snapshot, ok, err := s.cache.Get(ctx)
	if err != nil {
		s.logger.Warn("failed to read cached account tree", zap.Error(err))
		return nil, generation, true
	}
	if !ok || snapshot.Generation != generation {
		return nil, generation, true
	}
	return snapshot.DomainAccounts(), generation, true
}

func (s *AccountTreeService) normalizePage(query TreeQuery) (int, int) {
	page := query.Page
	if page < 1 {
		page = 1
	}
	pageSize := query.PageSize
	if pageSize < 1 {
		pageSize = s.defaultPageSize
	}
	if pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}
	return page, pageSize
}

// paginateTree slices one page of roots. Pages past the end are empty.
func paginateTree(roots []*AccountRollupNode, grand ledger.Totals, page, pageSize int) *TreeResponse {
	total := len(roots)
	pages := total / pageSize
	if total%pageSize != 0 {
		pages++
	}

	start, end := total, total
	if page-1 < pages {
		start = (page - 1) * pageSize
		end = min(start+pageSize, total)
	}
	return &TreeResponse{
		Roots:            roots[start:end],
		GrandTotalDebit:  grand.Debit,
		GrandTotalCredit: grand.Credit,
		Total:            int64(total),
		Page:             page,
		PageSize:         pageSize,
	}
}
