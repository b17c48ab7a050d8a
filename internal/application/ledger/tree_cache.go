package ledger

import (
	"context"
	"time"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"go.uber.org/zap"
)

// TreeCache stores the chart of accounts between tree reads.
//
// Every Invalidate advances the generation. Set must store the snapshot only
// if snapshot.Generation still equals the current generation, so a reader that
// loaded the accounts before a concurrent change cannot cache what it saw.
// Implementations must treat a miss as (nil, false, nil).
type TreeCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context) (*AccountSnapshot, bool, error)
	Set(ctx context.Context, snapshot *AccountSnapshot, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// TreeCacheInvalidator drops the cached accounts whenever the tree changes
type TreeCacheInvalidator struct {
	cache  TreeCache
	logger *zap.Logger
}

// NewTreeCacheInvalidator creates a new TreeCacheInvalidator
func NewTreeCacheInvalidator(cache TreeCache, logger *zap.Logger) *TreeCacheInvalidator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TreeCacheInvalidator{
		cache:  cache,
		logger: logger,
	}
}

// Handle invalidates the cache
func (h *TreeCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	if err := h.cache.Invalidate(ctx); err != nil {
		return err
	}
	h.logger.Debug("account tree cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("account_id", event.AggregateID().String()),
	)
	return nil
}

// EventTypes returns the account events that change the tree
func (h *TreeCacheInvalidator) EventTypes() []string {
	return ledger.AccountEventTypes
}

var _ shared.EventHandler = (*TreeCacheInvalidator)(nil)
