package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/erp/ledger/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const spanService = "account"

const (
	noChangesMessage     = "No changes detected"
	updatedMessagePrefix = "Account updated successfully. Changed fields: "
)

// Defaults used when no option overrides them
const (
	DefaultRetryAttempts = 3
	DefaultPageSize      = 10
	DefaultMaxPageSize   = 100
	DefaultTreeCacheTTL  = 30 * time.Second
)

// AccountTreeService orchestrates the chart of accounts. Every operation runs in
// one transaction, bootstraps the root accounts first, and publishes the domain
// events of the accounts it touched after commit.
type AccountTreeService struct {
	uow       ledger.UnitOfWork
	publisher shared.EventPublisher
	cache     TreeCache
	cacheTTL  time.Duration
	metrics   Metrics
	logger    *zap.Logger

	retryAttempts   int
	defaultPageSize int
	maxPageSize     int
}

// ServiceOption configures an AccountTreeService
type ServiceOption func(*AccountTreeService)

// WithTreeCache enables caching of the aggregated forest
func WithTreeCache(cache TreeCache, ttl time.Duration) ServiceOption {
	return func(s *AccountTreeService) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithMetrics sets the metrics sink
func WithMetrics(m Metrics) ServiceOption {
	return func(s *AccountTreeService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) ServiceOption {
	return func(s *AccountTreeService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRetryAttempts sets how many times a transaction is attempted when it hits a unique constraint
func WithRetryAttempts(n int) ServiceOption {
	return func(s *AccountTreeService) {
		if n > 0 {
			s.retryAttempts = n
		}
	}
}

// WithPageSizes sets the default and maximum number of roots per tree page
func WithPageSizes(defaultSize, maxSize int) ServiceOption {
	return func(s *AccountTreeService) {
		if defaultSize > 0 {
			s.defaultPageSize = defaultSize
		}
		if maxSize > 0 {
			s.maxPageSize = maxSize
		}
	}
}

// NewAccountTreeService creates a new AccountTreeService
func NewAccountTreeService(uow ledger.UnitOfWork, publisher shared.EventPublisher, opts ...ServiceOption) *AccountTreeService {
	s := &AccountTreeService{
		uow:             uow,
		publisher:       publisher,
		cacheTTL:        DefaultTreeCacheTTL,
		metrics:         noopMetrics{},
		logger:          zap.NewNop(),
		retryAttempts:   DefaultRetryAttempts,
		defaultPageSize: DefaultPageSize,
		maxPageSize:     DefaultMaxPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.defaultPageSize > s.maxPageSize {
		s.defaultPageSize = s.maxPageSize
	}
	return s
}

// Create adds a new account under an existing parent
func (s *AccountTreeService) Create(ctx context.Context, req CreateAccountRequest) (resp *AccountResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "Create")
	defer func() { s.finish(span, OperationCreate, err) }()

	input, err := parseCreationInput(req)
	if err != nil {
		return nil, err
	}
	if req.ParentID != nil {
		telemetry.SetAttribute(span, telemetry.SpanAttrParentID, req.ParentID.String())
	}

	var created *ledger.Account
	events, err := s.transact(ctx, func(ctx context.Context, store ledger.Store, events *eventBuffer) error {
		accounts := store.Accounts()

		exists, err := accounts.ExistsByNameFold(ctx, input.Name, nil)
		if err != nil {
			return fmt.Errorf("check account name: %w", err)
		}
		if exists {
			return ledger.NewAccountExistsError(input.Name)
		}
		if req.ParentID == nil {
			return ledger.NewValidationError("Cannot create new root accounts. Only use the 4 standard root accounts.")
		}

		parent, err := accounts.FindByIDForUpdate(ctx, *req.ParentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ledger.NewParentNotFoundError(*req.ParentID)
			}
			return fmt.Errorf("load parent account: %w", err)
		}

		root, err := ledger.ResolveRoot(ctx, accounts, parent)
		if err != nil {
			return err
		}
		attrs, err := ledger.ResolveAttributes(root, input)
		if err != nil {
			return err
		}

		lastCode, err := accounts.FindLastChildCode(ctx, &parent.ID)
		if err != nil {
			return fmt.Errorf("load last sibling code: %w", err)
		}
		code, err := ledger.NextCode(parent, lastCode)
		if err != nil {
			return err
		}

		account, err := ledger.NewAccount(parent, input.Name, code, attrs, req.CreatedBy)
		if err != nil {
			return err
		}
		if err := accounts.Save(ctx, account); err != nil {
			return fmt.Errorf("save account: %w", err)
		}

		events.collect(account)
		created = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	telemetry.SetAttribute(span, telemetry.SpanAttrAccountCode, created.Code)
	s.publish(ctx, events)
	s.logger.Info("account created",
		zap.String("account_id", created.ID.String()),
		zap.String("code", created.Code),
		zap.String("name", created.Name),
	)

	out := ToAccountResponse(created)
	return &out, nil
}

// Update changes any subset of name, cost-center requirement and account type
func (s *AccountTreeService) Update(ctx context.Context, id uuid.UUID, req UpdateAccountRequest) (result *UpdateAccountResult, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "Update")
	defer func() { s.finish(span, OperationUpdate, err) }()
	telemetry.SetAttribute(span, telemetry.SpanAttrAccountID, id.String())

	if !req.HasFields() {
		return nil, ledger.NewValidationError("No valid update fields provided")
	}

	var newName string
	if req.Name != nil {
		if newName, err = ledger.NormalizeName(*req.Name); err != nil {
			return nil, err
		}
	}
	var newType ledger.AccountType
	if req.AccountTypeSet {
		if newType, err = ledger.ParseAccountType(req.AccountType); err != nil {
			return nil, err
		}
	}

	var (
		updated *ledger.Account
		fields  []string
	)
	events, err := s.transact(ctx, func(ctx context.Context, store ledger.Store, events *eventBuffer) error {
		account, err := s.lockAccount(ctx, store, id)
		if err != nil {
			return err
		}
		guard := ledger.NewMutationGuard(store)
		var changes ledger.ChangeSet

		if req.Name != nil && !account.SameName(newName) {
			if err := ensureMutable(account); err != nil {
				return err
			}
			if err := guard.CheckRename(ctx, account, newName); err != nil {
				return err
			}
			changes.SetName(newName)
		}

		if req.CostCenterRequired != nil && *req.CostCenterRequired != account.CostCenterRequired {
			if err := ensureMutable(account); err != nil {
				return err
			}
			if !*req.CostCenterRequired {
				if err := guard.CheckDisableCostCenter(ctx, account); err != nil {
					return err
				}
			}
			changes.SetCostCenterRequired(*req.CostCenterRequired)
		}

		if req.AccountTypeSet && newType != account.AccountType {
			if err := ensureMutable(account); err != nil {
				return err
			}
			if newType.IsSet() {
				root, err := ledger.ResolveRoot(ctx, store.Accounts(), account)
				if err != nil {
					return err
				}
				if err := ledger.ValidateAccountTypeChange(root, newType); err != nil {
					return err
				}
			}
			changes.SetAccountType(newType)
		}

		fields = account.Apply(changes, req.UpdatedBy)
		if len(fields) == 0 {
			return nil
		}
		if err := store.Accounts().Save(ctx, account); err != nil {
			return fmt.Errorf("save account: %w", err)
		}
		events.collect(account)
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events)

	if len(fields) == 0 {
		return &UpdateAccountResult{Message: noChangesMessage, ChangedFields: []string{}}, nil
	}

	s.logger.Info("account updated",
		zap.String("account_id", id.String()),
		zap.Strings("changed_fields", fields),
	)

	out := ToAccountResponse(updated)
	return &UpdateAccountResult{
		Message:       updatedMessagePrefix + strings.Join(fields, ", "),
		ChangedFields: fields,
		Account:       &out,
	}, nil
}

// ensureMutable rejects an effective change to a root account
func ensureMutable(account *ledger.Account) error {
	if account.IsRoot() {
		return ledger.NewValidationError(fmt.Sprintf("Root account [%s] cannot be modified", account.Name))
	}
	return nil
}

// Delete permanently removes an unused leaf account and returns its last state
func (s *AccountTreeService) Delete(ctx context.Context, id uuid.UUID) (resp *AccountResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "Delete")
	defer func() { s.finish(span, OperationDelete, err) }()
	telemetry.SetAttribute(span, telemetry.SpanAttrAccountID, id.String())

	var deleted *ledger.Account
	events, err := s.transact(ctx, func(ctx context.Context, store ledger.Store, events *eventBuffer) error {
		account, err := s.lockAccount(ctx, store, id)
		if err != nil {
			return err
		}
		if err := ledger.NewMutationGuard(store).CheckDelete(ctx, account); err != nil {
			return err
		}
		if err := store.Accounts().Delete(ctx, account.ID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return ledger.NewAccountNotFoundError(id)
			}
			return fmt.Errorf("delete account: %w", err)
		}
		account.MarkDeleted()
		events.collect(account)
		deleted = account
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events)
	s.logger.Info("account deleted",
		zap.String("account_id", id.String()),
		zap.String("code", deleted.Code),
	)

	out := ToAccountResponse(deleted)
	return &out, nil
}

// BootstrapRoots creates or repairs the four root accounts and returns how many changed
func (s *AccountTreeService) BootstrapRoots(ctx context.Context) (changed int, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, spanService, "BootstrapRoots")
	defer func() { s.finish(span, OperationBootstrapRoots, err) }()

	events, err := s.transact(ctx, func(context.Context, ledger.Store, *eventBuffer) error {
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.publish(ctx, events)
	return events.roots, nil
}

// transact runs fn after bootstrapping the roots in one transaction. A unique
// constraint violation rolls back and restarts the whole attempt, which lets a
// concurrent insert of the same code or root lose cleanly.
func (s *AccountTreeService) transact(ctx context.Context, fn func(ctx context.Context, store ledger.Store, events *eventBuffer) error) (*eventBuffer, error) {
	var lastErr error
	for attempt := 1; attempt <= s.retryAttempts; attempt++ {
		events := &eventBuffer{}
		err := s.uow.Do(ctx, func(ctx context.Context, store ledger.Store) error {
			roots, err := ledger.EnsureRoots(ctx, store.Accounts())
			if err != nil {
				return err
			}
			if len(roots) > 0 {
				events.roots = len(roots)
				for _, root := range roots {
					events.collect(root)
				}
				s.logger.Info("root accounts bootstrapped", zap.Int("count", len(roots)))
			}
			return fn(ctx, store, events)
		})
		if err == nil {
			return events, nil
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}

		lastErr = err
		s.metrics.IncCodeRetry()
		telemetry.AddEvent(telemetry.SpanFromContext(ctx), "unique_violation_retry", telemetry.SpanAttrAttempt, attempt)
		s.logger.Warn("unique constraint violated, retrying transaction",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
	}
	return nil, fmt.Errorf("%w: %v", shared.ErrConcurrencyConflict, lastErr)
}

func (s *AccountTreeService) lockAccount(ctx context.Context, store ledger.Store, id uuid.UUID) (*ledger.Account, error) {
	account, err := store.Accounts().FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ledger.NewAccountNotFoundError(id)
		}
		return nil, fmt.Errorf("load account: %w", err)
	}
	return account, nil
}

func (s *AccountTreeService) publish(ctx context.Context, events *eventBuffer) {
	if s.publisher == nil || events == nil || len(events.events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events.events...); err != nil {
		s.logger.Error("failed to publish account events", zap.Error(err))
	}
}

func (s *AccountTreeService) finish(span trace.Span, operation string, err error) {
	if err != nil {
		telemetry.RecordError(span, err)
		if _, ok := shared.AsDomainError(err); ok {
			s.logger.Warn("account operation rejected", zap.String("operation", operation), zap.Error(err))
		} else {
			s.logger.Error("account operation failed", zap.String("operation", operation), zap.Error(err))
		}
	}
	s.metrics.ObserveOperation(operation, err)
	span.End()
}

func parseCreationInput(req CreateAccountRequest) (ledger.CreationInput, error) {
	name, err := ledger.NormalizeName(req.Name)
	if err != nil {
		return ledger.CreationInput{}, err
	}
	nature, err := ledger.ParseNature(req.Nature)
	if err != nil {
		return ledger.CreationInput{}, err
	}
	accountType, err := ledger.ParseAccountType(req.AccountType)
	if err != nil {
		return ledger.CreationInput{}, err
	}
	return ledger.CreationInput{
		Name:               name,
		Nature:             nature,
		AccountType:        accountType,
		CostCenterRequired: req.CostCenterRequired,
	}, nil
}

// eventBuffer holds the events of one transaction attempt until commit
type eventBuffer struct {
	events []shared.DomainEvent
	roots  int
}

func (b *eventBuffer) collect(aggregates ...shared.AggregateRoot) {
	for _, a := range aggregates {
		b.events = append(b.events, a.GetDomainEvents()...)
		a.ClearDomainEvents()
	}
}
