package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockAccountRepository struct {
	mock.Mock
}

func (m *mockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *mockAccountRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *mockAccountRepository) FindByName(ctx context.Context, name string) (*Account, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Account), args.Error(1)
}

func (m *mockAccountRepository) ExistsByNameFold(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *mockAccountRepository) FindRoots(ctx context.Context) ([]Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func (m *mockAccountRepository) FindAll(ctx context.Context) ([]Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func (m *mockAccountRepository) FindChildrenOf(ctx context.Context, parentIDs []uuid.UUID) ([]Account, error) {
	args := m.Called(ctx, parentIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Account), args.Error(1)
}

func (m *mockAccountRepository) FindLastChildCode(ctx context.Context, parentID *uuid.UUID) (string, error) {
	args := m.Called(ctx, parentID)
	return args.String(0), args.Error(1)
}

func (m *mockAccountRepository) CountChildren(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAccountRepository) Save(ctx context.Context, account *Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *mockAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockJournalReader struct {
	mock.Mock
}

func (m *mockJournalReader) CountReferences(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockJournalReader) TotalsByName(ctx context.Context) (map[string]Totals, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]Totals), args.Error(1)
}

func (m *mockJournalReader) TotalsForNames(ctx context.Context, names []string) (map[string]Totals, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]Totals), args.Error(1)
}

type mockUsageReader struct {
	mock.Mock
}

func (m *mockUsageReader) CountSalesReferences(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUsageReader) CountPurchaseReferences(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUsageReader) CountExpenseReferences(ctx context.Context, accountID uuid.UUID) (int64, error) {
	args := m.Called(ctx, accountID)
	return args.Get(0).(int64), args.Error(1)
}

type mockStore struct {
	accounts *mockAccountRepository
	journal  *mockJournalReader
	usage    *mockUsageReader
}

func newMockStore() *mockStore {
	return &mockStore{
		accounts: new(mockAccountRepository),
		journal:  new(mockJournalReader),
		usage:    new(mockUsageReader),
	}
}

func (s *mockStore) Accounts() AccountRepository {
	return s.accounts
}

func (s *mockStore) Journal() JournalReader {
	return s.journal
}

func (s *mockStore) Transactions() TransactionUsageReader {
	return s.usage
}
