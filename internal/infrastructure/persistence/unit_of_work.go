package persistence

import (
	"context"

	"github.com/erp/ledger/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormUnitOfWork runs ledger operations inside a GORM transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Do executes fn with repositories bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (u *GormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store ledger.Store) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, newGormLedgerStore(tx))
	})
}

// gormLedgerStore exposes repositories sharing one *gorm.DB
type gormLedgerStore struct {
	accounts     *GormAccountRepository
	journal      *GormJournalReader
	transactions *GormTransactionUsageReader
}

func newGormLedgerStore(db *gorm.DB) *gormLedgerStore {
	return &gormLedgerStore{
		accounts:     NewGormAccountRepository(db),
		journal:      NewGormJournalReader(db),
		transactions: NewGormTransactionUsageReader(db),
	}
}

func (s *gormLedgerStore) Accounts() ledger.AccountRepository {
	return s.accounts
}

func (s *gormLedgerStore) Journal() ledger.JournalReader {
	return s.journal
}

func (s *gormLedgerStore) Transactions() ledger.TransactionUsageReader {
	return s.transactions
}

var _ ledger.UnitOfWork = (*GormUnitOfWork)(nil)
