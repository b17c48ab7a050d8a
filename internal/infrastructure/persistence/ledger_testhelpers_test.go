package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/infrastructure/config"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupLedgerTestDB opens an in-memory SQLite database pinned to one connection
func setupLedgerTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	database, err := Open(sqlite.Open(":memory:"), &config.DatabaseConfig{
		MaxOpenConns: 1,
		MaxIdleConns: 1,
		LogLevel:     "silent",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	require.NoError(t, database.DB.AutoMigrate(
		&models.AccountModel{},
		&models.JournalEntryModel{},
		&models.SalesTransactionModel{},
		&models.PurchaseTransactionModel{},
		&models.ExpenseTransactionModel{},
	))
	return database.DB
}

// newMockLedgerDB creates a GORM DB with a mocked PostgreSQL connection
func newMockLedgerDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return gormDB, mock, mockDB
}

// seedRoots bootstraps the four root accounts and returns them by name
func seedRoots(t *testing.T, repo ledger.AccountRepository) map[string]*ledger.Account {
	t.Helper()
	created, err := ledger.EnsureRoots(context.Background(), repo)
	require.NoError(t, err)
	require.Len(t, created, ledger.RootCount)

	roots := make(map[string]*ledger.Account, len(created))
	for _, root := range created {
		roots[root.Name] = root
	}
	return roots
}

// seedChild saves a child of parent with the next free code
func seedChild(t *testing.T, repo ledger.AccountRepository, parent *ledger.Account, name string) *ledger.Account {
	t.Helper()
	ctx := context.Background()

	last, err := repo.FindLastChildCode(ctx, &parent.ID)
	require.NoError(t, err)
	code, err := ledger.NextChildCode(parent.Code, last)
	require.NoError(t, err)

	account, err := ledger.NewAccount(parent, name, code, ledger.Attributes{
		Nature:      parent.Nature,
		AccountType: parent.AccountType,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, account))
	return account
}

// postEntry inserts a journal line moving amount from credit to debit
func postEntry(t *testing.T, db *gorm.DB, debit, credit string, amount int64) {
	t.Helper()
	value := decimal.NewFromInt(amount)
	require.NoError(t, db.Create(&models.JournalEntryModel{
		ID:           uuid.New(),
		EntryDate:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		Debit:        debit,
		Credit:       credit,
		DebitAmount:  value,
		CreditAmount: value,
		CreatedAt:    time.Now(),
	}).Error)
}

func accountTransaction(accountID uuid.UUID) models.AccountTransactionModel {
	return models.AccountTransactionModel{
		ID:        uuid.New(),
		AccountID: accountID,
		Amount:    decimal.NewFromInt(10),
		CreatedAt: time.Now(),
	}
}
