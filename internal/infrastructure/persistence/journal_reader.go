package persistence

import (
	"context"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormJournalReader reads journal entry totals for the ledger
type GormJournalReader struct {
	db *gorm.DB
}

// NewGormJournalReader creates a new GormJournalReader
func NewGormJournalReader(db *gorm.DB) *GormJournalReader {
	return &GormJournalReader{db: db}
}

// nameTotal is one row of a per-account grouped sum
type nameTotal struct {
	Name  string
	Total decimal.Decimal
}

// CountReferences counts entries whose debit or credit side names the account
func (r *GormJournalReader) CountReferences(ctx context.Context, name string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.JournalEntryModel{}).
		Where("debit = ? OR credit = ?", name, name).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// TotalsByName sums debit and credit amounts per referenced account name
func (r *GormJournalReader) TotalsByName(ctx context.Context) (map[string]ledger.Totals, error) {
	return r.totals(ctx, nil)
}

// TotalsForNames is TotalsByName restricted to the given names
func (r *GormJournalReader) TotalsForNames(ctx context.Context, names []string) (map[string]ledger.Totals, error) {
	if len(names) == 0 {
		return map[string]ledger.Totals{}, nil
	}
	return r.totals(ctx, names)
}

func (r *GormJournalReader) totals(ctx context.Context, names []string) (map[string]ledger.Totals, error) {
	debits, err := r.sumBy(ctx, "debit", "debit_amount", names)
	if err != nil {
		return nil, err
	}
	credits, err := r.sumBy(ctx, "credit", "credit_amount", names)
	if err != nil {
		return nil, err
	}

	out := make(map[string]ledger.Totals, len(debits)+len(credits))
	for _, row := range debits {
		out[row.Name] = out[row.Name].Add(ledger.Totals{Debit: row.Total, Credit: decimal.Zero})
	}
	for _, row := range credits {
		out[row.Name] = out[row.Name].Add(ledger.Totals{Debit: decimal.Zero, Credit: row.Total})
	}
	return out, nil
}

// sumBy groups entries by the name column and sums the amount column.
// Column names are fixed by callers and never taken from input.
func (r *GormJournalReader) sumBy(ctx context.Context, nameColumn, amountColumn string, names []string) ([]nameTotal, error) {
	query := r.db.WithContext(ctx).
		Model(&models.JournalEntryModel{}).
		Select(nameColumn + " AS name, COALESCE(SUM(" + amountColumn + "), 0) AS total").
		Group(nameColumn)
	if names != nil {
		query = query.Where(nameColumn+" IN ?", names)
	}

	var rows []nameTotal
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GormTransactionUsageReader counts sales, purchase and expense records per account
type GormTransactionUsageReader struct {
	db *gorm.DB
}

// NewGormTransactionUsageReader creates a new GormTransactionUsageReader
func NewGormTransactionUsageReader(db *gorm.DB) *GormTransactionUsageReader {
	return &GormTransactionUsageReader{db: db}
}

// CountSalesReferences counts sales transactions booked against the account
func (r *GormTransactionUsageReader) CountSalesReferences(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return r.count(ctx, &models.SalesTransactionModel{}, accountID)
}

// CountPurchaseReferences counts purchase transactions booked against the account
func (r *GormTransactionUsageReader) CountPurchaseReferences(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return r.count(ctx, &models.PurchaseTransactionModel{}, accountID)
}

// CountExpenseReferences counts expense transactions booked against the account
func (r *GormTransactionUsageReader) CountExpenseReferences(ctx context.Context, accountID uuid.UUID) (int64, error) {
	return r.count(ctx, &models.ExpenseTransactionModel{}, accountID)
}

func (r *GormTransactionUsageReader) count(ctx context.Context, model any, accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var (
	_ ledger.JournalReader          = (*GormJournalReader)(nil)
	_ ledger.TransactionUsageReader = (*GormTransactionUsageReader)(nil)
)
