package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// JournalEntryModel is a posted journal line. The ledger only reads it;
// Debit and Credit hold account names, not ids.
type JournalEntryModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	EntryDate    time.Time       `gorm:"type:date;not null"`
	Debit        string          `gorm:"type:varchar(255);not null;index"`
	Credit       string          `gorm:"type:varchar(255);not null;index"`
	DebitAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreditAmount decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostCenter   *string         `gorm:"type:varchar(100)"`
	Description  string          `gorm:"type:text"`
	CreatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (JournalEntryModel) TableName() string {
	return "daily_entries"
}

// AccountTransactionModel holds the columns shared by the sales, purchase and
// expense tables that reference accounts by id.
type AccountTransactionModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Reference string          `gorm:"type:varchar(100)"`
	CreatedAt time.Time       `gorm:"not null"`
}

// SalesTransactionModel is a sales record referencing an account
type SalesTransactionModel struct {
	AccountTransactionModel
}

// TableName returns the table name for GORM
func (SalesTransactionModel) TableName() string {
	return "sales_transactions"
}

// PurchaseTransactionModel is a purchase record referencing an account
type PurchaseTransactionModel struct {
	AccountTransactionModel
}

// TableName returns the table name for GORM
func (PurchaseTransactionModel) TableName() string {
	return "purchase_transactions"
}

// ExpenseTransactionModel is an expense record referencing an account
type ExpenseTransactionModel struct {
	AccountTransactionModel
}

// TableName returns the table name for GORM
func (ExpenseTransactionModel) TableName() string {
	return "expense_transactions"
}
