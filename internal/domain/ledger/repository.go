package ledger

import (
	"context"

	"github.com/google/uuid"
)

// AccountRepository defines the interface for account persistence.
// Lookups that miss return shared.ErrNotFound.
type AccountRepository interface {
	// FindByID finds an account by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByIDForUpdate finds an account by its ID and locks its row until the transaction ends
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Account, error)

	// FindByName finds an account whose name matches exactly
	FindByName(ctx context.Context, name string) (*Account, error)

	// ExistsByNameFold checks whether another account carries name, ignoring case
	ExistsByNameFold(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)

	// FindRoots finds all root accounts ordered by code
	FindRoots(ctx context.Context) ([]Account, error)

	// FindAll finds every account ordered by code
	FindAll(ctx context.Context) ([]Account, error)

	// FindChildrenOf finds the direct children of all given parents ordered by code
	FindChildrenOf(ctx context.Context, parentIDs []uuid.UUID) ([]Account, error)

	// FindLastChildCode returns the highest code among the children of parentID,
	// or among the roots when parentID is nil. It returns "" when there are none.
	FindLastChildCode(ctx context.Context, parentID *uuid.UUID) (string, error)

	// CountChildren counts the direct children of an account
	CountChildren(ctx context.Context, id uuid.UUID) (int64, error)

	// Save creates or updates an account
	Save(ctx context.Context, account *Account) error

	// Delete permanently deletes an account
	Delete(ctx context.Context, id uuid.UUID) error
}

// JournalReader is the read-only view over journal entries.
// Entries reference accounts by exact name.
type JournalReader interface {
	// CountReferences counts entries whose debit or credit side names the account
	CountReferences(ctx context.Context, name string) (int64, error)

	// TotalsByName sums debit and credit amounts per referenced account name
	TotalsByName(ctx context.Context) (map[string]Totals, error)

	// TotalsForNames is TotalsByName restricted to the given names
	TotalsForNames(ctx context.Context, names []string) (map[string]Totals, error)
}

// TransactionUsageReader counts sales, purchase and expense records referencing an account
type TransactionUsageReader interface {
	CountSalesReferences(ctx context.Context, accountID uuid.UUID) (int64, error)
	CountPurchaseReferences(ctx context.Context, accountID uuid.UUID) (int64, error)
	CountExpenseReferences(ctx context.Context, accountID uuid.UUID) (int64, error)
}

// Store exposes the repositories bound to one transaction
type Store interface {
	Accounts() AccountRepository
	Journal() JournalReader
	Transactions() TransactionUsageReader
}

// UnitOfWork runs a function inside one database transaction.
// A returned error rolls back every change made through the store.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, store Store) error) error
}
