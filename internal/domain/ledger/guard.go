package ledger

import (
	"context"
	"fmt"
)

// MutationGuard consults recorded usage before renames, cost-center changes and deletions.
// All checks run against the store of the active transaction.
type MutationGuard struct {
	store Store
}

// NewMutationGuard creates a guard bound to store
func NewMutationGuard(store Store) *MutationGuard {
	return &MutationGuard{store: store}
}

// CheckRename blocks renaming an account referenced by journal entries
// and renames onto a name already taken by another account.
func (g *MutationGuard) CheckRename(ctx context.Context, account *Account, newName string) error {
	refs, err := g.store.Journal().CountReferences(ctx, account.Name)
	if err != nil {
		return fmt.Errorf("count journal references: %w", err)
	}
	if refs > 0 {
		return NewUsageConflictError(
			fmt.Sprintf("Account with name [%s] has existing transactions and cannot modify its name", account.Name),
			[]string{fmt.Sprintf("referenced by %d journal entries", refs)})
	}

	exists, err := g.store.Accounts().ExistsByNameFold(ctx, newName, &account.ID)
	if err != nil {
		return fmt.Errorf("check account name: %w", err)
	}
	if exists {
		return NewAccountExistsError(newName)
	}
	return nil
}

// CheckDisableCostCenter blocks turning off the cost-center requirement of an
// account used by purchases or expenses, or whose name mandates one.
func (g *MutationGuard) CheckDisableCostCenter(ctx context.Context, account *Account) error {
	var reasons []string

	purchases, err := g.store.Transactions().CountPurchaseReferences(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("count purchase references: %w", err)
	}
	if purchases > 0 {
		reasons = append(reasons, fmt.Sprintf("referenced by %d purchase transactions", purchases))
	}

	expenses, err := g.store.Transactions().CountExpenseReferences(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("count expense references: %w", err)
	}
	if expenses > 0 {
		reasons = append(reasons, fmt.Sprintf("referenced by %d expense transactions", expenses))
	}

	if MandatesCostCenter(account.Name) {
		reasons = append(reasons, "cost of goods sold and rebate accounts always require a cost center")
	}

	if len(reasons) > 0 {
		return NewUsageConflictError(
			fmt.Sprintf("Cannot disable cost center requirement for account '%s' because it is used for purchase, expense, COGS or rebates", account.Name),
			reasons)
	}
	return nil
}

// CheckDelete rejects deleting a root as a validation error, and blocks
// deleting parents and accounts with recorded usage. Every usage condition is
// reported as its own reason.
func (g *MutationGuard) CheckDelete(ctx context.Context, account *Account) error {
	if account.IsRoot() {
		return NewValidationError(fmt.Sprintf("Root account [%s] cannot be deleted", account.Name))
	}

	var reasons []string
	children, err := g.store.Accounts().CountChildren(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("count children: %w", err)
	}
	if children > 0 {
		reasons = append(reasons, fmt.Sprintf("parent of %d accounts", children))
	}

	entries, err := g.store.Journal().CountReferences(ctx, account.Name)
	if err != nil {
		return fmt.Errorf("count journal references: %w", err)
	}
	if entries > 0 {
		reasons = append(reasons, fmt.Sprintf("referenced by %d journal entries", entries))
	}

	usage := g.store.Transactions()
	counters := []struct {
		kind  string
		count func() (int64, error)
	}{
		{"sales", func() (int64, error) { return usage.CountSalesReferences(ctx, account.ID) }},
		{"purchase", func() (int64, error) { return usage.CountPurchaseReferences(ctx, account.ID) }},
		{"expense", func() (int64, error) { return usage.CountExpenseReferences(ctx, account.ID) }},
	}
	for _, c := range counters {
		n, err := c.count()
		if err != nil {
			return fmt.Errorf("count %s references: %w", c.kind, err)
		}
		if n > 0 {
			reasons = append(reasons, fmt.Sprintf("referenced by %d %s transactions", n, c.kind))
		}
	}

	if len(reasons) > 0 {
		return NewUsageConflictError(
			fmt.Sprintf("Account [%s] cannot be deleted", account.Name), reasons)
	}
	return nil
}
