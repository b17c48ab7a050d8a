package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ResolveRoot walks parent links from account up to its root ancestor
func ResolveRoot(ctx context.Context, repo AccountRepository, account *Account) (*Account, error) {
	seen := map[uuid.UUID]struct{}{account.ID: {}}
	current := account
	for !current.IsRoot() {
		parent, err := repo.FindByID(ctx, *current.ParentID)
		if err != nil {
			return nil, fmt.Errorf("resolve parent of %s: %w", current.Code, err)
		}
		if _, loop := seen[parent.ID]; loop {
			return nil, fmt.Errorf("account %s: parent chain contains a cycle", account.Code)
		}
		seen[parent.ID] = struct{}{}
		current = parent
	}
	return current, nil
}

// LoadSubtree returns top followed by all of its descendants, fetched one level per query
func LoadSubtree(ctx context.Context, repo AccountRepository, top *Account) ([]Account, error) {
	accounts := []Account{*top}
	seen := map[uuid.UUID]struct{}{top.ID: {}}
	frontier := []uuid.UUID{top.ID}

	for len(frontier) > 0 {
		children, err := repo.FindChildrenOf(ctx, frontier)
		if err != nil {
			return nil, fmt.Errorf("load children: %w", err)
		}
		next := make([]uuid.UUID, 0, len(children))
		for _, child := range children {
			if _, dup := seen[child.ID]; dup {
				continue
			}
			seen[child.ID] = struct{}{}
			accounts = append(accounts, child)
			next = append(next, child.ID)
		}
		frontier = next
	}
	return accounts, nil
}
