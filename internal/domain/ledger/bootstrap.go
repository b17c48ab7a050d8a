package ledger

import (
	"context"
	"fmt"
)

// EnsureRoots makes sure the four root accounts exist and carry the settings of
// their policy. Missing roots are created in table order with the next free root
// code; drifted roots are rewritten. It returns the roots that were created or
// changed, with their pending domain events. Running it again is a no-op.
func EnsureRoots(ctx context.Context, repo AccountRepository) ([]*Account, error) {
	existing, err := repo.FindRoots(ctx)
	if err != nil {
		return nil, fmt.Errorf("load root accounts: %w", err)
	}

	byPolicy := make(map[string]*Account, RootCount)
	lastCode := ""
	for i := range existing {
		root := &existing[i]
		if policy, ok := PolicyForRoot(root.Name); ok {
			if _, dup := byPolicy[policy.Name]; !dup {
				byPolicy[policy.Name] = root
			}
		}
		if root.Code > lastCode {
			lastCode = root.Code
		}
	}

	var touched []*Account
	for _, policy := range rootPolicies {
		if root, ok := byPolicy[policy.Name]; ok {
			if policy.Conforms(root) {
				continue
			}
			root.Canonicalize(policy)
			if err := repo.Save(ctx, root); err != nil {
				return nil, fmt.Errorf("canonicalize root %s: %w", policy.Name, err)
			}
			touched = append(touched, root)
			continue
		}

		code, err := NextCode(nil, lastCode)
		if err != nil {
			return nil, err
		}
		root := NewRootAccount(policy, code)
		if err := repo.Save(ctx, root); err != nil {
			return nil, fmt.Errorf("create root %s: %w", policy.Name, err)
		}
		lastCode = code
		touched = append(touched, root)
	}
	return touched, nil
}
