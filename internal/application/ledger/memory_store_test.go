package ledger

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type journalLine struct {
	debitAccount  string
	creditAccount string
	amount        decimal.Decimal
}

type memoryState struct {
	accounts  map[uuid.UUID]ledger.Account
	journal   []journalLine
	sales     map[uuid.UUID]int64
	purchases map[uuid.UUID]int64
	expenses  map[uuid.UUID]int64
}

func (s *memoryState) clone() *memoryState {
	out := &memoryState{
		accounts:  make(map[uuid.UUID]ledger.Account, len(s.accounts)),
		journal:   slices.Clone(s.journal),
		sales:     cloneCounts(s.sales),
		purchases: cloneCounts(s.purchases),
		expenses:  cloneCounts(s.expenses),
	}
	for id, a := range s.accounts {
		out.accounts[id] = a
	}
	return out
}

func cloneCounts(in map[uuid.UUID]int64) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// memoryUnitOfWork is a transactional in-memory store: each Do works on a copy
// of the state that only replaces the committed state when fn succeeds.
type memoryUnitOfWork struct {
	mu        sync.Mutex
	state     *memoryState
	commits   int
	fullLoads int
	saveFault func(a *ledger.Account) error
}

func newMemoryUnitOfWork() *memoryUnitOfWork {
	return &memoryUnitOfWork{
		state: &memoryState{
			accounts:  make(map[uuid.UUID]ledger.Account),
			sales:     make(map[uuid.UUID]int64),
			purchases: make(map[uuid.UUID]int64),
			expenses:  make(map[uuid.UUID]int64),
		},
	}
}

func (u *memoryUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context, store ledger.Store) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx := &memoryStore{uow: u, state: u.state.clone()}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	u.state = tx.state
	u.commits++
	return nil
}

func (u *memoryUnitOfWork) byName(name string) *ledger.Account {
	for _, a := range u.state.accounts {
		if a.Name == name {
			return &a
		}
	}
	return nil
}

func (u *memoryUnitOfWork) remove(name string) {
	for id, a := range u.state.accounts {
		if a.Name == name {
			delete(u.state.accounts, id)
		}
	}
}

func (u *memoryUnitOfWork) count() int {
	return len(u.state.accounts)
}

func (u *memoryUnitOfWork) post(debit, credit string, amount string) {
	u.state.journal = append(u.state.journal, journalLine{
		debitAccount:  debit,
		creditAccount: credit,
		amount:        decimal.RequireFromString(amount),
	})
}

type memoryStore struct {
	uow   *memoryUnitOfWork
	state *memoryState
}

func (s *memoryStore) Accounts() ledger.AccountRepository {
	return s
}

func (s *memoryStore) Journal() ledger.JournalReader {
	return s
}

func (s *memoryStore) Transactions() ledger.TransactionUsageReader {
	return s
}

func (s *memoryStore) sorted(keep func(a ledger.Account) bool) []ledger.Account {
	out := make([]ledger.Account, 0)
	for _, a := range s.state.accounts {
		if keep(a) {
			out = append(out, a)
		}
	}
	slices.SortFunc(out, func(a, b ledger.Account) int {
		return strings.Compare(a.Code, b.Code)
	})
	return out
}

func (s *memoryStore) FindByID(_ context.Context, id uuid.UUID) (*ledger.Account, error) {
	a, ok := s.state.accounts[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &a, nil
}

func (s *memoryStore) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*ledger.Account, error) {
	return s.FindByID(ctx, id)
}

func (s *memoryStore) FindByName(_ context.Context, name string) (*ledger.Account, error) {
	for _, a := range s.sorted(func(a ledger.Account) bool { return a.Name == name }) {
		return &a, nil
	}
	return nil, shared.ErrNotFound
}

func (s *memoryStore) ExistsByNameFold(_ context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	for id, a := range s.state.accounts {
		if excludeID != nil && id == *excludeID {
			continue
		}
		if strings.EqualFold(a.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) FindRoots(_ context.Context) ([]ledger.Account, error) {
	return s.sorted(func(a ledger.Account) bool { return a.IsRoot() }), nil
}

func (s *memoryStore) FindAll(_ context.Context) ([]ledger.Account, error) {
	s.uow.fullLoads++
	return s.sorted(func(ledger.Account) bool { return true }), nil
}

func (s *memoryStore) FindChildrenOf(_ context.Context, parentIDs []uuid.UUID) ([]ledger.Account, error) {
	return s.sorted(func(a ledger.Account) bool {
		return a.ParentID != nil && slices.Contains(parentIDs, *a.ParentID)
	}), nil
}

func (s *memoryStore) FindLastChildCode(_ context.Context, parentID *uuid.UUID) (string, error) {
	last := ""
	for _, a := range s.state.accounts {
		sameParent := (parentID == nil && a.ParentID == nil) ||
			(parentID != nil && a.ParentID != nil && *a.ParentID == *parentID)
		if sameParent && a.Code > last {
			last = a.Code
		}
	}
	return last, nil
}

func (s *memoryStore) CountChildren(_ context.Context, id uuid.UUID) (int64, error) {
	var n int64
	for _, a := range s.state.accounts {
		if a.ParentID != nil && *a.ParentID == id {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) Save(_ context.Context, account *ledger.Account) error {
	if s.uow.saveFault != nil {
		if err := s.uow.saveFault(account); err != nil {
			return err
		}
	}
	for id, a := range s.state.accounts {
		if id != account.ID && a.Code == account.Code {
			return shared.ErrAlreadyExists
		}
	}
	stored := *account
	stored.ClearDomainEvents()
	s.state.accounts[account.ID] = stored
	return nil
}

func (s *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := s.state.accounts[id]; !ok {
		return shared.ErrNotFound
	}
	delete(s.state.accounts, id)
	return nil
}

func (s *memoryStore) CountReferences(_ context.Context, name string) (int64, error) {
	var n int64
	for _, line := range s.state.journal {
		if line.debitAccount == name || line.creditAccount == name {
			n++
		}
	}
	return n, nil
}

func (s *memoryStore) TotalsByName(_ context.Context) (map[string]ledger.Totals, error) {
	out := make(map[string]ledger.Totals)
	for _, line := range s.state.journal {
		out[line.debitAccount] = out[line.debitAccount].Add(ledger.Totals{Debit: line.amount})
		out[line.creditAccount] = out[line.creditAccount].Add(ledger.Totals{Credit: line.amount})
	}
	return out, nil
}

func (s *memoryStore) TotalsForNames(ctx context.Context, names []string) (map[string]ledger.Totals, error) {
	all, _ := s.TotalsByName(ctx)
	out := make(map[string]ledger.Totals, len(names))
	for _, name := range names {
		if t, ok := all[name]; ok {
			out[name] = t
		}
	}
	return out, nil
}

func (s *memoryStore) CountSalesReferences(_ context.Context, id uuid.UUID) (int64, error) {
	return s.state.sales[id], nil
}

func (s *memoryStore) CountPurchaseReferences(_ context.Context, id uuid.UUID) (int64, error) {
	return s.state.purchases[id], nil
}

func (s *memoryStore) CountExpenseReferences(_ context.Context, id uuid.UUID) (int64, error) {
	return s.state.expenses[id], nil
}

var _ ledger.UnitOfWork = (*memoryUnitOfWork)(nil)
