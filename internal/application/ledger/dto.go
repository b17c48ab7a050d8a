package ledger

import (
	"time"

	"github.com/erp/ledger/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to add an account under an existing parent
type CreateAccountRequest struct {
	ParentID           *uuid.UUID
	Name               string
	Nature             string
	AccountType        *string
	CostCenterRequired bool
	CreatedBy          *uuid.UUID
}

// UpdateAccountRequest carries the fields present in an update.
// A nil pointer means the field was absent. AccountTypeSet distinguishes an
// explicit null account type, which clears it, from an absent one.
type UpdateAccountRequest struct {
	Name               *string
	CostCenterRequired *bool
	AccountType        *string
	AccountTypeSet     bool
	UpdatedBy          *uuid.UUID
}

// HasFields reports whether any updatable field is present
func (r UpdateAccountRequest) HasFields() bool {
	return r.Name != nil || r.CostCenterRequired != nil || r.AccountTypeSet
}

// TreeQuery selects a page of root accounts
type TreeQuery struct {
	Page     int
	PageSize int
}

// AccountResponse represents an account in API responses
type AccountResponse struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Code               string     `json:"code"`
	ParentID           *uuid.UUID `json:"parent_id"`
	Nature             string     `json:"nature"`
	AccountType        *string    `json:"account_type"`
	CostCenterRequired bool       `json:"cc_required"`
	CreatedBy          *uuid.UUID `json:"created_by,omitempty"`
	UpdatedBy          *uuid.UUID `json:"updated_by,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
	Version            int        `json:"version"`
}

// AccountNode is an account with its descendants, without balances
type AccountNode struct {
	AccountResponse
	Children []*AccountNode `json:"children"`
}

// AccountRollupNode is an account with its descendants and journal rollups.
// DebitAmount and CreditAmount cover the whole subtree.
type AccountRollupNode struct {
	AccountResponse
	OwnDebit     decimal.Decimal      `json:"own_debit"`
	OwnCredit    decimal.Decimal      `json:"own_credit"`
	DebitAmount  decimal.Decimal      `json:"debit_amount"`
	CreditAmount decimal.Decimal      `json:"credit_amount"`
	Children     []*AccountRollupNode `json:"children"`
}

// AccountSnapshot is the cached chart of accounts. It carries no journal
// totals, which are read on every request. Generation is the cache generation
// observed before the accounts were loaded.
type AccountSnapshot struct {
	Accounts    []AccountResponse `json:"accounts"`
	Generation  int64             `json:"generation"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// NewAccountSnapshot captures accounts as seen at the given cache generation
func NewAccountSnapshot(accounts []ledger.Account, generation int64) *AccountSnapshot {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return &AccountSnapshot{
		Accounts:    out,
		Generation:  generation,
		GeneratedAt: time.Now(),
	}
}

// DomainAccounts rebuilds the domain accounts held by the snapshot
func (s *AccountSnapshot) DomainAccounts() []ledger.Account {
	out := make([]ledger.Account, 0, len(s.Accounts))
	for _, r := range s.Accounts {
		var account ledger.Account
		account.ID = r.ID
		account.CreatedAt = r.CreatedAt
		account.UpdatedAt = r.UpdatedAt
		account.Version = r.Version
		account.CreatedBy = r.CreatedBy
		account.UpdatedBy = r.UpdatedBy
		account.Name = r.Name
		account.Code = r.Code
		account.ParentID = r.ParentID
		account.Nature = ledger.Nature(r.Nature)
		if r.AccountType != nil {
			account.AccountType = ledger.AccountType(*r.AccountType)
		}
		account.CostCenterRequired = r.CostCenterRequired
		out = append(out, account)
	}
	return out
}

// TreeResponse is a page of root accounts with grand totals over the whole forest
type TreeResponse struct {
	Roots            []*AccountRollupNode `json:"roots"`
	GrandTotalDebit  decimal.Decimal      `json:"grand_total_debit"`
	GrandTotalCredit decimal.Decimal      `json:"grand_total_credit"`
	Total            int64                `json:"-"`
	Page             int                  `json:"-"`
	PageSize         int                  `json:"-"`
}

// UpdateAccountResult reports the outcome of an update
type UpdateAccountResult struct {
	Message       string           `json:"message"`
	ChangedFields []string         `json:"changed_fields"`
	Account       *AccountResponse `json:"account,omitempty"`
}

// AccountBalanceResponse is an account with its own and subtree totals and signed balance
type AccountBalanceResponse struct {
	AccountResponse
	OwnDebit     decimal.Decimal `json:"own_debit"`
	OwnCredit    decimal.Decimal `json:"own_credit"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
	Balance      decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain Account to AccountResponse
func ToAccountResponse(a *ledger.Account) AccountResponse {
	return AccountResponse{
		ID:                 a.ID,
		Name:               a.Name,
		Code:               a.Code,
		ParentID:           a.ParentID,
		Nature:             a.Nature.String(),
		AccountType:        a.AccountType.Ptr(),
		CostCenterRequired: a.CostCenterRequired,
		CreatedBy:          a.CreatedBy,
		UpdatedBy:          a.UpdatedBy,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
		Version:            a.Version,
	}
}

// toAccountNodes converts a forest into response nodes without recursion
func toAccountNodes(roots []*ledger.Node) []*AccountNode {
	out := make([]*AccountNode, 0, len(roots))
	byID := make(map[uuid.UUID]*AccountNode)
	ledger.Walk(roots, func(n *ledger.Node) {
		node := &AccountNode{
			AccountResponse: ToAccountResponse(n.Account),
			Children:        make([]*AccountNode, 0, len(n.Children)),
		}
		parent := parentNode(byID, n)
		byID[n.Account.ID] = node
		if parent != nil {
			parent.Children = append(parent.Children, node)
			return
		}
		out = append(out, node)
	})
	return out
}

// toRollupNodes converts an aggregated forest into response nodes without recursion
func toRollupNodes(roots []*ledger.Node) []*AccountRollupNode {
	out := make([]*AccountRollupNode, 0, len(roots))
	byID := make(map[uuid.UUID]*AccountRollupNode)
	ledger.Walk(roots, func(n *ledger.Node) {
		node := &AccountRollupNode{
			AccountResponse: ToAccountResponse(n.Account),
			OwnDebit:        n.Own.Debit,
			OwnCredit:       n.Own.Credit,
			DebitAmount:     n.Subtree.Debit,
			CreditAmount:    n.Subtree.Credit,
			Children:        make([]*AccountRollupNode, 0, len(n.Children)),
		}
		parent := parentNode(byID, n)
		byID[n.Account.ID] = node
		if parent != nil {
			parent.Children = append(parent.Children, node)
			return
		}
		out = append(out, node)
	})
	return out
}

func parentNode[T any](byID map[uuid.UUID]*T, n *ledger.Node) *T {
	if n.Account.ParentID == nil {
		return nil
	}
	return byID[*n.Account.ParentID]
}
