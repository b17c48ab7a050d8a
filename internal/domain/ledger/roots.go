package ledger

import "strings"

// Names of the four fixed top-level accounts
const (
	RootAssets          = "Assets"
	RootLiabilityEquity = "Liability & Equity"
	RootExpenses        = "Expenses"
	RootRevenue         = "Revenue"
)

// RootCount is the number of root accounts that always exist
const RootCount = 4

// RootPolicy is the canonical configuration of a root account and the
// constraints it imposes on every descendant.
type RootPolicy struct {
	Name string
	// Nature is the root's own nature and the default for descendants.
	Nature Nature
	// NatureForced rejects any descendant nature other than Nature.
	NatureForced bool
	// AccountType is forced on every descendant.
	AccountType AccountType
	// CostCenterByDefault makes descendants require a cost center unless exempted by name.
	CostCenterByDefault bool
}

// rootPolicies is ordered by bootstrap order, which assigns codes 1000..4000 on an empty store.
var rootPolicies = []RootPolicy{
	{Name: RootAssets, Nature: NatureDebit, NatureForced: true, AccountType: AccountTypeBalanceSheet},
	{Name: RootLiabilityEquity, Nature: NatureCredit, NatureForced: true, AccountType: AccountTypeBalanceSheet},
	{Name: RootExpenses, Nature: NatureDebit, AccountType: AccountTypeProfitLoss, CostCenterByDefault: true},
	{Name: RootRevenue, Nature: NatureCredit, AccountType: AccountTypeProfitLoss},
}

// RootPolicies returns the root table in bootstrap order
func RootPolicies() []RootPolicy {
	out := make([]RootPolicy, len(rootPolicies))
	copy(out, rootPolicies)
	return out
}

// PolicyForRoot returns the policy of the named root, matching case-insensitively
func PolicyForRoot(name string) (RootPolicy, bool) {
	for _, p := range rootPolicies {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return RootPolicy{}, false
}

// IsRootName reports whether name is one of the fixed root names
func IsRootName(name string) bool {
	_, ok := PolicyForRoot(name)
	return ok
}

// AllowsAccountType reports whether descendants of this root may carry t
func (p RootPolicy) AllowsAccountType(t AccountType) bool {
	return !t.IsSet() || t == p.AccountType
}

// Conforms reports whether a root account already carries the canonical name and settings
func (p RootPolicy) Conforms(a *Account) bool {
	return a.Name == p.Name && a.Nature == p.Nature && a.AccountType == p.AccountType && !a.CostCenterRequired
}
