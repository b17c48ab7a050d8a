package ledger

import (
	"fmt"
	"strings"
)

// Name fragments that drive cost-center defaults. Matching is a case-insensitive substring match.
var (
	costCenterExemptNames   = []string{"depreciation", "bank charges"}
	costCenterMandatedNames = []string{"cost of goods sold", "rebate"}
)

// CreationInput is the caller's request for a new account after parsing.
// Empty Nature and AccountType mean unspecified.
type CreationInput struct {
	Name               string
	Nature             Nature
	AccountType        AccountType
	CostCenterRequired bool
}

// ResolveAttributes applies the root policy of root to a creation request.
// Forced values replace unspecified ones; conflicting explicit values are rejected.
func ResolveAttributes(root *Account, in CreationInput) (Attributes, error) {
	policy, err := policyOf(root)
	if err != nil {
		return Attributes{}, err
	}

	nature := in.Nature
	switch {
	case policy.NatureForced && nature != "" && nature != policy.Nature:
		return Attributes{}, NewValidationError(
			fmt.Sprintf("Accounts under %s must have '%s' nature", policy.Name, policy.Nature))
	case policy.NatureForced || nature == "":
		nature = policy.Nature
	}

	if in.AccountType.IsSet() && in.AccountType != policy.AccountType {
		return Attributes{}, NewValidationError(
			fmt.Sprintf("Accounts under %s must have '%s' account type", policy.Name, policy.AccountType))
	}

	required := in.CostCenterRequired
	if !required {
		required = DefaultCostCenterRequired(policy, in.Name)
	}

	return Attributes{
		Nature:             nature,
		AccountType:        policy.AccountType,
		CostCenterRequired: required,
	}, nil
}

// DefaultCostCenterRequired returns the cost-center requirement an account gets
// when the caller did not ask for one.
func DefaultCostCenterRequired(policy RootPolicy, name string) bool {
	if policy.CostCenterByDefault && !containsAny(name, costCenterExemptNames) {
		return true
	}
	return MandatesCostCenter(name)
}

// MandatesCostCenter reports whether name always requires a cost center
func MandatesCostCenter(name string) bool {
	return containsAny(name, costCenterMandatedNames)
}

// ValidateAccountTypeChange checks that t is allowed under root.
// Clearing the type is always allowed.
func ValidateAccountTypeChange(root *Account, t AccountType) error {
	if !t.IsSet() {
		return nil
	}
	policy, err := policyOf(root)
	if err != nil {
		return err
	}
	if policy.AllowsAccountType(t) {
		return nil
	}

	switch t {
	case AccountTypeBalanceSheet:
		return NewValidationError(fmt.Sprintf(
			"Cannot set account type to 'balance_sheet' for accounts under '%s'. Only accounts under '%s' or '%s' can be balance sheet accounts.",
			policy.Name, RootAssets, RootLiabilityEquity))
	default:
		return NewValidationError(fmt.Sprintf(
			"Cannot set account type to 'p&l' for accounts under '%s'. Only accounts under '%s' or '%s' can be P&L accounts.",
			policy.Name, RootRevenue, RootExpenses))
	}
}

func policyOf(root *Account) (RootPolicy, error) {
	if root == nil || !root.IsRoot() {
		return RootPolicy{}, NewValidationError("Account is not attached to a root account")
	}
	policy, ok := PolicyForRoot(root.Name)
	if !ok {
		return RootPolicy{}, NewValidationError(fmt.Sprintf("Unknown root account [%s]", root.Name))
	}
	return policy, nil
}

func containsAny(name string, fragments []string) bool {
	lower := strings.ToLower(name)
	for _, f := range fragments {
		if strings.Contains(lower, f) {
			return true
		}
	}
	return false
}
