package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/erp/ledger/internal/domain/shared"
	"github.com/google/uuid"
)

// MaxNameLength is the maximum length of an account name in characters
const MaxNameLength = 255

// Labels reported for changed fields on update
const (
	FieldName               = "name"
	FieldNature             = "nature"
	FieldCostCenterRequired = "cost center requirement"
	FieldAccountType        = "account type"
)

// Account is a node in the chart of accounts.
// Roots have no parent; every other account inherits its constraints from its root ancestor.
type Account struct {
	shared.AuditedAggregateRoot
	Name               string
	Code               string
	ParentID           *uuid.UUID
	Nature             Nature
	AccountType        AccountType
	CostCenterRequired bool
}

// Attributes are the resolved classification values of a new account
type Attributes struct {
	Nature             Nature
	AccountType        AccountType
	CostCenterRequired bool
}

// NewRootAccount creates a root account carrying the canonical settings of policy
func NewRootAccount(policy RootPolicy, code string) *Account {
	account := &Account{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(nil),
		Name:                 policy.Name,
		Code:                 code,
		Nature:               policy.Nature,
		AccountType:          policy.AccountType,
	}
	account.AddDomainEvent(NewAccountCreatedEvent(account))
	return account
}

// NewAccount creates a non-root account under parent
func NewAccount(parent *Account, name, code string, attrs Attributes, createdBy *uuid.UUID) (*Account, error) {
	if parent == nil {
		return nil, NewValidationError("Cannot create new root accounts. Only use the 4 standard root accounts.")
	}
	name, err := NormalizeName(name)
	if err != nil {
		return nil, err
	}
	if !attrs.Nature.IsValid() {
		return nil, NewValidationError("Nature should be debit, credit or both")
	}
	if !attrs.AccountType.IsValid() {
		return nil, NewValidationError("Account type must be 'balance_sheet' or 'p&l'")
	}
	if !IsDescendantCode(parent.Code, code) {
		return nil, invalidCodeError(code)
	}

	parentID := parent.ID
	account := &Account{
		AuditedAggregateRoot: shared.NewAuditedAggregateRoot(createdBy),
		Name:                 name,
		Code:                 code,
		ParentID:             &parentID,
		Nature:               attrs.Nature,
		AccountType:          attrs.AccountType,
		CostCenterRequired:   attrs.CostCenterRequired,
	}
	account.AddDomainEvent(NewAccountCreatedEvent(account))
	return account, nil
}

// NormalizeName trims name and validates its length
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", NewValidationError("Account name cannot be empty")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return "", NewValidationError("Account name cannot exceed 255 characters")
	}
	return name, nil
}

// IsRoot returns true if this is a root account
func (a *Account) IsRoot() bool {
	return a.ParentID == nil
}

// SameName reports whether name equals the account's name ignoring case
func (a *Account) SameName(name string) bool {
	return strings.EqualFold(a.Name, name)
}

// Canonicalize rewrites a root's settings to match policy.
// It returns the labels of the fields that changed.
func (a *Account) Canonicalize(policy RootPolicy) []string {
	var changes ChangeSet
	if a.Name != policy.Name {
		changes.SetName(policy.Name)
	}
	if a.Nature != policy.Nature {
		nature := policy.Nature
		changes.nature = &nature
	}
	if a.CostCenterRequired {
		changes.SetCostCenterRequired(false)
	}
	if a.AccountType != policy.AccountType {
		changes.SetAccountType(policy.AccountType)
	}
	return a.Apply(changes, nil)
}

// Apply writes a validated change set to the account.
// It returns the labels of the changed fields; an empty change set is a no-op.
func (a *Account) Apply(changes ChangeSet, updatedBy *uuid.UUID) []string {
	if changes.IsEmpty() {
		return nil
	}
	if changes.name != nil {
		a.Name = *changes.name
	}
	if changes.nature != nil {
		a.Nature = *changes.nature
	}
	if changes.costCenterRequired != nil {
		a.CostCenterRequired = *changes.costCenterRequired
	}
	if changes.accountType != nil {
		a.AccountType = *changes.accountType
	}
	a.Touch(updatedBy)

	fields := changes.Fields()
	a.AddDomainEvent(NewAccountUpdatedEvent(a, fields))
	return fields
}

// MarkDeleted records the deletion of the account
func (a *Account) MarkDeleted() {
	a.AddDomainEvent(NewAccountDeletedEvent(a))
}

// ChangeSet collects field changes that passed validation and guard checks
type ChangeSet struct {
	name               *string
	nature             *Nature
	costCenterRequired *bool
	accountType        *AccountType
}

// SetName stages a rename
func (c *ChangeSet) SetName(name string) {
	c.name = &name
}

// SetCostCenterRequired stages a cost-center requirement change
func (c *ChangeSet) SetCostCenterRequired(required bool) {
	c.costCenterRequired = &required
}

// SetAccountType stages an account type change; AccountTypeNone clears it
func (c *ChangeSet) SetAccountType(t AccountType) {
	c.accountType = &t
}

// IsEmpty reports whether nothing was staged
func (c ChangeSet) IsEmpty() bool {
	return c.name == nil && c.nature == nil && c.costCenterRequired == nil && c.accountType == nil
}

// Fields returns the labels of staged changes in a stable order
func (c ChangeSet) Fields() []string {
	fields := make([]string, 0, 4)
	if c.name != nil {
		fields = append(fields, FieldName)
	}
	if c.nature != nil {
		fields = append(fields, FieldNature)
	}
	if c.costCenterRequired != nil {
		fields = append(fields, FieldCostCenterRequired)
	}
	if c.accountType != nil {
		fields = append(fields, FieldAccountType)
	}
	return fields
}
