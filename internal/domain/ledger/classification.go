package ledger

import (
	"strings"

	"github.com/erp/ledger/internal/domain/shared"
)

// Nature is the side of a journal line an account settles on
type Nature string

const (
	NatureDebit  Nature = "debit"
	NatureCredit Nature = "credit"
	NatureBoth   Nature = "both"
)

// IsValid reports whether n is a known nature
func (n Nature) IsValid() bool {
	switch n {
	case NatureDebit, NatureCredit, NatureBoth:
		return true
	}
	return false
}

// String returns the string representation
func (n Nature) String() string {
	return string(n)
}

// AccountType is the financial-statement classification of an account.
// The zero value means the account is unclassified.
type AccountType string

const (
	AccountTypeNone         AccountType = ""
	AccountTypeBalanceSheet AccountType = "balance_sheet"
	AccountTypeProfitLoss   AccountType = "p&l"
)

// IsValid reports whether t is a known account type, including none
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeNone, AccountTypeBalanceSheet, AccountTypeProfitLoss:
		return true
	}
	return false
}

// IsSet reports whether the account type is classified
func (t AccountType) IsSet() bool {
	return t != AccountTypeNone
}

// String returns the string representation
func (t AccountType) String() string {
	return string(t)
}

// Ptr returns nil for an unclassified type, otherwise a pointer to its value
func (t AccountType) Ptr() *string {
	if !t.IsSet() {
		return nil
	}
	s := string(t)
	return &s
}

// ParseNature normalizes raw input. An empty value means unspecified.
func ParseNature(raw string) (Nature, error) {
	n := Nature(strings.ToLower(strings.TrimSpace(raw)))
	if n == "" {
		return "", nil
	}
	if !n.IsValid() {
		return "", shared.NewDomainError(CodeValidation, "Nature should be debit, credit or both")
	}
	return n, nil
}

// ParseAccountType normalizes raw input. Nil and empty values mean unclassified.
func ParseAccountType(raw *string) (AccountType, error) {
	if raw == nil {
		return AccountTypeNone, nil
	}
	t := AccountType(strings.ToLower(strings.TrimSpace(*raw)))
	if !t.IsValid() {
		return "", shared.NewDomainError(CodeValidation, "Account type must be 'balance_sheet' or 'p&l'")
	}
	return t, nil
}
