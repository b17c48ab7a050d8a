package ledger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/erp/ledger/internal/domain/shared"
)

const (
	// RootCodeStep separates consecutive root codes
	RootCodeStep = 1000
	// SuffixWidth is the number of digits each level appends to its parent's code
	SuffixWidth = 3
	// MaxSiblingSuffix is the largest suffix a child can receive
	MaxSiblingSuffix = 999
)

// NextRootCode returns the code for a new root given the highest existing root code.
// An empty lastRootCode yields the first root code.
func NextRootCode(lastRootCode string) (string, error) {
	if lastRootCode == "" {
		return strconv.Itoa(RootCodeStep), nil
	}
	n, err := strconv.Atoi(lastRootCode)
	if err != nil || n < 0 {
		return "", invalidCodeError(lastRootCode)
	}
	return strconv.Itoa((n/RootCodeStep + 1) * RootCodeStep), nil
}

// NextChildCode returns the code for a new child of parentCode given the highest
// existing sibling code under that parent. An empty lastSiblingCode yields the
// first child code.
//
// Children of a root code (four digits ending in 000) keep the root's leading
// digit followed by a three digit suffix: 1000 -> 1001, 1002. Every other parent
// appends a three digit suffix to its own code: 1001 -> 1001001.
func NextChildCode(parentCode, lastSiblingCode string) (string, error) {
	if parentCode == "" {
		return "", invalidCodeError(parentCode)
	}

	suffix := 1
	if lastSiblingCode != "" {
		last, err := siblingSuffix(lastSiblingCode)
		if err != nil {
			return "", err
		}
		suffix = last + 1
	}
	if suffix > MaxSiblingSuffix {
		return "", shared.NewDomainError(CodeCodeSpaceExhausted,
			fmt.Sprintf("Account %s already has %d children, no codes left", parentCode, MaxSiblingSuffix))
	}

	prefix := parentCode
	if IsRootCode(parentCode) {
		prefix = parentCode[:1]
	}
	return fmt.Sprintf("%s%0*d", prefix, SuffixWidth, suffix), nil
}

// NextCode dispatches to NextRootCode or NextChildCode depending on parent
func NextCode(parent *Account, lastSiblingCode string) (string, error) {
	if parent == nil {
		return NextRootCode(lastSiblingCode)
	}
	return NextChildCode(parent.Code, lastSiblingCode)
}

// IsRootCode reports whether code has the shape of a root code
func IsRootCode(code string) bool {
	return len(code) == 4 && strings.HasSuffix(code, "000") && isDigits(code)
}

// IsDescendantCode reports whether child is structurally nested under parent
func IsDescendantCode(parent, child string) bool {
	if IsRootCode(parent) {
		return child != parent && len(child) >= len(parent) && child[0] == parent[0]
	}
	return len(child) > len(parent) && strings.HasPrefix(child, parent)
}

func siblingSuffix(code string) (int, error) {
	if len(code) < SuffixWidth || !isDigits(code) {
		return 0, invalidCodeError(code)
	}
	n, err := strconv.Atoi(code[len(code)-SuffixWidth:])
	if err != nil {
		return 0, invalidCodeError(code)
	}
	return n, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func invalidCodeError(code string) error {
	return shared.NewDomainError(CodeInvalidCode, fmt.Sprintf("Stored account code [%s] is not numeric", code))
}
