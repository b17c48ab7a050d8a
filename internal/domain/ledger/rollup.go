package ledger

import (
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Totals is a pair of debit and credit sums
type Totals struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

// Add returns the component-wise sum of t and o
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Debit:  t.Debit.Add(o.Debit),
		Credit: t.Credit.Add(o.Credit),
	}
}

// BalanceFor returns the signed balance seen from an account of nature n.
// Credit accounts grow with credits; debit and dual accounts grow with debits.
func (t Totals) BalanceFor(n Nature) decimal.Decimal {
	if n == NatureCredit {
		return t.Credit.Sub(t.Debit)
	}
	return t.Debit.Sub(t.Credit)
}

// Node is an account placed in the tree together with its rollups
type Node struct {
	Account  *Account
	Children []*Node
	// Own sums the journal amounts posted directly against the account.
	Own Totals
	// Subtree is Own plus the Subtree totals of every child.
	Subtree Totals
}

// BuildForest arranges accounts into trees ordered by code.
// An account whose parent is not part of the input becomes a tree root.
func BuildForest(accounts []Account) []*Node {
	sorted := make([]*Account, len(accounts))
	for i := range accounts {
		sorted[i] = &accounts[i]
	}
	slices.SortFunc(sorted, func(a, b *Account) int {
		return strings.Compare(a.Code, b.Code)
	})

	nodes := make(map[uuid.UUID]*Node, len(sorted))
	for _, a := range sorted {
		nodes[a.ID] = &Node{Account: a}
	}

	roots := make([]*Node, 0)
	for _, a := range sorted {
		node := nodes[a.ID]
		if a.ParentID != nil {
			if parent, ok := nodes[*a.ParentID]; ok && parent != node {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// Aggregate computes Own and Subtree totals for every node reachable from roots
// and returns the grand total across roots. Own totals are looked up by exact
// account name. Traversal uses an explicit stack, so tree depth is bounded only
// by memory, and each child is finished before its parent sums it.
func Aggregate(roots []*Node, byName map[string]Totals) Totals {
	type frame struct {
		node     *Node
		expanded bool
	}

	stack := make([]frame, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{node: roots[i]})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if !top.expanded {
			stack[len(stack)-1].expanded = true
			for i := len(top.node.Children) - 1; i >= 0; i-- {
				stack = append(stack, frame{node: top.node.Children[i]})
			}
			continue
		}
		stack = stack[:len(stack)-1]

		n := top.node
		n.Own = byName[n.Account.Name]
		n.Subtree = n.Own
		for _, child := range n.Children {
			n.Subtree = n.Subtree.Add(child.Subtree)
		}
	}

	var grand Totals
	for _, r := range roots {
		grand = grand.Add(r.Subtree)
	}
	return grand
}

// Walk visits every node reachable from roots, parents before children
func Walk(roots []*Node, visit func(*Node)) {
	stack := make([]*Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
