package accounting

import (
	"sort"

	"github.com/corefin/corefin/internal/core/domain"
)

// AccountNode is one node of the account forest.
type AccountNode struct {
	Account  domain.Account `json:"account"`
	Children []*AccountNode `json:"children,omitempty"`
}

// HierarchyIndex gives O(depth) traversal over an account list: an
// id -> account map and an id -> children adjacency list, both built once.
type HierarchyIndex struct {
	byID     map[string]domain.Account
	children map[string][]string
	order    []string // account ids in input order, for deterministic output
}

// NewHierarchyIndex builds the index from a flat account list.
func NewHierarchyIndex(accounts []domain.Account) *HierarchyIndex {
	idx := &HierarchyIndex{
		byID:     make(map[string]domain.Account, len(accounts)),
		children: make(map[string][]string),
		order:    make([]string, 0, len(accounts)),
	}
	for _, a := range accounts {
		idx.byID[a.AccountID] = a
		idx.order = append(idx.order, a.AccountID)
	}
	for _, a := range accounts {
		if a.ParentAccountID == "" {
			continue
		}
		idx.children[a.ParentAccountID] = append(idx.children[a.ParentAccountID], a.AccountID)
	}
	return idx
}

// Account returns the account for id, if present.
func (idx *HierarchyIndex) Account(id string) (domain.Account, bool) {
	a, ok := idx.byID[id]
	return a, ok
}

// Tree builds the account forest: roots are accounts without a parent (or
// whose parent is missing from the list), children are attached recursively
// and sorted by account number. A visited set guards against cycles in
// malformed data.
func (idx *HierarchyIndex) Tree() []*AccountNode {
	visited := make(map[string]bool, len(idx.byID))
	var roots []*AccountNode
	for _, id := range idx.order {
		a := idx.byID[id]
		if a.ParentAccountID != "" {
			if _, parentExists := idx.byID[a.ParentAccountID]; parentExists {
				continue
			}
		}
		roots = append(roots, idx.subtree(id, visited))
	}
	sortNodes(roots)
	return roots
}

func (idx *HierarchyIndex) subtree(id string, visited map[string]bool) *AccountNode {
	visited[id] = true
	node := &AccountNode{Account: idx.byID[id]}
	for _, childID := range idx.children[id] {
		if visited[childID] {
			continue
		}
		node.Children = append(node.Children, idx.subtree(childID, visited))
	}
	sortNodes(node.Children)
	return node
}

func sortNodes(nodes []*AccountNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Account.AccountNumber < nodes[j].Account.AccountNumber
	})
}

// FlattenTree is the inverse of Tree: a depth-first traversal back to a flat
// account list.
func FlattenTree(nodes []*AccountNode) []domain.Account {
	var out []domain.Account
	var walk func(n *AccountNode)
	walk = func(n *AccountNode) {
		out = append(out, n.Account)
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return out
}

// Ancestors walks the parent chain from id upward (nearest parent first).
// The walk stops at a missing parent or on revisiting an id.
func (idx *HierarchyIndex) Ancestors(id string) []domain.Account {
	var out []domain.Account
	visited := map[string]bool{id: true}
	current, ok := idx.byID[id]
	if !ok {
		return nil
	}
	for current.ParentAccountID != "" {
		parent, ok := idx.byID[current.ParentAccountID]
		if !ok || visited[parent.AccountID] {
			break
		}
		visited[parent.AccountID] = true
		out = append(out, parent)
		current = parent
	}
	return out
}

// Descendants returns every account below id, depth-first.
func (idx *HierarchyIndex) Descendants(id string) []domain.Account {
	var out []domain.Account
	visited := map[string]bool{id: true}
	var walk func(parent string)
	walk = func(parent string) {
		for _, childID := range idx.children[parent] {
			if visited[childID] {
				continue
			}
			visited[childID] = true
			out = append(out, idx.byID[childID])
			walk(childID)
		}
	}
	walk(id)
	return out
}

// Depth returns the number of ancestors above id; a root has depth 0.
func (idx *HierarchyIndex) Depth(id string) int {
	return len(idx.Ancestors(id))
}

// Siblings returns the other accounts sharing id's parent. For roots, the
// other root accounts.
func (idx *HierarchyIndex) Siblings(id string) []domain.Account {
	a, ok := idx.byID[id]
	if !ok {
		return nil
	}
	var out []domain.Account
	if a.ParentAccountID == "" {
		for _, otherID := range idx.order {
			other := idx.byID[otherID]
			if other.AccountID != id && other.ParentAccountID == "" {
				out = append(out, other)
			}
		}
		return out
	}
	for _, siblingID := range idx.children[a.ParentAccountID] {
		if siblingID != id {
			out = append(out, idx.byID[siblingID])
		}
	}
	return out
}

// RootAncestor returns the topmost ancestor of id (id's own account when it
// is a root).
func (idx *HierarchyIndex) RootAncestor(id string) (domain.Account, bool) {
	a, ok := idx.byID[id]
	if !ok {
		return domain.Account{}, false
	}
	ancestors := idx.Ancestors(id)
	if len(ancestors) == 0 {
		return a, true
	}
	return ancestors[len(ancestors)-1], true
}

// ValidateHierarchy runs two independent passes over all accounts and
// accumulates every violation instead of stopping at the first:
//  1. parent existence and parent/child account-type agreement,
//  2. cycle detection over the parent chains.
//
// A cycle is reported exactly once, no matter how many of its members the
// outer loop visits.
func ValidateHierarchy(accounts []domain.Account) []error {
	idx := NewHierarchyIndex(accounts)
	var errs []error

	for _, a := range accounts {
		if a.ParentAccountID == "" {
			continue
		}
		parent, ok := idx.byID[a.ParentAccountID]
		if !ok {
			errs = append(errs, &domain.ParentAccountNotFoundError{
				AccountID:       a.AccountID,
				ParentAccountID: a.ParentAccountID,
			})
			continue
		}
		if parent.AccountType != a.AccountType {
			errs = append(errs, &domain.AccountTypeMismatchError{
				AccountID:  a.AccountID,
				ParentID:   parent.AccountID,
				ChildType:  a.AccountType,
				ParentType: parent.AccountType,
			})
		}
	}

	reported := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		if reported[a.AccountID] {
			continue
		}
		visited := make(map[string]bool)
		chain := []string{a.AccountID}
		visited[a.AccountID] = true
		current := a
		for current.ParentAccountID != "" {
			parent, ok := idx.byID[current.ParentAccountID]
			if !ok {
				break
			}
			chain = append(chain, parent.AccountID)
			if visited[parent.AccountID] {
				errs = append(errs, &domain.CircularReferenceError{
					AccountID: a.AccountID,
					Chain:     chain,
				})
				// Every member of the walk is marked so the same cycle is
				// not reported again from another entry point.
				for _, id := range chain {
					reported[id] = true
				}
				break
			}
			visited[parent.AccountID] = true
			current = parent
		}
	}

	return errs
}
