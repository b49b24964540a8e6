package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryKind classifies a node of the category tree. Leaves carry a flow
// type (income or expense); groups only aggregate their children.
type CategoryKind string

const (
	CategoryIncome  CategoryKind = "income"
	CategoryExpense CategoryKind = "expense"
	CategoryGroup   CategoryKind = "group"
)

// IsLeaf reports whether categories of this kind may be referenced by
// transactions directly.
func (k CategoryKind) IsLeaf() bool {
	return k == CategoryIncome || k == CategoryExpense
}

// Category is a node in the hierarchical classification tree used to tag
// transactions and budget items.
type Category struct {
	ID          string
	WorkspaceID string
	Name        string
	Kind        CategoryKind
	ParentID    *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryNode is a category plus its aggregated transaction total. For a
// leaf the total is the category's own sum; for a group it is the sum of its
// children.
type CategoryNode struct {
	Category Category
	Total    decimal.Decimal
	Children []*CategoryNode
}

// CategoryTree is an arena of nodes indexed by id and by parent id. It is
// built once per request from a flat category list; aggregation walks the
// parent-id indices instead of a live object graph.
type CategoryTree struct {
	nodes    map[string]*CategoryNode
	children map[string][]string
	roots    []string
}

// BuildCategoryTree indexes a flat category slice into a tree. Categories
// whose parent is absent from the slice are treated as roots. Input order is
// preserved for siblings.
func BuildCategoryTree(categories []Category) *CategoryTree {
	t := &CategoryTree{
		nodes:    make(map[string]*CategoryNode, len(categories)),
		children: make(map[string][]string),
	}

	for _, c := range categories {
		t.nodes[c.ID] = &CategoryNode{Category: c, Total: decimal.Zero}
	}

	for _, c := range categories {
		if c.ParentID != nil {
			if _, ok := t.nodes[*c.ParentID]; ok {
				t.children[*c.ParentID] = append(t.children[*c.ParentID], c.ID)
				continue
			}
		}
		t.roots = append(t.roots, c.ID)
	}

	return t
}

// Node returns the node for a category id, or nil.
func (t *CategoryTree) Node(id string) *CategoryNode {
	return t.nodes[id]
}

// Roots returns the root nodes in input order.
func (t *CategoryTree) Roots() []*CategoryNode {
	roots := make([]*CategoryNode, 0, len(t.roots))
	for _, id := range t.roots {
		roots = append(roots, t.nodes[id])
	}

	return roots
}

// IsDescendant reports whether candidate lies in the subtree rooted at id.
func (t *CategoryTree) IsDescendant(id, candidate string) bool {
	for _, childID := range t.children[id] {
		if childID == candidate || t.IsDescendant(childID, candidate) {
			return true
		}
	}

	return false
}

// Aggregate assigns each leaf its sum from leafTotals and rolls sums up into
// group nodes, so that a group's total equals the sum of its children. The
// walk is an iterative post-order pass over the children index. It also links
// Children pointers so the result can be serialized as a tree.
func (t *CategoryTree) Aggregate(leafTotals map[string]decimal.Decimal) {
	for id, node := range t.nodes {
		node.Total = decimal.Zero
		node.Children = nil
		if node.Category.Kind.IsLeaf() {
			if sum, ok := leafTotals[id]; ok {
				node.Total = sum
			}
		}
	}

	// Post-order: push a node, process it after all children were processed.
	type frame struct {
		id       string
		expanded bool
	}

	stack := make([]frame, 0, len(t.nodes))
	for i := len(t.roots) - 1; i >= 0; i-- {
		stack = append(stack, frame{id: t.roots[i]})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !f.expanded {
			stack = append(stack, frame{id: f.id, expanded: true})
			for i := len(t.children[f.id]) - 1; i >= 0; i-- {
				stack = append(stack, frame{id: t.children[f.id][i]})
			}
			continue
		}

		node := t.nodes[f.id]
		for _, childID := range t.children[f.id] {
			child := t.nodes[childID]
			node.Children = append(node.Children, child)
			node.Total = node.Total.Add(child.Total)
		}
	}
}
