package filter

import (
	"fmt"

	"github.com/seralin/musekiosk/internal/models"
)

// Construction limits. The kiosk UI only nests on explicit user action, so
// anything past these is a runaway builder, not a real filter.
const (
	MaxDepth = 50
	MaxNodes = 512
)

// Group pools predicates of all kinds into one ordered list reduced by a
// single operator. Kinds are pooled deliberately: the operator applies
// across the whole list, never kind-by-kind.
type Group struct {
	Operator   models.Operator
	Predicates []models.Predicate
}

// Node is one level of the filter tree: an optional group of its own
// predicates plus owned child nodes. Operator combines the child results
// with each other; the group result, when present, is always ANDed with
// the combined children.
type Node struct {
	Operator models.Operator
	Group    *Group
	Children []*Node
}

// Tree is a filter tree scoped to one content type. It is rebuilt wholesale
// on each edit and discarded when the content type changes.
type Tree struct {
	Type models.ContentType
	Root *Node
}

// NewTree creates an empty tree for a content type. An empty tree matches
// every record.
func NewTree(ct models.ContentType) (*Tree, error) {
	if !ct.IsValid() {
		return nil, fmt.Errorf("invalid content type %q", ct)
	}
	return &Tree{
		Type: ct,
		Root: &Node{Operator: models.OpAnd},
	}, nil
}

// AddPredicate appends a predicate to the node's group, creating the group
// with an AND operator if the node has none. A predicate whose field is not
// declared for the tree's content type is a builder bug and is rejected.
func (t *Tree) AddPredicate(n *Node, p models.Predicate) error {
	if _, ok := models.FieldKindOf(t.Type, p.Field); !ok {
		return fmt.Errorf("field %q is not declared for content type %s", p.Field, t.Type)
	}
	if n.Group == nil {
		n.Group = &Group{Operator: models.OpAnd}
	}
	n.Group.Predicates = append(n.Group.Predicates, p)
	return nil
}

// RemovePredicate removes the i-th predicate from the node's group. When
// the last predicate goes, the group itself is dropped so the node returns
// to its pass-through state.
func (n *Node) RemovePredicate(i int) {
	if n.Group == nil || i < 0 || i >= len(n.Group.Predicates) {
		return
	}
	n.Group.Predicates = append(n.Group.Predicates[:i], n.Group.Predicates[i+1:]...)
	if len(n.Group.Predicates) == 0 {
		n.Group = nil
	}
}

// AddChild appends a new empty child node under parent. It enforces the
// depth and node budget so a looping builder cannot grow the tree without
// bound.
func (t *Tree) AddChild(parent *Node) (*Node, error) {
	depth, ok := t.depthOf(parent)
	if !ok {
		return nil, fmt.Errorf("node is not part of this tree")
	}
	if depth+1 >= MaxDepth {
		return nil, fmt.Errorf("filter tree depth limit (%d) exceeded", MaxDepth)
	}
	if t.NodeCount() >= MaxNodes {
		return nil, fmt.Errorf("filter tree node limit (%d) exceeded", MaxNodes)
	}
	child := &Node{Operator: models.OpAnd}
	parent.Children = append(parent.Children, child)
	return child, nil
}

// RemoveChild removes the i-th child of parent along with its whole subtree
func (n *Node) RemoveChild(i int) {
	if i < 0 || i >= len(n.Children) {
		return
	}
	n.Children = append(n.Children[:i], n.Children[i+1:]...)
}

// Clear collapses the tree back to the vacuous pass-through state
func (t *Tree) Clear() {
	t.Root = &Node{Operator: models.OpAnd}
}

// Walk visits nodes in pre-order, the order the UI renders them in. The
// callback receives each node with its depth; returning false stops the
// walk. Evaluation does not use this order.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	walk(t.Root, 0, fn)
}

func walk(n *Node, depth int, fn func(*Node, int) bool) bool {
	if n == nil {
		return true
	}
	if !fn(n, depth) {
		return false
	}
	for _, c := range n.Children {
		if !walk(c, depth+1, fn) {
			return false
		}
	}
	return true
}

// NodeCount returns the number of nodes in the tree
func (t *Tree) NodeCount() int {
	count := 0
	t.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

func (t *Tree) depthOf(target *Node) (int, bool) {
	depth, found := 0, false
	t.Walk(func(n *Node, d int) bool {
		if n == target {
			depth, found = d, true
			return false
		}
		return true
	})
	return depth, found
}

// Summary counts a node's own predicates per kind, for display only
type Summary struct {
	Text    int
	Date    int
	Range   int
	Boolean int
}

// Total returns the number of predicates counted
func (s Summary) Total() int {
	return s.Text + s.Date + s.Range + s.Boolean
}

// Summarize tallies the predicates in a node's group by kind
func Summarize(n *Node) Summary {
	var s Summary
	if n == nil || n.Group == nil {
		return s
	}
	for _, p := range n.Group.Predicates {
		switch p.Kind {
		case models.PredicateText:
			s.Text++
		case models.PredicateDate:
			s.Date++
		case models.PredicateRange:
			s.Range++
		case models.PredicateBoolean:
			s.Boolean++
		}
	}
	return s
}
