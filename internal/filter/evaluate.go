package filter

import (
	"fmt"
	"time"

	"github.com/seralin/musekiosk/internal/models"
)

// MatchesNode reduces a node against one record. Semantics per level:
//
//  1. The group pools its predicates across all kinds and reduces them
//     with the group operator. Zero predicates reduce to true under AND
//     and false under OR: AND over no constraints is vacuously satisfied,
//     OR over no constraints is satisfied by nothing.
//  2. Child results reduce with the node's operator under the same
//     empty-list convention.
//  3. When both are present the group result is ANDed with the children:
//     a node's own filters are never bypassed by its children.
//  4. A node with neither group nor children matches everything.
func MatchesNode(n *Node, rec models.Record, now time.Time) bool {
	if n == nil {
		return true
	}

	hasGroup := n.Group != nil
	hasChildren := len(n.Children) > 0

	if !hasGroup && !hasChildren {
		return true
	}

	groupResult := true
	if hasGroup {
		groupResult = reduceGroup(n.Group, rec, now)
	}

	if !hasChildren {
		return groupResult
	}

	childResult := n.Operator == models.OpAnd
	for _, c := range n.Children {
		m := MatchesNode(c, rec, now)
		if n.Operator == models.OpOr {
			childResult = childResult || m
		} else {
			childResult = childResult && m
		}
	}

	if !hasGroup {
		return childResult
	}
	return groupResult && childResult
}

func reduceGroup(g *Group, rec models.Record, now time.Time) bool {
	if len(g.Predicates) == 0 {
		return g.Operator != models.OpOr
	}
	result := g.Operator != models.OpOr
	for _, p := range g.Predicates {
		v, _ := rec.Field(p.Field)
		m := Evaluate(p, v, now)
		if g.Operator == models.OpOr {
			result = result || m
		} else {
			result = result && m
		}
	}
	return result
}

// Matches reduces the whole tree against one record. Evaluating a record
// of another content type is undefined and rejected.
func (t *Tree) Matches(rec models.Record, now time.Time) (bool, error) {
	if rec.Type != t.Type {
		return false, fmt.Errorf("cannot evaluate %s record against %s filter", rec.Type, t.Type)
	}
	return MatchesNode(t.Root, rec, now), nil
}

// Apply keeps the records the tree matches, preserving input order. It
// never re-sorts: the record source decides ordering.
func (t *Tree) Apply(recs []models.Record, now time.Time) ([]models.Record, error) {
	kept := make([]models.Record, 0, len(recs))
	for _, rec := range recs {
		m, err := t.Matches(rec, now)
		if err != nil {
			return nil, err
		}
		if m {
			kept = append(kept, rec)
		}
	}
	return kept, nil
}
