package task

import (
	"fmt"
	"sort"
)

// Relation is a directed edge between two tasks. It is comparable, so two
// edges discovered along different traversal paths are the same value.
type Relation struct {
	From    string
	To      string
	IsError bool
}

// String renders the relation for logs and error messages.
func (r Relation) String() string {
	if r.IsError {
		return fmt.Sprintf("%s -x-> %s", r.From, r.To)
	}
	return fmt.Sprintf("%s --> %s", r.From, r.To)
}

// RelationSet is an unordered collection of unique relations.
type RelationSet map[Relation]struct{}

// NewRelationSet creates a set holding the given relations.
func NewRelationSet(relations ...Relation) RelationSet {
	s := make(RelationSet, len(relations))
	for _, r := range relations {
		s.Add(r)
	}
	return s
}

// Add inserts r. Adding an edge that is already present is a no-op.
func (s RelationSet) Add(r Relation) {
	s[r] = struct{}{}
}

// Has reports whether r is in the set.
func (s RelationSet) Has(r Relation) bool {
	_, ok := s[r]
	return ok
}

// Len returns the number of unique relations.
func (s RelationSet) Len() int {
	return len(s)
}

// RemoveWhere deletes every relation matching pred and returns how many were removed.
func (s RelationSet) RemoveWhere(pred func(Relation) bool) int {
	removed := 0
	for r := range s {
		if pred(r) {
			delete(s, r)
			removed++
		}
	}
	return removed
}

// Sorted returns the relations ordered by source, target, then error flag.
func (s RelationSet) Sorted() []Relation {
	out := make([]Relation, 0, len(s))
	for r := range s {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		if out[i].To != out[j].To {
			return out[i].To < out[j].To
		}
		return !out[i].IsError && out[j].IsError
	})
	return out
}
