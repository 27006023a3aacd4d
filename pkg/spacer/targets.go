package spacer

import (
	"maps"
	"slices"
)

// TargetSet is a set of 0-based line indices that must be followed by a
// blank line. The zero value is ready to use.
type TargetSet struct {
	members map[int]struct{}
}

// NewTargetSet returns a set holding indices.
func NewTargetSet(indices ...int) *TargetSet {
	set := &TargetSet{}
	set.Add(indices...)
	return set
}

// Add inserts indices. Duplicates are ignored.
func (s *TargetSet) Add(indices ...int) {
	if len(indices) == 0 {
		return
	}
	if s.members == nil {
		s.members = make(map[int]struct{}, len(indices))
	}
	for _, idx := range indices {
		s.members[idx] = struct{}{}
	}
}

// Has reports whether idx is in the set.
func (s *TargetSet) Has(idx int) bool {
	if s == nil {
		return false
	}
	_, ok := s.members[idx]
	return ok
}

// Len returns the number of distinct indices.
func (s *TargetSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.members)
}

// Sorted returns the indices in ascending order.
func (s *TargetSet) Sorted() []int {
	if s.Len() == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(s.members))
}
