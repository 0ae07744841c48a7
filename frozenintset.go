package automaton

import (
	"slices"
	"sort"
)

var _ IntSet = &FrozenIntSet{}

// FrozenIntSet is an immutable set of NFA state ids. It is the value of a
// single DFA state: the ids are kept in ascending order so two subsets with
// the same members always compare equal, whatever order they were found in.
type FrozenIntSet struct {
	values   []int
	state    int
	hashCode uint64
}

// NewFrozenIntSet freezes values as the subset for DFA state state. The
// values are copied, sorted and deduplicated.
func NewFrozenIntSet(values []int, state int) *FrozenIntSet {
	ids := slices.Clone(values)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	return newFrozenIntSet(ids, state)
}

// newFrozenIntSet takes ownership of ids, which must already be sorted and unique.
func newFrozenIntSet(ids []int, state int) *FrozenIntSet {
	return &FrozenIntSet{
		values:   ids,
		state:    state,
		hashCode: hashIDs(len(ids), slices.Values(ids)),
	}
}

func (f *FrozenIntSet) Hash() uint64 {
	return f.hashCode
}

// Equals reports whether other holds exactly the same ids. The DFA state
// number is not part of the identity of a subset.
func (f *FrozenIntSet) Equals(other Hashable) bool {
	if f == nil {
		switch o := other.(type) {
		case *FrozenIntSet:
			return o == nil
		case *StateSet:
			return o == nil
		default:
			return false
		}
	}

	switch o := other.(type) {
	case *FrozenIntSet:
		if o == nil || o.hashCode != f.hashCode {
			return false
		}
		return slices.Equal(f.values, o.values)
	case *StateSet:
		if o == nil || o.Hash() != f.hashCode {
			return false
		}
		return o.equalsIDs(f.values)
	default:
		return false
	}
}

// GetArray returns a copy of the ids in ascending order.
func (f *FrozenIntSet) GetArray() []int {
	return slices.Clone(f.values)
}

func (f *FrozenIntSet) Size() int {
	return len(f.values)
}

// State returns the DFA state number this subset was assigned.
func (f *FrozenIntSet) State() int {
	return f.state
}

// Contains reports whether id is a member of the subset.
func (f *FrozenIntSet) Contains(id int) bool {
	i := sort.SearchInts(f.values, id)
	return i < len(f.values) && f.values[i] == id
}
