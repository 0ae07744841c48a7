package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

var _ IntSet = &StateSet{}

// StateSet is the scratch subset the engine accumulates a union into. It is
// reused between symbols, so it must be frozen before being stored.
type StateSet struct {
	bits        *bitset.BitSet
	size        int
	hashUpdated bool
	hashCode    uint64
}

func NewStateSet(numStates int) *StateSet {
	return &StateSet{
		bits: bitset.New(uint(numStates)),
	}
}

func (s *StateSet) Hash() uint64 {
	if s.hashUpdated {
		return s.hashCode
	}
	s.hashCode = hashIDs(s.size, s.each)
	s.hashUpdated = true
	return s.hashCode
}

func (s *StateSet) Equals(other Hashable) bool {
	switch o := other.(type) {
	case *FrozenIntSet:
		return o.Equals(s)
	case *StateSet:
		if s == nil || o == nil {
			return s == o
		}
		return s.size == o.size && s.bits.IntersectionCardinality(o.bits) == uint(s.size)
	default:
		return false
	}
}

func (s *StateSet) GetArray() []int {
	ids := make([]int, 0, s.size)
	s.each(func(id int) bool {
		ids = append(ids, id)
		return true
	})
	return ids
}

func (s *StateSet) Size() int {
	return s.size
}

// IsEmpty reports whether no id has been added since the last Reset.
func (s *StateSet) IsEmpty() bool {
	return s.size == 0
}

func (s *StateSet) keyChanged() {
	s.hashUpdated = false
	s.hashCode = 0
}

// Add inserts id into the set.
func (s *StateSet) Add(id int) {
	if s.bits.Test(uint(id)) {
		return
	}
	s.bits.Set(uint(id))
	s.size++
	s.keyChanged()
}

// AddAll inserts every id of ids.
func (s *StateSet) AddAll(ids []int) {
	for _, id := range ids {
		s.Add(id)
	}
}

// Contains reports whether id is in the set.
func (s *StateSet) Contains(id int) bool {
	return s.bits.Test(uint(id))
}

// Intersects reports whether the set shares at least one id with other.
func (s *StateSet) Intersects(other *bitset.BitSet) bool {
	return s.bits.IntersectionCardinality(other) > 0
}

// Reset empties the set, keeping its storage.
func (s *StateSet) Reset() {
	s.bits.ClearAll()
	s.size = 0
	s.keyChanged()
}

// Freeze copies the current members into a FrozenIntSet for DFA state state.
func (s *StateSet) Freeze(state int) *FrozenIntSet {
	return newFrozenIntSet(s.GetArray(), state)
}

func (s *StateSet) each(yield func(int) bool) {
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		if !yield(int(i)) {
			return
		}
	}
}

func (s *StateSet) equalsIDs(ids []int) bool {
	if len(ids) != s.size {
		return false
	}
	for _, id := range ids {
		if id < 0 || !s.bits.Test(uint(id)) {
			return false
		}
	}
	return true
}
