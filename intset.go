package automaton

// Hashable is implemented by values that can be stored in a stateIndex.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// IntSet is a set of interned NFA state ids.
type IntSet interface {
	Hashable

	// GetArray returns the ids in ascending order.
	GetArray() []int

	Size() int
}
