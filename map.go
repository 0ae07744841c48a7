package automaton

import (
	"iter"
)

// stateIndex maps subsets to the DFA state they were assigned. Lookups
// accept any IntSet, so the engine can probe with its scratch StateSet and
// only freeze a subset when it turns out to be new.
type stateIndex struct {
	buckets    []*indexEntry
	size       int
	mask       uint64
	loadFactor float64
}

type indexEntry struct {
	key  *FrozenIntSet
	next *indexEntry
}

type indexOptions struct {
	capacity   int     // rounded up to a power of two
	loadFactor float64 // default 0.75
}

type IndexOption func(*indexOptions)

func WithCapacity(capacity int) IndexOption {
	return func(o *indexOptions) {
		o.capacity = capacity
	}
}

func WithLoadFactor(loadFactor float64) IndexOption {
	return func(o *indexOptions) {
		o.loadFactor = loadFactor
	}
}

func newStateIndex(opts ...IndexOption) *stateIndex {
	options := &indexOptions{
		capacity:   1,
		loadFactor: 0.75,
	}
	for _, opt := range opts {
		opt(options)
	}

	realCap := 1
	for realCap < options.capacity {
		realCap <<= 1
	}

	return &stateIndex{
		buckets:    make([]*indexEntry, realCap),
		mask:       uint64(realCap - 1),
		loadFactor: options.loadFactor,
	}
}

// Get returns the frozen subset equal to key, if one was stored.
func (m *stateIndex) Get(key IntSet) (*FrozenIntSet, bool) {
	for e := m.buckets[key.Hash()&m.mask]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return e.key, true
		}
	}
	return nil, false
}

// Put stores key. It reports false, and leaves the index untouched, when an
// equal subset is already present.
func (m *stateIndex) Put(key *FrozenIntSet) bool {
	index := key.Hash() & m.mask
	for e := m.buckets[index]; e != nil; e = e.next {
		if e.key.Equals(key) {
			return false
		}
	}

	m.buckets[index] = &indexEntry{key: key, next: m.buckets[index]}
	m.size++

	if float64(m.size)/float64(len(m.buckets)) > m.loadFactor {
		m.resize()
	}
	return true
}

func (m *stateIndex) resize() {
	newCap := len(m.buckets) << 1
	newBuckets := make([]*indexEntry, newCap)
	newMask := uint64(newCap - 1)

	for _, head := range m.buckets {
		for e := head; e != nil; e = e.next {
			i := e.key.Hash() & newMask
			newBuckets[i] = &indexEntry{key: e.key, next: newBuckets[i]}
		}
	}

	m.buckets = newBuckets
	m.mask = newMask
}

func (m *stateIndex) Size() int {
	return m.size
}

// All yields every stored subset in bucket order.
func (m *stateIndex) All() iter.Seq[*FrozenIntSet] {
	return func(yield func(*FrozenIntSet) bool) {
		for _, bucket := range m.buckets {
			for e := bucket; e != nil; e = e.next {
				if !yield(e.key) {
					return
				}
			}
		}
	}
}
