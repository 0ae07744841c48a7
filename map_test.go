package automaton

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

// otherKey is a Hashable that is not an IntSet.
type otherKey int

func (k otherKey) Hash() uint64 {
	return uint64(k)
}

func (k otherKey) Equals(other Hashable) bool {
	o, ok := other.(otherKey)
	return ok && k == o
}

func TestStateIndexBasic(t *testing.T) {
	t.Run("PutAndGet", func(t *testing.T) {
		m := newStateIndex(WithCapacity(8))
		key := NewFrozenIntSet([]int{1, 2}, 0)
		assert.True(t, m.Put(key))

		got, exists := m.Get(NewFrozenIntSet([]int{2, 1}, -1))
		assert.True(t, exists)
		assert.Same(t, key, got)

		_, exists = m.Get(NewFrozenIntSet([]int{1}, -1))
		assert.False(t, exists)
	})

	t.Run("DuplicatePut", func(t *testing.T) {
		m := newStateIndex(WithCapacity(8))
		first := NewFrozenIntSet([]int{1}, 0)
		assert.True(t, m.Put(first))
		assert.False(t, m.Put(NewFrozenIntSet([]int{1}, 1)))
		assert.Equal(t, 1, m.Size())

		got, _ := m.Get(first)
		assert.Equal(t, 0, got.State())
	})

	t.Run("GetWithStateSet", func(t *testing.T) {
		m := newStateIndex()
		m.Put(NewFrozenIntSet([]int{0, 3}, 5))

		probe := NewStateSet(4)
		probe.Add(3)
		_, exists := m.Get(probe)
		assert.False(t, exists)

		probe.Add(0)
		got, exists := m.Get(probe)
		assert.True(t, exists)
		assert.Equal(t, 5, got.State())
	})
}

func TestStateIndexCollision(t *testing.T) {
	// A single bucket that never grows forces every key onto one chain.
	m := newStateIndex(WithCapacity(1), WithLoadFactor(1000))

	keys := []*FrozenIntSet{
		NewFrozenIntSet([]int{1}, 0),
		NewFrozenIntSet([]int{2}, 1),
		NewFrozenIntSet([]int{1, 2}, 2),
	}
	for _, k := range keys {
		assert.True(t, m.Put(k))
	}
	assert.Len(t, m.buckets, 1)
	assert.Equal(t, 3, m.Size())

	for _, k := range keys {
		got, exists := m.Get(k)
		assert.True(t, exists)
		assert.Equal(t, k.State(), got.State())
	}
}

func TestStateIndexResize(t *testing.T) {
	initialCap := 16
	m := newStateIndex(WithCapacity(initialCap))

	// 16 * 0.75 = 12
	for i := 0; i < 13; i++ {
		m.Put(NewFrozenIntSet([]int{i}, i))
	}
	assert.Greater(t, len(m.buckets), initialCap)

	for i := 0; i < 13; i++ {
		got, exists := m.Get(NewFrozenIntSet([]int{i}, -1))
		assert.True(t, exists)
		assert.Equal(t, i, got.State())
	}

	states := make([]int, 0, 13)
	for f := range m.All() {
		states = append(states, f.State())
	}
	slices.Sort(states)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, states)
}

func TestStateIndexEdgeCases(t *testing.T) {
	t.Run("ZeroCapacity", func(t *testing.T) {
		m := newStateIndex(WithCapacity(0))
		assert.Equal(t, 1, len(m.buckets))
	})

	t.Run("RoundsUpToPowerOfTwo", func(t *testing.T) {
		m := newStateIndex(WithCapacity(5))
		assert.Equal(t, 8, len(m.buckets))
	})

	t.Run("NilKey", func(t *testing.T) {
		m := newStateIndex(WithCapacity(8))
		assert.Panics(t, func() {
			m.Put(nil)
		})
	})

	t.Run("AllStopsEarly", func(t *testing.T) {
		m := newStateIndex(WithCapacity(8))
		m.Put(NewFrozenIntSet([]int{1}, 0))
		m.Put(NewFrozenIntSet([]int{2}, 1))

		n := 0
		for range m.All() {
			n++
			break
		}
		assert.Equal(t, 1, n)
	})
}
