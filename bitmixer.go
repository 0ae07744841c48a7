package automaton

import "iter"

// Golden ratio constant, used to seed subset hashes.
const PHI_C32 = uint32(0x9e3779b9)

func mix(key int) int {
	return mix32(key)
}

// mix32 is the 32-bit finalisation step of MurmurHash3.
func mix32(v int) int {
	k := uint32(v)
	k = (k ^ (k >> 16)) * 0x85ebca6b
	k = (k ^ (k >> 13)) * 0xc2b2ae35
	return int(k ^ (k >> 16))
}

// hashIDs returns an order independent hash of a set of state ids.
// FrozenIntSet and StateSet both use it so a set under construction can be
// looked up without freezing it first.
func hashIDs(size int, each iter.Seq[int]) uint64 {
	h := uint64(PHI_C32) + uint64(size)
	each(func(id int) bool {
		h += uint64(uint32(mix(id)))
		return true
	})
	return h
}
