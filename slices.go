package automaton

import "slices"

// appendN appends n copies of v to s.
func appendN[T any](s []T, n int, v T) []T {
	s = slices.Grow(s, n)
	for i := 0; i < n; i++ {
		s = append(s, v)
	}
	return s
}
