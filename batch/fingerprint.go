package batch

import (
	"fmt"
	"strconv"

	automaton "github.com/geange/powerset"
	"github.com/zeebo/xxh3"
)

// Fingerprint identifies an NFA by content. Two automata with the same
// fingerprint determinize to the same DFA.
type Fingerprint xxh3.Uint128

func (f Fingerprint) String() string {
	return fmt.Sprintf("%016x%016x", f.Hi, f.Lo)
}

// FingerprintOf hashes every part of a that influences subset construction,
// including declaration order, which fixes the DFA state numbering.
func FingerprintOf(a *automaton.NFA) Fingerprint {
	h := xxh3.New()

	writeList := func(tag string, items []string) {
		_, _ = h.WriteString(tag + strconv.Itoa(len(items)) + ":")
		for _, item := range items {
			// Length prefixes keep "ab","c" apart from "a","bc".
			_, _ = h.WriteString(strconv.Itoa(len(item)) + ":" + item)
		}
	}

	writeList("S", a.States())
	writeList("A", a.Symbols())
	writeList("I", []string{a.Start()})
	writeList("F", a.Accept())
	for t := range a.Transitions() {
		writeList("T", append([]string{t.From, t.Symbol}, t.To...))
	}

	return Fingerprint(h.Sum128())
}
