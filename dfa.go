package automaton

import (
	"iter"
	"slices"

	"facette.io/natsort"
	"github.com/bits-and-blooms/bitset"
)

// DFA is the result of subset construction. Each state is a subset of the
// source NFA's states, numbered in the order it was discovered; state 0 is
// always the subset holding only the NFA start state.
//
// The DFA may be partial: Step returns -1 for a (state, symbol) pair with no
// transition, which behaves like an implicit non-accepting dead state.
type DFA struct {
	nfa *NFA

	states []*FrozenIntSet
	index  *stateIndex

	isAccept *bitset.BitSet
	accept   []int

	// Destination for state*numSymbols+symbol, or -1.
	transitions    []int
	numSymbols     int
	numTransitions int
}

// DFATransition is one defined move of a DFA.
type DFATransition struct {
	From   int
	Symbol string
	To     int
}

// NFA returns the automaton this DFA was built from.
func (d *DFA) NFA() *NFA {
	return d.nfa
}

// Symbols returns the alphabet, shared with the source NFA.
func (d *DFA) Symbols() []string {
	return d.nfa.Symbols()
}

// Start returns the initial state, which is always 0.
func (d *DFA) Start() int {
	return 0
}

// GetNumStates How many states this automaton has.
func (d *DFA) GetNumStates() int {
	return len(d.states)
}

// GetNumTransitions How many (state, symbol) pairs are defined.
func (d *DFA) GetNumTransitions() int {
	return d.numTransitions
}

// State returns the subset of NFA state ids for state.
func (d *DFA) State(state int) *FrozenIntSet {
	return d.states[state]
}

// StateLabels returns the NFA states making up state, in natural sort order.
func (d *DFA) StateLabels(state int) []string {
	labels := d.nfa.stateLabels(d.states[state].values)
	natsort.Sort(labels)
	return labels
}

// IndexOf returns the DFA state whose subset is exactly labels, or -1.
func (d *DFA) IndexOf(labels ...string) int {
	ids := make([]int, 0, len(labels))
	for _, l := range labels {
		id := d.nfa.states.lookup(l)
		if id < 0 {
			return -1
		}
		ids = append(ids, id)
	}
	if f, ok := d.index.Get(NewFrozenIntSet(ids, -1)); ok {
		return f.State()
	}
	return -1
}

// IsAccept Returns true if this state is an accept state.
func (d *DFA) IsAccept(state int) bool {
	return d.isAccept.Test(uint(state))
}

// AcceptStates returns the accept states in discovery order.
func (d *DFA) AcceptStates() []int {
	return slices.Clone(d.accept)
}

// Step Performs lookup in transitions. Returns the destination state, or -1
// if the state has no transition on symbol or symbol is not in the alphabet.
func (d *DFA) Step(state int, symbol string) int {
	s := d.nfa.symbols.lookup(symbol)
	if s < 0 || s >= d.numSymbols {
		return -1
	}
	return d.step(state, s)
}

func (d *DFA) step(state, symbol int) int {
	return d.transitions[state*d.numSymbols+symbol]
}

// Transitions yields the defined transitions ordered by source state, then
// by symbol declaration order.
func (d *DFA) Transitions() iter.Seq[DFATransition] {
	return func(yield func(DFATransition) bool) {
		for state := range d.states {
			for s := 0; s < d.numSymbols; s++ {
				dest := d.step(state, s)
				if dest == -1 {
					continue
				}
				if !yield(DFATransition{From: state, Symbol: d.nfa.symbols.label(s), To: dest}) {
					return
				}
			}
		}
	}
}
