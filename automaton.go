package automaton

import (
	"errors"
	"iter"
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// ErrNoStartState is returned when an automaton is built without a start state.
var ErrNoStartState = errors.New("automaton has no start state")

// NFA is a nondeterministic finite automaton over string labelled states and
// symbols. Values are immutable once built; use NFABuilder to create one.
//
// Labels are interned to dense ids: declared states (and symbols) come first
// in declaration order, followed by labels that are only referenced by the
// start state, the accept states or a transition.
type NFA struct {
	states             *labelTable
	numDeclaredStates  int
	symbols            *labelTable
	numDeclaredSymbols int

	start int

	// Accept flags indexed by state id, plus the accept ids in declaration order.
	isAccept *bitset.BitSet
	accept   []int

	// Sorted, unique destinations for each (state, symbol) pair that has any.
	transitions map[transitionKey][]int
	// Keys of transitions in the order the rules were first added.
	ruleOrder []transitionKey

	// True if no (state, symbol) pair has more than one destination.
	deterministic bool
}

type transitionKey struct {
	state  int
	symbol int
}

// Transition is one rule of an NFA: From --Symbol--> each of To.
type Transition struct {
	From   string
	Symbol string
	To     []string
}

// States returns the declared states in declaration order.
func (a *NFA) States() []string {
	return slices.Clone(a.states.labels[:a.numDeclaredStates])
}

// Symbols returns the input alphabet in declaration order.
func (a *NFA) Symbols() []string {
	return slices.Clone(a.symbols.labels[:a.numDeclaredSymbols])
}

func (a *NFA) Start() string {
	return a.states.label(a.start)
}

// Accept returns the accept states in declaration order.
func (a *NFA) Accept() []string {
	labels := make([]string, len(a.accept))
	for i, id := range a.accept {
		labels[i] = a.states.label(id)
	}
	return labels
}

// IsAccept returns true if state is an accept state.
func (a *NFA) IsAccept(state string) bool {
	id := a.states.lookup(state)
	return id >= 0 && a.isAccept.Test(uint(id))
}

// GetNumStates How many states were declared.
func (a *NFA) GetNumStates() int {
	return a.numDeclaredStates
}

// GetNumTransitions How many (state, symbol) pairs have at least one destination.
func (a *NFA) GetNumTransitions() int {
	return len(a.ruleOrder)
}

// IsDeterministic Returns true if every (state, symbol) pair has at most one destination.
func (a *NFA) IsDeterministic() bool {
	return a.deterministic
}

// Targets returns the destinations of state on symbol, or nil if the pair
// has no transition.
func (a *NFA) Targets(state, symbol string) []string {
	q, s := a.states.lookup(state), a.symbols.lookup(symbol)
	if q < 0 || s < 0 {
		return nil
	}
	return a.stateLabels(a.transitions[transitionKey{q, s}])
}

// Transitions yields every rule in the order it was first added.
func (a *NFA) Transitions() iter.Seq[Transition] {
	return func(yield func(Transition) bool) {
		for _, key := range a.ruleOrder {
			t := Transition{
				From:   a.states.label(key.state),
				Symbol: a.symbols.label(key.symbol),
				To:     a.stateLabels(a.transitions[key]),
			}
			if !yield(t) {
				return
			}
		}
	}
}

// numStateIDs counts declared and referenced-only states.
func (a *NFA) numStateIDs() int {
	return a.states.len()
}

func (a *NFA) targetIDs(state, symbol int) []int {
	return a.transitions[transitionKey{state, symbol}]
}

func (a *NFA) stateLabels(ids []int) []string {
	if ids == nil {
		return nil
	}
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = a.states.label(id)
	}
	return labels
}

// NFABuilder collects the parts of an NFA. Labels are only interned by
// Build, so the order in which the setters are called does not change the
// state numbering.
type NFABuilder struct {
	states   []string
	symbols  []string
	start    string
	hasStart bool
	accept   []string
	rules    []Transition
}

func NewNFABuilder() *NFABuilder {
	return &NFABuilder{}
}

// AddState declares states.
func (b *NFABuilder) AddState(labels ...string) *NFABuilder {
	b.states = append(b.states, labels...)
	return b
}

// AddSymbol declares input symbols.
func (b *NFABuilder) AddSymbol(labels ...string) *NFABuilder {
	b.symbols = append(b.symbols, labels...)
	return b
}

// SetStart sets the start state.
func (b *NFABuilder) SetStart(label string) *NFABuilder {
	b.start = label
	b.hasStart = true
	return b
}

// SetAccept Set or clear this state as an accept state.
func (b *NFABuilder) SetAccept(label string, accept bool) *NFABuilder {
	if accept {
		if !slices.Contains(b.accept, label) {
			b.accept = append(b.accept, label)
		}
		return b
	}
	b.accept = slices.DeleteFunc(b.accept, func(s string) bool { return s == label })
	return b
}

// AddTransition adds from --symbol--> to. Rules for the same (from, symbol)
// pair are merged. A rule with no destinations is ignored.
func (b *NFABuilder) AddTransition(from, symbol string, to ...string) *NFABuilder {
	if len(to) == 0 {
		return b
	}
	b.rules = append(b.rules, Transition{From: from, Symbol: symbol, To: slices.Clone(to)})
	return b
}

// Build freezes the builder into an NFA. The builder may be reused afterwards.
func (b *NFABuilder) Build() (*NFA, error) {
	if !b.hasStart {
		return nil, ErrNoStartState
	}

	a := &NFA{
		states:        newLabelTable(len(b.states)),
		symbols:       newLabelTable(len(b.symbols)),
		transitions:   make(map[transitionKey][]int, len(b.rules)),
		deterministic: true,
	}

	for _, s := range b.states {
		a.states.intern(s)
	}
	a.numDeclaredStates = a.states.len()
	for _, s := range b.symbols {
		a.symbols.intern(s)
	}
	a.numDeclaredSymbols = a.symbols.len()

	a.start = a.states.intern(b.start)
	for _, s := range b.accept {
		a.accept = append(a.accept, a.states.intern(s))
	}

	for _, r := range b.rules {
		key := transitionKey{a.states.intern(r.From), a.symbols.intern(r.Symbol)}
		dest, seen := a.transitions[key]
		if !seen {
			a.ruleOrder = append(a.ruleOrder, key)
		}
		for _, to := range r.To {
			dest = append(dest, a.states.intern(to))
		}
		a.transitions[key] = dest
	}

	for key, dest := range a.transitions {
		slices.Sort(dest)
		dest = slices.Compact(dest)
		a.transitions[key] = dest
		if len(dest) > 1 {
			a.deterministic = false
		}
	}

	a.isAccept = bitset.New(uint(a.states.len()))
	for _, id := range a.accept {
		a.isAccept.Set(uint(id))
	}

	return a, nil
}
