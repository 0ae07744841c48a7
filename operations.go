package automaton

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bits-and-blooms/bitset"
)

var (
	// ErrTooComplexToDeterminize is returned when subset construction would
	// create more DFA states than the configured work limit.
	ErrTooComplexToDeterminize = errors.New("determinizing automaton would exceed work limit")

	ErrUndeclaredState  = errors.New("undeclared state")
	ErrUndeclaredSymbol = errors.New("undeclared symbol")
)

// Order is the discipline used to take subsets off the worklist. It changes
// the numbering of DFA states, never the automaton itself.
type Order int

const (
	// FIFO processes subsets in the order they were discovered.
	FIFO Order = iota
	// LIFO processes the most recently discovered subset first.
	LIFO
)

func (o Order) String() string {
	switch o {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	default:
		return fmt.Sprintf("Order(%d)", int(o))
	}
}

type determinizeOptions struct {
	ctx       context.Context
	order     Order
	workLimit int
	logger    *slog.Logger
}

type DeterminizeOption func(*determinizeOptions)

// WithOrder sets the worklist discipline. The default is FIFO.
func WithOrder(order Order) DeterminizeOption {
	return func(o *determinizeOptions) {
		o.order = order
	}
}

// WithWorkLimit caps the number of DFA states. Zero means no limit.
func WithWorkLimit(states int) DeterminizeOption {
	return func(o *determinizeOptions) {
		o.workLimit = states
	}
}

// WithLogger logs discovered subsets at debug level.
func WithLogger(logger *slog.Logger) DeterminizeOption {
	return func(o *determinizeOptions) {
		o.logger = logger
	}
}

// WithContext makes the construction stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) DeterminizeOption {
	return func(o *determinizeOptions) {
		o.ctx = ctx
	}
}

// Convert determinizes nfa with the default options: FIFO order, no work
// limit. It never fails.
func Convert(nfa *NFA) *DFA {
	dfa, err := Determinize(nfa)
	if err != nil {
		// Only a work limit or a context can make Determinize fail.
		panic(err)
	}
	return dfa
}

// Determinize Determinizes the given automaton using subset construction.
// Worst case complexity: exponential in number of states.
//
// Every DFA state is reachable from the start state and each (state,
// symbol) pair has at most one destination: the union of the NFA moves of
// all member states on that symbol. Pairs whose union is empty get no
// transition. A DFA state accepts if any of its members is an accept state
// of nfa. Transitions on symbols outside the alphabet are ignored.
func Determinize(nfa *NFA, opts ...DeterminizeOption) (*DFA, error) {
	options := &determinizeOptions{
		ctx:    context.Background(),
		order:  FIFO,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(options)
	}

	numSymbols := nfa.numDeclaredSymbols
	d := &DFA{
		nfa:        nfa,
		index:      newStateIndex(WithCapacity(16)),
		numSymbols: numSymbols,
	}

	// Create state 0:
	initialSet := NewFrozenIntSet([]int{nfa.start}, 0)
	d.index.Put(initialSet)
	d.states = append(d.states, initialSet)
	d.transitions = appendUndefined(d.transitions, numSymbols)

	worklist := []*FrozenIntSet{initialSet}
	scratch := NewStateSet(nfa.numStateIDs())
	debug := options.logger.Enabled(options.ctx, slog.LevelDebug)

	for len(worklist) > 0 {
		if err := options.ctx.Err(); err != nil {
			return nil, err
		}

		var current *FrozenIntSet
		if options.order == LIFO {
			current = worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
		} else {
			current = worklist[0]
			worklist = worklist[1:]
		}

		for s := 0; s < numSymbols; s++ {
			scratch.Reset()
			for _, q := range current.values {
				scratch.AddAll(nfa.targetIDs(q, s))
			}
			if scratch.IsEmpty() {
				continue
			}

			next, ok := d.index.Get(scratch)
			if !ok {
				if options.workLimit > 0 && len(d.states) >= options.workLimit {
					return nil, fmt.Errorf("%w: more than %d states", ErrTooComplexToDeterminize, options.workLimit)
				}

				next = scratch.Freeze(len(d.states))
				d.index.Put(next)
				d.states = append(d.states, next)
				d.transitions = appendUndefined(d.transitions, numSymbols)
				worklist = append(worklist, next)

				if debug {
					options.logger.DebugContext(options.ctx, "discovered subset",
						"state", next.State(),
						"subset", FormatSubset(d.StateLabels(next.State())),
						"from", current.State(),
						"symbol", nfa.symbols.label(s))
				}
			}

			d.transitions[current.state*numSymbols+s] = next.state
			d.numTransitions++
		}
	}

	d.isAccept = bitset.New(uint(len(d.states)))
	for _, subset := range d.states {
		if intersects(subset, nfa.isAccept) {
			d.isAccept.Set(uint(subset.state))
			d.accept = append(d.accept, subset.state)
		}
	}

	options.logger.DebugContext(options.ctx, "determinized automaton",
		"nfaStates", nfa.GetNumStates(),
		"dfaStates", len(d.states),
		"transitions", d.numTransitions,
		"order", options.order)

	return d, nil
}

func appendUndefined(transitions []int, n int) []int {
	return appendN(transitions, n, -1)
}

func intersects(subset *FrozenIntSet, accept *bitset.BitSet) bool {
	for _, id := range subset.values {
		if accept.Test(uint(id)) {
			return true
		}
	}
	return false
}

// IsDeterministic Returns true if no (state, symbol) pair of a has more than
// one destination.
func IsDeterministic(a *NFA) bool {
	return a.IsDeterministic()
}

// Reachable returns the states reachable from the start state, in
// breadth-first order. Only alphabet symbols are followed.
func Reachable(a *NFA) []string {
	seen := bitset.New(uint(a.numStateIDs()))
	workList := []int{a.start}
	seen.Set(uint(a.start))

	var reached []string
	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]
		reached = append(reached, a.states.label(state))

		for s := 0; s < a.numDeclaredSymbols; s++ {
			for _, dest := range a.targetIDs(state, s) {
				if !seen.Test(uint(dest)) {
					seen.Set(uint(dest))
					workList = append(workList, dest)
				}
			}
		}
	}
	return reached
}

// Validate checks that the start state, the accept states and every
// transition only reference declared states and symbols. All violations are
// reported, joined; each wraps ErrUndeclaredState or ErrUndeclaredSymbol.
//
// Determinize does not call Validate: undeclared labels take part in subset
// construction like any other.
func Validate(a *NFA) error {
	var errs []error

	checkState := func(id int, role string) {
		if id >= a.numDeclaredStates {
			errs = append(errs, fmt.Errorf("%s %q: %w", role, a.states.label(id), ErrUndeclaredState))
		}
	}

	checkState(a.start, "start state")
	for _, id := range a.accept {
		checkState(id, "accept state")
	}
	for _, key := range a.ruleOrder {
		checkState(key.state, "transition source")
		if key.symbol >= a.numDeclaredSymbols {
			errs = append(errs, fmt.Errorf("transition symbol %q: %w", a.symbols.label(key.symbol), ErrUndeclaredSymbol))
		}
		for _, dest := range a.transitions[key] {
			checkState(dest, "transition target")
		}
	}

	return errors.Join(errs...)
}
