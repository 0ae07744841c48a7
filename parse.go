package automaton

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedTransition is wrapped by every ParseError about a transition rule.
var ErrMalformedTransition = errors.New("malformed transition")

// ParsePolicy decides what happens to a transition rule that cannot be parsed.
type ParsePolicy int

const (
	// Lenient skips malformed rules and reports them as warnings.
	Lenient ParsePolicy = iota
	// Strict rejects the first malformed rule and validates the result.
	Strict
)

func (p ParsePolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "lenient"
}

// ParseError describes a rejected transition rule.
type ParseError struct {
	Line int // 1-based
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// TextInput holds the raw text of the five fields describing an NFA:
//
//	States:      q0,q1,q2
//	Symbols:     a,b
//	Start:       q0
//	Accept:      q2
//	Transitions: one "STATE,SYMBOL->TARGET TARGET..." rule per line
type TextInput struct {
	States      string
	Symbols     string
	Start       string
	Accept      string
	Transitions string
}

// ParseText builds an NFA from its textual description. Under Lenient the
// skipped rules are returned as warnings; under Strict the first one is
// returned as the error, and the NFA must also pass Validate.
func ParseText(in TextInput, policy ParsePolicy) (*NFA, []*ParseError, error) {
	start := strings.TrimSpace(in.Start)
	if start == "" {
		return nil, nil, ErrNoStartState
	}

	b := NewNFABuilder().
		AddState(SplitList(in.States)...).
		AddSymbol(SplitList(in.Symbols)...).
		SetStart(start)
	for _, s := range SplitList(in.Accept) {
		b.SetAccept(s, true)
	}

	rules, warnings, err := ParseRules(in.Transitions, policy)
	if err != nil {
		return nil, nil, err
	}
	for _, r := range rules {
		b.AddTransition(r.From, r.Symbol, r.To...)
	}

	return build(b, warnings, policy)
}

func build(b *NFABuilder, warnings []*ParseError, policy ParsePolicy) (*NFA, []*ParseError, error) {
	nfa, err := b.Build()
	if err != nil {
		return nil, nil, err
	}
	if policy == Strict {
		if err := Validate(nfa); err != nil {
			return nil, nil, err
		}
	}
	return nfa, warnings, nil
}

// ParseRules parses one transition rule per line. Blank lines are ignored.
func ParseRules(text string, policy ParsePolicy) ([]Transition, []*ParseError, error) {
	var (
		rules    []Transition
		warnings []*ParseError
	)

	for i, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		rule, err := parseRule(line)
		if err != nil {
			perr := &ParseError{Line: i + 1, Text: line, Err: err}
			if policy == Strict {
				return nil, nil, perr
			}
			warnings = append(warnings, perr)
			continue
		}
		rules = append(rules, rule)
	}

	return rules, warnings, nil
}

func parseRule(line string) (Transition, error) {
	left, right, ok := strings.Cut(line, "->")
	if !ok {
		return Transition{}, fmt.Errorf(`%w: missing "->"`, ErrMalformedTransition)
	}
	if strings.Contains(right, "->") {
		return Transition{}, fmt.Errorf(`%w: more than one "->"`, ErrMalformedTransition)
	}

	state, symbol, ok := strings.Cut(left, ",")
	if !ok || strings.Contains(symbol, ",") {
		return Transition{}, fmt.Errorf("%w: expected STATE,SYMBOL before \"->\"", ErrMalformedTransition)
	}
	state, symbol = strings.TrimSpace(state), strings.TrimSpace(symbol)
	if state == "" || symbol == "" {
		return Transition{}, fmt.Errorf("%w: empty state or symbol", ErrMalformedTransition)
	}

	targets := strings.Fields(right)
	if len(targets) == 0 {
		return Transition{}, fmt.Errorf("%w: no target states", ErrMalformedTransition)
	}

	return Transition{From: state, Symbol: symbol, To: targets}, nil
}

// SplitList splits a comma separated list, trimming spaces and dropping
// empty items.
func SplitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
