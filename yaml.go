package automaton

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of an NFA. Rules may be given as structured
// transitions, as "STATE,SYMBOL->TARGET..." lines in Rules, or both.
type Document struct {
	States      []string             `yaml:"states"`
	Symbols     []string             `yaml:"symbols"`
	Start       string               `yaml:"start"`
	Accept      []string             `yaml:"accept,omitempty"`
	Transitions []TransitionDocument `yaml:"transitions,omitempty"`
	Rules       string               `yaml:"rules,omitempty"`
}

type TransitionDocument struct {
	From   string   `yaml:"from"`
	Symbol string   `yaml:"symbol"`
	To     []string `yaml:"to,flow"`
}

// DFADocument is the YAML form of a DFA; every state is written as the
// natural sorted list of NFA states it stands for.
type DFADocument struct {
	States      [][]string              `yaml:"states"`
	Symbols     []string                `yaml:"symbols"`
	Start       []string                `yaml:"start,flow"`
	Accept      [][]string              `yaml:"accept"`
	Transitions []DFATransitionDocument `yaml:"transitions"`
}

type DFATransitionDocument struct {
	From   []string `yaml:"from,flow"`
	Symbol string   `yaml:"symbol"`
	To     []string `yaml:"to,flow"`
}

// LoadYAML decodes a Document from r and builds the NFA it describes.
// Under Strict unknown fields are rejected as well.
func LoadYAML(r io.Reader, policy ParsePolicy) (*NFA, []*ParseError, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(policy == Strict)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, fmt.Errorf("decoding automaton: empty document: %w", ErrNoStartState)
		}
		return nil, nil, fmt.Errorf("decoding automaton: %w", err)
	}
	return doc.Build(policy)
}

// Build converts the document into an NFA.
func (doc *Document) Build(policy ParsePolicy) (*NFA, []*ParseError, error) {
	start := strings.TrimSpace(doc.Start)
	if start == "" {
		return nil, nil, ErrNoStartState
	}

	b := NewNFABuilder().
		AddState(doc.States...).
		AddSymbol(doc.Symbols...).
		SetStart(start)
	for _, s := range doc.Accept {
		b.SetAccept(s, true)
	}

	var warnings []*ParseError
	for i, t := range doc.Transitions {
		if t.From == "" || t.Symbol == "" || len(t.To) == 0 {
			perr := &ParseError{
				Line: i + 1,
				Text: fmt.Sprintf("%s,%s->%s", t.From, t.Symbol, strings.Join(t.To, " ")),
				Err:  fmt.Errorf("%w: transition needs from, symbol and to", ErrMalformedTransition),
			}
			if policy == Strict {
				return nil, nil, perr
			}
			warnings = append(warnings, perr)
			continue
		}
		b.AddTransition(t.From, t.Symbol, t.To...)
	}

	rules, ruleWarnings, err := ParseRules(doc.Rules, policy)
	if err != nil {
		return nil, nil, err
	}
	warnings = append(warnings, ruleWarnings...)
	for _, r := range rules {
		b.AddTransition(r.From, r.Symbol, r.To...)
	}

	return build(b, warnings, policy)
}

// DocumentOf returns the YAML form of a.
func DocumentOf(a *NFA) *Document {
	doc := &Document{
		States:  a.States(),
		Symbols: a.Symbols(),
		Start:   a.Start(),
		Accept:  a.Accept(),
	}
	for t := range a.Transitions() {
		doc.Transitions = append(doc.Transitions, TransitionDocument{From: t.From, Symbol: t.Symbol, To: t.To})
	}
	return doc
}

// DFADocumentOf returns the YAML form of d.
func DFADocumentOf(d *DFA) *DFADocument {
	doc := &DFADocument{
		States:  make([][]string, d.GetNumStates()),
		Symbols: d.Symbols(),
		Start:   d.StateLabels(d.Start()),
	}
	for i := range doc.States {
		doc.States[i] = d.StateLabels(i)
	}
	for _, i := range d.AcceptStates() {
		doc.Accept = append(doc.Accept, doc.States[i])
	}
	for t := range d.Transitions() {
		doc.Transitions = append(doc.Transitions, DFATransitionDocument{
			From:   doc.States[t.From],
			Symbol: t.Symbol,
			To:     doc.States[t.To],
		})
	}
	return doc
}

func MarshalYAML(a *NFA) ([]byte, error) {
	return yaml.Marshal(DocumentOf(a))
}

func MarshalDFAYAML(d *DFA) ([]byte, error) {
	return yaml.Marshal(DFADocumentOf(d))
}
