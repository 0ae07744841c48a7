package automaton

import (
	"fmt"
	"io"
	"strings"
)

// FormatSubset prints a set of NFA states as "{q0, q1}".
func FormatSubset(labels []string) string {
	return "{" + strings.Join(labels, ", ") + "}"
}

// Format writes d in a human readable form:
//
//	States: [{q0}, {q0, q1}, {q2}]
//	Start State: {q0}
//	Accept States: [{q2}]
//	Transitions:
//	  δ({q0}, 'a') → {q0, q1}
func Format(w io.Writer, d *DFA) error {
	_, err := io.WriteString(w, d.String())
	return err
}

func (d *DFA) String() string {
	var sb strings.Builder

	subsets := make([]string, d.GetNumStates())
	for i := range subsets {
		subsets[i] = FormatSubset(d.StateLabels(i))
	}

	accept := make([]string, 0, len(d.accept))
	for _, i := range d.accept {
		accept = append(accept, subsets[i])
	}

	sb.WriteString("States: [" + strings.Join(subsets, ", ") + "]\n")
	sb.WriteString("Start State: " + subsets[d.Start()] + "\n")
	sb.WriteString("Accept States: [" + strings.Join(accept, ", ") + "]\n")
	sb.WriteString("Transitions:\n")
	for t := range d.Transitions() {
		sb.WriteString(fmt.Sprintf("  δ(%s, '%s') → %s\n", subsets[t.From], t.Symbol, subsets[t.To]))
	}

	return sb.String()
}

// WriteDOT writes d as a Graphviz digraph. Nodes are named by state number
// and labelled with their subset; accept states are drawn as double circles.
func WriteDOT(w io.Writer, d *DFA) error {
	var sb strings.Builder

	sb.WriteString("digraph DFA {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")
	sb.WriteString("\n")

	// Invisible start node pointing to the initial state
	sb.WriteString("  start [shape=point];\n")
	sb.WriteString(fmt.Sprintf("  start -> s%d;\n", d.Start()))
	sb.WriteString("\n")

	for i := 0; i < d.GetNumStates(); i++ {
		shape := ""
		if d.IsAccept(i) {
			shape = ", shape=doublecircle"
		}
		sb.WriteString(fmt.Sprintf("  s%d [label=%q%s];\n", i, FormatSubset(d.StateLabels(i)), shape))
	}
	sb.WriteString("\n")

	for t := range d.Transitions() {
		sb.WriteString(fmt.Sprintf("  s%d -> s%d [label=%q];\n", t.From, t.To, t.Symbol))
	}

	sb.WriteString("}\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
