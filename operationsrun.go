package automaton

// Run Returns true if the DFA accepts input. An undefined move rejects.
func Run(d *DFA, input []string) bool {
	state := d.Start()
	for _, symbol := range input {
		state = d.Step(state, symbol)
		if state == -1 {
			return false
		}
	}
	return d.IsAccept(state)
}

// RunNFA Returns true if some path of the NFA over input ends in an accept
// state. Symbols outside the alphabet reject.
func RunNFA(a *NFA, input []string) bool {
	current := NewStateSet(a.numStateIDs())
	current.Add(a.start)
	next := NewStateSet(a.numStateIDs())

	for _, label := range input {
		s := a.symbols.lookup(label)
		if s < 0 || s >= a.numDeclaredSymbols {
			return false
		}

		next.Reset()
		current.each(func(q int) bool {
			next.AddAll(a.targetIDs(q, s))
			return true
		})
		if next.IsEmpty() {
			return false
		}
		current, next = next, current
	}
	return current.Intersects(a.isAccept)
}
