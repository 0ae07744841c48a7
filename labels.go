package automaton

// labelTable interns string labels to dense ids in first-seen order.
type labelTable struct {
	ids    map[string]int
	labels []string
}

func newLabelTable(capacity int) *labelTable {
	return &labelTable{
		ids:    make(map[string]int, capacity),
		labels: make([]string, 0, capacity),
	}
}

// intern returns the id of label, assigning the next one if it is new.
func (t *labelTable) intern(label string) int {
	if id, ok := t.ids[label]; ok {
		return id
	}
	id := len(t.labels)
	t.ids[label] = id
	t.labels = append(t.labels, label)
	return id
}

// lookup returns the id of label, or -1.
func (t *labelTable) lookup(label string) int {
	if id, ok := t.ids[label]; ok {
		return id
	}
	return -1
}

func (t *labelTable) label(id int) string {
	return t.labels[id]
}

func (t *labelTable) len() int {
	return len(t.labels)
}
