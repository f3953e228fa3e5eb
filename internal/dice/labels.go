package dice

import "slices"

// Labels is the mutable face value table of one die, keyed by face slot.
type Labels struct {
	first  int
	values []int
}

// NewLabels returns the canonical table for a kind.
func NewLabels(k Kind) Labels {
	c, ok := canonical[k]
	if !ok {
		k, c = D6, canonical[D6]
	}
	return Labels{first: k.Descriptor().FirstSlot, values: slices.Clone(c)}
}

// At returns the label on a slot.
func (l Labels) At(slot int) (int, bool) {
	i := slot - l.first
	if i < 0 || i >= len(l.values) {
		return 0, false
	}
	return l.values[i], true
}

// SlotOf returns the slot currently carrying label.
func (l Labels) SlotOf(label int) (int, bool) {
	i := slices.Index(l.values, label)
	if i < 0 {
		return 0, false
	}
	return i + l.first, true
}

// Force makes slot carry label by swapping it with the slot that currently
// has it, so every label still appears exactly once. It reports false and
// leaves the table unchanged when slot is out of range or no slot carries
// label.
func (l *Labels) Force(slot, label int) bool {
	i := slot - l.first
	if i < 0 || i >= len(l.values) {
		return false
	}
	j := slices.Index(l.values, label)
	if j < 0 {
		return false
	}
	l.values[i], l.values[j] = l.values[j], l.values[i]
	return true
}

// FirstSlot returns the lowest slot in the table.
func (l Labels) FirstSlot() int {
	return l.first
}

// Values returns a copy of the labels in slot order.
func (l Labels) Values() []int {
	return slices.Clone(l.values)
}

// Clone returns an independent copy.
func (l Labels) Clone() Labels {
	return Labels{first: l.first, values: slices.Clone(l.values)}
}

// Materials returns the face text per material index of a mesh built from
// the kind's descriptor: index 0 is the blank bevel material and material
// slot+1 shows the label on slot.
func (l Labels) Materials(k Kind) []string {
	out := make([]string, l.first+len(l.values)+1)
	for i, v := range l.values {
		out[l.first+i+1] = k.Display(v)
	}
	return out
}
