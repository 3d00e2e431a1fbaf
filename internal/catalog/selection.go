package catalog

// SelectionSet tracks which entries of the currently displayed catalog are
// selected for cloning. The flags are index-aligned with the displayed
// entries; Reset must be called whenever the displayed catalog changes so
// stale selections from a previous filter pass are discarded rather than
// silently misaligned.
type SelectionSet struct {
	flags []bool
}

// NewSelectionSet creates a selection set sized to the displayed catalog,
// with nothing selected.
func NewSelectionSet(size int) *SelectionSet {
	return &SelectionSet{flags: make([]bool, size)}
}

// Reset discards all selections and resizes the set to the displayed catalog.
func (s *SelectionSet) Reset(size int) {
	s.flags = make([]bool, size)
}

// Len returns how many entries the set covers.
func (s *SelectionSet) Len() int {
	return len(s.flags)
}

// Toggle flips the selection flag at index i. Out-of-range indices are no-ops.
func (s *SelectionSet) Toggle(i int) {
	if i < 0 || i >= len(s.flags) {
		return
	}
	s.flags[i] = !s.flags[i]
}

// Set sets the selection flag at index i. Out-of-range indices are no-ops.
func (s *SelectionSet) Set(i int, selected bool) {
	if i < 0 || i >= len(s.flags) {
		return
	}
	s.flags[i] = selected
}

// IsSelected reports whether index i is selected.
func (s *SelectionSet) IsSelected(i int) bool {
	if i < 0 || i >= len(s.flags) {
		return false
	}
	return s.flags[i]
}

// SelectAll marks every entry selected.
func (s *SelectionSet) SelectAll() {
	for i := range s.flags {
		s.flags[i] = true
	}
}

// SelectNone clears every selection flag.
func (s *SelectionSet) SelectNone() {
	for i := range s.flags {
		s.flags[i] = false
	}
}

// Count returns the number of selected entries.
func (s *SelectionSet) Count() int {
	n := 0
	for _, f := range s.flags {
		if f {
			n++
		}
	}
	return n
}

// Selected returns the selected subsequence of entries, in display order.
// The entries slice must be the displayed catalog the set was reset against.
func (s *SelectionSet) Selected(entries []Identifier) []Identifier {
	selected := make([]Identifier, 0, s.Count())
	for i, entry := range entries {
		if i < len(s.flags) && s.flags[i] {
			selected = append(selected, entry)
		}
	}
	return selected
}
