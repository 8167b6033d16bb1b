package selection

// The picker widget owns interaction, but the host needs the same edits for its
// command endpoint. Each helper returns a new Model and leaves the receiver
// untouched, so every result is a complete replacement emission.

// Status summarizes how much of an industry's niche list is selected.
type Status string

const (
	StatusAll     Status = "All"
	StatusNone    Status = "None"
	StatusPartial Status = "Partial"
)

// ToggleNiche flips niche under industry. The industry is added if absent.
func (m *Model) ToggleNiche(industry, niche string) *Model {
	next := m.Clone()
	current := next.Niches(industry)
	if next.HasNiche(industry, niche) {
		kept := make([]string, 0, len(current))
		for _, n := range current {
			if n != niche {
				kept = append(kept, n)
			}
		}
		next.Set(industry, kept...)
		return next
	}
	next.Set(industry, append(current, niche)...)
	return next
}

// SelectAll selects every niche given for industry, replacing what was there.
func (m *Model) SelectAll(industry string, niches []string) *Model {
	next := m.Clone()
	next.Set(industry, niches...)
	return next
}

// Clear keeps industry picked with an empty niche set.
func (m *Model) Clear(industry string) *Model {
	next := m.Clone()
	next.Set(industry)
	return next
}

// Without returns a copy with industry deselected.
func (m *Model) Without(industry string) *Model {
	next := m.Clone()
	next.Remove(industry)
	return next
}

// StatusOf compares the selected count for industry against total, the number
// of niches the taxonomy lists for it.
func (m *Model) StatusOf(industry string, total int) Status {
	selected := len(m.Niches(industry))
	switch {
	case selected == total:
		return StatusAll
	case selected == 0:
		return StatusNone
	default:
		return StatusPartial
	}
}
