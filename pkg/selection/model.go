// Package selection holds the picker's selection state and the pure transforms
// around it: the query-parameter codec and the row/JSON/CSV exports.
//
// Nothing in this package performs I/O or keeps global state. A Model is
// created by the caller (usually by Decode), replaced wholesale on every widget
// emission, and read by Encode and the export functions.
package selection

// Model maps industry names to the ordered set of niches selected for them.
// Industries keep insertion order. An industry with no niches is a valid entry
// meaning "industry picked, no niches yet". Niche names are never checked
// against a taxonomy.
//
// The zero value is an empty, usable Model.
type Model struct {
	order  []string
	niches map[string][]string
}

// New returns an empty Model.
func New() *Model {
	return &Model{niches: make(map[string][]string)}
}

func (m *Model) init() {
	if m.niches == nil {
		m.niches = make(map[string][]string)
	}
}

// Set replaces the niche set of industry. A new industry is appended to the
// end of the industry order; an existing one keeps its position. Duplicate
// niches collapse to their first occurrence.
func (m *Model) Set(industry string, niches ...string) {
	m.init()
	if _, ok := m.niches[industry]; !ok {
		m.order = append(m.order, industry)
	}
	m.niches[industry] = dedupe(niches)
}

// Get returns a copy of the niches selected for industry.
func (m *Model) Get(industry string) ([]string, bool) {
	if m == nil || m.niches == nil {
		return nil, false
	}
	ns, ok := m.niches[industry]
	if !ok {
		return nil, false
	}
	out := make([]string, len(ns))
	copy(out, ns)
	return out, true
}

// Niches is Get without the presence flag.
func (m *Model) Niches(industry string) []string {
	ns, _ := m.Get(industry)
	return ns
}

func (m *Model) Has(industry string) bool {
	if m == nil || m.niches == nil {
		return false
	}
	_, ok := m.niches[industry]
	return ok
}

// HasNiche reports whether niche is selected under industry.
func (m *Model) HasNiche(industry, niche string) bool {
	if m == nil || m.niches == nil {
		return false
	}
	for _, n := range m.niches[industry] {
		if n == niche {
			return true
		}
	}
	return false
}

// Industries returns the industry names in insertion order.
func (m *Model) Industries() []string {
	if m == nil {
		return []string{}
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

func (m *Model) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

func (m *Model) IsEmpty() bool {
	return m.Len() == 0
}

// Count is the total number of selected niches across all industries.
func (m *Model) Count() int {
	if m == nil {
		return 0
	}
	total := 0
	for _, ns := range m.niches {
		total += len(ns)
	}
	return total
}

// Remove deselects industry entirely.
func (m *Model) Remove(industry string) {
	if !m.Has(industry) {
		return
	}
	delete(m.niches, industry)
	for i, name := range m.order {
		if name == industry {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// Clone returns a deep copy.
func (m *Model) Clone() *Model {
	out := New()
	if m == nil {
		return out
	}
	for _, industry := range m.order {
		out.Set(industry, m.niches[industry]...)
	}
	return out
}

// Equal compares industry sets and per-industry niche sets. Order is ignored
// on both levels.
func (m *Model) Equal(other *Model) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, industry := range m.Industries() {
		theirs, ok := other.Get(industry)
		if !ok {
			return false
		}
		ours := m.Niches(industry)
		if len(ours) != len(theirs) {
			return false
		}
		set := make(map[string]struct{}, len(theirs))
		for _, n := range theirs {
			set[n] = struct{}{}
		}
		for _, n := range ours {
			if _, ok := set[n]; !ok {
				return false
			}
		}
	}
	return true
}

// Map materializes the model as a plain map. Order is lost.
func (m *Model) Map() map[string][]string {
	out := make(map[string][]string, m.Len())
	for _, industry := range m.Industries() {
		out[industry] = m.Niches(industry)
	}
	return out
}

func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
