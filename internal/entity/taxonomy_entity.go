package entity

// Industry is a top-level taxonomy category with its ordered niche list.
type Industry struct {
	Name   string   `json:"industry" yaml:"industry"`
	Niches []string `json:"niches" yaml:"niches"`
}

// Taxonomy is the read-only, ordered list of industries shown by the picker.
type Taxonomy struct {
	Industries []Industry
	index      map[string]int
}

// NewTaxonomy normalizes raw records: blank industry names are skipped, a
// repeated industry keeps its first occurrence, and repeated niches within an
// industry collapse.
func NewTaxonomy(records []Industry) *Taxonomy {
	t := &Taxonomy{
		Industries: make([]Industry, 0, len(records)),
		index:      make(map[string]int, len(records)),
	}
	for _, r := range records {
		if r.Name == "" {
			continue
		}
		if _, dup := t.index[r.Name]; dup {
			continue
		}
		seen := make(map[string]struct{}, len(r.Niches))
		niches := make([]string, 0, len(r.Niches))
		for _, n := range r.Niches {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			niches = append(niches, n)
		}
		t.index[r.Name] = len(t.Industries)
		t.Industries = append(t.Industries, Industry{Name: r.Name, Niches: niches})
	}
	return t
}

func (t *Taxonomy) Find(name string) (Industry, bool) {
	if t == nil {
		return Industry{}, false
	}
	i, ok := t.index[name]
	if !ok {
		return Industry{}, false
	}
	return t.Industries[i], true
}

func (t *Taxonomy) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Industries)
}

// NicheCount is the total number of niches listed for an industry; 0 when the
// industry is not in the taxonomy.
func (t *Taxonomy) NicheCount(name string) int {
	ind, ok := t.Find(name)
	if !ok {
		return 0
	}
	return len(ind.Niches)
}
