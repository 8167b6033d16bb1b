package selection

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
)

const (
	JSONFileName = "selections.json"
	CSVFileName  = "selections.csv"
	JSONMimeType = "application/json"
	CSVMimeType  = "text/csv"
)

// Row is one (industry, niche) pair of the flat summary. Niche is empty when
// the industry is picked without any niche.
type Row struct {
	Industry string `json:"industry"`
	Niche    string `json:"niche"`
}

// ToRows flattens m in model order. An empty model yields an empty, non-nil
// slice, which callers render as the "nothing picked" state.
func ToRows(m *Model) []Row {
	rows := make([]Row, 0, m.Count()+m.Len())
	for _, industry := range m.Industries() {
		niches := m.Niches(industry)
		if len(niches) == 0 {
			rows = append(rows, Row{Industry: industry})
			continue
		}
		for _, n := range niches {
			rows = append(rows, Row{Industry: industry, Niche: n})
		}
	}
	return rows
}

// ToJSON renders the download document: industry -> niche list, model order,
// two-space indent.
func ToJSON(m *Model) (string, error) {
	compact, err := m.MarshalJSON()
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

// ToCSV renders rows with an "industry,niche" header and standard quoting.
func ToCSV(rows []Row) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"industry", "niche"}); err != nil {
		return "", err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Industry, r.Niche}); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
