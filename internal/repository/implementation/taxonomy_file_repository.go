package implementation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"niche-picker-be/internal/entity"
	"niche-picker-be/internal/repository/contract"
	"niche-picker-be/pkg/selection"

	"gopkg.in/yaml.v3"
)

// FileTaxonomyRepository reads the static taxonomy document: a JSON or YAML
// list of {industry, niches} records, or an object mapping industry to its
// niche list (the generated data.json shape). YAML is chosen by the
// .yaml/.yml extension; anything else is parsed as JSON.
type FileTaxonomyRepository struct {
	path string
}

func NewFileTaxonomyRepository(path string) contract.TaxonomyRepository {
	return &FileTaxonomyRepository{path: path}
}

func (r *FileTaxonomyRepository) Load(ctx context.Context) ([]entity.Industry, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read taxonomy %s: %w", r.path, err)
	}
	records, err := ParseTaxonomyDocument(data, filepath.Ext(r.path))
	if err != nil {
		return nil, fmt.Errorf("parse taxonomy %s: %w", r.path, err)
	}
	return records, nil
}

// ParseTaxonomyDocument decodes a taxonomy document. ext selects the format
// (".yaml"/".yml" or JSON otherwise). Both formats accept the record list and
// the industry -> niches object; object key order is kept.
func ParseTaxonomyDocument(data []byte, ext string) ([]entity.Industry, error) {
	var (
		records []entity.Industry
		err     error
	)
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		records, err = parseYAML(data)
	default:
		records, err = parseJSON(data)
	}
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Niches == nil {
			records[i].Niches = []string{}
		}
	}
	return records, nil
}

func parseJSON(data []byte) ([]entity.Industry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		m := selection.New()
		if err := m.UnmarshalJSON(trimmed); err != nil {
			return nil, err
		}
		return fromModel(m), nil
	}

	var records []entity.Industry
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

func parseYAML(data []byte) ([]entity.Industry, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return []entity.Industry{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		var records []entity.Industry
		if err := doc.Decode(&records); err != nil {
			return nil, err
		}
		return records, nil
	}

	records := make([]entity.Industry, 0, len(doc.Content)/2)
	for i := 0; i+1 < len(doc.Content); i += 2 {
		var niches []string
		if err := doc.Content[i+1].Decode(&niches); err != nil {
			return nil, fmt.Errorf("industry %q: %w", doc.Content[i].Value, err)
		}
		records = append(records, entity.Industry{Name: doc.Content[i].Value, Niches: niches})
	}
	return records, nil
}

func fromModel(m *selection.Model) []entity.Industry {
	records := make([]entity.Industry, 0, m.Len())
	for _, industry := range m.Industries() {
		records = append(records, entity.Industry{Name: industry, Niches: m.Niches(industry)})
	}
	return records
}
