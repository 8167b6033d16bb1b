package implementation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"niche-picker-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileTaxonomyRepositoryJSON(t *testing.T) {
	path := writeFile(t, "data.json", `[
		{"industry": "Retail", "niches": ["Shoes", "Home, Garden"]},
		{"industry": "Tech"}
	]`)

	got, err := NewFileTaxonomyRepository(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Industry{
		{Name: "Retail", Niches: []string{"Shoes", "Home, Garden"}},
		{Name: "Tech", Niches: []string{}},
	}, got)
}

func TestFileTaxonomyRepositoryYAML(t *testing.T) {
	path := writeFile(t, "taxonomy.yaml", `
- industry: Food & Beverage
  niches:
    - Coffee
    - Tea
- industry: Tech
  niches: [SaaS]
`)

	got, err := NewFileTaxonomyRepository(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Industry{
		{Name: "Food & Beverage", Niches: []string{"Coffee", "Tea"}},
		{Name: "Tech", Niches: []string{"SaaS"}},
	}, got)
}

func TestFileTaxonomyRepositoryErrors(t *testing.T) {
	_, err := NewFileTaxonomyRepository(filepath.Join(t.TempDir(), "missing.json")).Load(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := writeFile(t, "data.json", `"not a taxonomy"`)
	_, err = NewFileTaxonomyRepository(bad).Load(context.Background())
	assert.Error(t, err)

	badYAML := writeFile(t, "taxonomy.yml", "Retail:\n  nested: map\n")
	_, err = NewFileTaxonomyRepository(badYAML).Load(context.Background())
	assert.ErrorContains(t, err, `industry "Retail"`)
}

func TestFileTaxonomyRepositoryObjectForm(t *testing.T) {
	path := writeFile(t, "data.json", `{"Tech": ["SaaS", "AI"], "Retail": ["Shoes"], "Empty": []}`)

	got, err := NewFileTaxonomyRepository(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Industry{
		{Name: "Tech", Niches: []string{"SaaS", "AI"}},
		{Name: "Retail", Niches: []string{"Shoes"}},
		{Name: "Empty", Niches: []string{}},
	}, got)

	yamlPath := writeFile(t, "taxonomy.yaml", "Tech:\n  - SaaS\nRetail: [Shoes, Apparel]\n")
	got, err = NewFileTaxonomyRepository(yamlPath).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []entity.Industry{
		{Name: "Tech", Niches: []string{"SaaS"}},
		{Name: "Retail", Niches: []string{"Shoes", "Apparel"}},
	}, got)
}
