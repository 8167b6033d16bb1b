package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTaxonomyNormalizes(t *testing.T) {
	tax := NewTaxonomy([]Industry{
		{Name: "Retail", Niches: []string{"Shoes", "Apparel", "Shoes"}},
		{Name: "", Niches: []string{"orphan"}},
		{Name: "Tech", Niches: []string{"SaaS"}},
		{Name: "Retail", Niches: []string{"Ignored"}},
	})

	assert.Equal(t, 2, tax.Len())
	assert.Equal(t, []Industry{
		{Name: "Retail", Niches: []string{"Shoes", "Apparel"}},
		{Name: "Tech", Niches: []string{"SaaS"}},
	}, tax.Industries)

	ind, ok := tax.Find("Tech")
	assert.True(t, ok)
	assert.Equal(t, "Tech", ind.Name)

	assert.Equal(t, 2, tax.NicheCount("Retail"))
	assert.Equal(t, 0, tax.NicheCount("Unknown"))
}

func TestNilTaxonomy(t *testing.T) {
	var tax *Taxonomy
	_, ok := tax.Find("Retail")
	assert.False(t, ok)
	assert.Equal(t, 0, tax.Len())
}
