package dto

type TaxonomyIndustry struct {
	Industry string   `json:"industry"`
	Niches   []string `json:"niches"`
}

type TaxonomyResponse struct {
	Industries []TaxonomyIndustry `json:"industries"`
}
