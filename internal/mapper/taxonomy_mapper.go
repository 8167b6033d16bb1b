package mapper

import (
	"encoding/json"

	"niche-picker-be/internal/entity"
	"niche-picker-be/internal/model"

	"gorm.io/datatypes"
)

type TaxonomyMapper struct{}

func NewTaxonomyMapper() *TaxonomyMapper {
	return &TaxonomyMapper{}
}

// ToEntity tolerates a malformed niches column by treating it as empty.
func (m *TaxonomyMapper) ToEntity(i *model.Industry) *entity.Industry {
	if i == nil {
		return nil
	}
	niches := []string{}
	if len(i.Niches) > 0 {
		if err := json.Unmarshal(i.Niches, &niches); err != nil {
			niches = []string{}
		}
	}
	return &entity.Industry{
		Name:   i.Name,
		Niches: niches,
	}
}

func (m *TaxonomyMapper) ToModel(i *entity.Industry, position int) *model.Industry {
	if i == nil {
		return nil
	}
	niches := i.Niches
	if niches == nil {
		niches = []string{}
	}
	raw, _ := json.Marshal(niches)
	return &model.Industry{
		Name:     i.Name,
		Position: position,
		Niches:   datatypes.JSON(raw),
	}
}

func (m *TaxonomyMapper) ToEntities(rows []*model.Industry) []entity.Industry {
	out := make([]entity.Industry, 0, len(rows))
	for _, r := range rows {
		if e := m.ToEntity(r); e != nil {
			out = append(out, *e)
		}
	}
	return out
}
