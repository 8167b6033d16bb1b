package specification

import "gorm.io/gorm"

// Specification narrows or orders a taxonomy query
type Specification interface {
	Apply(db *gorm.DB) *gorm.DB
}

// ByIndustryName filters taxonomy rows by exact industry name
type ByIndustryName struct {
	Name string
}

func (s ByIndustryName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// OrderByPosition keeps the document order the taxonomy was seeded with
type OrderByPosition struct{}

func (s OrderByPosition) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}
