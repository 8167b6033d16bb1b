package model

import (
	"time"

	"gorm.io/datatypes"
)

// Industry is one taxonomy row; Niches holds the ordered niche names as a
// JSON array.
type Industry struct {
	Id        uint           `gorm:"primaryKey"`
	Name      string         `gorm:"type:varchar(255);not null;uniqueIndex"`
	Position  int            `gorm:"not null;index"`
	Niches    datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (Industry) TableName() string {
	return "industries"
}
