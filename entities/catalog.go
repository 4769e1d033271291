package entities

import (
	"github.com/google/uuid"
)

type Tag struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name  string    `gorm:"uniqueIndex;not null" json:"name"`
	Color string    `gorm:"uniqueIndex;not null" json:"color"`
	Slug  string    `gorm:"uniqueIndex;not null" json:"slug"`
}

type Ingredient struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Name            string    `gorm:"not null;index;uniqueIndex:idx_name_unit" json:"name"`
	MeasurementUnit string    `gorm:"not null;uniqueIndex:idx_name_unit" json:"measurement_unit"`
}
