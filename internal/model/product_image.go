package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductImage belongs to exactly one Product and is removed with it
type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;" json:"id"`
	URL       string    `gorm:"type:text;not null" json:"url"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
}

func (img *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if img.ID == uuid.Nil {
		img.ID = uuid.New()
	}
	return
}
