package model

import (
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Title       string         `gorm:"type:text;uniqueIndex;not null" json:"title"`
	Price       float64        `gorm:"type:float;default:0" json:"price"`
	Description *string        `gorm:"type:text" json:"description"`
	Slug        string         `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	Stock       int            `gorm:"default:0" json:"stock"`
	Sizes       pq.StringArray `gorm:"type:text[];not null" json:"sizes"`
	Gender      string         `gorm:"type:text;not null" json:"gender"`
	Tags        pq.StringArray `gorm:"type:text[];not null;default:'{}'" json:"tags"`

	// Relasi, ordered by ProductImage.Position
	Images []ProductImage `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images"`
}

// FillDefaults replaces nil collections with empty ones so they are stored as
// '{}' instead of NULL.
func (p *Product) FillDefaults() {
	if p.Sizes == nil {
		p.Sizes = pq.StringArray{}
	}
	if p.Tags == nil {
		p.Tags = pq.StringArray{}
	}
	if p.Images == nil {
		p.Images = []ProductImage{}
	}
}

// ImageURLs flattens the image collection to its URLs, keeping order
func (p *Product) ImageURLs() []string {
	urls := make([]string, len(p.Images))
	for i, img := range p.Images {
		urls[i] = img.URL
	}
	return urls
}
