package service

import (
	"fmt"

	"go-catalog-api/internal/model"
	"go-catalog-api/pkg/slug"
	"go-catalog-api/pkg/validator"

	"github.com/lib/pq"
)

type CreateProductRequest struct {
	Title       string   `json:"title" validate:"required,notblank"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug" validate:"omitempty,notblank"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"required,dive,required"`
	Gender      string   `json:"gender" validate:"required,notblank"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// UpdateProductRequest is a partial update: nil fields keep their stored
// value. Images distinguishes absent (nil, keep the current set) from an
// empty list (clear every image).
type UpdateProductRequest struct {
	Title       *string  `json:"title" validate:"omitempty,notblank"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Slug        *string  `json:"slug" validate:"omitempty,notblank"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Sizes       []string `json:"sizes" validate:"omitempty,dive,required"`
	Gender      *string  `json:"gender" validate:"omitempty,notblank"`
	Tags        []string `json:"tags" validate:"omitempty,dive,required"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

// Pagination is nil-aware on Limit so an explicit limit=0 is rejected rather
// than mistaken for an absent one.
type Pagination struct {
	Limit  *int `query:"limit" validate:"omitempty,gt=0"`
	Offset int  `query:"offset" validate:"omitempty,gte=0"`
}

func validateRequest(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: Field '%s' failed on tag '%s'", ErrInvalidRequest, firstErr.FailedField, firstErr.Tag)
	}
	return nil
}

func (r *CreateProductRequest) toProduct() *model.Product {
	product := &model.Product{
		Title:       r.Title,
		Description: r.Description,
		Sizes:       pq.StringArray(r.Sizes),
		Gender:      r.Gender,
		Tags:        pq.StringArray(r.Tags),
	}
	if r.Price != nil {
		product.Price = *r.Price
	}
	if r.Stock != nil {
		product.Stock = *r.Stock
	}

	override := ""
	if r.Slug != nil {
		override = *r.Slug
	}
	product.Slug = slug.FromTitle(r.Title, override)
	product.FillDefaults()
	return product
}

// applyTo merges the patch onto product and re-normalizes the slug. The slug
// follows an explicit override first, then a new title, and otherwise the
// stored value is normalized again.
func (r *UpdateProductRequest) applyTo(product *model.Product) {
	if r.Title != nil {
		product.Title = *r.Title
	}
	if r.Price != nil {
		product.Price = *r.Price
	}
	if r.Description != nil {
		product.Description = r.Description
	}
	if r.Stock != nil {
		product.Stock = *r.Stock
	}
	if r.Sizes != nil {
		product.Sizes = pq.StringArray(r.Sizes)
	}
	if r.Gender != nil {
		product.Gender = *r.Gender
	}
	if r.Tags != nil {
		product.Tags = pq.StringArray(r.Tags)
	}

	switch {
	case r.Slug != nil:
		product.Slug = slug.Normalize(*r.Slug)
	case r.Title != nil:
		product.Slug = slug.Normalize(*r.Title)
	default:
		product.Slug = slug.Normalize(product.Slug)
	}
	product.FillDefaults()
}
