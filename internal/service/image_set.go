package service

import (
	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageSet owns the lifecycle of a product's images. Images are never patched
// one by one: they are built with the product, replaced wholesale, or removed
// with it.
type ImageSet struct {
	repo repository.ImageRepository
}

func NewImageSet(repo repository.ImageRepository) *ImageSet {
	return &ImageSet{repo: repo}
}

// Build creates unsaved images in input order. Duplicate URLs are kept.
func (m *ImageSet) Build(productID uuid.UUID, urls []string) []model.ProductImage {
	images := make([]model.ProductImage, len(urls))
	for i, url := range urls {
		images[i] = model.ProductImage{URL: url, Position: i, ProductID: productID}
	}
	return images
}

// Replace deletes every stored image of the product and returns the new,
// unsaved set. It must run on the caller's transaction so the delete and the
// following save commit or roll back together.
func (m *ImageSet) Replace(tx *gorm.DB, productID uuid.UUID, urls []string) ([]model.ProductImage, error) {
	if err := m.repo.DeleteByProduct(tx, productID); err != nil {
		return nil, err
	}
	return m.Build(productID, urls), nil
}

// LoadExisting returns the stored images unchanged, ordered by position
func (m *ImageSet) LoadExisting(tx *gorm.DB, productID uuid.UUID) ([]model.ProductImage, error) {
	return m.repo.FindByProduct(tx, productID)
}

// RemoveAll is the explicit cascade step of the delete path
func (m *ImageSet) RemoveAll(tx *gorm.DB, productID uuid.UUID) error {
	return m.repo.DeleteByProduct(tx, productID)
}
