package repository

import (
	"go-catalog-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ImageRepository interface {
	FindByProduct(tx *gorm.DB, productID uuid.UUID) ([]model.ProductImage, error)
	DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error
}

type imageRepo struct {
	db *gorm.DB
}

func NewImageRepo(db *gorm.DB) ImageRepository {
	return &imageRepo{db}
}

// conn prefers the caller's transaction and falls back to the pool
func (r *imageRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *imageRepo) FindByProduct(tx *gorm.DB, productID uuid.UUID) ([]model.ProductImage, error) {
	images := []model.ProductImage{}
	err := r.conn(tx).Where("product_id = ?", productID).Order("position ASC").Find(&images).Error
	return images, err
}

func (r *imageRepo) DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error {
	return r.conn(tx).Where("product_id = ?", productID).Delete(&model.ProductImage{}).Error
}
