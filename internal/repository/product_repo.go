package repository

import (
	"context"
	"strings"

	"go-catalog-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindByNaturalKey(ctx context.Context, key string) (*model.Product, error)
	FindPage(ctx context.Context, limit, offset int) ([]model.Product, error)
	Save(tx *gorm.DB, product *model.Product) error
	Delete(tx *gorm.DB, id uuid.UUID) error
	DeleteAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*CatalogStats, error)
}

// CatalogStats untuk overview stats
type CatalogStats struct {
	TotalProducts  int64   `json:"total_products"`
	OutOfStock     int64   `json:"out_of_stock"`
	TotalImages    int64   `json:"total_images"`
	TotalValuation float64 `json:"total_valuation"`
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func preloadImages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the product and its images in one statement batch
func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Preload("Images", preloadImages).First(&product, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByNaturalKey matches the title case-insensitively or the slug exactly.
// Title and slug are unique, so at most one row is expected; the oldest wins
// if the store was ever modified around the constraints.
func (r *productRepo) FindByNaturalKey(ctx context.Context, key string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Where("UPPER(title) = ? OR slug = ?", strings.ToUpper(key), strings.ToLower(key)).
		Order("created_at ASC").
		Take(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) FindPage(ctx context.Context, limit, offset int) ([]model.Product, error) {
	products := []model.Product{}
	err := r.db.WithContext(ctx).
		Preload("Images", preloadImages).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error
	return products, err
}

// Save menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi. Every
// column is written, and images without an ID are inserted. It never inserts
// the product itself: a row that vanished returns gorm.ErrRecordNotFound.
// Deleting images is the caller's job.
func (r *productRepo) Save(tx *gorm.DB, product *model.Product) error {
	res := tx.Model(product).Select("*").Omit("created_at", clause.Associations).Updates(product)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	for i := range product.Images {
		img := &product.Images[i]
		if img.ID != uuid.Nil {
			continue
		}
		img.ProductID = product.ID
		if err := tx.Create(img).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *productRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	return tx.Delete(&model.Product{}, "id = ?", id).Error
}

// DeleteAll wipes the catalog and returns how many products were removed
func (r *productRepo) DeleteAll(ctx context.Context) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		global := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		if err := global.Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		res := global.Delete(&model.Product{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	return removed, err
}

func (r *productRepo) Stats(ctx context.Context) (*CatalogStats, error) {
	var stats CatalogStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Product{}).Where("stock = ?", 0).Count(&stats.OutOfStock).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.ProductImage{}).Count(&stats.TotalImages).Error; err != nil {
		return nil, err
	}
	// Total Valuation (SUM of stock * price)
	if err := db.Model(&model.Product{}).Select("COALESCE(SUM(stock * price), 0)").Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
