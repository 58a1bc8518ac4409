package service

import (
	"context"
	"fmt"

	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/ws"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error)
	FindAll(ctx context.Context, page Pagination) ([]model.Product, error)
	FindOne(ctx context.Context, term string) (*model.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*model.Product, error)
	DeleteProduct(ctx context.Context, term string) error
	DeleteAllProducts(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*repository.CatalogStats, error)
}

// Notifier receives an event after every committed catalog change
type Notifier interface {
	Notify(event ws.CatalogEvent)
}

type Options struct {
	DefaultPageSize int
	MaxPageSize     int
}

type catalogService struct {
	productRepo repository.ProductRepository
	images      *ImageSet
	tx          repository.Transactor
	notifier    Notifier
	log         *logrus.Logger
	opts        Options
}

func NewCatalogService(
	pRepo repository.ProductRepository,
	iRepo repository.ImageRepository,
	tx repository.Transactor,
	notifier Notifier,
	log *logrus.Logger,
	opts Options,
) CatalogService {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 10
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	return &catalogService{
		productRepo: pRepo,
		images:      NewImageSet(iRepo),
		tx:          tx,
		notifier:    notifier,
		log:         log,
		opts:        opts,
	}
}

func (s *catalogService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product := req.toProduct()
	product.Images = s.images.Build(uuid.Nil, req.Images)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, s.handleDBError("create_product", err, logrus.Fields{"title": product.Title})
	}

	s.notify(ws.ActionProductCreated, product, fmt.Sprintf("product '%s' created", product.Title))
	return product, nil
}

func (s *catalogService) FindAll(ctx context.Context, page Pagination) ([]model.Product, error) {
	if err := validateRequest(&page); err != nil {
		return nil, err
	}

	limit := s.opts.DefaultPageSize
	if page.Limit != nil {
		limit = *page.Limit
	}
	if limit > s.opts.MaxPageSize {
		limit = s.opts.MaxPageSize
	}

	products, err := s.productRepo.FindPage(ctx, limit, page.Offset)
	if err != nil {
		return nil, s.handleDBError("find_products", err, logrus.Fields{"limit": limit, "offset": page.Offset})
	}
	for i := range products {
		products[i].FillDefaults()
	}
	return products, nil
}

func (s *catalogService) FindOne(ctx context.Context, term string) (*model.Product, error) {
	return s.resolve(ctx, repository.ParseLookupKey(term))
}

// resolve dispatches on the key kind: identifiers go to the primary key path,
// everything else to the title/slug path.
func (s *catalogService) resolve(ctx context.Context, key repository.LookupKey) (*model.Product, error) {
	var (
		product *model.Product
		err     error
	)
	switch key.Kind {
	case repository.KeyID:
		product, err = s.productRepo.FindByID(ctx, key.ID)
	default:
		product, err = s.productRepo.FindByNaturalKey(ctx, key.Natural)
	}

	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return nil, s.handleDBError("find_product", err, logrus.Fields{"key": key.String()})
	}
	product.FillDefaults()
	return product, nil
}

// UpdateProduct merges req onto the stored product and persists it together
// with its image set in one transaction. When req.Images is nil the stored
// images are reattached unchanged; otherwise they are replaced by req.Images.
// Nothing from a failed call is visible afterwards.
func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*model.Product, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	// 1. Cari product sebelum transaksi dibuka
	product, err := s.resolve(ctx, repository.LookupKey{Kind: repository.KeyID, ID: id})
	if err != nil {
		return nil, err
	}

	// 2. Merge fields, slug is always normalized again
	req.applyTo(product)

	// 3. Gunakan Transaction Block
	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var images []model.ProductImage
		var err error
		if req.Images != nil {
			images, err = s.images.Replace(tx, product.ID, req.Images)
		} else {
			images, err = s.images.LoadExisting(tx, product.ID)
		}
		if err != nil {
			return err
		}
		product.Images = images

		return s.productRepo.Save(tx, product)
	})
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, s.handleDBError("update_product", err, logrus.Fields{"product_id": id})
	}

	product.FillDefaults()
	s.notify(ws.ActionProductUpdated, product, fmt.Sprintf("product '%s' updated", product.Title))
	return product, nil
}

func (s *catalogService) DeleteProduct(ctx context.Context, term string) error {
	product, err := s.resolve(ctx, repository.ParseLookupKey(term))
	if err != nil {
		return err
	}

	err = s.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.images.RemoveAll(tx, product.ID); err != nil {
			return err
		}
		return s.productRepo.Delete(tx, product.ID)
	})
	if err != nil {
		return s.handleDBError("delete_product", err, logrus.Fields{"product_id": product.ID})
	}

	s.notify(ws.ActionProductDeleted, product, fmt.Sprintf("product '%s' deleted", product.Title))
	return nil
}

func (s *catalogService) DeleteAllProducts(ctx context.Context) (int64, error) {
	removed, err := s.productRepo.DeleteAll(ctx)
	if err != nil {
		return 0, s.handleDBError("delete_all_products", err, nil)
	}

	if s.notifier != nil {
		s.notifier.Notify(ws.CatalogEvent{
			Action:  ws.ActionCatalogPurged,
			Message: fmt.Sprintf("%d products removed", removed),
		})
	}
	return removed, nil
}

func (s *catalogService) Stats(ctx context.Context) (*repository.CatalogStats, error) {
	stats, err := s.productRepo.Stats(ctx)
	if err != nil {
		return nil, s.handleDBError("catalog_stats", err, nil)
	}
	return stats, nil
}

// handleDBError turns unique violations into a ValidationError carrying the
// constraint detail. Anything else is logged and replaced by ErrPersistence.
func (s *catalogService) handleDBError(op string, err error, fields logrus.Fields) error {
	if detail, ok := repository.UniqueViolation(err); ok {
		return &ValidationError{Detail: detail, Err: err}
	}

	s.log.WithFields(fields).WithField("op", op).WithError(err).Error("Catalog store failure")
	return ErrPersistence
}

func (s *catalogService) notify(action string, product *model.Product, message string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ws.CatalogEvent{
		Action:    action,
		ProductID: product.ID,
		Title:     product.Title,
		Slug:      product.Slug,
		Message:   message,
	})
}
