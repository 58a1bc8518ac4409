package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"time"

	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/ws"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// memStore mimics the two catalog tables. Deleting a product does not cascade
// to its images, so tests can see whether the service removes them itself.
type memStore struct {
	products map[uuid.UUID]model.Product
	images   []model.ProductImage
	clock    time.Time

	failSave         error
	failDeleteImages error
}

func newMemStore() *memStore {
	return &memStore{
		products: map[uuid.UUID]model.Product{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func cloneProduct(p model.Product) model.Product {
	p.Sizes = append(pq.StringArray{}, p.Sizes...)
	p.Tags = append(pq.StringArray{}, p.Tags...)
	p.Images = nil
	return p
}

func (s *memStore) clone() *memStore {
	c := *s
	c.products = make(map[uuid.UUID]model.Product, len(s.products))
	for id, p := range s.products {
		c.products[id] = cloneProduct(p)
	}
	c.images = append([]model.ProductImage{}, s.images...)
	return &c
}

func (s *memStore) restore(from *memStore) {
	s.products = from.products
	s.images = from.images
}

func (s *memStore) imagesOf(productID uuid.UUID) []model.ProductImage {
	images := []model.ProductImage{}
	for _, img := range s.images {
		if img.ProductID == productID {
			images = append(images, img)
		}
	}
	sort.SliceStable(images, func(i, j int) bool { return images[i].Position < images[j].Position })
	return images
}

func (s *memStore) load(id uuid.UUID) *model.Product {
	p := cloneProduct(s.products[id])
	p.Images = s.imagesOf(id)
	return &p
}

func (s *memStore) checkUnique(product *model.Product) error {
	for id, other := range s.products {
		if id == product.ID {
			continue
		}
		if other.Title == product.Title {
			return &pgconn.PgError{Code: "23505", Detail: "Key (title)=(" + product.Title + ") already exists."}
		}
		if other.Slug == product.Slug {
			return &pgconn.PgError{Code: "23505", Detail: "Key (slug)=(" + product.Slug + ") already exists."}
		}
	}
	return nil
}

func (s *memStore) upsertImages(product *model.Product) {
	for i := range product.Images {
		img := &product.Images[i]
		img.ProductID = product.ID
		if img.ID == uuid.Nil {
			img.ID = uuid.New()
			s.images = append(s.images, *img)
			continue
		}
		found := false
		for j := range s.images {
			if s.images[j].ID == img.ID {
				s.images[j].ProductID = img.ProductID
				found = true
			}
		}
		if !found {
			s.images = append(s.images, *img)
		}
	}
}

type memTransactor struct {
	store  *memStore
	opened int

	// beforeOpen runs just before a transaction starts, e.g. to commit a
	// competing change.
	beforeOpen func()
}

func (t *memTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if t.beforeOpen != nil {
		t.beforeOpen()
	}
	t.opened++
	snapshot := t.store.clone()
	if err := fn(nil); err != nil {
		t.store.restore(snapshot)
		return err
	}
	return nil
}

type memProductRepo struct {
	store *memStore
}

func (r *memProductRepo) Create(ctx context.Context, product *model.Product) error {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.store.checkUnique(product); err != nil {
		return err
	}
	r.store.clock = r.store.clock.Add(time.Second)
	product.CreatedAt = r.store.clock
	product.UpdatedAt = r.store.clock
	r.store.products[product.ID] = cloneProduct(*product)
	r.store.upsertImages(product)
	return nil
}

func (r *memProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	if _, ok := r.store.products[id]; !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.store.load(id), nil
}

func (r *memProductRepo) FindByNaturalKey(ctx context.Context, key string) (*model.Product, error) {
	var match *model.Product
	for id, p := range r.store.products {
		if strings.ToUpper(p.Title) == strings.ToUpper(key) || p.Slug == strings.ToLower(key) {
			if match == nil || p.CreatedAt.Before(match.CreatedAt) {
				match = r.store.load(id)
			}
		}
	}
	if match == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return match, nil
}

func (r *memProductRepo) FindPage(ctx context.Context, limit, offset int) ([]model.Product, error) {
	all := make([]model.Product, 0, len(r.store.products))
	for id := range r.store.products {
		all = append(all, *r.store.load(id))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })

	if offset >= len(all) {
		return []model.Product{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memProductRepo) Save(tx *gorm.DB, product *model.Product) error {
	if r.store.failSave != nil {
		return r.store.failSave
	}
	if _, ok := r.store.products[product.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if err := r.store.checkUnique(product); err != nil {
		return err
	}
	r.store.clock = r.store.clock.Add(time.Second)
	product.UpdatedAt = r.store.clock
	r.store.products[product.ID] = cloneProduct(*product)
	r.store.upsertImages(product)
	return nil
}

func (r *memProductRepo) Delete(tx *gorm.DB, id uuid.UUID) error {
	delete(r.store.products, id)
	return nil
}

func (r *memProductRepo) DeleteAll(ctx context.Context) (int64, error) {
	removed := int64(len(r.store.products))
	r.store.products = map[uuid.UUID]model.Product{}
	r.store.images = nil
	return removed, nil
}

func (r *memProductRepo) Stats(ctx context.Context) (*repository.CatalogStats, error) {
	stats := &repository.CatalogStats{
		TotalProducts: int64(len(r.store.products)),
		TotalImages:   int64(len(r.store.images)),
	}
	for _, p := range r.store.products {
		if p.Stock == 0 {
			stats.OutOfStock++
		}
		stats.TotalValuation += p.Price * float64(p.Stock)
	}
	return stats, nil
}

type memImageRepo struct {
	store *memStore
}

func (r *memImageRepo) FindByProduct(tx *gorm.DB, productID uuid.UUID) ([]model.ProductImage, error) {
	return r.store.imagesOf(productID), nil
}

func (r *memImageRepo) DeleteByProduct(tx *gorm.DB, productID uuid.UUID) error {
	if r.store.failDeleteImages != nil {
		return r.store.failDeleteImages
	}
	kept := r.store.images[:0:0]
	for _, img := range r.store.images {
		if img.ProductID != productID {
			kept = append(kept, img)
		}
	}
	r.store.images = kept
	return nil
}

type recordingNotifier struct {
	events []ws.CatalogEvent
}

func (n *recordingNotifier) Notify(event ws.CatalogEvent) {
	n.events = append(n.events, event)
}

func (n *recordingNotifier) actions() []string {
	actions := make([]string, len(n.events))
	for i, e := range n.events {
		actions[i] = e.Action
	}
	return actions
}

var errConnection = errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")

type fixture struct {
	store    *memStore
	tx       *memTransactor
	notifier *recordingNotifier
	svc      CatalogService
}

func newFixture() *fixture {
	store := newMemStore()
	tx := &memTransactor{store: store}
	notifier := &recordingNotifier{}
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	svc := NewCatalogService(
		&memProductRepo{store: store},
		&memImageRepo{store: store},
		tx,
		notifier,
		logger,
		Options{DefaultPageSize: 2, MaxPageSize: 3},
	)
	return &fixture{store: store, tx: tx, notifier: notifier, svc: svc}
}

func ptr[T any](v T) *T { return &v }
