package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor opens a database transaction and hands the handle to fn. The
// transaction commits when fn returns nil and rolls back on error or panic;
// the connection is released on every path.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTransactor struct {
	db *gorm.DB
}

func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db}
}

func (t *gormTransactor) WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return t.db.WithContext(ctx).Transaction(fn)
}
