package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const uniqueViolationCode = "23505"

// UniqueViolation reports whether err is a unique constraint violation and
// returns the constraint detail supplied by the driver.
func UniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return detailOr(pgErr.Detail, pgErr.Message), true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return detailOr(pqErr.Detail, pqErr.Message), true
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "duplicated key not allowed", true
	}
	return "", false
}

// IsNotFound wraps the gorm sentinel so callers don't depend on gorm directly
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func detailOr(detail, message string) string {
	if detail != "" {
		return detail
	}
	return message
}
