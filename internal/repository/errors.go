package repository

import (
	"errors"
	"fmt"
	"strings"

	"equipecho/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrUnknownColumn = errors.New("unknown column")

// classify maps driver and gorm errors onto the domain error set.
func classify(op, table string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrNotFound)
	case isUniqueConstraintError(err):
		return fmt.Errorf("%s %s: %w", op, table, domain.ErrConflict)
	case isForeignKeyError(err):
		return fmt.Errorf("%s %s: referenced row %w", op, table, domain.ErrNotFound)
	}
	return &domain.StoreError{Op: op, Table: table, Err: err}
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate key")
}

func isForeignKeyError(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}
