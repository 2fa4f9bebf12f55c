package repository

import (
	"context"
	"strings"

	"equipecho/internal/domain"

	"gorm.io/gorm"
)

// LookupRepository stores one named lookup list (sectors or responsibles).
type LookupRepository struct {
	*Table[domain.LookupEntry]
}

func NewLookupRepository(db *gorm.DB, table string) *LookupRepository {
	return &LookupRepository{
		Table: NewTable[domain.LookupEntry](db, table, "id", "name", "created_at"),
	}
}

func (r *LookupRepository) ListByName(ctx context.Context) ([]domain.LookupEntry, error) {
	return r.List(ctx, Asc("name"), Asc("id"))
}

func (r *LookupRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Table(r.name).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error
	if err != nil {
		return false, classify("exists", r.name, err)
	}
	return count > 0, nil
}
