package repository

import (
	"context"

	"equipecho/internal/domain"

	"gorm.io/gorm"
)

var userSearchColumns = []string{"name", "email"}

type UserRepository struct {
	*Table[domain.User]
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		Table: NewTable[domain.User](db, "users",
			"id", "name", "email", "role", "password_hash", "created_at", "updated_at",
		),
	}
}

// Create stores u with its email in canonical form.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	u.Email = domain.NormalizeEmail(u.Email)
	return r.Insert(ctx, u)
}

func (r *UserRepository) ListMatching(ctx context.Context, term string) ([]domain.User, error) {
	return r.Search(ctx, userSearchColumns, term, Asc("created_at"), Asc("id"))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := conn(ctx, r.db).
		Where("LOWER(email) = ?", domain.NormalizeEmail(email)).
		Take(&u).Error
	if err != nil {
		return nil, classify("get", r.name, err)
	}
	return &u, nil
}

// ExistsByEmail reports whether another profile already uses email.
// excludeID skips the profile being edited; pass 0 on create.
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int64
	q := conn(ctx, r.db).Model(&domain.User{}).
		Where("LOWER(email) = ?", domain.NormalizeEmail(email))
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, classify("exists", r.name, err)
	}
	return count > 0, nil
}
