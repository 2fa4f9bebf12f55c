package users

import (
	"context"

	"equipecho/internal/domain"
)

type UserRepository interface {
	ListMatching(ctx context.Context, term string) ([]domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, u *domain.User) error
	Update(ctx context.Context, id int64, changes map[string]any) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
}

type EventPublisher interface {
	Publish(table, action string, id int64)
}
