package auth

import (
	"context"
	"time"

	"equipecho/internal/domain"
)

// UserReader is the part of the user store login needs.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
}

type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
	TTL() time.Duration
}
