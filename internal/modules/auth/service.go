package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"equipecho/internal/domain"
	"equipecho/internal/pkg/utils"
)

type Service struct {
	users  UserReader
	tokens TokenIssuer
	now    func() time.Time
}

func NewService(users UserReader, tokens TokenIssuer) *Service {
	return &Service{users: users, tokens: tokens, now: time.Now}
}

// Login checks the password and issues a token carrying the user's role.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		User:      toPublic(user),
		Token:     token,
		ExpiresAt: s.now().Add(s.tokens.TTL()).UTC(),
	}, nil
}

func (s *Service) Me(ctx context.Context, userID int64) (*UserPublic, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	pub := toPublic(user)
	return &pub, nil
}
