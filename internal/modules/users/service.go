package users

import (
	"context"
	"fmt"
	"strings"

	"equipecho/internal/domain"
	"equipecho/internal/pkg/utils"
)

const tableUsers = "users"

type Service struct {
	users  UserRepository
	events EventPublisher
}

func NewService(users UserRepository, events EventPublisher) *Service {
	return &Service{users: users, events: events}
}

func (s *Service) publish(action string, id int64) {
	if s.events != nil {
		s.events.Publish(tableUsers, action, id)
	}
}

// List returns profiles oldest first.
func (s *Service) List(ctx context.Context, f ListFilter) ([]domain.User, error) {
	role := domain.Role(f.Role)
	if role != "" && !role.Valid() {
		return nil, domain.NewValidationError("role", "must be one of Admin, Manager, User")
	}

	list, err := s.users.ListMatching(ctx, f.Q)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return list, nil
	}

	out := make([]domain.User, 0, len(list))
	for _, u := range list {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	u := &domain.User{
		Name:  strings.TrimSpace(req.Name),
		Email: domain.NormalizeEmail(req.Email),
		Role:  domain.Role(req.Role),
	}
	if err := validateProfile(u); err != nil {
		return nil, err
	}

	if err := s.ensureEmailFree(ctx, u.Email, 0); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	s.publish("insert", u.ID)
	return u, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*domain.User, error) {
	current, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Name != nil {
		merged.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		merged.Email = domain.NormalizeEmail(*req.Email)
	}
	if req.Role != nil {
		merged.Role = domain.Role(*req.Role)
	}
	if err := validateProfile(&merged); err != nil {
		return nil, err
	}

	if merged.Email != domain.NormalizeEmail(current.Email) {
		if err := s.ensureEmailFree(ctx, merged.Email, id); err != nil {
			return nil, err
		}
	}

	changes := map[string]any{
		"name":  merged.Name,
		"email": merged.Email,
		"role":  merged.Role,
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		changes["password_hash"] = hash
	}

	updated, err := s.users.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}
	s.publish("update", id)
	return updated, nil
}

// Delete removes a profile. actorID is the admin making the request.
func (s *Service) Delete(ctx context.Context, actorID, id int64) error {
	if actorID == id {
		return ErrSelfDelete
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.publish("delete", id)
	return nil
}

func (s *Service) ensureEmailFree(ctx context.Context, email string, excludeID int64) error {
	taken, err := s.users.ExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

func validateProfile(u *domain.User) error {
	verr := &domain.ValidationError{}
	if u.Name == "" {
		verr.Add("name", "is required")
	}
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		verr.Add("email", "must be a valid email address")
	}
	if !u.Role.Valid() {
		verr.Add("role", "must be one of Admin, Manager, User")
	}
	return verr.OrNil()
}
