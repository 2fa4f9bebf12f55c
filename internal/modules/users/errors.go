package users

import (
	"errors"
	"fmt"

	"equipecho/internal/domain"
)

var (
	ErrSelfDelete = errors.New("cannot delete your own profile")
	ErrEmailTaken = fmt.Errorf("%w: email already in use", domain.ErrConflict)
)
