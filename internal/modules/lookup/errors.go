package lookup

import (
	"fmt"

	"equipecho/internal/domain"
)

var ErrNameTaken = fmt.Errorf("%w: name already exists", domain.ErrConflict)
