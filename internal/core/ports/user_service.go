package ports

import (
	"context"

	"github.com/supatodo/todolist-api/internal/core/domain"
)

// UpdateProfileInput is a partial profile update; nil fields are left
// untouched. Password, when present, is the new plaintext to be hashed.
type UpdateProfileInput struct {
	Email    *string
	FullName *string
	Password *string
}

type UserService interface {
	Get(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, in UpdateProfileInput) (*domain.User, error)
	// Delete removes the account and cascades to all todos it owns.
	Delete(ctx context.Context, id int64) error
}
