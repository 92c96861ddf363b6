package ports

import (
	"context"

	"github.com/supatodo/todolist-api/internal/core/domain"
)

// UserRepository defines the persistence contract for user accounts.
// Implementations return domain.ErrUserNotFound for missing records and
// domain.ErrUserExists when the unique email constraint is violated.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}
