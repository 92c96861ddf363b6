package ports

import (
	"context"

	"github.com/supatodo/todolist-api/internal/core/domain"
)

// TodoFilter narrows List results. Nil fields are ignored.
type TodoFilter struct {
	OwnerID *int64
	Status  *domain.TodoStatus
}

// TodoPatch carries a partial update. Nil fields are left untouched.
type TodoPatch struct {
	Note   *string
	Status *domain.TodoStatus
	Order  *int64
}

// TodoRepository defines the persistence contract for todo items.
// List always returns items sorted ascending by order (ties broken by id).
// Implementations return domain.ErrTodoNotFound for missing records.
type TodoRepository interface {
	Insert(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id int64) (*domain.Todo, error)
	List(ctx context.Context, filter TodoFilter) ([]domain.Todo, error)
	// MaxOrder returns the highest order value across all todos, or 0 when
	// the collection is empty.
	MaxOrder(ctx context.Context) (int64, error)
	Update(ctx context.Context, id int64, patch TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
	DeleteByOwner(ctx context.Context, ownerID int64) (int64, error)
}
