package ports

import (
	"context"

	"github.com/supatodo/todolist-api/internal/core/domain"
)

// CreateTodoInput describes a new todo. OwnerID is always the verified
// subject id of the caller; a zero Status defaults to pending; a nil Order
// triggers rank computation (current max + 1).
type CreateTodoInput struct {
	Note    string
	Status  domain.TodoStatus
	Order   *int64
	OwnerID int64
}

// ListTodosInput filters the listing. Nil fields are ignored.
type ListTodosInput struct {
	OwnerID *int64
	Status  *domain.TodoStatus
}

// UpdateTodoInput is a partial update; nil fields are left untouched.
type UpdateTodoInput struct {
	Note   *string
	Status *domain.TodoStatus
	Order  *int64
}

// OrderMutex serialises the rank read-then-write across instances. Acquire
// blocks until the mutex is held or ctx is done, and returns a release
// function.
type OrderMutex interface {
	Acquire(ctx context.Context) (release func(), err error)
}

type TodoService interface {
	Create(ctx context.Context, in CreateTodoInput) (*domain.Todo, error)
	List(ctx context.Context, in ListTodosInput) ([]domain.Todo, error)
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	Update(ctx context.Context, id int64, in UpdateTodoInput) (*domain.Todo, error)
	SetOrder(ctx context.Context, id, order int64) (*domain.Todo, error)
	Remove(ctx context.Context, id int64) error
}
