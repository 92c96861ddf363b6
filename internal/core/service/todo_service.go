package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/supatodo/todolist-api/internal/core/domain"
	"github.com/supatodo/todolist-api/internal/core/ports"
)

// TodoService maintains the ordered todo collection: rank assignment on
// insert, explicit reordering, and status/owner filtered listing.
type TodoService struct {
	todos  ports.TodoRepository
	mutex  ports.OrderMutex
	logger zerolog.Logger
}

// NewTodoService builds the service. mutex may be nil, in which case the
// rank read-then-write runs unguarded and concurrent creations without an
// explicit order can collide on the same rank. Duplicate ranks are
// tolerated; ties are broken by id on retrieval.
func NewTodoService(todos ports.TodoRepository, mutex ports.OrderMutex, logger zerolog.Logger) *TodoService {
	if mutex == nil {
		mutex = noopMutex{}
	}
	return &TodoService{todos: todos, mutex: mutex, logger: logger}
}

func (s *TodoService) Create(ctx context.Context, in ports.CreateTodoInput) (*domain.Todo, error) {
	status := in.Status
	if status == "" {
		status = domain.StatusPending
	}
	if !status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	todo := &domain.Todo{
		Note:    in.Note,
		Status:  status,
		OwnerID: in.OwnerID,
	}

	if in.Order != nil {
		todo.Order = *in.Order
		return s.todos.Insert(ctx, todo)
	}

	// Rank is the current global maximum plus one, 1 on an empty
	// collection. The mutex keeps the read and the insert from
	// interleaving across concurrent requests.
	release, err := s.mutex.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	max, err := s.todos.MaxOrder(ctx)
	if err != nil {
		return nil, err
	}
	todo.Order = max + 1

	created, err := s.todos.Insert(ctx, todo)
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("todo_id", created.ID).Int64("order", created.Order).Msg("rank assigned")
	return created, nil
}

// List returns todos ascending by rank. When both owner and status are
// given, the store is queried by owner and the status predicate is applied
// to the fetched rows.
func (s *TodoService) List(ctx context.Context, in ports.ListTodosInput) ([]domain.Todo, error) {
	if in.OwnerID != nil && in.Status != nil {
		todos, err := s.todos.List(ctx, ports.TodoFilter{OwnerID: in.OwnerID})
		if err != nil {
			return nil, err
		}
		filtered := make([]domain.Todo, 0, len(todos))
		for _, t := range todos {
			if t.Status == *in.Status {
				filtered = append(filtered, t)
			}
		}
		return filtered, nil
	}

	return s.todos.List(ctx, ports.TodoFilter{OwnerID: in.OwnerID, Status: in.Status})
}

func (s *TodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	return s.todos.FindByID(ctx, id)
}

func (s *TodoService) Update(ctx context.Context, id int64, in ports.UpdateTodoInput) (*domain.Todo, error) {
	if in.Status != nil && !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.todos.Update(ctx, id, ports.TodoPatch{
		Note:   in.Note,
		Status: in.Status,
		Order:  in.Order,
	})
}

// SetOrder overwrites the rank directly. No uniqueness or gap enforcement.
func (s *TodoService) SetOrder(ctx context.Context, id, order int64) (*domain.Todo, error) {
	return s.todos.Update(ctx, id, ports.TodoPatch{Order: &order})
}

func (s *TodoService) Remove(ctx context.Context, id int64) error {
	return s.todos.Delete(ctx, id)
}

// noopMutex is the single-instance fallback when no distributed mutex is
// configured.
type noopMutex struct{}

func (noopMutex) Acquire(context.Context) (func(), error) {
	return func() {}, nil
}
