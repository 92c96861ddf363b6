package service

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/supatodo/todolist-api/internal/core/domain"
	"github.com/supatodo/todolist-api/internal/core/ports"
)

type stubTodoRepo struct {
	todos  map[int64]*domain.Todo
	nextID int64
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func cloneTodo(t *domain.Todo) *domain.Todo {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTodoRepo) Insert(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.nextID++
	created := cloneTodo(todo)
	created.ID = r.nextID
	created.CreatedAt = time.Now().UTC()
	r.todos[created.ID] = cloneTodo(created)
	return created, nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id int64) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return cloneTodo(t), nil
}

func (r *stubTodoRepo) List(_ context.Context, filter ports.TodoFilter) ([]domain.Todo, error) {
	out := []domain.Todo{}
	for _, t := range r.todos {
		if filter.OwnerID != nil && t.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stubTodoRepo) MaxOrder(_ context.Context) (int64, error) {
	var max int64
	for _, t := range r.todos {
		if t.Order > max {
			max = t.Order
		}
	}
	return max, nil
}

func (r *stubTodoRepo) Update(_ context.Context, id int64, patch ports.TodoPatch) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	if patch.Note != nil {
		t.Note = *patch.Note
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Order != nil {
		t.Order = *patch.Order
	}
	return cloneTodo(t), nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *stubTodoRepo) DeleteByOwner(_ context.Context, ownerID int64) (int64, error) {
	var removed int64
	for id, t := range r.todos {
		if t.OwnerID == ownerID {
			delete(r.todos, id)
			removed++
		}
	}
	return removed, nil
}

func newTestTodoService(repo ports.TodoRepository) *TodoService {
	return NewTodoService(repo, nil, zerolog.Nop())
}

func TestTodoService_Create_FirstItemGetsOrderOne(t *testing.T) {
	svc := newTestTodoService(newStubTodoRepo())

	todo, err := svc.Create(context.Background(), ports.CreateTodoInput{Note: "first", OwnerID: 1})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if todo.Order != 1 {
		t.Fatalf("expected order 1 on empty collection, got %d", todo.Order)
	}
	if todo.Status != domain.StatusPending {
		t.Fatalf("expected default status pending, got %s", todo.Status)
	}
	if todo.OwnerID != 1 {
		t.Fatalf("expected owner 1, got %d", todo.OwnerID)
	}
}

func TestTodoService_Create_OrderIsMaxPlusOne(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	for _, order := range []int64{1, 3, 5} {
		o := order
		if _, err := svc.Create(context.Background(), ports.CreateTodoInput{Note: "seed", Order: &o, OwnerID: 1}); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}

	todo, err := svc.Create(context.Background(), ports.CreateTodoInput{Note: "next", OwnerID: 2})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if todo.Order != 6 {
		t.Fatalf("expected order 6 after {1,3,5}, got %d", todo.Order)
	}
}

func TestTodoService_Create_ExplicitOrderAndStatus(t *testing.T) {
	svc := newTestTodoService(newStubTodoRepo())

	order := int64(99)
	todo, err := svc.Create(context.Background(), ports.CreateTodoInput{
		Note:    "explicit",
		Status:  domain.StatusInProgress,
		Order:   &order,
		OwnerID: 4,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if todo.Order != 99 {
		t.Fatalf("expected order 99, got %d", todo.Order)
	}
	if todo.Status != domain.StatusInProgress {
		t.Fatalf("expected in_progress, got %s", todo.Status)
	}
}

func TestTodoService_Create_InvalidStatus(t *testing.T) {
	svc := newTestTodoService(newStubTodoRepo())

	_, err := svc.Create(context.Background(), ports.CreateTodoInput{Note: "bad", Status: "done", OwnerID: 1})
	if err != domain.ErrInvalidStatus {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestTodoService_List_OwnerAndStatus(t *testing.T) {
	repo := newStubTodoRepo()
	svc := newTestTodoService(repo)

	seed := []struct {
		note   string
		status domain.TodoStatus
		order  int64
		owner  int64
	}{
		{"a", domain.StatusPending, 4, 1},
		{"b", domain.StatusPending, 2, 1},
		{"c", domain.StatusCompleted, 1, 1},
		{"d", domain.StatusPending, 3, 2},
	}
	for _, s := range seed {
		o := s.order
		if _, err := svc.Create(context.Background(), ports.CreateTodoInput{
			Note: s.note, Status: s.status, Order: &o, OwnerID: s.owner,
		}); err != nil {
			t.Fatalf("seed create failed: %v", err)
		}
	}

	owner := int64(1)
	status := domain.StatusPending
	todos, err := svc.List(context.Background(), ports.ListTodosInput{OwnerID: &owner, Status: &status})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].Note != "b" || todos[1].Note != "a" {
		t.Fatalf("expected ascending order [b a], got [%s %s]", todos[0].Note, todos[1].Note)
	}
	for _, todo := range todos {
		if todo.OwnerID != 1 || todo.Status != domain.StatusPending {
			t.Fatalf("filter leaked: %+v", todo)
		}
	}
}

func TestTodoService_GetRoundTrip(t *testing.T) {
	svc := newTestTodoService(newStubTodoRepo())

	created, err := svc.Create(context.Background(), ports.CreateTodoInput{Note: "round trip", OwnerID: 3})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	got, err := svc.Get(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if got.Note != created.Note || got.Status != created.Status || got.Order != created.Order || got.OwnerID != created.OwnerID {
		t.Fatalf("round trip mismatch: created %+v, got %+v", created, got)
	}
}

func TestTodoService_Update_Partial(t *testing.T) {
	svc := newTestTodoService(newStubTodoRepo())

	created, _ := svc.Create(context.Background(), ports.CreateTodoInput{Note: "original", OwnerID: 1})

	note := "changed"
	updated, err := svc.Update(context.Background(), created.ID, ports.UpdateTodoInput{Note: &note})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Note != "changed" {
		t.Fatalf("note not updated: %s", updated.Note)
	}
	if updated.Status != created.Status || updated.Order != created.Order {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

func TestTodoService_Update_NotFound(t *testing.T) {
	svc := newTestTodoService(newStubTodoRepo())

	note := "x"
	if _, err := svc.Update(context.Background(), 404, ports.UpdateTodoInput{Note: &note}); err != domain.ErrTodoNotFound {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoService_SetOrder(t *testing.T) {
	svc := newTestTodoService(newStubTodoRepo())

	created, _ := svc.Create(context.Background(), ports.CreateTodoInput{Note: "move me", OwnerID: 1})

	updated, err := svc.SetOrder(context.Background(), created.ID, 42)
	if err != nil {
		t.Fatalf("SetOrder returned error: %v", err)
	}
	if updated.Order != 42 {
		t.Fatalf("expected order 42, got %d", updated.Order)
	}

	if _, err := svc.SetOrder(context.Background(), 404, 1); err != domain.ErrTodoNotFound {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoService_RemoveThenGet(t *testing.T) {
	svc := newTestTodoService(newStubTodoRepo())

	created, _ := svc.Create(context.Background(), ports.CreateTodoInput{Note: "ephemeral", OwnerID: 1})

	if err := svc.Remove(context.Background(), created.ID); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if _, err := svc.Get(context.Background(), created.ID); err != domain.ErrTodoNotFound {
		t.Fatalf("expected ErrTodoNotFound after remove, got %v", err)
	}
	if err := svc.Remove(context.Background(), created.ID); err != domain.ErrTodoNotFound {
		t.Fatalf("expected ErrTodoNotFound on double remove, got %v", err)
	}
}
