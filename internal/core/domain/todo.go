package domain

import (
	"errors"
	"time"
)

// TodoStatus represents the lifecycle state of a todo item.
type TodoStatus string

const (
	StatusPending    TodoStatus = "pending"
	StatusInProgress TodoStatus = "in_progress"
	StatusCompleted  TodoStatus = "completed"
)

var ErrTodoNotFound = errors.New("todo not found")
var ErrInvalidStatus = errors.New("invalid todo status")

// Valid reports whether s is one of the three enumerated statuses.
func (s TodoStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Todo is an ordered list item. Order defines the display sequence across
// the collection; values need not be contiguous. OwnerID is zero for items
// created before ownership tracking existed.
type Todo struct {
	ID        int64      `json:"id"`
	Note      string     `json:"note"`
	Status    TodoStatus `json:"status"`
	Order     int64      `json:"order"`
	OwnerID   int64      `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
