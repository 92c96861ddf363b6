package handler

import "time"

type createTodoRequest struct {
	Note   string `json:"note"   validate:"required"`
	Status string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Order  *int64 `json:"order"`
	// UserID is accepted but ignored; ownership always comes from the
	// verified token subject.
	UserID *int64 `json:"user_id"`
}

type updateTodoRequest struct {
	Note   *string `json:"note"`
	Status *string `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Order  *int64  `json:"order"`
}

type setOrderRequest struct {
	Order int64 `json:"order" validate:"required"`
}

type todoResponse struct {
	ID        int64     `json:"id"`
	Note      string    `json:"note"`
	Status    string    `json:"status"`
	Order     int64     `json:"order"`
	UserID    int64     `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
