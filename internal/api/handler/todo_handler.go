package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/supatodo/todolist-api/internal/api/metrics"
	"github.com/supatodo/todolist-api/internal/core/domain"
	"github.com/supatodo/todolist-api/internal/core/ports"
)

// TodoHandler handles HTTP requests for todo operations. All routes sit
// behind the Auth middleware.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

func toTodoResponse(t *domain.Todo) todoResponse {
	return todoResponse{
		ID:        t.ID,
		Note:      t.Note,
		Status:    string(t.Status),
		Order:     t.Order,
		UserID:    t.OwnerID,
		CreatedAt: t.CreatedAt,
	}
}

func todoID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid todo id")
	}
	return id, nil
}

// Create handles POST /todos. Ownership is forced to the verified subject;
// a client-supplied user_id is ignored.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo details"
// @Success      201   {object}  todoResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	ownerID, err := ctxSubject(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Create(c.Request().Context(), ports.CreateTodoInput{
		Note:    req.Note,
		Status:  domain.TodoStatus(req.Status),
		Order:   req.Order,
		OwnerID: ownerID,
	})
	if err != nil {
		return err
	}

	mode := "computed"
	if req.Order != nil {
		mode = "explicit"
	}
	metrics.OrderAssignmentsTotal.WithLabelValues(mode).Inc()
	metrics.TodosCreatedTotal.WithLabelValues(string(todo.Status)).Inc()

	return c.JSON(http.StatusCreated, toTodoResponse(todo))
}

// List handles GET /todos?status=&user_id=. When user_id is absent the
// caller's own id is used, so the default listing is scoped to the
// authenticated user.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        status   query     string  false  "Filter by status"  Enums(pending, in_progress, completed)
// @Param        user_id  query     int     false  "Filter by owner (defaults to the caller)"
// @Success      200      {array}   todoResponse
// @Failure      400      {object}  errorResponse
// @Failure      401      {object}  errorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	in := ports.ListTodosInput{}

	if raw := c.QueryParam("status"); raw != "" {
		status := domain.TodoStatus(raw)
		if !status.Valid() {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "status must be one of: pending in_progress completed"})
		}
		in.Status = &status
	}

	if raw := c.QueryParam("user_id"); raw != "" {
		ownerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid user_id"})
		}
		in.OwnerID = &ownerID
	} else {
		ownerID, err := ctxSubject(c)
		if err != nil {
			return err
		}
		in.OwnerID = &ownerID
	}

	todos, err := h.service.List(c.Request().Context(), in)
	if err != nil {
		return err
	}

	resp := make([]todoResponse, 0, len(todos))
	for i := range todos {
		resp = append(resp, toTodoResponse(&todos[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

// Get handles GET /todos/:id.
//
// @Summary      Get a todo by id
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Todo id"
// @Success      200  {object}  todoResponse
// @Failure      404  {object}  errorResponse
// @Router       /todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Update handles PATCH /todos/:id with a partial update of note, status,
// and order.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "Fields to update"
// @Success      200   {object}  todoResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /todos/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	in := ports.UpdateTodoInput{Note: req.Note, Order: req.Order}
	if req.Status != nil {
		status := domain.TodoStatus(*req.Status)
		in.Status = &status
	}

	todo, err := h.service.Update(c.Request().Context(), id, in)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// SetOrder handles PATCH /todos/:id/order, overwriting the rank directly.
//
// @Summary      Reorder a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "Todo id"
// @Param        body  body      setOrderRequest  true  "New order rank"
// @Success      200   {object}  todoResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /todos/{id}/order [patch]
func (h *TodoHandler) SetOrder(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	var req setOrderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	todo, err := h.service.SetOrder(c.Request().Context(), id, req.Order)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Delete handles DELETE /todos/:id.
//
// @Summary      Delete a todo
// @Tags         todos
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo id"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	id, err := todoID(c)
	if err != nil {
		return err
	}

	if err := h.service.Remove(c.Request().Context(), id); err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
