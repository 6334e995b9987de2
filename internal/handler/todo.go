package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tickbox/tickbox/internal/auth"
	"github.com/tickbox/tickbox/internal/handler/dto"
	"github.com/tickbox/tickbox/internal/service"
)

// TodoHandler handles todo endpoints. Every route runs behind BearerAuth.
type TodoHandler struct {
	svc    *service.TodoService
	logger *slog.Logger
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{svc: svc, logger: logger}
}

// List handles GET /todos.
func (h *TodoHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustIdentityFromContext(r.Context()).UserID

	todos, err := h.svc.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToTodoList(todos))
}

// Create handles POST /todos.
func (h *TodoHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustIdentityFromContext(r.Context()).UserID

	var req dto.CreateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	todo, err := h.svc.Create(r.Context(), userID, *req.Title)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("todo_created", "todo_id", todo.ID, "user_id", userID)
	writeJSON(w, http.StatusOK, dto.ToTodoResponse(todo))
}

// Update handles PUT /todos/{id}.
func (h *TodoHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustIdentityFromContext(r.Context()).UserID
	id := chi.URLParam(r, "id")

	var req dto.UpdateTodoRequest
	if err := decodeJSON(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	todo, err := h.svc.SetCompleted(r.Context(), userID, id, *req.Completed)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("todo_updated", "todo_id", todo.ID, "user_id", userID, "completed", todo.Completed)
	writeJSON(w, http.StatusOK, dto.ToTodoResponse(todo))
}

// Delete handles DELETE /todos/{id}.
func (h *TodoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := auth.MustIdentityFromContext(r.Context()).UserID
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), userID, id); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.Info("todo_deleted", "todo_id", id, "user_id", userID)
	w.WriteHeader(http.StatusNoContent)
}
