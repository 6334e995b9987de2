package dto

import (
	"time"

	"github.com/tickbox/tickbox/internal/model"
	"github.com/tickbox/tickbox/internal/service"
)

// CreateTodoRequest is the body of POST /todos.
type CreateTodoRequest struct {
	Title *string `json:"title"`
}

// Validate reports a missing title. Length rules live in the service.
func (r *CreateTodoRequest) Validate() error {
	verr := &service.ValidationError{}
	if r.Title == nil {
		verr.Add("title", "is required", nil)
	}
	return verr.Err()
}

// UpdateTodoRequest is the body of PUT /todos/{id}.
type UpdateTodoRequest struct {
	Completed *bool `json:"completed"`
}

// Validate reports a missing completed flag.
func (r *UpdateTodoRequest) Validate() error {
	verr := &service.ValidationError{}
	if r.Completed == nil {
		verr.Add("completed", "is required and must be a boolean", nil)
	}
	return verr.Err()
}

// TodoResponse represents a todo in API responses.
type TodoResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToTodoResponse converts a Todo model to TodoResponse.
func ToTodoResponse(t *model.Todo) *TodoResponse {
	return &TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		UserID:    t.OwnerID,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTodoList converts todos to responses. The result is never nil.
func ToTodoList(todos []*model.Todo) []*TodoResponse {
	out := make([]*TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, ToTodoResponse(t))
	}
	return out
}
