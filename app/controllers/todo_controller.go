package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"todo-app/app/services"
	"todo-app/app/store"

	"github.com/gorilla/mux"
)

// TodoController handles HTTP requests for todos.
type TodoController struct {
	Service *services.TodoService
	Dev     bool // enables the seed endpoint
}

// NewTodoController creates a new TodoController.
func NewTodoController(service *services.TodoService, dev bool) *TodoController {
	return &TodoController{Service: service, Dev: dev}
}

// ListTodos handles GET /todos.
func (c *TodoController) ListTodos(w http.ResponseWriter, r *http.Request) {
	params := services.ParseListParams(r.URL.Query())
	envelope, err := c.Service.List(r.Context(), params)
	if err != nil {
		respondError(w, "Failed to fetch todos", err)
		return
	}
	writeJSON(w, http.StatusOK, envelope)
}

type createRequest struct {
	Title string `json:"title"`
	Kind  string `json:"kind"`
}

// CreateTodo handles POST /todos.
func (c *TodoController) CreateTodo(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		validationError(w, "Invalid request payload")
		return
	}
	todo, err := c.Service.Create(r.Context(), req.Title, req.Kind)
	if err != nil {
		respondError(w, "Failed to create todo", err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

type updateRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// UpdateTodo handles PATCH /todos/{todoID}.
func (c *TodoController) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	todoID := mux.Vars(r)["todoID"]
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "completed" {
			validationError(w, "Completed must be a boolean")
			return
		}
		validationError(w, "Invalid request payload")
		return
	}
	todo, err := c.Service.Update(r.Context(), todoID, store.TodoPatch{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		respondError(w, "Failed to update todo", err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// DeleteTodo handles DELETE /todos/{todoID}.
func (c *TodoController) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	todoID := mux.Vars(r)["todoID"]
	if err := c.Service.Delete(r.Context(), todoID); err != nil {
		respondError(w, "Failed to delete todo", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllTodos handles DELETE /todos.
func (c *TodoController) DeleteAllTodos(w http.ResponseWriter, r *http.Request) {
	if _, err := c.Service.DeleteAll(r.Context()); err != nil {
		respondError(w, "Failed to delete todos", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "All todos deleted successfully",
		"deleted": true,
	})
}

// SeedTodos handles POST /todos/seed. Development and test only.
func (c *TodoController) SeedTodos(w http.ResponseWriter, r *http.Request) {
	if !c.Dev {
		http.NotFound(w, r)
		return
	}
	n, err := c.Service.Seed(r.Context())
	if err != nil {
		respondError(w, "Failed to seed todos", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Database seeded successfully",
		"seeded":  n,
	})
}

// HealthCheck handles GET /health.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Server is running",
	})
}
