package services

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"todo-app/app/models"
	"todo-app/app/store"
)

// Status filter values.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

const (
	defaultLimit  = 10
	defaultSortBy = "createdAt"
)

// TodoService validates and normalizes inbound parameters, then drives the
// store.
type TodoService struct {
	store *store.TodoStore
}

// NewTodoService creates a new instance of TodoService.
func NewTodoService(st *store.TodoStore) *TodoService {
	return &TodoService{store: st}
}

// ListParams is the validated form of the query-string parameter bag. It is
// built once at the API boundary; nothing downstream re-parses raw values.
type ListParams struct {
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int // 1-based
	Limit     int
}

// ParseListParams normalizes the recognized query parameters. It never
// rejects: unrecognized values fall back to defaults.
func ParseListParams(values url.Values) ListParams {
	p := ListParams{
		Status:    StatusAll,
		SortBy:    defaultSortBy,
		SortOrder: "DESC",
		Page:      1,
		Limit:     defaultLimit,
	}
	switch values.Get("status") {
	case StatusActive:
		p.Status = StatusActive
	case StatusCompleted:
		p.Status = StatusCompleted
	}
	p.Search = values.Get("search")
	if sortBy := values.Get("sortBy"); store.Sortable(sortBy) {
		p.SortBy = sortBy
	}
	// Anything that is not ASC (case-insensitive) normalizes to DESC.
	if strings.EqualFold(values.Get("sortOrder"), "ASC") {
		p.SortOrder = "ASC"
	}
	if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	if n, err := strconv.Atoi(values.Get("limit")); err == nil && n > 0 {
		p.Limit = n
	}
	return p
}

// Meta carries pagination and badge-count information alongside a page.
type Meta struct {
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"totalPages"`
	Counts     store.Counts `json:"counts"`
}

// Envelope is the paginated response wrapper.
type Envelope struct {
	Data []models.Todo `json:"data"`
	Meta Meta          `json:"meta"`
}

// List runs the filtered, paginated query plus the independent status counts
// and assembles the response envelope. Counts are always over the unfiltered
// collection so the badges are not affected by the current search term.
func (s *TodoService) List(ctx context.Context, p ListParams) (*Envelope, error) {
	todos, total, err := s.store.QueryTodos(ctx, store.Query{
		Status:    p.Status,
		Search:    p.Search,
		SortBy:    p.SortBy,
		SortOrder: p.SortOrder,
		Offset:    (p.Page - 1) * p.Limit,
		Limit:     p.Limit,
	})
	if err != nil {
		return nil, err
	}
	counts, err := s.store.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Data: todos,
		Meta: Meta{
			Total:      total,
			Page:       p.Page,
			Limit:      p.Limit,
			TotalPages: (total + p.Limit - 1) / p.Limit,
			Counts:     counts,
		},
	}, nil
}

// Create adds a new todo. Title validation happens in the store.
func (s *TodoService) Create(ctx context.Context, title, kind string) (*models.Todo, error) {
	return s.store.Insert(ctx, title, kind)
}

// Update applies a partial update to an existing todo.
func (s *TodoService) Update(ctx context.Context, id string, patch store.TodoPatch) (*models.Todo, error) {
	return s.store.Update(ctx, id, patch)
}

// Delete removes a single todo.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// DeleteAll removes every todo and reports the number deleted.
func (s *TodoService) DeleteAll(ctx context.Context) (int, error) {
	return s.store.DeleteAll(ctx)
}

// Seed inserts the sample data set.
func (s *TodoService) Seed(ctx context.Context) (int, error) {
	return s.store.Seed(ctx)
}
