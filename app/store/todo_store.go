package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"todo-app/app/models"

	"github.com/google/uuid"
)

// TodoStore provides durable CRUD and query primitives over the todos table.
type TodoStore struct {
	db *sql.DB
}

// NewTodoStore creates a new instance of TodoStore.
func NewTodoStore(db *sql.DB) *TodoStore {
	return &TodoStore{db: db}
}

// Query describes one paginated read over the collection. Status, SortBy and
// SortOrder must already be normalized (see services.ParseListParams).
type Query struct {
	Status    string // all|active|completed
	Search    string // case-insensitive substring match on title
	SortBy    string // sortable field name, e.g. "createdAt"
	SortOrder string // ASC|DESC
	Offset    int
	Limit     int
}

// Counts are status totals over the full, unfiltered collection.
type Counts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// TodoPatch is a partial update; nil fields are left unchanged.
type TodoPatch struct {
	Title     *string
	Completed *bool
}

// sortColumns whitelists sortable fields and maps them to columns.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"completed": "completed",
	"kind":      "kind",
	"createdAt": "created_at_unixms",
	"updatedAt": "updated_at_unixms",
}

// Sortable reports whether field is a recognized sort key.
func Sortable(field string) bool {
	_, ok := sortColumns[field]
	return ok
}

// Insert validates and stores a new todo. The id and timestamps are assigned
// here; completed always starts false.
func (s *TodoStore) Insert(ctx context.Context, title, kind string) (*models.Todo, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, &models.ValidationError{Reason: "Title is required and cannot be empty"}
	}
	if utf8.RuneCountInString(trimmed) > models.MaxTitleLength {
		return nil, &models.ValidationError{Reason: "Title cannot exceed 255 characters"}
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	todo := &models.Todo{
		ID:        uuid.New().String(),
		Title:     trimmed,
		Completed: false,
		Kind:      models.NormalizeKind(kind),
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, title, completed, kind, created_at_unixms, updated_at_unixms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		todo.ID, todo.Title, boolToInt(todo.Completed), todo.Kind, now.UnixMilli(), now.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return todo, nil
}

// GetByID retrieves a single todo, or models.ErrNotFound.
func (s *TodoStore) GetByID(ctx context.Context, id string) (*models.Todo, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, completed, kind, created_at_unixms, updated_at_unixms
		 FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	return &todo, nil
}

// Update applies a partial update and refreshes updatedAt. Title validation
// matches Insert except for the empty-title message.
func (s *TodoStore) Update(ctx context.Context, id string, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, &models.ValidationError{Reason: "Title cannot be empty"}
		}
		if utf8.RuneCountInString(trimmed) > models.MaxTitleLength {
			return nil, &models.ValidationError{Reason: "Title cannot exceed 255 characters"}
		}
		todo.Title = trimmed
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	if now.Before(todo.CreatedAt) {
		now = todo.CreatedAt
	}
	todo.UpdatedAt = now

	_, err = s.db.ExecContext(ctx,
		`UPDATE todos SET title = ?, completed = ?, updated_at_unixms = ? WHERE id = ?`,
		todo.Title, boolToInt(todo.Completed), now.UnixMilli(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

// Delete removes a single todo, or returns models.ErrNotFound.
func (s *TodoStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteAll removes every todo and reports how many were deleted.
func (s *TodoStore) DeleteAll(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos`)
	if err != nil {
		return 0, fmt.Errorf("delete all todos: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete all todos: %w", err)
	}
	return int(n), nil
}

// QueryTodos returns one page of matching todos plus the total match count.
func (s *TodoStore) QueryTodos(ctx context.Context, q Query) ([]models.Todo, int, error) {
	where, args := buildWhere(q)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}

	col, ok := sortColumns[q.SortBy]
	if !ok {
		col = sortColumns["createdAt"]
	}
	dir := "DESC"
	if q.SortOrder == "ASC" {
		dir = "ASC"
	}
	// rowid tie-break keeps pagination stable when timestamps collide.
	query := fmt.Sprintf(
		`SELECT id, title, completed, kind, created_at_unixms, updated_at_unixms
		 FROM todos%s ORDER BY %s %s, rowid %s LIMIT ? OFFSET ?`,
		where, col, dir, dir,
	)
	rows, err := s.db.QueryContext(ctx, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("query todos: %w", err)
	}
	return todos, total, nil
}

// CountByStatus computes the sidebar badge totals. Always over the full
// collection: two independent count queries, never reusing the filtered page
// query, so the badges ignore the current search term.
func (s *TodoStore) CountByStatus(ctx context.Context) (Counts, error) {
	var active, completed int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE completed = 0`).Scan(&active); err != nil {
		return Counts{}, fmt.Errorf("count active todos: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE completed = 1`).Scan(&completed); err != nil {
		return Counts{}, fmt.Errorf("count completed todos: %w", err)
	}
	return Counts{All: active + completed, Active: active, Completed: completed}, nil
}

func buildWhere(q Query) (string, []any) {
	var conds []string
	var args []any
	switch q.Status {
	case "active":
		conds = append(conds, "completed = 0")
	case "completed":
		conds = append(conds, "completed = 1")
	}
	// Whitespace-only search means no filter.
	if search := strings.TrimSpace(q.Search); search != "" {
		conds = append(conds, `LOWER(title) LIKE '%' || LOWER(?) || '%' ESCAPE '\'`)
		args = append(args, escapeLike(search))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// escapeLike neutralizes LIKE wildcards so the search term matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (models.Todo, error) {
	var t models.Todo
	var completed int
	var createdMS, updatedMS int64
	if err := row.Scan(&t.ID, &t.Title, &completed, &t.Kind, &createdMS, &updatedMS); err != nil {
		return t, err
	}
	t.Completed = completed != 0
	t.CreatedAt = time.UnixMilli(createdMS).UTC()
	t.UpdatedAt = time.UnixMilli(updatedMS).UTC()
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
