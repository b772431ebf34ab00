package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-app/app/models"
)

func newTestStore(t *testing.T) *TodoStore {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "todos.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewTodoStore(db)
}

func TestInsertDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	todo, err := s.Insert(ctx, "  Buy milk  ", "")
	require.NoError(t, err)

	assert.NotEmpty(t, todo.ID)
	assert.Equal(t, "Buy milk", todo.Title)
	assert.False(t, todo.Completed)
	assert.Equal(t, models.KindTask, todo.Kind)
	assert.Equal(t, todo.CreatedAt, todo.UpdatedAt)

	note, err := s.Insert(ctx, "Idea: simplify onboarding", models.KindNote)
	require.NoError(t, err)
	assert.Equal(t, models.KindNote, note.Kind)

	weird, err := s.Insert(ctx, "Whatever", "reminder")
	require.NoError(t, err)
	assert.Equal(t, models.KindTask, weird.Kind)
}

func TestInsertValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		title string
	}{
		{"empty", ""},
		{"whitespace only", "   \t "},
		{"too long", strings.Repeat("a", 256)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Insert(ctx, tt.title, "")
			var vErr *models.ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}

	// Exactly 255 runes is fine.
	_, err := s.Insert(ctx, strings.Repeat("a", 255), "")
	require.NoError(t, err)
}

func TestGetByIDRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, "Buy milk", models.KindNote)
	require.NoError(t, err)

	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.GetByID(ctx, "no-such-id")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, "Original", "")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond) // timestamps have millisecond precision

	title := "  Updated  "
	updated, err := s.Update(ctx, created.ID, TodoPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Updated", updated.Title)
	assert.False(t, updated.Completed)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	completed := true
	updated, err = s.Update(ctx, created.ID, TodoPatch{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "Updated", updated.Title)

	// Changes persist.
	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateValidation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, "Original", "")
	require.NoError(t, err)

	empty := "  "
	_, err = s.Update(ctx, created.ID, TodoPatch{Title: &empty})
	var vErr *models.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Title cannot be empty", vErr.Reason)

	long := strings.Repeat("b", 300)
	_, err = s.Update(ctx, created.ID, TodoPatch{Title: &long})
	require.ErrorAs(t, err, &vErr)

	// A failed update leaves the row untouched.
	got, err := s.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)

	title := "New"
	_, err = s.Update(ctx, "no-such-id", TodoPatch{Title: &title})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.Insert(ctx, "Doomed", "")
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, created.ID))

	// NotFound on the first and every repeated call.
	assert.ErrorIs(t, s.Delete(ctx, created.ID), models.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, created.ID), models.ErrNotFound)
}

func TestDeleteAll(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := s.Insert(ctx, title, "")
		require.NoError(t, err)
	}

	n, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	n, err = s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func seedStatuses(t *testing.T, s *TodoStore, completed ...bool) []models.Todo {
	t.Helper()
	ctx := context.Background()
	todos := make([]models.Todo, 0, len(completed))
	for i, done := range completed {
		todo, err := s.Insert(ctx, "Item "+string(rune('A'+i)), "")
		require.NoError(t, err)
		if done {
			v := true
			todo, err = s.Update(ctx, todo.ID, TodoPatch{Completed: &v})
			require.NoError(t, err)
		}
		todos = append(todos, *todo)
	}
	return todos
}

func TestQueryStatusFilter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedStatuses(t, s, false, true, false, true, true)

	active, total, err := s.QueryTodos(ctx, Query{Status: "active", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, todo := range active {
		assert.False(t, todo.Completed)
	}

	completed, total, err := s.QueryTodos(ctx, Query{Status: "completed", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	for _, todo := range completed {
		assert.True(t, todo.Completed)
	}

	_, total, err = s.QueryTodos(ctx, Query{Status: "all", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
}

func TestQuerySearch(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, "Buy milk", "")
	require.NoError(t, err)
	_, err = s.Insert(ctx, "Buy bread", "")
	require.NoError(t, err)

	todos, total, err := s.QueryTodos(ctx, Query{Search: "MILK", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Title)

	// Whitespace-only search means no filter.
	_, total, err = s.QueryTodos(ctx, Query{Search: "   ", Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

func TestQuerySearchLiteralWildcards(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, "alpha beta", "")
	require.NoError(t, err)
	_, err = s.Insert(ctx, "100% done", "")
	require.NoError(t, err)
	_, err = s.Insert(ctx, "snake_case", "")
	require.NoError(t, err)

	// % and _ in the search term match themselves, not LIKE wildcards.
	tests := []struct {
		search string
		total  int
		title  string
	}{
		{"a%b", 0, ""},
		{"_lpha", 0, ""},
		{"100%", 1, "100% done"},
		{"e_c", 1, "snake_case"},
		{`\`, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			todos, total, err := s.QueryTodos(ctx, Query{Search: tt.search, Limit: 10})
			require.NoError(t, err)
			assert.Equal(t, tt.total, total)
			if tt.title != "" {
				require.Len(t, todos, 1)
				assert.Equal(t, tt.title, todos[0].Title)
			}
		})
	}
}

func TestQueryPagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		_, err := s.Insert(ctx, "Item "+string(rune('a'+i)), "")
		require.NoError(t, err)
	}

	page1, total, err := s.QueryTodos(ctx, Query{Limit: 10, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, page1, 10)

	page2, total, err := s.QueryTodos(ctx, Query{Limit: 10, Offset: 10})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, page2, 2)

	// No overlap between pages.
	seen := map[string]bool{}
	for _, todo := range append(page1, page2...) {
		assert.False(t, seen[todo.ID])
		seen[todo.ID] = true
	}

	// Beyond the last page: empty data, total unchanged.
	beyond, total, err := s.QueryTodos(ctx, Query{Limit: 10, Offset: 20})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Empty(t, beyond)
}

func TestQuerySort(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"cherry", "apple", "banana"} {
		_, err := s.Insert(ctx, title, "")
		require.NoError(t, err)
	}

	todos, _, err := s.QueryTodos(ctx, Query{SortBy: "title", SortOrder: "ASC", Limit: 10})
	require.NoError(t, err)
	titles := make([]string, len(todos))
	for i, todo := range todos {
		titles[i] = todo.Title
	}
	assert.Equal(t, []string{"apple", "banana", "cherry"}, titles)

	// Default sort is newest first.
	todos, _, err = s.QueryTodos(ctx, Query{Limit: 10})
	require.NoError(t, err)
	require.Len(t, todos, 3)
	assert.Equal(t, "banana", todos[0].Title)
}

func TestCountByStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)

	seedStatuses(t, s, false, false, true)

	counts, err = s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, Counts{All: 3, Active: 2, Completed: 1}, counts)
	assert.Equal(t, counts.All, counts.Active+counts.Completed)
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := s.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(seedTodos), n)

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(seedTodos), counts.All)

	// SeedIfEmpty is a no-op on a populated table.
	n, err = s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestOpenReset(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.db")

	db, err := Open(ctx, path, false)
	require.NoError(t, err)
	s := NewTodoStore(db)
	_, err = s.Insert(ctx, "Survives restart", "")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// Reopening with reset drops the table.
	db, err = Open(ctx, path, true)
	require.NoError(t, err)
	defer db.Close()
	counts, err := NewTodoStore(db).CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.All)
}
