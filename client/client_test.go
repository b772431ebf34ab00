package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-app/app/controllers"
	"todo-app/app/routes"
	"todo-app/app/services"
	"todo-app/app/store"
	"todo-app/client"
)

// newTestClient spins up the real server stack behind httptest and points a
// client at it.
func newTestClient(t *testing.T) *client.Client {
	t.Helper()
	db, err := store.Open(context.Background(), filepath.Join(t.TempDir(), "todos.db"), false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	controller := controllers.NewTodoController(services.NewTodoService(store.NewTodoStore(db)), true)
	router := mux.NewRouter()
	routes.RegisterRoutes(router, controller)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return client.New(server.URL)
}

func TestClientCreateAndList(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateTodo(ctx, "Buy milk", "")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title)
	assert.False(t, created.Completed)
	assert.Equal(t, client.KindTask, created.Kind)

	_, err = c.CreateTodo(ctx, "A thought", client.KindNote)
	require.NoError(t, err)

	env, err := c.ListTodos(ctx, client.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, env.Data, 2)
	assert.Equal(t, 2, env.Meta.Counts.All)

	env, err = c.ListTodos(ctx, client.ListOptions{Search: "milk"})
	require.NoError(t, err)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Buy milk", env.Data[0].Title)
	assert.Equal(t, 2, env.Meta.Counts.All)
}

func TestClientUpdateAndDelete(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateTodo(ctx, "Original", "")
	require.NoError(t, err)

	completed := true
	updated, err := c.UpdateTodo(ctx, created.ID, client.Patch{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	require.NoError(t, c.DeleteTodo(ctx, created.ID))

	err = c.DeleteTodo(ctx, created.ID)
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Todo not found", apiErr.Message)
}

func TestClientValidationError(t *testing.T) {
	c := newTestClient(t)

	_, err := c.CreateTodo(context.Background(), "   ", "")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Validation error", apiErr.Err)
	assert.Equal(t, "Title is required and cannot be empty", apiErr.Message)
}

func TestClientDeleteAllAndSeed(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.SeedTodos(ctx))
	env, err := c.ListTodos(ctx, client.ListOptions{Limit: 50})
	require.NoError(t, err)
	assert.NotEmpty(t, env.Data)

	require.NoError(t, c.DeleteAllTodos(ctx))
	env, err = c.ListTodos(ctx, client.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, env.Data)
}

func TestClientUndecodableErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream broke</html>"))
	}))
	defer server.Close()

	c := client.New(server.URL)
	_, err := c.ListTodos(context.Background(), client.ListOptions{})
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.Message)
}

func TestClientWireShape(t *testing.T) {
	// The client's Todo type decodes the exact JSON the server emits.
	raw := `{"id":"abc","title":"T","completed":true,"kind":"note","createdAt":"2026-08-29T10:00:00Z","updatedAt":"2026-08-29T11:00:00Z"}`
	var todo client.Todo
	require.NoError(t, json.Unmarshal([]byte(raw), &todo))
	assert.Equal(t, "abc", todo.ID)
	assert.Equal(t, client.KindNote, todo.Kind)
	assert.True(t, todo.UpdatedAt.After(todo.CreatedAt))
}
