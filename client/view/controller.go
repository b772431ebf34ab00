// Package view holds the client-side state machine: the current item list,
// filter/search/page state, and the optimistic mutation protocol with
// snapshot-based rollback.
package view

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"todo-app/client"

	"github.com/google/uuid"
)

const defaultLimit = 10

// Level classifies a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Notification is a transient user-visible message.
type Notification struct {
	Level   Level
	Message string
}

// API is the slice of the data layer the controller drives. *client.Client
// satisfies it; tests substitute a fake.
type API interface {
	ListTodos(ctx context.Context, opts client.ListOptions) (*client.Envelope, error)
	CreateTodo(ctx context.Context, title, kind string) (*client.Todo, error)
	UpdateTodo(ctx context.Context, id string, patch client.Patch) (*client.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	DeleteAllTodos(ctx context.Context) error
	SeedTodos(ctx context.Context) error
}

type mutationState int

const (
	mutationPending mutationState = iota
	mutationCommitted
	mutationRolledBack
)

// mutation captures the pre-mutation snapshot so rollback is a pure function
// of (controller, snapshot) rather than an ad hoc inverse operation.
type mutation struct {
	snapshot []client.Todo
	state    mutationState
}

// Controller is the view-state controller. Methods are safe for concurrent
// use; the UI is expected to issue at most one in-flight mutation per user
// action (overlapping mutations on the same item are last-write-wins).
type Controller struct {
	mu  sync.Mutex
	api API

	items     []client.Todo
	filter    string
	search    string
	page      int
	limit     int
	sortBy    string
	sortOrder string
	meta      *client.Meta
	loading   bool
	err       string

	notes []Notification
}

// NewController creates a controller with default filter state.
func NewController(api API) *Controller {
	return &Controller{
		api:       api,
		filter:    client.StatusAll,
		page:      1,
		limit:     defaultLimit,
		sortBy:    "createdAt",
		sortOrder: "DESC",
	}
}

// Items returns a copy of the current item list.
func (c *Controller) Items() []client.Todo {
	c.mu.Lock()
	defer c.mu.Unlock()
	return snapshotOf(c.items)
}

// Meta returns the last-received pagination/count envelope, or nil before the
// first successful fetch.
func (c *Controller) Meta() *client.Meta {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.meta == nil {
		return nil
	}
	m := *c.meta
	return &m
}

// Filter returns the active status filter.
func (c *Controller) Filter() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Search returns the active search term.
func (c *Controller) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.search
}

// Page returns the current 1-based page.
func (c *Controller) Page() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Loading reports whether a fetch is in flight.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Err returns the persistent read-failure message, empty when healthy.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Notifications drains and returns pending notifications, oldest first.
func (c *Controller) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	notes := c.notes
	c.notes = nil
	return notes
}

// Refresh refetches the current page. A read failure sets a persistent error
// state; Retry re-runs the same fetch.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	opts := client.ListOptions{
		Status:    c.filter,
		Search:    c.search,
		SortBy:    c.sortBy,
		SortOrder: c.sortOrder,
		Page:      c.page,
		Limit:     c.limit,
	}
	c.mu.Unlock()

	env, err := c.api.ListTodos(ctx, opts)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.err = "Failed to load todos"
		c.notify(LevelError, "Failed to load todos")
		return err
	}
	c.err = ""
	c.items = env.Data
	c.meta = &env.Meta
	return nil
}

// Retry re-runs the last fetch after a read failure.
func (c *Controller) Retry(ctx context.Context) error {
	return c.Refresh(ctx)
}

// SetFilter changes the status filter, resets to page 1 and refetches.
func (c *Controller) SetFilter(ctx context.Context, filter string) error {
	c.mu.Lock()
	c.filter = filter
	c.page = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetSearch changes the search term, resets to page 1 and refetches.
func (c *Controller) SetSearch(ctx context.Context, search string) error {
	c.mu.Lock()
	c.search = search
	c.page = 1
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// SetPage jumps to the given 1-based page and refetches.
func (c *Controller) SetPage(ctx context.Context, page int) error {
	if page < 1 {
		page = 1
	}
	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// NextPage advances one page when the envelope says more exist.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	if c.meta != nil && c.page >= c.meta.TotalPages {
		c.mu.Unlock()
		return nil
	}
	c.page++
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// PrevPage goes back one page.
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	if c.page <= 1 {
		c.mu.Unlock()
		return nil
	}
	c.page--
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Create optimistically inserts a placeholder at the head of the list, issues
// the create call, and on success swaps in the server item and refetches to
// restore ordering and pagination. On failure the placeholder is rolled back.
func (c *Controller) Create(ctx context.Context, title, kind string) error {
	placeholder := client.Todo{
		ID:        "tmp-" + uuid.New().String(),
		Title:     strings.TrimSpace(title),
		Kind:      kind,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if placeholder.Kind == "" {
		placeholder.Kind = client.KindTask
	}

	c.mu.Lock()
	m := c.begin()
	c.items = append([]client.Todo{placeholder}, c.items...)
	c.mu.Unlock()

	created, err := c.api.CreateTodo(ctx, title, kind)

	c.mu.Lock()
	if err != nil {
		c.rollback(m)
		c.notify(LevelError, "Failed to create todo")
		c.mu.Unlock()
		return err
	}
	for i := range c.items {
		if c.items[i].ID == placeholder.ID {
			c.items[i] = *created
			break
		}
	}
	c.commit(m)
	c.notify(LevelSuccess, "Todo created")
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Toggle flips completed locally, issues the update, and reverts on failure.
// On success under a non-"all" filter it refetches so the item can drop out
// of the now-mismatched view.
func (c *Controller) Toggle(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("toggle: no item %s", id)
	}
	m := c.begin()
	completed := !c.items[idx].Completed
	c.items[idx].Completed = completed
	filter := c.filter
	c.mu.Unlock()

	_, err := c.api.UpdateTodo(ctx, id, client.Patch{Completed: &completed})

	c.mu.Lock()
	if err != nil {
		c.rollback(m)
		c.notify(LevelError, "Failed to update todo")
		c.mu.Unlock()
		return err
	}
	c.commit(m)
	if completed {
		c.notify(LevelSuccess, "Todo completed")
	} else {
		c.notify(LevelInfo, "Todo marked as active")
	}
	c.mu.Unlock()

	if filter != client.StatusAll {
		return c.Refresh(ctx)
	}
	return nil
}

// Rename optimistically replaces the title and reverts to the snapshot on
// failure.
func (c *Controller) Rename(ctx context.Context, id, title string) error {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("rename: no item %s", id)
	}
	m := c.begin()
	c.items[idx].Title = strings.TrimSpace(title)
	c.mu.Unlock()

	updated, err := c.api.UpdateTodo(ctx, id, client.Patch{Title: &title})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.rollback(m)
		c.notify(LevelError, "Failed to update todo")
		return err
	}
	if i := c.indexOf(id); i >= 0 {
		c.items[i] = *updated
	}
	c.commit(m)
	c.notify(LevelSuccess, "Todo updated")
	return nil
}

// Delete optimistically removes the item, re-inserting it at its original
// position if the server call fails. On success it refetches to close
// pagination gaps.
func (c *Controller) Delete(ctx context.Context, id string) error {
	c.mu.Lock()
	idx := c.indexOf(id)
	if idx < 0 {
		c.mu.Unlock()
		return fmt.Errorf("delete: no item %s", id)
	}
	m := c.begin()
	c.items = append(snapshotOf(c.items[:idx]), c.items[idx+1:]...)
	c.mu.Unlock()

	err := c.api.DeleteTodo(ctx, id)

	c.mu.Lock()
	if err != nil {
		c.rollback(m)
		c.notify(LevelError, "Failed to delete todo")
		c.mu.Unlock()
		return err
	}
	c.commit(m)
	c.notify(LevelSuccess, "Todo deleted")
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// ClearAll deletes every todo (dev action) and refetches.
func (c *Controller) ClearAll(ctx context.Context) error {
	if err := c.api.DeleteAllTodos(ctx); err != nil {
		c.mu.Lock()
		c.notify(LevelError, "Failed to clear todos")
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.page = 1
	c.notify(LevelSuccess, "All todos deleted")
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Seed asks the server for sample data (dev action) and refetches.
func (c *Controller) Seed(ctx context.Context) error {
	if err := c.api.SeedTodos(ctx); err != nil {
		c.mu.Lock()
		c.notify(LevelError, "Failed to seed todos")
		c.mu.Unlock()
		return err
	}
	c.mu.Lock()
	c.notify(LevelSuccess, "Database seeded")
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// begin starts a mutation by snapshotting the item list. Callers hold mu.
func (c *Controller) begin() *mutation {
	return &mutation{snapshot: snapshotOf(c.items), state: mutationPending}
}

// rollback restores the pre-mutation snapshot. Callers hold mu.
func (c *Controller) rollback(m *mutation) {
	c.items = m.snapshot
	m.state = mutationRolledBack
}

// commit marks the optimistic write as confirmed. Callers hold mu.
func (c *Controller) commit(m *mutation) {
	m.state = mutationCommitted
}

func (c *Controller) indexOf(id string) int {
	for i := range c.items {
		if c.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (c *Controller) notify(level Level, message string) {
	c.notes = append(c.notes, Notification{Level: level, Message: message})
}

func snapshotOf(items []client.Todo) []client.Todo {
	out := make([]client.Todo, len(items))
	copy(out, items)
	return out
}
