// Package client is the typed data layer for the todo HTTP API. It mirrors
// the wire contract with its own types, issues one request per call and
// propagates failures as-is: no retries, no caching.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Status filter values.
const (
	StatusAll       = "all"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Kind values.
const (
	KindTask = "task"
	KindNote = "note"
)

// Todo is the wire shape of an item.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Counts are the sidebar badge totals.
type Counts struct {
	All       int `json:"all"`
	Active    int `json:"active"`
	Completed int `json:"completed"`
}

// Meta is the pagination/count block of a list response.
type Meta struct {
	Total      int    `json:"total"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
	Counts     Counts `json:"counts"`
}

// Envelope is the paginated list response.
type Envelope struct {
	Data []Todo `json:"data"`
	Meta Meta   `json:"meta"`
}

// ListOptions are the recognized query parameters; zero values are omitted
// and the server applies its defaults.
type ListOptions struct {
	Status    string
	Search    string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Patch is a partial update; nil fields are omitted from the request body.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// APIError is a decoded non-2xx response.
type APIError struct {
	StatusCode int
	Err        string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.StatusCode, e.Err, e.Message)
}

// Client issues the todo API operations against a base URL.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListTodos fetches one page of todos with the current filter state.
func (c *Client) ListTodos(ctx context.Context, opts ListOptions) (*Envelope, error) {
	q := url.Values{}
	if opts.Status != "" {
		q.Set("status", opts.Status)
	}
	if strings.TrimSpace(opts.Search) != "" {
		q.Set("search", opts.Search)
	}
	if opts.SortBy != "" {
		q.Set("sortBy", opts.SortBy)
	}
	if opts.SortOrder != "" {
		q.Set("sortOrder", opts.SortOrder)
	}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	path := "/todos"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var env Envelope
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return &env, nil
}

// CreateTodo creates a new todo. An empty kind defaults server-side to task.
func (c *Client) CreateTodo(ctx context.Context, title, kind string) (*Todo, error) {
	body := map[string]string{"title": title}
	if kind != "" {
		body["kind"] = kind
	}
	var todo Todo
	if err := c.do(ctx, http.MethodPost, "/todos", body, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo applies a partial update and returns the updated todo.
func (c *Client) UpdateTodo(ctx context.Context, id string, patch Patch) (*Todo, error) {
	var todo Todo
	if err := c.do(ctx, http.MethodPatch, "/todos/"+url.PathEscape(id), patch, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo removes a single todo.
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

// DeleteAllTodos removes every todo.
func (c *Client) DeleteAllTodos(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/todos", nil, nil)
}

// SeedTodos asks the server to insert its sample data set (dev only).
func (c *Client) SeedTodos(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/todos/seed", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = resp.Status
		}
		return apiErr
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
