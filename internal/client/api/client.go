// Package api implements the HTTP client for the TaskTrack server.
// It holds the session token for the lifetime of the process only —
// nothing is persisted, and logout is a client-side state clear.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Account mirrors the server's signup response.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Task mirrors the server's task representation.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Client is a thin JSON client over the server's REST API. It is not safe
// for concurrent use; the CLI drives it from a single goroutine.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New constructs a Client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Authenticated reports whether a session token is currently held.
func (c *Client) Authenticated() bool {
	return c.token != ""
}

// ClearToken drops the held session token. The server keeps no session
// state, so this is all a logout amounts to.
func (c *Client) ClearToken() {
	c.token = ""
}

// do sends a JSON request, attaching the bearer token when present, and
// decodes the response into out (if non-nil) for 2xx statuses. Error
// statuses are mapped to sentinel errors or to the server's message.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		return json.NewDecoder(resp.Body).Decode(out)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthenticated
	case http.StatusNotFound:
		return ErrNotFound
	}

	var msg messageResponse
	if err := json.NewDecoder(resp.Body).Decode(&msg); err == nil && msg.Message != "" {
		return fmt.Errorf("server error: %s", msg.Message)
	}
	return fmt.Errorf("server error: status %d", resp.StatusCode)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, username, email, password string) (*Account, error) {
	req := map[string]string{"username": username, "email": email, "password": password}
	var acc Account
	if err := c.do(ctx, http.MethodPost, "/signup", req, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// Login exchanges credentials for a session token and stores it for
// subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) error {
	req := map[string]string{"email": email, "password": password}
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/signin", req, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	return nil
}

// ListTasks returns the caller's tasks.
func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a task and returns the created record.
func (c *Client) CreateTask(ctx context.Context, title, description string) (*Task, error) {
	req := map[string]string{"title": title, "description": description}
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", req, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ToggleTask flips a task's completion flag and returns the new value.
func (c *Client) ToggleTask(ctx context.Context, id string) (bool, error) {
	var resp struct {
		Message   string `json:"message"`
		Completed bool   `json:"completed"`
	}
	if err := c.do(ctx, http.MethodPut, "/tasks/"+id, nil, &resp); err != nil {
		return false, err
	}
	return resp.Completed, nil
}

// DeleteTask removes a task and returns the deleted record.
func (c *Client) DeleteTask(ctx context.Context, id string) (*Task, error) {
	var resp struct {
		Message     string `json:"message"`
		DeletedTask *Task  `json:"deletedTask"`
	}
	if err := c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, &resp); err != nil {
		return nil, err
	}
	return resp.DeletedTask, nil
}
