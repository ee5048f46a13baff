// Package api is the HTTP client for the TaskKeeper server. It keeps the
// bearer token obtained at login and attaches it to every task request.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ikratov/taskkeeper/internal/common"
)

type Task struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken stores the bearer token used on authenticated requests.
// Logout is client-side only: call SetToken("") to discard it.
func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

type tokenResponse struct {
	Token string `json:"token"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Signup creates an account and returns the issued token.
func (c *Client) Signup(ctx context.Context, email, password string) (string, error) {
	return c.authRequest(ctx, "/api/auth/signup", email, password)
}

// Login authenticates and returns the issued token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	return c.authRequest(ctx, "/api/auth/login", email, password)
}

func (c *Client) authRequest(ctx context.Context, path, email, password string) (string, error) {
	var resp tokenResponse
	err := c.do(ctx, http.MethodPost, path,
		map[string]string{"email": email, "password": password}, &resp)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *Client) ListTasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) CreateTask(ctx context.Context, title string) (*Task, error) {
	task := &Task{}
	err := c.do(ctx, http.MethodPost, "/api/tasks", map[string]any{"title": title}, task)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (c *Client) CompleteTask(ctx context.Context, id string) (*Task, error) {
	task := &Task{}
	err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, map[string]any{"completed": true}, task)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

// do performs one JSON request/response cycle. Known failure statuses are
// translated into the shared sentinel errors so callers can use errors.Is.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
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
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return c.translateError(resp)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}

func (c *Client) translateError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	switch resp.StatusCode {
	case http.StatusConflict:
		return common.ErrEmailAlreadyExists
	case http.StatusUnauthorized:
		return common.ErrInvalidCredentials
	case http.StatusNotFound:
		return common.ErrorNotFound
	case http.StatusBadRequest:
		return common.ErrValidation
	default:
		if body.Error != "" {
			return fmt.Errorf("server error: %s", body.Error)
		}
		return fmt.Errorf("server error: %s", resp.Status)
	}
}
