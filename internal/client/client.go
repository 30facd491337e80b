package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"todai/internal/domain"
)

// Client is a thin HTTP client for the task API. Errors coming back over the
// wire are decoded into tagged domain errors so callers can branch on kind.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// TaskInput carries the mutation payload. Nil pointer fields are omitted from
// the request; the Clear* flags send an explicit null, which the server
// treats as "clear this field".
type TaskInput struct {
	Title       *string
	Description *string
	Status      *domain.Status
	Priority    *int
	DueDate     *time.Time
	Project     *domain.Project

	ClearPriority bool
	ClearDueDate  bool
	ClearProject  bool
}

func (in TaskInput) body() map[string]any {
	b := map[string]any{}
	if in.Title != nil {
		b["title"] = *in.Title
	}
	if in.Description != nil {
		b["description"] = *in.Description
	}
	if in.Status != nil {
		b["status"] = *in.Status
	}
	switch {
	case in.ClearPriority:
		b["priority"] = nil
	case in.Priority != nil:
		b["priority"] = *in.Priority
	}
	switch {
	case in.ClearDueDate:
		b["dueDate"] = nil
	case in.DueDate != nil:
		b["dueDate"] = in.DueDate.Format(time.RFC3339)
	}
	switch {
	case in.ClearProject:
		b["project"] = nil
	case in.Project != nil:
		b["project"] = *in.Project
	}
	return b
}

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	var t domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+id, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) CreateTask(ctx context.Context, in TaskInput) (*domain.Task, error) {
	var t domain.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", in.body(), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in TaskInput) (*domain.Task, error) {
	var t domain.Task
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+id, in.body(), &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body map[string]any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		return decodeError(res)
	}
	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func decodeError(res *http.Response) error {
	var wire struct {
		Message string              `json:"message"`
		Errors  []domain.FieldError `json:"errors"`
	}
	_ = json.NewDecoder(res.Body).Decode(&wire)
	if wire.Message == "" {
		wire.Message = res.Status
	}

	kind := domain.KindInternal
	switch res.StatusCode {
	case http.StatusBadRequest:
		kind = domain.KindValidation
	case http.StatusNotFound:
		kind = domain.KindNotFound
	case http.StatusConflict:
		kind = domain.KindDuplicate
	}

	return &domain.Error{Kind: kind, Message: wire.Message, Fields: wire.Errors}
}
