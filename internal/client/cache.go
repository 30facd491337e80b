package client

import (
	"context"
	"slices"
	"sync"

	"todai/internal/domain"
)

// Cache holds the last-fetched full task collection. Reads serve the cached
// copy; every successful mutation invalidates it so the next read refetches.
// A failed mutation leaves the cached collection untouched.
type Cache struct {
	api *Client

	mu    sync.Mutex
	tasks []domain.Task
	valid bool
}

func NewCache(api *Client) *Cache {
	return &Cache{api: api}
}

// Tasks returns the cached collection, fetching it if invalid. The returned
// slice is a copy; callers may hand it to the pipeline freely.
func (c *Cache) Tasks(ctx context.Context) ([]domain.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.valid {
		tasks, err := c.api.ListTasks(ctx)
		if err != nil {
			return nil, err
		}
		c.tasks = tasks
		c.valid = true
	}
	return slices.Clone(c.tasks), nil
}

func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.tasks = nil
	c.mu.Unlock()
}

func (c *Cache) Create(ctx context.Context, in TaskInput) (*domain.Task, error) {
	t, err := c.api.CreateTask(ctx, in)
	if err != nil {
		return nil, err
	}
	c.Invalidate()
	return t, nil
}

func (c *Cache) Update(ctx context.Context, id string, in TaskInput) (*domain.Task, error) {
	t, err := c.api.UpdateTask(ctx, id, in)
	if err != nil {
		return nil, err
	}
	c.Invalidate()
	return t, nil
}

func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	c.Invalidate()
	return nil
}
