package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ErrTaskFailed is returned by WaitTask when the task ends in TaskFailed.
var ErrTaskFailed = errors.New("task failed")

// StartRefresh asks the backend to re-scrape ticket listings for an event.
func (c *Client) StartRefresh(ctx context.Context, eventID string) (*Task, error) {
	var task Task
	body := map[string]string{"eventId": eventID}
	if err := c.do(ctx, http.MethodPost, "/api/tasks/refresh", nil, body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// Task fetches the current status of a task.
func (c *Client) Task(ctx context.Context, id string) (*Task, error) {
	var task Task
	if err := c.get(ctx, "/api/tasks/"+url.PathEscape(id), nil, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// ErrInvalidInterval is returned by WaitTask for a non-positive interval.
var ErrInvalidInterval = errors.New("poll interval must be positive")

// WaitTask polls the task every interval until it finishes or ctx ends.
// onUpdate, if set, sees every polled status.
func (c *Client) WaitTask(ctx context.Context, id string, interval time.Duration, onUpdate func(*Task)) (*Task, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("api: wait task %s: %w (got %s)", id, ErrInvalidInterval, interval)
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		task, err := c.Task(ctx, id)
		if err != nil {
			return nil, err
		}
		if onUpdate != nil {
			onUpdate(task)
		}
		switch task.Status {
		case TaskDone:
			return task, nil
		case TaskFailed:
			return task, ErrTaskFailed
		}

		select {
		case <-ctx.Done():
			return task, ctx.Err()
		case <-ticker.C:
		}
	}
}
