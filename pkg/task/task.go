// Package task looks up the asynchronous jobs started by the pose API
// (image generation, extraction from script) and waits for them to finish.
package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"poseclient/pkg/transport"

	"github.com/cenkalti/backoff/v4"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Done reports whether the job reached a final state.
func (s Status) Done() bool { return s == StatusCompleted || s == StatusFailed }

type Task struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Status     Status          `json:"status"`
	Progress   int             `json:"progress"`
	Message    string          `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
	Result     json.RawMessage `json:"result,omitempty"`
	ResourceID string          `json:"resource_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// FailedError is returned by Wait when the job itself failed.
type FailedError struct {
	Task *Task
}

func (e *FailedError) Error() string {
	msg := e.Task.Error
	if msg == "" {
		msg = e.Task.Message
	}
	return fmt.Sprintf("task %s failed: %s", e.Task.ID, msg)
}

type WaitOptions struct {
	// Interval is the first delay between polls; later delays grow up to MaxInterval.
	Interval    time.Duration
	MaxInterval time.Duration
	// Timeout bounds the whole wait, 0 means only ctx bounds it.
	Timeout time.Duration
	// OnPoll, if set, sees every snapshot that is not final yet.
	OnPoll func(*Task)
}

type Client struct {
	tc transport.Client
}

func NewClient(tc transport.Client) *Client {
	return &Client{tc: tc}
}

func (c *Client) Get(ctx context.Context, taskID string) (*Task, error) {
	var t Task
	if err := transport.Call(ctx, c.tc, http.MethodGet, "/tasks/"+url.PathEscape(taskID), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

// Wait polls the job until it completes or fails. A failed job yields
// *FailedError; transport errors stop the wait and are returned as-is.
func (c *Client) Wait(ctx context.Context, taskID string, opts WaitOptions) (*Task, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	b := backoff.NewExponentialBackOff()
	if opts.Interval > 0 {
		b.InitialInterval = opts.Interval
	}
	if opts.MaxInterval > 0 {
		b.MaxInterval = opts.MaxInterval
	}
	b.MaxElapsedTime = 0

	var last *Task
	op := func() error {
		t, err := c.Get(ctx, taskID)
		if err != nil {
			return backoff.Permanent(err)
		}
		last = t
		if !t.Status.Done() {
			if opts.OnPoll != nil {
				opts.OnPoll(t)
			}
			return errPending
		}
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(b, ctx)); err != nil {
		if errors.Is(err, errPending) {
			err = ctx.Err()
		}
		return last, err
	}
	if last.Status == StatusFailed {
		return last, &FailedError{Task: last}
	}
	return last, nil
}

var errPending = errors.New("task still running")
