package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Client enqueues lending maintenance tasks on demand.
type Client struct {
	client *asynq.Client
}

func NewClient(redisOpt asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpt)}
}

// EnqueueScanOverdue queues an overdue scan to run as soon as a worker is free.
func (c *Client) EnqueueScanOverdue(ctx context.Context, limit int) (string, error) {
	task, err := ScanOverdueTask(limit)
	if err != nil {
		return "", err
	}
	return c.enqueue(ctx, task)
}

// EnqueueReconcile queues a borrowed_count reconciliation.
func (c *Client) EnqueueReconcile(ctx context.Context, dryRun bool, source string) (string, error) {
	task, err := ReconcileTask(dryRun, source)
	if err != nil {
		return "", err
	}
	return c.enqueue(ctx, task)
}

func (c *Client) enqueue(ctx context.Context, task *asynq.Task) (string, error) {
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}
	return info.ID, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
