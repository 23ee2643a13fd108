// Package workerpool offloads blocking work (extraction, OCR, generation
// calls) so the update loop never stalls behind a single slow task. Slots are
// bounded and every task runs under a deadline: a hung call times out instead
// of pinning a slot indefinitely.
package workerpool

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/semaphore"
)

type Pool struct {
	slots       *semaphore.Weighted
	taskTimeout time.Duration
	perOpLimits map[string]time.Duration
}

func New(size int, taskTimeout time.Duration) *Pool {
	if size <= 0 {
		size = 4
	}
	if taskTimeout <= 0 {
		taskTimeout = 2 * time.Minute
	}
	return &Pool{
		slots:       semaphore.NewWeighted(int64(size)),
		taskTimeout: taskTimeout,
		perOpLimits: make(map[string]time.Duration),
	}
}

// WithOperationTimeout overrides the deadline for one named operation.
// Call before the pool starts taking work.
func (p *Pool) WithOperationTimeout(operation string, d time.Duration) *Pool {
	if d > 0 {
		p.perOpLimits[operation] = d
	}
	return p
}

func (p *Pool) timeoutFor(operation string) time.Duration {
	if d, ok := p.perOpLimits[operation]; ok {
		return d
	}
	return p.taskTimeout
}

// Run acquires a slot, executes fn under the pool's task deadline, and
// releases the slot. Acquisition itself honors ctx cancellation.
func (p *Pool) Run(ctx context.Context, operation string, fn func(context.Context) error) error {
	if err := p.slots.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire worker slot for %s: %w", operation, err)
	}
	defer p.slots.Release(1)

	timeout := p.timeoutFor(operation)
	taskCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := fn(taskCtx)
	if taskCtx.Err() == context.DeadlineExceeded {
		slog.Warn("task_deadline_exceeded",
			"operation", operation,
			"timeout_ms", float64(timeout.Microseconds())/1000.0,
		)
	}
	slog.Debug("task_finished",
		"operation", operation,
		"duration_ms", float64(time.Since(start).Microseconds())/1000.0,
		"error", err,
	)
	return err
}
