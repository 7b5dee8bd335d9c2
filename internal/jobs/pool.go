// Package jobs runs per-document work across a fixed pool of workers.
// Documents are independent, so the pool needs no coordination beyond a
// shared queue: no rate limiting, no retries, no cross-worker state.
package jobs

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/google/uuid"
)

// Task is one unit of work: a single document path.
type Task struct {
	ID   string
	Path string
}

// Result pairs a task with its outcome.
type Result struct {
	Task Task
	Err  error
}

// TaskHandler processes one task. Implementations must be safe for
// concurrent use; the pool invokes them from multiple goroutines.
type TaskHandler func(ctx context.Context, task Task) error

// Config configures a pool.
type Config struct {
	// Workers is the number of concurrent workers. Defaults to NumCPU.
	Workers int
	Logger  *slog.Logger
	Handler TaskHandler
}

// Pool fans a list of document paths out over worker goroutines.
type Pool struct {
	workers int
	logger  *slog.Logger
	handler TaskHandler
}

// New creates a pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pool{
		workers: workers,
		logger:  logger,
		handler: cfg.Handler,
	}
}

// Run processes all paths and returns one result per path, in completion
// order. A task failure is recorded in its result and never stops the rest
// of the batch. Run blocks until all work finishes or the context is
// cancelled; on cancellation, remaining tasks are returned with the context
// error.
func (p *Pool) Run(ctx context.Context, paths []string) []Result {
	if len(paths) == 0 {
		return nil
	}

	workers := p.workers
	if workers > len(paths) {
		workers = len(paths)
	}
	p.logger.Debug("starting worker pool", "workers", workers, "tasks", len(paths))

	queue := make(chan Task)
	results := make(chan Result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if err := ctx.Err(); err != nil {
					results <- Result{Task: task, Err: err}
					continue
				}
				err := p.handler(ctx, task)
				if err != nil {
					p.logger.Warn("task failed", "task_id", task.ID, "path", task.Path, "error", err)
				}
				results <- Result{Task: task, Err: err}
			}
		}()
	}

	for _, path := range paths {
		queue <- Task{ID: uuid.New().String(), Path: path}
	}
	close(queue)
	wg.Wait()
	close(results)

	out := make([]Result, 0, len(paths))
	for r := range results {
		out = append(out, r)
	}
	return out
}
