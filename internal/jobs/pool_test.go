package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestRunProcessesAllTasks(t *testing.T) {
	var mu sync.Mutex
	seen := make(map[string]int)

	pool := New(Config{
		Workers: 4,
		Logger:  testLogger,
		Handler: func(ctx context.Context, task Task) error {
			mu.Lock()
			seen[task.Path]++
			mu.Unlock()
			return nil
		},
	})

	paths := make([]string, 20)
	for i := range paths {
		paths[i] = fmt.Sprintf("doc-%02d.pdf", i)
	}

	results := pool.Run(context.Background(), paths)
	if len(results) != len(paths) {
		t.Fatalf("results: got %d, want %d", len(results), len(paths))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("task %s: unexpected error %v", r.Task.Path, r.Err)
		}
		if r.Task.ID == "" {
			t.Error("task without an ID")
		}
	}
	for _, path := range paths {
		if seen[path] != 1 {
			t.Errorf("path %s handled %d times", path, seen[path])
		}
	}
}

func TestRunFailureDoesNotStopBatch(t *testing.T) {
	failing := errors.New("unreadable document")
	pool := New(Config{
		Workers: 2,
		Logger:  testLogger,
		Handler: func(ctx context.Context, task Task) error {
			if task.Path == "bad.pdf" {
				return failing
			}
			return nil
		},
	})

	results := pool.Run(context.Background(), []string{"a.pdf", "bad.pdf", "b.pdf"})
	if len(results) != 3 {
		t.Fatalf("results: got %d, want 3", len(results))
	}

	var failed, succeeded int
	for _, r := range results {
		if r.Err != nil {
			failed++
			if !errors.Is(r.Err, failing) {
				t.Errorf("unexpected error: %v", r.Err)
			}
		} else {
			succeeded++
		}
	}
	if failed != 1 || succeeded != 2 {
		t.Errorf("got %d failed / %d succeeded, want 1 / 2", failed, succeeded)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pool := New(Config{
		Workers: 1,
		Logger:  testLogger,
		Handler: func(ctx context.Context, task Task) error {
			t.Error("handler must not run after cancellation")
			return nil
		},
	})

	results := pool.Run(ctx, []string{"a.pdf", "b.pdf"})
	if len(results) != 2 {
		t.Fatalf("results: got %d, want 2", len(results))
	}
	for _, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("task %s: got %v, want context.Canceled", r.Task.Path, r.Err)
		}
	}
}

func TestRunEmptyInput(t *testing.T) {
	pool := New(Config{Logger: testLogger, Handler: func(ctx context.Context, task Task) error { return nil }})
	if results := pool.Run(context.Background(), nil); results != nil {
		t.Errorf("empty input: got %v", results)
	}
}
