package tools

import (
	"context"
	"log"
)

// TaskFunc defines a unit of background work.
type TaskFunc func(ctx context.Context) error

// Dispatch runs the task in a separate goroutine, fire-and-forget. Failures
// are logged under the task name since no caller waits on them.
func Dispatch(ctx context.Context, name string, fn TaskFunc) {
	go func() {
		if err := fn(ctx); err != nil {
			log.Printf("[WARN] task %s: %v", name, err)
		}
	}()
}
