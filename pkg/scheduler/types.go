package scheduler

import (
	"context"
)

// Work is one unit of work run by a scheduler worker.
type Work[T any] func(ctx context.Context) (T, error)
