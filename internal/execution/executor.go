package execution

import (
	"context"
	"time"

	"xbt/internal/domain"
)

// Executor runs jobs and returns their results
type Executor interface {
	Execute(ctx context.Context, jobs []Job) ([]domain.TestResult, time.Duration, error)
}
