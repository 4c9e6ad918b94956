package opt

import (
	"context"
	"time"

	"oasSearch/internal/oas"
)

type Optimizer interface {
	Solve(ctx context.Context, inst *oas.Instance) (Result, error)
}

type Result struct {
	Order       []int
	Profit      float64
	Rejected    []int
	Evaluations int
	Iterations  int
	Duration    time.Duration
	Meta        map[string]any
}
