package ga

import (
	"slices"

	"oasSearch/internal/oas"
	"oasSearch/internal/opt"
)

func toResult(bestPerm []int, best oas.Snapshot, evals, gens int, meta map[string]any) opt.Result {
	return opt.Result{
		Order:       slices.Clone(bestPerm),
		Profit:      best.Profit,
		Rejected:    best.Rejected,
		Evaluations: evals,
		Iterations:  gens,
		Meta:        meta,
	}
}
