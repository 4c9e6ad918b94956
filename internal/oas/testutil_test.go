package oas_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"oasSearch/internal/oas"
)

// threeJobs — эталонный пример из трёх работ.
func threeJobs(t *testing.T) *oas.Instance {
	t.Helper()
	inst, err := oas.NewInstance(oas.Attributes{
		ReleaseTimes:    []float64{0, 0, 0, 1},
		ProcessingTimes: []float64{0, 3, 2, 4},
		Revenues:        []float64{0, 10, 8, 12},
		DueDates:        []float64{0, 5, 4, 10},
		Deadlines:       []float64{0, 8, 6, 12},
		PenaltyWeights:  []float64{0, 2, 1, 3},
	})
	require.NoError(t, err)
	return inst
}
