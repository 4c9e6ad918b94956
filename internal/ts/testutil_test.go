package ts

import (
	"testing"

	"github.com/stretchr/testify/require"

	"oasSearch/internal/oas"
)

// threeJobs — эталонные три работы: [1,2,3] даёт прибыль 29, [2,1,3] — 30.
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

func testConfig(n int) Config {
	return Config{
		NumOrders:                  n,
		TabuTenure:                 7,
		TerminationForNotImproving: 200,
		PathRelinkingFrequency:     25,
		PathRelinkingRequirement:   20,
	}
}

// losingJobs — три работы, на которых любая последовательность убыточна:
// все принимаются, прибыль каждой перестановки 3 − 10·(5+10+15) = −297.
func losingJobs(t *testing.T) *oas.Instance {
	t.Helper()
	inst, err := oas.NewInstance(oas.Attributes{
		ReleaseTimes:    []float64{0, 0, 0, 0},
		ProcessingTimes: []float64{0, 5, 5, 5},
		Revenues:        []float64{0, 1, 1, 1},
		DueDates:        []float64{0, 0, 0, 0},
		Deadlines:       []float64{0, 100, 100, 100},
		PenaltyWeights:  []float64{0, 10, 10, 10},
	})
	require.NoError(t, err)
	return inst
}
