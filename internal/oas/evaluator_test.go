package oas_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oasSearch/internal/oas"
)

func TestEvaluate_ThreeJobsInOrder(t *testing.T) {
	eval, err := oas.NewEvaluator(threeJobs(t))
	require.NoError(t, err)

	s, err := eval.Evaluate([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, s.Accepted)
	assert.Equal(t, []float64{3, 5, 9}, s.Completion)
	assert.Empty(t, s.Rejected)
	assert.Equal(t, 30.0, s.Revenue)
	assert.Equal(t, 1.0, s.WeightedTardiness)
	assert.Equal(t, 29.0, s.Profit)

	ms, ok := s.Makespan()
	require.True(t, ok)
	assert.Equal(t, 9.0, ms)
}

func TestEvaluate_SwappedFirstTwoIsBetter(t *testing.T) {
	eval, err := oas.NewEvaluator(threeJobs(t))
	require.NoError(t, err)

	s, err := eval.Evaluate([]int{2, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 5, 9}, s.Completion)
	assert.Equal(t, 30.0, s.Revenue)
	assert.Equal(t, 0.0, s.WeightedTardiness, "completion on the due date is not tardy")
	assert.Equal(t, 30.0, s.Profit)
}

func TestEvaluate_RejectsPastDeadline(t *testing.T) {
	eval, err := oas.NewEvaluator(threeJobs(t))
	require.NoError(t, err)

	// J3 стартует в момент 1 и завершается в 5, J1 — в 8 (ровно дедлайн),
	// J2 завершился бы в 10 > 6.
	s, err := eval.Evaluate([]int{3, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1}, s.Accepted)
	assert.Equal(t, []int{2}, s.Rejected)
	assert.Equal(t, 22.0, s.Revenue)
	assert.Equal(t, 6.0, s.WeightedTardiness)
	assert.Equal(t, 16.0, s.Profit)
}

func TestEvaluate_ClockJumpsToRelease(t *testing.T) {
	inst, err := oas.NewInstance(oas.Attributes{
		ReleaseTimes:    []float64{0, 0, 10},
		ProcessingTimes: []float64{0, 2, 3},
		Revenues:        []float64{0, 5, 7},
		DueDates:        []float64{0, 4, 12},
		Deadlines:       []float64{0, 4, 14},
		PenaltyWeights:  []float64{0, 1, 2},
	})
	require.NoError(t, err)
	eval, err := oas.NewEvaluator(inst)
	require.NoError(t, err)

	s := eval.MustEvaluate([]int{1, 2})
	assert.Equal(t, []float64{2, 13}, s.Completion)
	assert.Equal(t, 2.0, s.WeightedTardiness)
	assert.Equal(t, 10.0, s.Profit)
}

func TestEvaluate_FirstJobWaitsForRelease(t *testing.T) {
	inst, err := oas.NewInstance(oas.Attributes{
		ReleaseTimes:    []float64{0, 4, 0},
		ProcessingTimes: []float64{0, 2, 1},
		Revenues:        []float64{0, 3, 3},
		DueDates:        []float64{0, 6, 3},
		Deadlines:       []float64{0, 6, 3},
		PenaltyWeights:  []float64{0, 1, 1},
	})
	require.NoError(t, err)
	eval, err := oas.NewEvaluator(inst)
	require.NoError(t, err)

	// Часы сразу переходят к release первой работы, поэтому J2 (дедлайн 3)
	// уже не успевает.
	s := eval.MustEvaluate([]int{1, 2})
	assert.Equal(t, []int{1}, s.Accepted)
	assert.Equal(t, []int{2}, s.Rejected)
	assert.Equal(t, []float64{6}, s.Completion)
}

func TestEvaluate_AllRejected(t *testing.T) {
	inst, err := oas.NewInstance(oas.Attributes{
		ReleaseTimes:    []float64{0, 5, 5},
		ProcessingTimes: []float64{0, 3, 4},
		Revenues:        []float64{0, 10, 10},
		DueDates:        []float64{0, 6, 6},
		Deadlines:       []float64{0, 7, 8},
		PenaltyWeights:  []float64{0, 1, 1},
	})
	require.NoError(t, err)
	eval, err := oas.NewEvaluator(inst)
	require.NoError(t, err)

	s := eval.MustEvaluate([]int{2, 1})
	assert.Empty(t, s.Accepted)
	assert.Equal(t, []int{2, 1}, s.Rejected)
	assert.Equal(t, 0.0, s.Profit)

	_, ok := s.Makespan()
	assert.False(t, ok)
}

func TestEvaluate_InvalidSequence(t *testing.T) {
	eval, err := oas.NewEvaluator(threeJobs(t))
	require.NoError(t, err)

	cases := map[string][]int{
		"short":     {1, 2},
		"duplicate": {1, 1, 3},
		"sentinel":  {0, 1, 2},
		"unknown":   {1, 2, 4},
	}
	for name, seq := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := eval.Evaluate(seq)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oas.ErrInvalidSequence))
		})
	}
	assert.Panics(t, func() { eval.MustEvaluate([]int{3}) })
}

// Прибыль всегда равна выручке минус штраф, штраф неотрицателен, а работа
// отклоняется тогда и только тогда, когда не успевает к дедлайну.
func TestEvaluate_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inst := oas.RandomInstance(25, rng)
	eval, err := oas.NewEvaluator(inst)
	require.NoError(t, err)

	for trial := 0; trial < 50; trial++ {
		seq := inst.IDs()
		rng.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })

		s := eval.MustEvaluate(seq)
		require.InDelta(t, s.Revenue-s.WeightedTardiness, s.Profit, 1e-9)
		require.GreaterOrEqual(t, s.WeightedTardiness, 0.0)
		require.Len(t, s.Completion, len(s.Accepted))
		require.Equal(t, inst.Jobs(), len(s.Accepted)+len(s.Rejected))

		rejected := make(map[int]bool, len(s.Rejected))
		for _, id := range s.Rejected {
			rejected[id] = true
		}
		clock := inst.Job(seq[0]).ReleaseTime
		for _, id := range seq {
			job := inst.Job(id)
			start := clock
			if job.ReleaseTime > start {
				start = job.ReleaseTime
			}
			late := start+job.ProcessingTime > job.Deadline
			require.Equal(t, late, rejected[id], "job %d", id)
			if !late {
				clock = start + job.ProcessingTime
			}
		}
	}
}
