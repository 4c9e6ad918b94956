package oas_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oasSearch/internal/oas"
)

func TestNewInstance_SlackAndLookup(t *testing.T) {
	inst := threeJobs(t)

	require.Equal(t, 3, inst.Jobs())
	assert.Equal(t, []int{1, 2, 3}, inst.IDs())

	j3 := inst.Job(3)
	assert.Equal(t, 3, j3.ID)
	assert.Equal(t, 12.0, j3.Deadline)
	assert.Equal(t, 5.0, j3.SlackTime)
	assert.Equal(t, 2.0, inst.Job(1).SlackTime)
	assert.Equal(t, 2.0, inst.Job(2).SlackTime)
}

func TestNewInstance_RejectsMalformed(t *testing.T) {
	base := func() oas.Attributes {
		return oas.Attributes{
			ReleaseTimes:    []float64{0, 1},
			ProcessingTimes: []float64{0, 1},
			Revenues:        []float64{0, 1},
			DueDates:        []float64{0, 1},
			Deadlines:       []float64{0, 1},
			PenaltyWeights:  []float64{0, 1},
		}
	}

	cases := map[string]func(a *oas.Attributes){
		"mismatched length": func(a *oas.Attributes) { a.Deadlines = []float64{0} },
		"only sentinel": func(a *oas.Attributes) {
			*a = oas.Attributes{
				ReleaseTimes: []float64{0}, ProcessingTimes: []float64{0}, Revenues: []float64{0},
				DueDates: []float64{0}, Deadlines: []float64{0}, PenaltyWeights: []float64{0},
			}
		},
		"empty":    func(a *oas.Attributes) { *a = oas.Attributes{} },
		"negative": func(a *oas.Attributes) { a.Revenues[1] = -1 },
		"nan":      func(a *oas.Attributes) { a.DueDates[1] = math.NaN() },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			a := base()
			mutate(&a)
			_, err := oas.NewInstance(a)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oas.ErrInvalidInput))
		})
	}
}

func TestSlackOrder(t *testing.T) {
	// slack: J1=2, J2=2, J3=5 — при равенстве побеждает меньший id
	assert.Equal(t, []int{1, 2, 3}, oas.SlackOrder(threeJobs(t)))
}

func TestValidateSequence(t *testing.T) {
	require.NoError(t, oas.ValidateSequence([]int{3, 1, 2}, 3))
	require.ErrorIs(t, oas.ValidateSequence([]int{3, 3, 2}, 3), oas.ErrInvalidSequence)
}

func TestSameJobSetAndKey(t *testing.T) {
	assert.True(t, oas.SameJobSet([]int{1, 2, 3}, []int{3, 1, 2}))
	assert.False(t, oas.SameJobSet([]int{1, 2, 3}, []int{4, 5, 6}))
	assert.False(t, oas.SameJobSet([]int{1, 2}, []int{1, 2, 3}))
	assert.Equal(t, "3,1,2", oas.Key([]int{3, 1, 2}))
	assert.Equal(t, "", oas.Key(nil))
}

func TestRandomInstance_Deterministic(t *testing.T) {
	a := oas.RandomInstance(12, rand.New(rand.NewSource(3)))
	b := oas.RandomInstance(12, rand.New(rand.NewSource(3)))
	require.Equal(t, 12, a.Jobs())
	for _, id := range a.IDs() {
		assert.Equal(t, a.Job(id), b.Job(id))
	}
	assert.Panics(t, func() { oas.RandomInstance(3, nil) })
}
