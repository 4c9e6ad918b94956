package ts

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oasSearch/internal/oas"
)

func newTestRelinker(t *testing.T, inst *oas.Instance, seed int64, requirement, maxRounds int) (*Relinker, *oas.Evaluator) {
	t.Helper()
	eval, err := oas.NewEvaluator(inst)
	require.NoError(t, err)
	return NewRelinker(eval, rand.New(rand.NewSource(seed)), requirement, maxRounds, nil), eval
}

func TestDifference(t *testing.T) {
	assert.Empty(t, Difference([]int{1, 2, 3}, []int{1, 2, 3}))
	assert.Equal(t, []int{0, 2}, Difference([]int{3, 2, 1}, []int{1, 2, 3}))
	// различие позиционное: разный состав даёт все позиции
	assert.Equal(t, []int{0, 1, 2}, Difference([]int{1, 2, 3}, []int{4, 5, 6}))
}

func TestRelink_IdenticalStopsImmediately(t *testing.T) {
	r, eval := newTestRelinker(t, threeJobs(t), 1, 10, 0)
	seq := []int{1, 2, 3}

	res, err := r.Relink(seq, seq)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Rounds)
	assert.Equal(t, 1, res.Evaluations)
	assert.Equal(t, eval.MustEvaluate(seq).Profit, res.Snapshot.Profit)
	assert.Equal(t, seq, res.Order)
}

func TestRelink_Incompatible(t *testing.T) {
	r, _ := newTestRelinker(t, threeJobs(t), 1, 10, 0)

	_, err := r.Relink([]int{1, 2, 3}, []int{1, 2})
	require.ErrorIs(t, err, ErrIncompatible)

	_, err = r.Relink([]int{1, 2, 3}, []int{4, 5, 6})
	require.ErrorIs(t, err, ErrIncompatible)
}

func TestRelink_FindsGuideProfit(t *testing.T) {
	r, _ := newTestRelinker(t, threeJobs(t), 4, 10, 0)

	res, err := r.Relink([]int{1, 2, 3}, []int{2, 1, 3})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rounds)
	assert.Equal(t, 30.0, res.Snapshot.Profit)
	assert.Equal(t, []int{2, 1, 3}, res.Order)
	assert.Equal(t, 2, res.Evaluations, "input plus a single distinct move")
}

func TestRelink_ReachesGuideWithinJobCountRounds(t *testing.T) {
	inst := oas.RandomInstance(30, rand.New(rand.NewSource(8)))
	shuffle := rand.New(rand.NewSource(99))

	for trial := 0; trial < 10; trial++ {
		r, eval := newTestRelinker(t, inst, int64(trial), 5, 0)

		initial := inst.IDs()
		guide := inst.IDs()
		shufflePermutation(initial, shuffle)
		shufflePermutation(guide, shuffle)

		res, err := r.Relink(initial, guide)
		require.NoError(t, err)
		require.LessOrEqual(t, res.Rounds, len(Difference(initial, guide)))
		require.NoError(t, oas.ValidateSequence(res.Order, inst.Jobs()))

		// путь заканчивается в guide, поэтому лучшее не хуже обоих концов
		assert.GreaterOrEqual(t, res.Snapshot.Profit, eval.MustEvaluate(initial).Profit)
		assert.GreaterOrEqual(t, res.Snapshot.Profit, eval.MustEvaluate(guide).Profit)
		assert.Equal(t, eval.MustEvaluate(res.Order).Profit, res.Snapshot.Profit)
	}
}

func TestRelink_RoundCap(t *testing.T) {
	inst := oas.RandomInstance(20, rand.New(rand.NewSource(5)))
	r, _ := newTestRelinker(t, inst, 2, 3, 1)

	initial := inst.IDs()
	guide := slices.Clone(initial)
	slices.Reverse(guide)

	res, err := r.Relink(initial, guide)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Rounds)
	assert.LessOrEqual(t, res.Evaluations, 1+3)
}

func TestCollectMoves_RespectsRequirementAndFixesPositions(t *testing.T) {
	inst := oas.RandomInstance(15, rand.New(rand.NewSource(6)))
	r, _ := newTestRelinker(t, inst, 3, 4, 0)

	cur := inst.IDs()
	guide := slices.Clone(cur)
	shufflePermutation(guide, rand.New(rand.NewSource(12)))
	guidePos := make(map[int]int, len(guide))
	for q, id := range guide {
		guidePos[id] = q
	}

	moves := r.collectMoves(cur, Difference(cur, guide), guidePos)
	require.NotEmpty(t, moves)
	require.LessOrEqual(t, len(moves), 4)

	seen := make(map[Move]bool)
	for _, mv := range moves {
		require.False(t, seen[mv.Normalize()], "moves are distinct")
		seen[mv.Normalize()] = true

		cand := ApplySwap(cur, mv.I, mv.K)
		assert.Equal(t, guide[mv.K], cand[mv.K], "swap puts a job on its guide position")
	}
}
