package ts

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTabuList_SlidingWindow(t *testing.T) {
	tl := NewTabuList(3)
	tl.Record(Move{I: 0, K: 1})
	tl.Record(Move{I: 0, K: 2})
	tl.Record(Move{I: 0, K: 3})
	require.Equal(t, 3, tl.Len())

	tl.Record(Move{I: 0, K: 4})
	assert.Equal(t, 3, tl.Len())
	assert.False(t, tl.IsTabu(Move{I: 0, K: 1}), "oldest move evicted")
	assert.True(t, tl.IsTabu(Move{I: 0, K: 2}))
	assert.Equal(t, []Move{{0, 4}, {0, 3}, {0, 2}}, tl.Moves())
}

func TestTabuList_Unordered(t *testing.T) {
	tl := NewTabuList(2)
	tl.Record(Move{I: 5, K: 2})
	assert.True(t, tl.IsTabu(Move{I: 2, K: 5}))
	assert.True(t, tl.IsTabu(Move{I: 5, K: 2}))
	assert.False(t, tl.IsTabu(Move{I: 2, K: 6}))
}

func TestTabuList_NeverExceedsTenure(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, tenure := range []int{1, 2, 7, 50} {
		tl := NewTabuList(tenure)
		for i := 0; i < 500; i++ {
			tl.Record(ProposeSwap(rng, 12))
			require.LessOrEqual(t, tl.Len(), tenure)
		}
		assert.Equal(t, tenure, tl.Tenure())

		// каждый ход окна должен определяться как табу
		for _, mv := range tl.Moves() {
			require.True(t, tl.IsTabu(mv))
		}
	}
}

func TestTabuList_DuplicateKeepsMembership(t *testing.T) {
	tl := NewTabuList(2)
	tl.Record(Move{I: 1, K: 2})
	tl.Record(Move{I: 2, K: 1})
	tl.Record(Move{I: 3, K: 4})
	// одна из двух копий вытеснена, вторая ещё в окне
	assert.True(t, tl.IsTabu(Move{I: 1, K: 2}))
	tl.Record(Move{I: 5, K: 6})
	assert.False(t, tl.IsTabu(Move{I: 1, K: 2}))
}

func TestAspiration_Strict(t *testing.T) {
	assert.True(t, Aspiration(30.5, 30))
	assert.False(t, Aspiration(30, 30))
	assert.False(t, Aspiration(29, 30))
}
