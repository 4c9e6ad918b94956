package ts

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oasSearch/internal/oas"
	"oasSearch/internal/report"
)

func TestHistory_SameRejected(t *testing.T) {
	var h History
	h.Append(report.Iteration{Iteration: 0, Order: []int{1, 2, 3, 4}, Snapshot: oas.Snapshot{Rejected: []int{4, 2}}})
	h.Append(report.Iteration{Iteration: 1, Order: []int{2, 1, 3, 4}, Snapshot: oas.Snapshot{Rejected: []int{4}}})
	h.Append(report.Iteration{Iteration: 2, Order: []int{1, 2, 3, 4}, Snapshot: oas.Snapshot{Rejected: []int{2, 4}}})
	h.Append(report.Iteration{Iteration: 3, Order: []int{3, 1, 2, 4}, Snapshot: oas.Snapshot{Rejected: []int{2, 4}}})

	got := h.SameRejected([]int{2, 4}, nil)
	assert.Equal(t, [][]int{{1, 2, 3, 4}, {3, 1, 2, 4}}, got)

	skip := map[string]struct{}{oas.Key([]int{1, 2, 3, 4}): {}}
	assert.Equal(t, [][]int{{3, 1, 2, 4}}, h.SameRejected([]int{4, 2}, skip))

	assert.Empty(t, h.SameRejected([]int{1}, nil))
	assert.Equal(t, 4, h.Len())
}
