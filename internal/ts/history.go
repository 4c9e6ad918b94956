package ts

import (
	"oasSearch/internal/oas"
	"oasSearch/internal/report"
)

// History — журнал всех оценённых решений запуска. Только дополняется.
type History struct {
	entries []report.Iteration
}

func (h *History) Append(it report.Iteration) {
	h.entries = append(h.entries, it)
}

func (h *History) Len() int { return len(h.entries) }

// Entries возвращает записи в порядке итераций. Срез нельзя изменять.
func (h *History) Entries() []report.Iteration {
	return h.entries
}

// SameRejected возвращает различные последовательности из журнала, у которых
// множество отклонённых работ совпадает с rejected. Последовательности из
// skip пропускаются.
func (h *History) SameRejected(rejected []int, skip map[string]struct{}) [][]int {
	var out [][]int
	seen := make(map[string]struct{})
	for _, e := range h.entries {
		if !oas.SameJobSet(e.Snapshot.Rejected, rejected) {
			continue
		}
		key := oas.Key(e.Order)
		if _, ok := skip[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e.Order)
	}
	return out
}
