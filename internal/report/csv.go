package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// WriteCSV сохраняет журнал итераций в CSV. Каталог создаётся при
// необходимости.
func WriteCSV(path string, its []Iteration) error {
	if d := filepath.Dir(path); d != "." {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"iteration", "phase", "swap_i", "swap_k", "tabu", "accepted",
		"revenue", "weighted_tardiness", "profit", "completion_time",
		"accepted_jobs", "rejected_jobs",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, it := range its {
		completion := ""
		if ms, ok := it.Snapshot.Makespan(); ok {
			completion = ftoa(ms)
		}
		row := []string{
			strconv.Itoa(it.Iteration),
			string(it.Phase),
			strconv.Itoa(it.Swap[0]),
			strconv.Itoa(it.Swap[1]),
			strconv.FormatBool(it.Tabu),
			strconv.FormatBool(it.Accepted),
			ftoa(it.Snapshot.Revenue),
			ftoa(it.Snapshot.WeightedTardiness),
			ftoa(it.Snapshot.Profit),
			completion,
			joinInts(it.Snapshot.Accepted),
			joinInts(it.Snapshot.Rejected),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// joinInts склеивает id через пробел, чтобы не конфликтовать с запятой CSV.
func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}
