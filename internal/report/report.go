// Package report описывает данные, которые поиск отдаёт наружу, и порт
// Reporter для их получения. Вывод и хранение реализуются отдельно.
package report

import (
	"time"

	"oasSearch/internal/oas"
)

// Phase — ветка итерации поиска.
type Phase string

const (
	PhaseTabu   Phase = "tabu"
	PhaseRelink Phase = "relink"
)

// Iteration — результат одной итерации. Для PhaseRelink поле Swap не
// заполняется, а Snapshot относится к лучшему решению раунда relinking.
type Iteration struct {
	Iteration int
	Phase     Phase
	Swap      [2]int
	Tabu      bool
	Accepted  bool
	Order     []int
	Snapshot  oas.Snapshot
}

// Best — лучшее найденное решение. Пока ни одно решение не превысило
// нулевой порог, Baseline == true: Profit равен порогу 0, а Order и
// Rejected относятся к начальной последовательности, прибыль которой
// может быть любой.
type Best struct {
	Profit    float64
	Iteration int
	Order     []int
	Rejected  []int
	Baseline  bool
}

// Final — итог запуска.
type Final struct {
	Best               Best
	TabuImprovements   int
	RelinkImprovements int
	Iterations         int
	Evaluations        int
	Duration           time.Duration
}

// Reporter получает снимки решений по ходу поиска.
type Reporter interface {
	Iteration(it Iteration)
	Final(f Final)
}

// Nop игнорирует все события.
type Nop struct{}

func (Nop) Iteration(Iteration) {}
func (Nop) Final(Final)         {}

// Multi рассылает события всем получателям по порядку.
type Multi []Reporter

func (m Multi) Iteration(it Iteration) {
	for _, r := range m {
		r.Iteration(it)
	}
}

func (m Multi) Final(f Final) {
	for _, r := range m {
		r.Final(f)
	}
}
