package ts

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"

	"oasSearch/internal/oas"
)

// ErrIncompatible возвращается, если начальное и направляющее решения не
// являются перестановками одних и тех же работ.
var ErrIncompatible = errors.New("sequences are not permutations of the same jobs")

// staleDraws — после стольких подряд выборок без нового хода сбор ходов
// раунда прекращается.
const staleDraws = 10

// Relinker строит цепочку промежуточных решений от начального к
// направляющему и запоминает лучшее из встреченных.
type Relinker struct {
	eval        *oas.Evaluator
	rng         *rand.Rand
	requirement int
	maxRounds   int
	log         *slog.Logger
}

// RelinkResult — лучшее решение, найденное за все раунды.
type RelinkResult struct {
	Order       []int
	Snapshot    oas.Snapshot
	Rounds      int
	Evaluations int
}

func NewRelinker(eval *oas.Evaluator, rng *rand.Rand, requirement, maxRounds int, log *slog.Logger) *Relinker {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if maxRounds <= 0 {
		maxRounds = eval.Instance().Jobs()
	}
	return &Relinker{eval: eval, rng: rng, requirement: requirement, maxRounds: maxRounds, log: log}
}

// Difference возвращает позиции, на которых a и b различаются.
func Difference(a, b []int) []int {
	var diff []int
	for p := range a {
		if a[p] != b[p] {
			diff = append(diff, p)
		}
	}
	return diff
}

// Relink ведёт initial к guide. Каждый раунд собирает до requirement
// различных ходов, каждый из которых ставит на место хотя бы одну работу,
// оценивает полученных кандидатов и продолжает от лучшего.
func (r *Relinker) Relink(initial, guide []int) (RelinkResult, error) {
	if len(initial) != len(guide) || !oas.SameJobSet(initial, guide) {
		return RelinkResult{}, fmt.Errorf("%w: initial has %d jobs, guide has %d", ErrIncompatible, len(initial), len(guide))
	}
	snap, err := r.eval.Evaluate(initial)
	if err != nil {
		return RelinkResult{}, err
	}

	cur := slices.Clone(initial)
	res := RelinkResult{Order: slices.Clone(cur), Snapshot: snap, Evaluations: 1}

	guidePos := make(map[int]int, len(guide))
	for q, id := range guide {
		guidePos[id] = q
	}

	for res.Rounds < r.maxRounds && !slices.Equal(cur, guide) {
		moves := r.collectMoves(cur, Difference(cur, guide), guidePos)

		// Победитель раунда: кандидат с наибольшей прибылью, первый при равенстве
		var winner []int
		var winSnap oas.Snapshot
		for i, mv := range moves {
			cand := ApplySwap(cur, mv.I, mv.K)
			cs := r.eval.MustEvaluate(cand)
			res.Evaluations++
			if i == 0 || cs.Profit > winSnap.Profit {
				winner, winSnap = cand, cs
			}
		}

		cur = winner
		res.Rounds++
		r.log.Debug("relinking round",
			slog.Int("round", res.Rounds),
			slog.Int("moves", len(moves)),
			slog.Int("distance", len(Difference(cur, guide))),
			slog.Float64("profit", winSnap.Profit),
		)

		if winSnap.Profit > res.Snapshot.Profit {
			res.Order = slices.Clone(cur)
			res.Snapshot = winSnap
		}
	}
	return res, nil
}

// collectMoves случайно выбирает несовпадающую позицию p и находит позицию q,
// на которой guide держит работу cur[p]. Обмен (p,q) ставит эту работу на
// место. Позиция p всегда несовпадающая, значит q != p.
func (r *Relinker) collectMoves(cur, diff []int, guidePos map[int]int) []Move {
	var moves []Move
	seen := make(map[Move]struct{})
	stale := 0
	for len(moves) < r.requirement && stale < staleDraws {
		p := diff[r.rng.Intn(len(diff))]
		mv := Move{I: p, K: guidePos[cur[p]]}
		key := mv.Normalize()
		if _, ok := seen[key]; ok {
			stale++
			continue
		}
		seen[key] = struct{}{}
		moves = append(moves, mv)
		stale = 0
	}
	return moves
}
