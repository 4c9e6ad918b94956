package ts

import "math/rand"

// Move — обмен двух позиций последовательности. Обмен симметричен, поэтому
// (i,k) и (k,i) — один и тот же ход.
type Move struct {
	I, K int
}

// Normalize возвращает ход с I < K.
func (m Move) Normalize() Move {
	if m.I > m.K {
		return Move{I: m.K, K: m.I}
	}
	return m
}

// ProposeSwap выбирает две различные позиции из [0, n-1): последняя позиция
// в обмен не попадает. Ровно два обращения к rng. Требует n >= 3.
func ProposeSwap(rng *rand.Rand, n int) Move {
	m := n - 1
	i := rng.Intn(m)
	k := rng.Intn(m - 1)
	if k >= i {
		k++
	}
	return Move{I: i, K: k}
}

// ApplySwap возвращает копию seq с обменянными позициями i и k.
func ApplySwap(seq []int, i, k int) []int {
	out := make([]int, len(seq))
	copy(out, seq)
	applySwap(out, i, k)
	return out
}

// applySwap применяет swap-ход (обмен элементов в позициях i и j).
func applySwap(p []int, i, j int) {
	p[i], p[j] = p[j], p[i]
}

// shufflePermutation выполняет случайную перестановку элементов.
func shufflePermutation(p []int, rng *rand.Rand) {
	for i := len(p) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
}
