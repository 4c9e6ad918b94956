package oas

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// ErrInvalidSequence возвращается для последовательностей, не являющихся
// перестановкой id 1..n.
var ErrInvalidSequence = errors.New("invalid job sequence")

// ValidateSequence проверяет, что seq — перестановка id 1..n.
func ValidateSequence(seq []int, n int) error {
	if len(seq) != n {
		return fmt.Errorf("%w: length must be %d (got %d)", ErrInvalidSequence, n, len(seq))
	}
	seen := make([]bool, n+1)
	for i, id := range seq {
		if id < 1 || id > n {
			return fmt.Errorf("%w: seq[%d]=%d out of range [1,%d]", ErrInvalidSequence, i, id, n)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate job id %d", ErrInvalidSequence, id)
		}
		seen[id] = true
	}
	return nil
}

// SlackOrder возвращает id работ, отсортированные по возрастанию slack time.
// При равном slack порядок определяется id.
func SlackOrder(inst *Instance) []int {
	seq := inst.IDs()
	slices.SortStableFunc(seq, func(a, b int) int {
		sa, sb := inst.Job(a).SlackTime, inst.Job(b).SlackTime
		switch {
		case sa < sb:
			return -1
		case sa > sb:
			return 1
		}
		return a - b
	})
	return seq
}

// Key строит строковый ключ последовательности для множеств и map.
func Key(seq []int) string {
	var b strings.Builder
	for i, id := range seq {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(id))
	}
	return b.String()
}

// SameJobSet сообщает, содержат ли два набора id одни и те же работы
// независимо от порядка.
func SameJobSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	count := make(map[int]int, len(a))
	for _, id := range a {
		count[id]++
	}
	for _, id := range b {
		count[id]--
		if count[id] < 0 {
			return false
		}
	}
	return true
}
