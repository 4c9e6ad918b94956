package oas

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInvalidInput возвращается, когда атрибуты работ не согласованы.
var ErrInvalidInput = errors.New("invalid job attributes")

// Job — неизменяемые атрибуты одной работы.
type Job struct {
	ID             int
	ReleaseTime    float64
	ProcessingTime float64
	Revenue        float64
	DueDate        float64
	Deadline       float64
	PenaltyWeight  float64

	// SlackTime = DueDate - ReleaseTime - ProcessingTime, используется только
	// для построения начального решения.
	SlackTime float64
}

// Attributes — шесть параллельных массивов, индекс совпадает с id работы.
// Индекс 0 зарезервирован под фиктивную работу.
type Attributes struct {
	ReleaseTimes    []float64
	ProcessingTimes []float64
	Revenues        []float64
	DueDates        []float64
	Deadlines       []float64
	PenaltyWeights  []float64
}

// Validate проверяет, что массивы одной длины и содержат хотя бы одну работу
// помимо фиктивной.
func (a Attributes) Validate() error {
	cols := []struct {
		name string
		v    []float64
	}{
		{"release_times", a.ReleaseTimes},
		{"processing_times", a.ProcessingTimes},
		{"revenues", a.Revenues},
		{"due_dates", a.DueDates},
		{"deadlines", a.Deadlines},
		{"penalty_weights", a.PenaltyWeights},
	}

	n := len(a.ReleaseTimes)
	if n < 2 {
		return fmt.Errorf("%w: need the sentinel and at least one job (got %d entries)", ErrInvalidInput, n)
	}
	for _, c := range cols {
		if len(c.v) != n {
			return fmt.Errorf("%w: %s has %d entries, release_times has %d", ErrInvalidInput, c.name, len(c.v), n)
		}
		for i, v := range c.v {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return fmt.Errorf("%w: %s[%d] must be finite and >= 0 (got %v)", ErrInvalidInput, c.name, i, v)
			}
		}
	}
	return nil
}

// Instance — таблица работ, неизменяемая в течение запуска.
type Instance struct {
	jobs []Job // jobs[0] — фиктивная работа
}

func NewInstance(attrs Attributes) (*Instance, error) {
	if err := attrs.Validate(); err != nil {
		return nil, err
	}
	jobs := make([]Job, len(attrs.ReleaseTimes))
	for id := range jobs {
		jobs[id] = Job{
			ID:             id,
			ReleaseTime:    attrs.ReleaseTimes[id],
			ProcessingTime: attrs.ProcessingTimes[id],
			Revenue:        attrs.Revenues[id],
			DueDate:        attrs.DueDates[id],
			Deadline:       attrs.Deadlines[id],
			PenaltyWeight:  attrs.PenaltyWeights[id],
			SlackTime:      attrs.DueDates[id] - attrs.ReleaseTimes[id] - attrs.ProcessingTimes[id],
		}
	}
	return &Instance{jobs: jobs}, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if len(inst.jobs) < 2 {
		return fmt.Errorf("%w: instance has no jobs", ErrInvalidInput)
	}
	return nil
}

// Jobs возвращает количество работ без учёта фиктивной.
func (inst *Instance) Jobs() int {
	return len(inst.jobs) - 1
}

// Job возвращает атрибуты работы по id. Id 0 — фиктивная работа.
func (inst *Instance) Job(id int) Job {
	return inst.jobs[id]
}

// IDs возвращает id всех реальных работ в порядке возрастания.
func (inst *Instance) IDs() []int {
	ids := make([]int, inst.Jobs())
	for i := range ids {
		ids[i] = i + 1
	}
	return ids
}

// RandomInstance генерирует случайный экземпляр задачи из n работ.
// Часть работ получается заведомо недопустимой (дедлайн раньше release+p).
func RandomInstance(n int, rng *rand.Rand) *Instance {
	if rng == nil {
		panic("генератор случайных чисел не инициализирован (nil)")
	}
	if n <= 0 {
		panic("invalid job count")
	}

	attrs := Attributes{
		ReleaseTimes:    make([]float64, n+1),
		ProcessingTimes: make([]float64, n+1),
		Revenues:        make([]float64, n+1),
		DueDates:        make([]float64, n+1),
		Deadlines:       make([]float64, n+1),
		PenaltyWeights:  make([]float64, n+1),
	}

	// горизонт растёт с числом работ, чтобы конкуренция за ресурс оставалась
	horizon := float64(n) * 10
	for id := 1; id <= n; id++ {
		r := float64(rng.Intn(int(horizon/2) + 1))
		p := float64(1 + rng.Intn(20))
		due := r + p + float64(rng.Intn(int(horizon/4)+1))
		deadline := due + float64(rng.Intn(int(horizon/4)+1))

		attrs.ReleaseTimes[id] = r
		attrs.ProcessingTimes[id] = p
		attrs.Revenues[id] = float64(5 + rng.Intn(46))
		attrs.DueDates[id] = due
		attrs.Deadlines[id] = deadline
		attrs.PenaltyWeights[id] = float64(1+rng.Intn(30)) / 10
	}

	inst, err := NewInstance(attrs)
	if err != nil {
		panic(err)
	}
	return inst
}
