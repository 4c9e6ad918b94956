package oas

import "fmt"

// Snapshot — результат симуляции одной последовательности. Не изменяется
// после создания.
type Snapshot struct {
	Accepted          []int     // принятые работы в порядке обработки
	Completion        []float64 // время завершения каждой принятой работы
	Rejected          []int
	Revenue           float64
	WeightedTardiness float64
	Profit            float64
}

// Makespan возвращает время завершения последней принятой работы.
// Если ни одна работа не принята, второй результат false.
func (s Snapshot) Makespan() (float64, bool) {
	if len(s.Completion) == 0 {
		return 0, false
	}
	return s.Completion[len(s.Completion)-1], true
}

type Evaluator struct {
	inst *Instance
}

func NewEvaluator(inst *Instance) (*Evaluator, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{inst: inst}, nil
}

func (e *Evaluator) Instance() *Instance {
	return e.inst
}

func (e *Evaluator) Evaluate(seq []int) (Snapshot, error) {
	if e == nil || e.inst == nil {
		return Snapshot{}, fmt.Errorf("nil evaluator")
	}
	if err := ValidateSequence(seq, e.inst.Jobs()); err != nil {
		return Snapshot{}, err
	}

	var s Snapshot
	clock := 0.0
	for idx, id := range seq {
		job := e.inst.Job(id)
		if idx == 0 {
			// первая работа: ожидание её поступления
			clock = job.ReleaseTime
		}

		var finish float64
		if clock >= job.ReleaseTime {
			finish = clock + job.ProcessingTime
		} else {
			finish = job.ReleaseTime + job.ProcessingTime
		}
		if finish > job.Deadline {
			s.Rejected = append(s.Rejected, id)
			continue
		}

		clock = finish
		s.Revenue += job.Revenue
		s.Accepted = append(s.Accepted, id)
		s.Completion = append(s.Completion, finish)
		if finish > job.DueDate {
			s.WeightedTardiness += job.PenaltyWeight * (finish - job.DueDate)
		}
	}
	s.Profit = s.Revenue - s.WeightedTardiness
	return s, nil
}

func (e *Evaluator) MustEvaluate(seq []int) Snapshot {
	s, err := e.Evaluate(seq)
	if err != nil {
		panic(err)
	}
	return s
}
