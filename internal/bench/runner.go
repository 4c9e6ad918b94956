package bench

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"oasSearch/internal/oas"
	"oasSearch/internal/opt"
)

type Algorithm struct {
	Name string
	// Factory создаёт солвер для запуска с данным сидом на экземпляре из jobs работ.
	Factory func(seed int64, jobs int) (opt.Optimizer, error)
}

type Case struct {
	Jobs         int
	InstanceSeed int64
}

type Record struct {
	Algo string
	Jobs int
	Runs int

	TimeBestMs float64
	TimeMeanMs float64
	TimeStdMs  float64

	ProfitBest float64
	ProfitMean float64
	ProfitStd  float64

	IterationsMean float64
	RejectedMean   float64
}

type Runner struct {
	Runs          int
	BaseSeed      int64
	PerRunTimeout time.Duration // 0 = no timeout
}

func (r Runner) RunCase(ctx context.Context, c Case, algo Algorithm) (Record, error) {
	instRng := randForSeed(c.InstanceSeed)
	inst := oas.RandomInstance(c.Jobs, instRng)

	eval, err := oas.NewEvaluator(inst)
	if err != nil {
		return Record{}, err
	}

	profits := make([]float64, 0, r.Runs)
	timesMs := make([]float64, 0, r.Runs)
	iters := make([]float64, 0, r.Runs)
	rejected := make([]float64, 0, r.Runs)

	for i := 0; i < r.Runs; i++ {
		runSeed := r.BaseSeed + int64(i)

		op, err := algo.Factory(runSeed, c.Jobs)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: factory: %w", i, err)
		}

		runCtx := ctx
		cancel := func() {}
		if r.PerRunTimeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, r.PerRunTimeout)
		}
		start := time.Now()
		res, err := op.Solve(runCtx, inst)
		dur := time.Since(start)
		cancel()

		if err != nil && runCtx.Err() != nil {
			return Record{}, fmt.Errorf("run %d: cancelled/timeout: %w", i, err)
		}
		if err != nil {
			return Record{}, fmt.Errorf("run %d: solve error: %w", i, err)
		}

		// Прибыль перепроверяется независимой оценкой
		snap, err := eval.Evaluate(res.Order)
		if err != nil {
			return Record{}, fmt.Errorf("run %d: invalid order: %w", i, err)
		}
		if snap.Profit != res.Profit {
			return Record{}, fmt.Errorf("run %d: reported profit %v, evaluated %v", i, res.Profit, snap.Profit)
		}

		profits = append(profits, res.Profit)
		timesMs = append(timesMs, float64(dur.Microseconds())/1000.0)
		iters = append(iters, float64(res.Iterations))
		rejected = append(rejected, float64(len(res.Rejected)))
	}

	pStats := CalcFloatStats(profits)
	tStats := CalcFloatStats(timesMs)

	return Record{
		Algo: algo.Name,
		Jobs: c.Jobs,
		Runs: r.Runs,

		TimeBestMs: tStats.Min,
		TimeMeanMs: tStats.Mean,
		TimeStdMs:  tStats.Std,

		ProfitBest: pStats.Max,
		ProfitMean: pStats.Mean,
		ProfitStd:  pStats.Std,

		IterationsMean: CalcFloatStats(iters).Mean,
		RejectedMean:   CalcFloatStats(rejected).Mean,
	}, nil
}

func WriteCSV(path string, records []Record) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := []string{
		"algo", "jobs", "runs",
		"time_best_ms", "time_mean_ms", "time_std_ms",
		"profit_best", "profit_mean", "profit_std",
		"iterations_mean", "rejected_mean",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range records {
		row := []string{
			r.Algo,
			itoa(r.Jobs),
			itoa(r.Runs),

			ftoa(r.TimeBestMs),
			ftoa(r.TimeMeanMs),
			ftoa(r.TimeStdMs),

			ftoa(r.ProfitBest),
			ftoa(r.ProfitMean),
			ftoa(r.ProfitStd),

			ftoa(r.IterationsMean),
			ftoa(r.RejectedMean),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
