package report

import (
	"context"
	"log/slog"
)

// LogReporter пишет ход поиска в slog. Итерации пишутся на уровне Debug,
// итог — на Info.
type LogReporter struct {
	Logger *slog.Logger
	// Every — писать каждую Every-ю итерацию; 0 или 1 — все.
	Every int
}

func NewLogReporter(l *slog.Logger, every int) *LogReporter {
	return &LogReporter{Logger: l, Every: every}
}

func (r *LogReporter) Iteration(it Iteration) {
	if r.Every > 1 && it.Iteration%r.Every != 0 && it.Phase != PhaseRelink {
		return
	}
	attrs := []slog.Attr{
		slog.Int("iteration", it.Iteration),
		slog.String("phase", string(it.Phase)),
		slog.Bool("accepted", it.Accepted),
		slog.Any("job_sequence", it.Snapshot.Accepted),
		slog.Any("rejected_jobs", it.Snapshot.Rejected),
		slog.Float64("weighted_tardiness", it.Snapshot.WeightedTardiness),
		slog.Float64("revenue", it.Snapshot.Revenue),
		slog.Float64("profit", it.Snapshot.Profit),
	}
	if ms, ok := it.Snapshot.Makespan(); ok {
		attrs = append(attrs, slog.Float64("completion_time", ms))
	}
	if it.Phase == PhaseTabu {
		attrs = append(attrs, slog.Any("swap", it.Swap), slog.Bool("tabu", it.Tabu))
	}
	r.Logger.LogAttrs(context.Background(), slog.LevelDebug, "iteration", attrs...)
}

func (r *LogReporter) Final(f Final) {
	r.Logger.LogAttrs(context.Background(), slog.LevelInfo, "best solution",
		slog.Float64("profit", f.Best.Profit),
		slog.Int("iteration", f.Best.Iteration),
		slog.Any("sequence", f.Best.Order),
		slog.Any("rejected_jobs", f.Best.Rejected),
		slog.Bool("baseline", f.Best.Baseline),
		slog.Int("tabu_improvements", f.TabuImprovements),
		slog.Int("relink_improvements", f.RelinkImprovements),
		slog.Int("iterations", f.Iterations),
		slog.Int("evaluations", f.Evaluations),
		slog.Duration("duration", f.Duration),
	)
}
