package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"oasSearch/internal/report"
)

// Reporter считает итерации и улучшения лучшего решения по веткам поиска.
type Reporter struct {
	ctx          context.Context
	iterations   metric.Int64Counter
	improvements metric.Int64Counter
	profit       metric.Float64Histogram
	runs         metric.Int64Counter

	best float64
}

// NewReporter создаёт счётчики на провайдере mp; nil — глобальный провайдер.
func NewReporter(ctx context.Context, mp metric.MeterProvider) (*Reporter, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	iterations, err := meter.Int64Counter("oas.iterations",
		metric.WithDescription("Completed search iterations"),
		metric.WithUnit("{iteration}"))
	if err != nil {
		return nil, err
	}
	improvements, err := meter.Int64Counter("oas.improvements",
		metric.WithDescription("Improvements of the best solution"),
		metric.WithUnit("{improvement}"))
	if err != nil {
		return nil, err
	}
	profit, err := meter.Float64Histogram("oas.profit",
		metric.WithDescription("Profit of evaluated solutions"))
	if err != nil {
		return nil, err
	}
	runs, err := meter.Int64Counter("oas.runs",
		metric.WithDescription("Finished search runs"),
		metric.WithUnit("{run}"))
	if err != nil {
		return nil, err
	}

	return &Reporter{
		ctx:          ctx,
		iterations:   iterations,
		improvements: improvements,
		profit:       profit,
		runs:         runs,
	}, nil
}

func (r *Reporter) Iteration(it report.Iteration) {
	phase := metric.WithAttributes(attribute.String("phase", string(it.Phase)))
	r.iterations.Add(r.ctx, 1, phase)
	r.profit.Record(r.ctx, it.Snapshot.Profit, phase)
	if it.Accepted && it.Snapshot.Profit > r.best {
		r.best = it.Snapshot.Profit
		r.improvements.Add(r.ctx, 1, phase)
	}
}

func (r *Reporter) Final(f report.Final) {
	r.runs.Add(r.ctx, 1)
	r.best = 0
}
