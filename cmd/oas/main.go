package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"oasSearch/internal/config"
	"oasSearch/internal/dataset"
	"oasSearch/internal/oas"
	"oasSearch/internal/report"
	"oasSearch/internal/store"
	"oasSearch/internal/telemetry"
	"oasSearch/internal/ts"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации:", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) (err error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))

	if cfg.Telemetry.Enabled {
		shutdown, serr := telemetry.Setup(ctx, os.Stdout)
		if serr != nil {
			return fmt.Errorf("telemetry: %w", serr)
		}
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			err = errors.Join(err, shutdown(sctx))
		}()
		logger = telemetry.Logger()
	}

	inst, source, err := loadInstance(cfg.Data)
	if err != nil {
		return err
	}
	logger.Info("instance loaded", slog.String("source", source), slog.Int("jobs", inst.Jobs()))

	reps := report.Multi{report.NewLogReporter(logger, cfg.Output.LogEvery)}
	if cfg.Telemetry.Enabled {
		tr, err := telemetry.NewReporter(ctx, otel.GetMeterProvider())
		if err != nil {
			return fmt.Errorf("telemetry reporter: %w", err)
		}
		reps = append(reps, tr)
	}

	solver, err := ts.New(
		cfg.TabuConfig(inst.Jobs()),
		rand.New(rand.NewSource(cfg.Search.Seed)),
		ts.WithLogger(logger),
		ts.WithReporter(reps),
	)
	if err != nil {
		return err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "tabu_search")
	span.SetAttributes(
		attribute.String("source", source),
		attribute.Int("jobs", inst.Jobs()),
		attribute.Int64("seed", cfg.Search.Seed),
	)
	out, runErr := solver.Run(ctx, inst)
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
	}
	span.SetAttributes(
		attribute.Float64("best_profit", out.Final.Best.Profit),
		attribute.Int("iterations", out.Final.Iterations),
	)
	span.End()

	if out.History == nil {
		return runErr
	}

	if cfg.Output.CSVPath != "" {
		if err := report.WriteCSV(cfg.Output.CSVPath, out.History.Entries()); err != nil {
			return errors.Join(runErr, fmt.Errorf("csv: %w", err))
		}
		logger.Info("iterations written", slog.String("path", cfg.Output.CSVPath))
	}

	if cfg.Output.DBPath != "" {
		if err := saveRun(cfg, source, out); err != nil {
			return errors.Join(runErr, err)
		}
	}

	printBest(out.Final)
	return runErr
}

func loadInstance(d config.DataConfig) (*oas.Instance, string, error) {
	switch {
	case d.File != "":
		inst, err := dataset.Load(d.File)
		return inst, d.File, err
	case d.RandomJobs > 0:
		inst := oas.RandomInstance(d.RandomJobs, rand.New(rand.NewSource(d.RandomSeed)))
		return inst, fmt.Sprintf("random:%d:%d", d.RandomJobs, d.RandomSeed), nil
	}
	inst, err := dataset.LoadFrom(d.Dir, d.Orders, d.Tao, d.R, d.Instance)
	return inst, filepath.Join(d.Dir, dataset.FileName(d.Orders, d.Tao, d.R, d.Instance)), err
}

func saveRun(cfg *config.Config, source string, out ts.Outcome) error {
	st, err := store.New(cfg.Output.DBPath)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer st.Close()

	// Запуск сохраняется даже после отмены поиска
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	run := store.Run{
		ID:         store.NewRunID(),
		Source:     source,
		Seed:       cfg.Search.Seed,
		Final:      out.Final,
		Iterations: out.History.Entries(),
	}
	if err := st.SaveRun(ctx, run); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	fmt.Println("Run saved:", run.ID)
	return nil
}

func printBest(f report.Final) {
	if f.Best.Baseline {
		fmt.Println("Ни одно решение не дало положительной прибыли; выведена начальная последовательность")
	} else {
		fmt.Printf("Лучшая прибыль: %.2f (итерация %d)\n", f.Best.Profit, f.Best.Iteration)
	}
	fmt.Printf("Последовательность: %v\n", f.Best.Order)
	fmt.Printf("Отклонённые работы: %v\n", f.Best.Rejected)
	fmt.Printf("Итераций: %d, оценок: %d, улучшений табу/relinking: %d/%d, время: %s\n",
		f.Iterations, f.Evaluations, f.TabuImprovements, f.RelinkImprovements, f.Duration.Round(time.Millisecond))
}
