package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"

	"oasSearch/internal/bench"
	"oasSearch/internal/ga"
	"oasSearch/internal/opt"
	"oasSearch/internal/sa"
	"oasSearch/internal/ts"
)

// Фабрики

func newGAFactory(cfg ga.Config) func(seed int64, jobs int) (opt.Optimizer, error) {
	return func(seed int64, _ int) (opt.Optimizer, error) {
		solver, err := ga.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

func newSAFactory(cfg sa.Config) func(seed int64, jobs int) (opt.Optimizer, error) {
	return func(seed int64, _ int) (opt.Optimizer, error) {
		solver, err := sa.New(cfg, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

// Число работ табу-поиска задаётся конфигурацией, поэтому фабрика
// подставляет размер экземпляра.
func newTSFactory(cfg ts.Config) func(seed int64, jobs int) (opt.Optimizer, error) {
	return func(seed int64, jobs int) (opt.Optimizer, error) {
		c := cfg
		c.NumOrders = jobs
		solver, err := ts.New(c, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		return solver, nil
	}
}

func main() {
	// CLI флаги для настройки параметров алгоритмов и политики запуска
	var (
		out          = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		sizes        = flag.String("sizes", "20,50,100", "количество работ в экземплярах (через запятую)")
		algos        = flag.String("algos", "TS,SA,GA", "список алгоритмов: TS, SA, GA (через запятую)")
		runs         = flag.Int("runs", 30, "количество запусков каждого алгоритма (с разными сидами)")
		baseSeed     = flag.Int64("seed", 1000, "базовый сид для запусков алгоритмов")
		instanceSeed = flag.Int64("instance_seed", 777, "базовый сид для генерации экземпляров задачи (фиксирован для конфигурации)")
		perRunTO     = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

		// --- Табу-поиск с path relinking ---
		tsTenure   = flag.Int("ts_tenure", 150, "длина табу-списка (в ходах)")
		tsStag     = flag.Int("ts_stagnation", 2000, "остановка после стольких итераций без улучшения")
		tsPRFreq   = flag.Int("ts_pr_freq", 50, "частота path relinking (в итерациях)")
		tsPRReq    = flag.Int("ts_pr_req", 500, "число ходов, собираемых за раунд path relinking")
		tsPRRounds = flag.Int("ts_pr_rounds", 0, "максимум раундов path relinking (0 — по числу работ)")

		// --- Алгоритм имитации отжига ---
		saIterPerJob = flag.Int("sa_iter_per_job", 400, "количество итераций на одну работу (используется, если sa_iter == 0)")
		saIter       = flag.Int("sa_iter", 0, "общее количество итераций (0 => sa_iter_per_job × nJobs)")
		saT0         = flag.Float64("sa_t0", 100.0, "начальная температура")
		saTmin       = flag.Float64("sa_tmin", 0.01, "конечная температура")
		saAlpha      = flag.Float64("sa_alpha", 0.999, "коэффициент охлаждения (alpha)")
		saNeigh      = flag.String("sa_neigh", "swap", "тип окрестности: swap | insert")

		// --- Генетический алгоритм ---
		gaPop       = flag.Int("ga_pop", 100, "размер популяции")
		gaGenPerJob = flag.Int("ga_gen_per_job", 8, "количество поколений на одну работу (используется, если ga_gen == 0)")
		gaGen       = flag.Int("ga_gen", 0, "общее количество поколений (0 => ga_gen_per_job × nJobs)")
		gaElite     = flag.Int("ga_elite", 4, "размер элиты (количество лучших особей)")
		gaTour      = flag.Int("ga_tour", 5, "размер турнирной выборки")
		gaCx        = flag.Float64("ga_cx", 0.90, "вероятность применения кроссовера")
		gaMut       = flag.Float64("ga_mut", 0.20, "вероятность мутации")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cases, err := parseSizes(*sizes, *instanceSeed)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт:", err)
		os.Exit(2)
	}

	saCfg := sa.Config{
		Iterations:       *saIter,
		IterationsPerJob: *saIterPerJob,
		InitialTemp:      *saT0,
		FinalTemp:        *saTmin,
		Alpha:            *saAlpha,
		Neighborhood:     sa.Neighborhood(*saNeigh),
	}
	if err := saCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации алгоритма имитации отжига:", err)
		os.Exit(2)
	}

	gaCfg := ga.Config{
		Population:        *gaPop,
		Generations:       *gaGen,
		GenerationsPerJob: *gaGenPerJob,
		Elite:             *gaElite,
		TournamentSize:    *gaTour,
		CrossoverRate:     *gaCx,
		MutationRate:      *gaMut,
	}
	if err := gaCfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Конфликт в конфигурации генетического алгоритма:", err)
		os.Exit(2)
	}

	tsCfg := ts.Config{
		TabuTenure:                 *tsTenure,
		TerminationForNotImproving: *tsStag,
		PathRelinkingFrequency:     *tsPRFreq,
		PathRelinkingRequirement:   *tsPRReq,
		MaxRelinkRounds:            *tsPRRounds,
	}
	for _, c := range cases {
		probe := tsCfg
		probe.NumOrders = c.Jobs
		if err := probe.Validate(); err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт в конфигурации табу-поиска:", err)
			os.Exit(2)
		}
	}

	available := map[string]bench.Algorithm{
		"GA": {Name: "GA", Factory: newGAFactory(gaCfg)},
		"SA": {Name: "SA", Factory: newSAFactory(saCfg)},
		"TS": {Name: "TS", Factory: newTSFactory(tsCfg)},
	}

	var selected []bench.Algorithm
	for _, a := range splitCSV(*algos) {
		al, ok := available[a]
		if !ok {
			fmt.Fprintf(os.Stderr, "Алгоритм не предоставлен в программе %q; доступные: %v\n", a, keys(available))
			os.Exit(2)
		}
		selected = append(selected, al)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	var records []bench.Record
	for _, c := range cases {
		for _, a := range selected {
			fmt.Printf("Запущен алгоритм %s; %d работ (общее кол-во запусков=%d)...\n", a.Name, c.Jobs, runner.Runs)

			rec, err := runner.RunCase(ctx, c, a)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Ошибка:", err)
				os.Exit(1)
			}
			records = append(records, rec)

			fmt.Printf("  Прибыль: лучшая=%.2f средняя=%.2f стандартное отклонение=%.2f | Отклонено работ в среднем=%.2f | Время: среднее=%.2fms среднее отклонение=%.2fms\n",
				rec.ProfitBest, rec.ProfitMean, rec.ProfitStd,
				rec.RejectedMean,
				rec.TimeMeanMs, rec.TimeStdMs,
			)
		}
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// helpers

func parseSizes(s string, baseInstanceSeed int64) ([]bench.Case, error) {
	parts := splitCSV(s)
	cases := make([]bench.Case, 0, len(parts))

	for i, p := range parts {
		jobs, err := atoiStrict(p)
		if err != nil {
			return nil, fmt.Errorf("размер %q: ошибка парсинга количества работ: %w", p, err)
		}
		if jobs < 3 {
			return nil, fmt.Errorf("размер %q: количество работ должно быть >= 3", p)
		}

		seed := baseInstanceSeed + int64(i)*10_000 + int64(jobs)*100

		cases = append(cases, bench.Case{
			Jobs:         jobs,
			InstanceSeed: seed,
		})
	}

	return cases, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func atoiStrict(s string) (int, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func keys(m map[string]bench.Algorithm) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
