package ts

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"math/rand"
	"slices"
	"time"

	"oasSearch/internal/oas"
	"oasSearch/internal/opt"
	"oasSearch/internal/report"
)

// State — состояние управляющего автомата поиска.
type State int

const (
	Initializing State = iota
	TabuStepping
	PathRelinking
	Terminated
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case TabuStepping:
		return "tabu_stepping"
	case PathRelinking:
		return "path_relinking"
	case Terminated:
		return "terminated"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Solver - табу-поиск с критерием аспирации и периодическим path relinking.
type Solver struct {
	Cfg      Config
	Rng      *rand.Rand
	Logger   *slog.Logger
	Reporter report.Reporter
}

type Option func(*Solver)

func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) { s.Logger = l }
}

func WithReporter(r report.Reporter) Option {
	return func(s *Solver) { s.Reporter = r }
}

// New возвращает новый TS-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New(cfg Config, rng *rand.Rand, opts ...Option) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	s := &Solver{Cfg: cfg, Rng: rng}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Outcome — полный итог запуска вместе с журналом решений.
type Outcome struct {
	Final   report.Final
	History *History
}

// Solve запускает поиск и сворачивает итог в opt.Result.
func (s *Solver) Solve(ctx context.Context, inst *oas.Instance) (opt.Result, error) {
	out, err := s.Run(ctx, inst)
	if out.History == nil {
		return opt.Result{}, err
	}
	meta := map[string]any{
		"tabu_tenure":                s.Cfg.TabuTenure,
		"path_relinking_frequency":   s.Cfg.PathRelinkingFrequency,
		"path_relinking_requirement": s.Cfg.PathRelinkingRequirement,
		"tabu_improvements":          out.Final.TabuImprovements,
		"relink_improvements":        out.Final.RelinkImprovements,
		"best_iteration":             out.Final.Best.Iteration,
	}
	if err != nil {
		meta["stopped"] = "context"
	}

	// Ни одно решение не превысило порог: возвращается фактическая прибыль
	// начальной последовательности
	profit := out.Final.Best.Profit
	if out.Final.Best.Baseline {
		eval, eerr := oas.NewEvaluator(inst)
		if eerr != nil {
			return opt.Result{}, eerr
		}
		profit = eval.MustEvaluate(out.Final.Best.Order).Profit
		meta["baseline"] = true
	}
	return opt.Result{
		Order:       out.Final.Best.Order,
		Profit:      profit,
		Rejected:    out.Final.Best.Rejected,
		Evaluations: out.Final.Evaluations,
		Iterations:  out.Final.Iterations,
		Duration:    out.Final.Duration,
		Meta:        meta,
	}, err
}

// Run — основной цикл алгоритма. При отмене контекста возвращает лучшее
// найденное решение вместе с ошибкой контекста.
func (s *Solver) Run(ctx context.Context, inst *oas.Instance) (Outcome, error) {
	// Валидация входных данных
	if err := inst.Validate(); err != nil {
		return Outcome{}, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return Outcome{}, err
	}
	if s.Rng == nil {
		return Outcome{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if inst.Jobs() != s.Cfg.NumOrders {
		return Outcome{}, fmt.Errorf("%w: NumOrders=%d, экземпляр содержит %d работ",
			ErrInvalidConfig, s.Cfg.NumOrders, inst.Jobs())
	}

	eval, err := oas.NewEvaluator(inst)
	if err != nil {
		return Outcome{}, err
	}

	run := newSearch(s, eval)
	err = run.loop(ctx)
	return run.outcome(), err
}

// search — состояние одного запуска. Живая последовательность принадлежит
// только ему.
type search struct {
	cfg      Config
	rng      *rand.Rand
	log      *slog.Logger
	rep      report.Reporter
	eval     *oas.Evaluator
	tabu     *TabuList
	relinker *Relinker

	state   State
	iter    int
	live    []int
	best    report.Best
	history History
	tried   map[string]struct{}

	evals          int
	tabuImproved   int
	relinkImproved int
	start          time.Time
	done           report.Final
}

func newSearch(s *Solver, eval *oas.Evaluator) *search {
	log := s.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	rep := s.Reporter
	if rep == nil {
		rep = report.Nop{}
	}
	return &search{
		cfg:      s.Cfg,
		rng:      s.Rng,
		log:      log,
		rep:      rep,
		eval:     eval,
		tabu:     NewTabuList(s.Cfg.TabuTenure),
		relinker: NewRelinker(eval, s.Rng, s.Cfg.PathRelinkingRequirement, s.Cfg.relinkRounds(), log),
		state:    Initializing,
		tried:    make(map[string]struct{}),
	}
}

func (r *search) loop(ctx context.Context) error {
	for r.state != Terminated {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			r.log.Info("search cancelled", slog.Int("iteration", r.iter), slog.Float64("best_profit", r.best.Profit))
			r.finish()
			return err
		}

		switch r.state {
		case Initializing:
			r.initialize()
			r.state = r.branch()
		case TabuStepping:
			r.tabuStep()
			r.state = r.advance()
		case PathRelinking:
			if err := r.relinkStep(); err != nil {
				r.finish()
				return err
			}
			r.state = r.advance()
		}
	}
	r.finish()
	return nil
}

func (r *search) initialize() {
	r.start = time.Now()
	r.live = oas.SlackOrder(r.eval.Instance())

	// Нулевая прибыль без принятых работ — исходный уровень лучшего решения
	base := r.eval.MustEvaluate(r.live)
	r.evals++
	r.best = report.Best{
		Profit:   0,
		Order:    slices.Clone(r.live),
		Rejected: base.Rejected,
		Baseline: true,
	}
	r.log.Info("search started",
		slog.Int("jobs", len(r.live)),
		slog.Int("tabu_tenure", r.cfg.TabuTenure),
		slog.Int("path_relinking_frequency", r.cfg.PathRelinkingFrequency),
	)
}

func (r *search) branch() State {
	if (r.iter+1)%r.cfg.PathRelinkingFrequency == 0 {
		return PathRelinking
	}
	return TabuStepping
}

// advance проверяет критерий остановки по завершённой итерации и переходит
// к следующей.
func (r *search) advance() State {
	if r.iter-r.best.Iteration > r.cfg.TerminationForNotImproving {
		return Terminated
	}
	r.iter++
	return r.branch()
}

// tabuStep выполняет обычный табу-ход. Обмен применяется к живой
// последовательности всегда, даже если ход отвергнут табу-списком.
func (r *search) tabuStep() {
	mv := ProposeSwap(r.rng, len(r.live))
	isTabu := r.tabu.IsTabu(mv)
	applySwap(r.live, mv.I, mv.K)

	snap := r.eval.MustEvaluate(r.live)
	r.evals++

	accepted := true
	if isTabu {
		accepted = Aspiration(snap.Profit, r.best.Profit)
	} else {
		r.tabu.Record(mv)
	}

	it := report.Iteration{
		Iteration: r.iter,
		Phase:     report.PhaseTabu,
		Swap:      [2]int{mv.I, mv.K},
		Tabu:      isTabu,
		Accepted:  accepted,
		Order:     slices.Clone(r.live),
		Snapshot:  snap,
	}
	r.history.Append(it)

	if accepted && snap.Profit > r.best.Profit {
		r.best = report.Best{
			Profit:    snap.Profit,
			Iteration: r.iter,
			Order:     it.Order,
			Rejected:  snap.Rejected,
		}
		r.tabuImproved++
	}
	r.rep.Iteration(it)
}

func (r *search) relinkStep() error {
	saved := slices.Clone(r.live)

	seed := r.pickSeed()
	res, err := r.relinker.Relink(seed, r.best.Order)
	if err != nil {
		return fmt.Errorf("path relinking на итерации %d: %w", r.iter, err)
	}
	r.evals += res.Evaluations

	improved := res.Snapshot.Profit > r.best.Profit
	if improved {
		r.best = report.Best{
			Profit:    res.Snapshot.Profit,
			Iteration: r.iter,
			Order:     res.Order,
			Rejected:  res.Snapshot.Rejected,
		}
		r.relinkImproved++
	}
	r.log.Debug("path relinking",
		slog.Int("iteration", r.iter),
		slog.Int("rounds", res.Rounds),
		slog.Float64("profit", res.Snapshot.Profit),
		slog.Bool("improved", improved),
	)

	// relinking исследует боковую ветку и не заменяет живое решение
	r.live = saved

	it := report.Iteration{
		Iteration: r.iter,
		Phase:     report.PhaseRelink,
		Accepted:  improved,
		Order:     res.Order,
		Snapshot:  res.Snapshot,
	}
	r.history.Append(it)
	r.rep.Iteration(it)
	return nil
}

// pickSeed выбирает начальное решение для relinking: ещё не опробованную
// последовательность из журнала с тем же множеством отклонённых работ,
// что у лучшего решения, иначе случайную перестановку лучшего решения.
// Текущее лучшее решение исключается только на время выбора: после смены
// лучшего прежний guide снова может стать начальным решением.
func (r *search) pickSeed() []int {
	skip := maps.Clone(r.tried)
	skip[oas.Key(r.best.Order)] = struct{}{}

	cands := r.history.SameRejected(r.best.Rejected, skip)
	if len(cands) > 0 {
		pick := cands[r.rng.Intn(len(cands))]
		r.tried[oas.Key(pick)] = struct{}{}
		return slices.Clone(pick)
	}

	shuffled := slices.Clone(r.best.Order)
	shufflePermutation(shuffled, r.rng)
	return shuffled
}

func (r *search) finish() {
	r.state = Terminated
	r.log.Info("search finished",
		slog.Int("iterations", r.iterations()),
		slog.Float64("best_profit", r.best.Profit),
		slog.Int("best_iteration", r.best.Iteration),
		slog.Int("tabu_improvements", r.tabuImproved),
		slog.Int("relink_improvements", r.relinkImproved),
	)
	r.done = r.final()
	r.rep.Final(r.done)
}

// iterations — число завершённых итераций.
func (r *search) iterations() int {
	return r.history.Len()
}

func (r *search) final() report.Final {
	var elapsed time.Duration
	if !r.start.IsZero() {
		elapsed = time.Since(r.start)
	}
	return report.Final{
		Best:               r.best,
		TabuImprovements:   r.tabuImproved,
		RelinkImprovements: r.relinkImproved,
		Iterations:         r.iterations(),
		Evaluations:        r.evals,
		Duration:           elapsed,
	}
}

func (r *search) outcome() Outcome {
	return Outcome{Final: r.done, History: &r.history}
}
