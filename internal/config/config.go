// Package config собирает конфигурацию запуска: значения по умолчанию,
// TOML-файл, .env и переменные окружения OAS_*, флаги командной строки.
// Каждый следующий источник перекрывает предыдущий.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"oasSearch/internal/ts"
)

type Config struct {
	LogLevel  string          `toml:"log_level"`
	Search    SearchConfig    `toml:"search"`
	Data      DataConfig      `toml:"data"`
	Output    OutputConfig    `toml:"output"`
	Telemetry TelemetryConfig `toml:"telemetry"`
}

type SearchConfig struct {
	Seed                       int64 `toml:"seed"`
	TabuTenure                 int   `toml:"tabu_tenure"`
	TerminationForNotImproving int   `toml:"termination_for_not_improving"`
	PathRelinkingFrequency     int   `toml:"path_relinking_frequency"`
	PathRelinkingRequirement   int   `toml:"path_relinking_requirement"`
	MaxRelinkRounds            int   `toml:"max_relink_rounds"`
}

// DataConfig выбирает экземпляр задачи: явный файл, файл из каталога по
// параметрам набора или случайный экземпляр при RandomJobs > 0.
type DataConfig struct {
	File       string `toml:"file"`
	Dir        string `toml:"dir"`
	Orders     int    `toml:"orders"`
	Tao        int    `toml:"tao"`
	R          int    `toml:"r"`
	Instance   int    `toml:"instance"`
	RandomJobs int    `toml:"random_jobs"`
	RandomSeed int64  `toml:"random_seed"`
}

type OutputConfig struct {
	DBPath   string `toml:"db"`
	CSVPath  string `toml:"csv"`
	LogEvery int    `toml:"log_every"`
}

type TelemetryConfig struct {
	Enabled bool `toml:"enabled"`
}

// Default возвращает параметры исходного эксперимента: 50 заказов,
// Tao 9, R 9, экземпляр 7.
func Default() Config {
	d := ts.DefaultConfig()
	return Config{
		LogLevel: "info",
		Search: SearchConfig{
			Seed:                       25,
			TabuTenure:                 d.TabuTenure,
			TerminationForNotImproving: d.TerminationForNotImproving,
			PathRelinkingFrequency:     d.PathRelinkingFrequency,
			PathRelinkingRequirement:   d.PathRelinkingRequirement,
			MaxRelinkRounds:            d.MaxRelinkRounds,
		},
		Data: DataConfig{
			Dir:      "project_data",
			Orders:   50,
			Tao:      9,
			R:        9,
			Instance: 7,
		},
		Output: OutputConfig{
			LogEvery: 100,
		},
	}
}

// Load разбирает args (без имени программы). Справка и ошибки флагов
// выводятся в stderr; на -h возвращается flag.ErrHelp.
func Load(args []string) (*Config, error) {
	return load(args, os.Stderr)
}

func load(args []string, out io.Writer) (*Config, error) {
	// Первый проход нужен только для путей -config и -env
	pre := flag.NewFlagSet("oas", flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	scratch := Default()
	path, envFile := bind(pre, &scratch)
	if err := pre.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			usage := flag.NewFlagSet("oas", flag.ContinueOnError)
			usage.SetOutput(out)
			help := Default()
			bind(usage, &help)
			fmt.Fprintln(out, "Usage of oas:")
			usage.PrintDefaults()
		}
		return nil, err
	}

	cfg := Default()
	if *path != "" {
		md, err := toml.DecodeFile(*path, &cfg)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", *path, err)
		}
		if und := md.Undecoded(); len(und) > 0 {
			return nil, fmt.Errorf("config %s: unknown keys %v", *path, und)
		}
	}

	if err := applyEnv(&cfg, *envFile); err != nil {
		return nil, err
	}

	// Флаги перекрывают файл и окружение
	fset := flag.NewFlagSet("oas", flag.ContinueOnError)
	fset.SetOutput(out)
	bind(fset, &cfg)
	if err := fset.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func bind(set *flag.FlagSet, cfg *Config) (path, envFile *string) {
	path = set.String("config", "", "путь к TOML-файлу конфигурации")
	envFile = set.String("env", ".env", "файл переменных окружения (необязательный)")

	set.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "уровень логирования: debug | info | warn | error")

	set.Int64Var(&cfg.Search.Seed, "seed", cfg.Search.Seed, "сид генератора случайных чисел")
	set.IntVar(&cfg.Search.TabuTenure, "tabu-tenure", cfg.Search.TabuTenure, "длина табу-списка")
	set.IntVar(&cfg.Search.TerminationForNotImproving, "stagnation", cfg.Search.TerminationForNotImproving, "итераций без улучшения до остановки")
	set.IntVar(&cfg.Search.PathRelinkingFrequency, "pr-frequency", cfg.Search.PathRelinkingFrequency, "период path relinking в итерациях")
	set.IntVar(&cfg.Search.PathRelinkingRequirement, "pr-requirement", cfg.Search.PathRelinkingRequirement, "число различных ходов за раунд relinking")
	set.IntVar(&cfg.Search.MaxRelinkRounds, "pr-max-rounds", cfg.Search.MaxRelinkRounds, "предел раундов relinking (0 — число работ)")

	set.StringVar(&cfg.Data.File, "data", cfg.Data.File, "файл набора данных *.dat")
	set.StringVar(&cfg.Data.Dir, "data-dir", cfg.Data.Dir, "каталог наборов данных")
	set.IntVar(&cfg.Data.Orders, "orders", cfg.Data.Orders, "число заказов в наборе")
	set.IntVar(&cfg.Data.Tao, "tao", cfg.Data.Tao, "параметр Tao набора")
	set.IntVar(&cfg.Data.R, "r", cfg.Data.R, "параметр R набора")
	set.IntVar(&cfg.Data.Instance, "instance", cfg.Data.Instance, "номер экземпляра набора")
	set.IntVar(&cfg.Data.RandomJobs, "random", cfg.Data.RandomJobs, "сгенерировать случайный экземпляр из N работ")
	set.Int64Var(&cfg.Data.RandomSeed, "random-seed", cfg.Data.RandomSeed, "сид генерации случайного экземпляра")

	set.StringVar(&cfg.Output.DBPath, "db", cfg.Output.DBPath, "SQLite-файл для сохранения запуска")
	set.StringVar(&cfg.Output.CSVPath, "csv", cfg.Output.CSVPath, "CSV-файл журнала итераций")
	set.IntVar(&cfg.Output.LogEvery, "log-every", cfg.Output.LogEvery, "логировать каждую N-ю итерацию")

	set.BoolVar(&cfg.Telemetry.Enabled, "telemetry", cfg.Telemetry.Enabled, "включить OpenTelemetry stdout-экспорт")
	return path, envFile
}

// applyEnv загружает envFile (если он есть) и применяет переменные OAS_*.
func applyEnv(cfg *Config, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("env %s: %w", envFile, err)
		}
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"OAS_TABU_TENURE", &cfg.Search.TabuTenure},
		{"OAS_STAGNATION", &cfg.Search.TerminationForNotImproving},
		{"OAS_PR_FREQUENCY", &cfg.Search.PathRelinkingFrequency},
		{"OAS_PR_REQUIREMENT", &cfg.Search.PathRelinkingRequirement},
		{"OAS_PR_MAX_ROUNDS", &cfg.Search.MaxRelinkRounds},
		{"OAS_ORDERS", &cfg.Data.Orders},
		{"OAS_TAO", &cfg.Data.Tao},
		{"OAS_R", &cfg.Data.R},
		{"OAS_INSTANCE", &cfg.Data.Instance},
		{"OAS_RANDOM_JOBS", &cfg.Data.RandomJobs},
		{"OAS_LOG_EVERY", &cfg.Output.LogEvery},
	}
	for _, v := range ints {
		if s := os.Getenv(v.key); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return fmt.Errorf("%s: %w", v.key, err)
			}
			*v.dst = n
		}
	}

	int64s := []struct {
		key string
		dst *int64
	}{
		{"OAS_SEED", &cfg.Search.Seed},
		{"OAS_RANDOM_SEED", &cfg.Data.RandomSeed},
	}
	for _, v := range int64s {
		if s := os.Getenv(v.key); s != "" {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return fmt.Errorf("%s: %w", v.key, err)
			}
			*v.dst = n
		}
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"OAS_DATA_DIR", &cfg.Data.Dir},
		{"OAS_DATA", &cfg.Data.File},
		{"OAS_DB", &cfg.Output.DBPath},
		{"OAS_CSV", &cfg.Output.CSVPath},
		{"OAS_LOG_LEVEL", &cfg.LogLevel},
	}
	for _, v := range strs {
		if s := os.Getenv(v.key); s != "" {
			*v.dst = s
		}
	}
	if s := os.Getenv("OAS_TELEMETRY"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fmt.Errorf("OAS_TELEMETRY: %w", err)
		}
		cfg.Telemetry.Enabled = b
	}
	return nil
}

// Validate проверяет то, что не зависит от размера экземпляра. Параметры
// поиска окончательно проверяет ts.Config.Validate.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("неизвестный уровень логирования %q", c.LogLevel)
	}
	if c.Data.File == "" && c.Data.RandomJobs <= 0 {
		if c.Data.Orders <= 0 {
			return fmt.Errorf("orders должно быть > 0 (получено %d)", c.Data.Orders)
		}
	}
	if c.Output.LogEvery < 0 {
		return fmt.Errorf("log_every должно быть >= 0 (получено %d)", c.Output.LogEvery)
	}
	return nil
}

// TabuConfig строит конфигурацию поиска для экземпляра из jobs работ.
func (c Config) TabuConfig(jobs int) ts.Config {
	return ts.Config{
		NumOrders:                  jobs,
		TabuTenure:                 c.Search.TabuTenure,
		TerminationForNotImproving: c.Search.TerminationForNotImproving,
		PathRelinkingFrequency:     c.Search.PathRelinkingFrequency,
		PathRelinkingRequirement:   c.Search.PathRelinkingRequirement,
		MaxRelinkRounds:            c.Search.MaxRelinkRounds,
	}
}

// SlogLevel переводит LogLevel в уровень slog.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
