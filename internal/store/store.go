// Package store сохраняет завершённые запуски поиска в SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"oasSearch/internal/oas"
	"oasSearch/internal/report"
)

// ErrRunNotFound возвращается, если запуска с таким id нет.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id                  TEXT PRIMARY KEY,
    source              TEXT NOT NULL,
    seed                INTEGER NOT NULL,
    best_profit         REAL NOT NULL,
    best_iteration      INTEGER NOT NULL,
    best_order          TEXT NOT NULL,
    best_rejected       TEXT NOT NULL,
    best_baseline       INTEGER NOT NULL DEFAULT 0,
    tabu_improvements   INTEGER NOT NULL,
    relink_improvements INTEGER NOT NULL,
    iterations          INTEGER NOT NULL,
    evaluations         INTEGER NOT NULL,
    duration_ms         INTEGER NOT NULL,
    created_at          DATETIME DEFAULT CURRENT_TIMESTAMP
);
CREATE TABLE IF NOT EXISTS iterations (
    run_id             TEXT NOT NULL REFERENCES runs(id),
    iteration          INTEGER NOT NULL,
    phase              TEXT NOT NULL,
    swap_i             INTEGER NOT NULL,
    swap_k             INTEGER NOT NULL,
    tabu               INTEGER NOT NULL,
    accepted           INTEGER NOT NULL,
    job_order          TEXT NOT NULL,
    accepted_jobs      TEXT NOT NULL,
    completion_times   TEXT NOT NULL,
    rejected_jobs      TEXT NOT NULL,
    revenue            REAL NOT NULL,
    weighted_tardiness REAL NOT NULL,
    profit             REAL NOT NULL,
    PRIMARY KEY (run_id, iteration)
);
`

// Run — сохраняемый запуск.
type Run struct {
	ID         string
	Source     string // файл набора данных или описание случайного экземпляра
	Seed       int64
	Final      report.Final
	Iterations []report.Iteration
	CreatedAt  time.Time
}

// NewRunID генерирует идентификатор запуска.
func NewRunID() string {
	return uuid.New().String()
}

// Store реализует хранение запусков в SQLite.
type Store struct {
	db *sql.DB
}

// New открывает базу, создавая каталог и схему при необходимости.
func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun записывает запуск и все его итерации в одной транзакции.
func (s *Store) SaveRun(ctx context.Context, run Run) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	f := run.Final
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, seed, best_profit, best_iteration, best_order, best_rejected, best_baseline,
		                   tabu_improvements, relink_improvements, iterations, evaluations, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Seed, f.Best.Profit, f.Best.Iteration,
		encode(f.Best.Order), encode(f.Best.Rejected), f.Best.Baseline,
		f.TabuImprovements, f.RelinkImprovements, f.Iterations, f.Evaluations,
		f.Duration.Milliseconds(), time.Now(),
	)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO iterations (run_id, iteration, phase, swap_i, swap_k, tabu, accepted, job_order,
		                         accepted_jobs, completion_times, rejected_jobs, revenue, weighted_tardiness, profit)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, it := range run.Iterations {
		_, err = stmt.ExecContext(ctx,
			run.ID, it.Iteration, string(it.Phase), it.Swap[0], it.Swap[1], it.Tabu, it.Accepted,
			encode(it.Order), encode(it.Snapshot.Accepted), encode(it.Snapshot.Completion),
			encode(it.Snapshot.Rejected), it.Snapshot.Revenue, it.Snapshot.WeightedTardiness, it.Snapshot.Profit,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetRun возвращает запуск без итераций.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, seed, best_profit, best_iteration, best_order, best_rejected, best_baseline,
		        tabu_improvements, relink_improvements, iterations, evaluations, duration_ms, created_at
		 FROM runs WHERE id = ?`, id,
	)

	var run Run
	var order, rejected string
	var durationMs int64
	err := row.Scan(&run.ID, &run.Source, &run.Seed, &run.Final.Best.Profit, &run.Final.Best.Iteration,
		&order, &rejected, &run.Final.Best.Baseline, &run.Final.TabuImprovements, &run.Final.RelinkImprovements,
		&run.Final.Iterations, &run.Final.Evaluations, &durationMs, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := decode(order, &run.Final.Best.Order); err != nil {
		return nil, err
	}
	if err := decode(rejected, &run.Final.Best.Rejected); err != nil {
		return nil, err
	}
	run.Final.Duration = time.Duration(durationMs) * time.Millisecond
	return &run, nil
}

// ListIterations возвращает итерации запуска по порядку.
func (s *Store) ListIterations(ctx context.Context, runID string) ([]report.Iteration, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT iteration, phase, swap_i, swap_k, tabu, accepted, job_order, accepted_jobs,
		        completion_times, rejected_jobs, revenue, weighted_tardiness, profit
		 FROM iterations WHERE run_id = ? ORDER BY iteration ASC`, runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var its []report.Iteration
	for rows.Next() {
		var it report.Iteration
		var phase, order, accepted, completion, rejected string
		var snap oas.Snapshot
		if err := rows.Scan(&it.Iteration, &phase, &it.Swap[0], &it.Swap[1], &it.Tabu, &it.Accepted,
			&order, &accepted, &completion, &rejected,
			&snap.Revenue, &snap.WeightedTardiness, &snap.Profit); err != nil {
			return nil, err
		}
		it.Phase = report.Phase(phase)
		for _, d := range []struct {
			src string
			dst any
		}{
			{order, &it.Order},
			{accepted, &snap.Accepted},
			{completion, &snap.Completion},
			{rejected, &snap.Rejected},
		} {
			if err := decode(d.src, d.dst); err != nil {
				return nil, err
			}
		}
		it.Snapshot = snap
		its = append(its, it)
	}
	return its, rows.Err()
}

// encode сериализует срез в JSON; nil записывается как пустой массив.
func encode[T any](v []T) string {
	if v == nil {
		return "[]"
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func decode(s string, dst any) error {
	return json.Unmarshal([]byte(s), dst)
}
