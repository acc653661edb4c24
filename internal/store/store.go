package store

import (
	"context"
	"database/sql"
	errs "errors"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/IsekaiAgile/chef-game-sub001/internal/engine"
)

var ErrNoChange = errs.New("no change")

// DB wraps gorm.DB for the repositories and exposes Close.
type DB struct {
	gorm *gorm.DB
	sql  *sql.DB
}

func (d *DB) Close() error   { return d.sql.Close() }
func (d *DB) Gorm() *gorm.DB { return d.gorm }

// Open connects to Postgres. The archive is optional; callers with no
// DSN simply skip the store.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, errors.New("missing DSN")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	sdb, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sdb.SetConnMaxLifetime(30 * time.Minute)
	sdb.SetMaxOpenConns(10)
	sdb.SetMaxIdleConns(5)
	if err := sdb.PingContext(ctx); err != nil {
		return nil, errors.Wrap(err, "ping")
	}
	return &DB{gorm: gdb, sql: sdb}, nil
}

// WithTx executes fn within a database transaction.
func (d *DB) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return d.gorm.WithContext(ctx).Transaction(fn)
}

// Run is one archived playthrough. Rows are inserted when a run starts
// and finalized when it ends; the archive never stores resumable state.
type Run struct {
	ID            uuid.UUID
	Seed          string
	StartedAt     time.Time
	FinishedAt    *time.Time
	Outcome       string // "victory", "defeat" or "" while live
	Days          int
	Episode       int
	Growth        int
	PerfectCycles int
}

// ActionEntry is one resolved day inside a run.
type ActionEntry struct {
	ID           uuid.UUID
	RunID        uuid.UUID
	Day          int
	Action       string
	Success      bool
	PerfectCycle bool
	Stagnation   int
	Growth       int
	Mood         int
	Quality      int
	Debt         int
}

// RunRepo covers the runs table.
type RunRepo struct{ db *DB }

func NewRunRepo(db *DB) *RunRepo { return &RunRepo{db: db} }

func (r *RunRepo) Create(ctx context.Context, seed string) (Run, error) {
	run := Run{ID: uuid.New(), Seed: seed, StartedAt: time.Now().UTC()}
	err := r.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO runs(id, seed, started_at) VALUES(?,?,?)`,
		run.ID, run.Seed, run.StartedAt,
	).Error
	if err != nil {
		return Run{}, errors.Wrap(err, "insert run")
	}
	return run, nil
}

func (r *RunRepo) Finish(ctx context.Context, id uuid.UUID, outcome string, snap engine.Snapshot) error {
	err := r.db.gorm.WithContext(ctx).Exec(
		`UPDATE runs SET finished_at = ?, outcome = ?, days = ?, episode = ?, growth = ?, perfect_cycles = ? WHERE id = ?`,
		time.Now().UTC(), outcome, snap.Day, snap.CurrentEpisode, snap.Growth, snap.PerfectCycleCount, id,
	).Error
	return errors.Wrap(err, "finish run")
}

// Recent lists finished runs, newest first.
func (r *RunRepo) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.gorm.WithContext(ctx).Raw(
		`SELECT id, seed, started_at, finished_at, outcome, days, episode, growth, perfect_cycles
		 FROM runs WHERE finished_at IS NOT NULL
		 ORDER BY finished_at DESC LIMIT ?`, limit,
	).Rows()
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	defer rows.Close()
	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Seed, &run.StartedAt, &run.FinishedAt,
			&run.Outcome, &run.Days, &run.Episode, &run.Growth, &run.PerfectCycles); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

// ActionRepo covers the action log.
type ActionRepo struct{ db *DB }

func NewActionRepo(db *DB) *ActionRepo { return &ActionRepo{db: db} }

func (a *ActionRepo) Insert(ctx context.Context, runID uuid.UUID, report engine.Report, snap engine.Snapshot) error {
	err := a.db.gorm.WithContext(ctx).Exec(
		`INSERT INTO action_log(id, run_id, day, action, success, perfect_cycle, stagnation, growth, mood, quality, debt)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.New(), runID, report.Day, string(report.Action), report.Success, report.PerfectCycle,
		snap.Stagnation, snap.Growth, snap.OldManMood, snap.IngredientQuality, snap.TechnicalDebt,
	).Error
	return errors.Wrap(err, "insert action")
}

// RunRecorder binds the repositories to one live run. It satisfies the
// session's recorder contract.
type RunRecorder struct {
	runID   uuid.UUID
	runs    *RunRepo
	actions *ActionRepo
}

// NewRunRecorder opens an archive row for a fresh run.
func NewRunRecorder(ctx context.Context, db *DB, seed string) (*RunRecorder, error) {
	runs := NewRunRepo(db)
	run, err := runs.Create(ctx, seed)
	if err != nil {
		return nil, err
	}
	return &RunRecorder{runID: run.ID, runs: runs, actions: NewActionRepo(db)}, nil
}

func (r *RunRecorder) RecordAction(ctx context.Context, report engine.Report, snap engine.Snapshot) error {
	return r.actions.Insert(ctx, r.runID, report, snap)
}

func (r *RunRecorder) RecordFinish(ctx context.Context, outcome string, snap engine.Snapshot) error {
	return r.runs.Finish(ctx, r.runID, outcome, snap)
}
