package repository

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/legal-docify/constants"
	"github.com/joseph-ayodele/legal-docify/internal/common"
)

// Run is one audited ProcessDocuments call. It carries counts only; no
// document text, summary or metadata is ever stored.
type Run struct {
	ID            uuid.UUID
	RequestID     string
	StartedAt     time.Time
	Documents     int
	Pages         int
	CombinedChars int
	SummaryChars  int
	Status        constants.PipelineState // DONE | FAILED
	FailedState   constants.PipelineState // empty unless Status is FAILED
	Error         string
	ElapsedMS     int64
}

// RunRepository records pipeline runs.
type RunRepository interface {
	Record(ctx context.Context, run Run) error
	ListRecent(ctx context.Context, limit int) ([]Run, error)
}

type runRepository struct {
	db     *DB
	logger *slog.Logger
}

// NewRunRepository returns a repository over db. Call Migrate once before use.
func NewRunRepository(db *DB, logger *slog.Logger) RunRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &runRepository{db: db, logger: logger}
}

const createRunsTable = `CREATE TABLE IF NOT EXISTS pipeline_runs (
	id             TEXT PRIMARY KEY,
	request_id     TEXT NOT NULL,
	started_at     TIMESTAMP NOT NULL,
	documents      INTEGER NOT NULL,
	pages          INTEGER NOT NULL,
	combined_chars INTEGER NOT NULL,
	summary_chars  INTEGER NOT NULL,
	status         TEXT NOT NULL,
	failed_state   TEXT NOT NULL DEFAULT '',
	error          TEXT NOT NULL DEFAULT '',
	elapsed_ms     BIGINT NOT NULL
)`

// Migrate creates the runs table if needed. The DDL is valid for both dialects.
func Migrate(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, createRunsTable); err != nil {
		return common.NewAppError("MIGRATE_ERROR", "create pipeline_runs", fmt.Errorf("%w: %v", common.ErrDatabase, err))
	}
	return nil
}

func (r *runRepository) Record(ctx context.Context, run Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	q := fmt.Sprintf(`INSERT INTO pipeline_runs
		(id, request_id, started_at, documents, pages, combined_chars, summary_chars, status, failed_state, error, elapsed_ms)
		VALUES (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)`,
		r.db.Bind(1), r.db.Bind(2), r.db.Bind(3), r.db.Bind(4), r.db.Bind(5), r.db.Bind(6),
		r.db.Bind(7), r.db.Bind(8), r.db.Bind(9), r.db.Bind(10), r.db.Bind(11))

	_, err := r.db.ExecContext(ctx, q,
		run.ID.String(), run.RequestID, run.StartedAt.UTC(),
		run.Documents, run.Pages, run.CombinedChars, run.SummaryChars,
		string(run.Status), string(run.FailedState), run.Error, run.ElapsedMS,
	)
	if err != nil {
		r.logger.Error("audit.record.failed", "req_id", run.RequestID, "error", err)
		return fmt.Errorf("%w: insert run: %v", common.ErrDatabase, err)
	}
	r.logger.Debug("audit.record.ok", "req_id", run.RequestID, "run_id", run.ID.String())
	return nil
}

// ListRecent returns up to limit runs, newest first.
func (r *runRepository) ListRecent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	q := fmt.Sprintf(`SELECT id, request_id, started_at, documents, pages, combined_chars, summary_chars,
		status, failed_state, error, elapsed_ms
		FROM pipeline_runs ORDER BY started_at DESC LIMIT %s`, r.db.Bind(1))

	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list runs: %v", common.ErrDatabase, err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			run              Run
			id, status, fail string
		)
		if err := rows.Scan(&id, &run.RequestID, &run.StartedAt, &run.Documents, &run.Pages,
			&run.CombinedChars, &run.SummaryChars, &status, &fail, &run.Error, &run.ElapsedMS); err != nil {
			return nil, fmt.Errorf("%w: scan run: %v", common.ErrDatabase, err)
		}
		if run.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("%w: parse run id: %v", common.ErrDatabase, err)
		}
		run.Status = constants.PipelineState(status)
		run.FailedState = constants.PipelineState(fail)
		out = append(out, run)
	}
	return out, rows.Err()
}

// OpenRuns opens and migrates the audit database described by cfg. An empty
// DSN disables auditing and returns (nil, nil, nil).
func OpenRuns(ctx context.Context, cfg common.AuditConfig, logger *slog.Logger) (RunRepository, *DB, error) {
	if cfg.DSN == "" {
		return nil, nil, nil
	}
	db, err := Open(ctx, Config{
		DSN:         cfg.DSN,
		MaxConns:    cfg.MaxConns,
		DialTimeout: cfg.DialTimeout,
	}, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := db.HealthCheck(ctx, cfg.DialTimeout); err != nil {
		db.Close(logger)
		return nil, nil, fmt.Errorf("audit db health: %w", err)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close(logger)
		return nil, nil, err
	}
	return NewRunRepository(db, logger), db, nil
}
