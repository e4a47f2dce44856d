// Package postgres persists simulation runs through sqlx. It implements the
// run-ledger port; nothing in the simulation core depends on it.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"linmod/domain/core"
	"linmod/domain/regression"
	apperrors "linmod/internal/errors"
	"linmod/ports"
)

const schema = `
CREATE TABLE IF NOT EXISTS simulation_runs (
	id           TEXT PRIMARY KEY,
	sample_size  INTEGER NOT NULL,
	effect       DOUBLE PRECISION NOT NULL,
	noise        DOUBLE PRECISION NOT NULL,
	seed         BIGINT NOT NULL,
	ss_explained DOUBLE PRECISION NOT NULL,
	ss_residual  DOUBLE PRECISION NOT NULL,
	f_statistic  DOUBLE PRECISION NOT NULL,
	p_value      DOUBLE PRECISION NOT NULL,
	fingerprint  JSONB NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS simulation_runs_seed_idx ON simulation_runs (seed);
`

// RunRepositoryImpl implements RunLedgerPort for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) *RunRepositoryImpl {
	return &RunRepositoryImpl{db: db}
}

var _ ports.RunLedgerPort = (*RunRepositoryImpl)(nil)

// Connect opens and pings a PostgreSQL connection
func Connect(url string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, apperrors.DatabaseError(err, "failed to connect to postgres")
	}
	return db, nil
}

// Migrate creates the runs table if it does not exist
func (r *RunRepositoryImpl) Migrate(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return apperrors.DatabaseError(err, "failed to migrate simulation_runs")
	}
	return nil
}

// StoreRun saves a simulation run with its replay fingerprint
func (r *RunRepositoryImpl) StoreRun(ctx context.Context, record ports.RunRecord) error {
	fingerprintJSON, err := json.Marshal(record.Fingerprint)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.CodeInternalError,
			"failed to marshal fingerprint for run %s", record.ID)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO simulation_runs (
			id, sample_size, effect, noise, seed,
			ss_explained, ss_residual, f_statistic, p_value, fingerprint
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		record.ID.String(), record.Input.SampleSize, record.Input.Effect,
		record.Input.Noise, record.Input.Seed,
		record.SSExplained, record.SSResidual, record.FStatistic, record.PValue,
		fingerprintJSON,
	)
	if err != nil {
		return apperrors.Wrapf(err, apperrors.CodeDatabaseError,
			"failed to store run %s", record.ID)
	}
	return nil
}

type runRow struct {
	ID          string  `db:"id"`
	SampleSize  int     `db:"sample_size"`
	Effect      float64 `db:"effect"`
	Noise       float64 `db:"noise"`
	Seed        int64   `db:"seed"`
	SSExplained float64 `db:"ss_explained"`
	SSResidual  float64 `db:"ss_residual"`
	FStatistic  float64 `db:"f_statistic"`
	PValue      float64 `db:"p_value"`
	Fingerprint []byte  `db:"fingerprint"`
	CreatedAt   string  `db:"created_at"`
}

func (row runRow) toRecord() (ports.RunRecord, error) {
	var fingerprint regression.RunFingerprint
	if err := json.Unmarshal(row.Fingerprint, &fingerprint); err != nil {
		return ports.RunRecord{}, apperrors.Wrapf(err, apperrors.CodeInternalError,
			"corrupt fingerprint for run %s", row.ID)
	}
	return ports.RunRecord{
		ID: core.RunID(row.ID),
		Input: regression.SimulationInput{
			SampleSize: row.SampleSize,
			Effect:     row.Effect,
			Noise:      row.Noise,
			Seed:       row.Seed,
		},
		SSExplained: row.SSExplained,
		SSResidual:  row.SSResidual,
		FStatistic:  row.FStatistic,
		PValue:      row.PValue,
		Fingerprint: fingerprint,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// GetRun returns a stored run by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*ports.RunRecord, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, sample_size, effect, noise, seed,
		       ss_explained, ss_residual, f_statistic, p_value, fingerprint,
		       created_at::text AS created_at
		FROM simulation_runs WHERE id = $1`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %s", core.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.CodeDatabaseError,
			"failed to load run %s", id)
	}

	record, err := row.toRecord()
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListRuns returns stored runs, newest first
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, filters ports.RunFilters) ([]ports.RunRecord, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, sample_size, effect, noise, seed,
		       ss_explained, ss_residual, f_statistic, p_value, fingerprint,
		       created_at::text AS created_at
		FROM simulation_runs`
	args := []interface{}{}
	if filters.Seed != nil {
		query += ` WHERE seed = $1`
		args = append(args, *filters.Seed)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, filters.Offset)

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.DatabaseError(err, "failed to list runs")
	}

	records := make([]ports.RunRecord, 0, len(rows))
	for _, row := range rows {
		record, err := row.toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
