package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/retailpulse/retailpulse/internal/domain"
)

// Schema creates the tables backing the Postgres feature store. The payload
// is JSONB and replaced wholesale on conflict, matching the idempotent-write
// contract.
const Schema = `
CREATE TABLE IF NOT EXISTS daily_features (
    date        DATE PRIMARY KEY,
    payload     JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS baselines (
    singleton   BOOLEAN PRIMARY KEY DEFAULT TRUE CHECK (singleton),
    payload     JSONB NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// PostgresStore is a Postgres-backed FeatureStore using sqlx. Every call
// runs under a bounded context timeout.
type PostgresStore struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPostgresStore wraps an open connection pool.
func NewPostgresStore(db *sqlx.DB, timeout time.Duration) *PostgresStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresStore{db: db, timeout: timeout}
}

// OpenPostgresStore dials the DSN and verifies connectivity.
func OpenPostgresStore(ctx context.Context, dsn string, timeout time.Duration) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return NewPostgresStore(db, timeout), nil
}

// EnsureSchema creates the backing tables when missing.
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if _, err := p.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (p *PostgresStore) PutFeatures(ctx context.Context, fs domain.DailyFeatureSet) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	payload, err := json.Marshal(fs)
	if err != nil {
		return fmt.Errorf("marshal feature set: %w", err)
	}

	query := `
		INSERT INTO daily_features (date, payload)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET
			payload = EXCLUDED.payload,
			created_at = now()`

	if _, err := p.db.ExecContext(ctx, query, domain.Day(fs.Date), payload); err != nil {
		return fmt.Errorf("upsert features %s: %w", domain.DayKey(fs.Date), err)
	}
	return nil
}

func (p *PostgresStore) GetFeatures(ctx context.Context, date time.Time) (*domain.DailyFeatureSet, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var payload []byte
	err := p.db.QueryRowxContext(ctx,
		`SELECT payload FROM daily_features WHERE date = $1`, domain.Day(date)).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get features %s: %w", domain.DayKey(date), err)
	}

	var fs domain.DailyFeatureSet
	if err := json.Unmarshal(payload, &fs); err != nil {
		return nil, fmt.Errorf("unmarshal feature set %s: %w", domain.DayKey(date), err)
	}
	return &fs, nil
}

func (p *PostgresStore) HasFeatures(ctx context.Context, date time.Time) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var exists bool
	err := p.db.QueryRowxContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM daily_features WHERE date = $1)`, domain.Day(date)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has features %s: %w", domain.DayKey(date), err)
	}
	return exists, nil
}

func (p *PostgresStore) LatestDate(ctx context.Context) (time.Time, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var date time.Time
	err := p.db.QueryRowxContext(ctx,
		`SELECT date FROM daily_features ORDER BY date DESC LIMIT 1`).Scan(&date)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("latest date: %w", err)
	}
	return domain.Day(date), true, nil
}

func (p *PostgresStore) ListDates(ctx context.Context) ([]time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	rows, err := p.db.QueryxContext(ctx, `SELECT date FROM daily_features ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("list dates: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var date time.Time
		if err := rows.Scan(&date); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		dates = append(dates, domain.Day(date))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate dates: %w", err)
	}
	return dates, nil
}

func (p *PostgresStore) PutBaseline(ctx context.Context, b domain.Baseline) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	payload, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}

	query := `
		INSERT INTO baselines (singleton, payload)
		VALUES (TRUE, $1)
		ON CONFLICT (singleton) DO UPDATE SET
			payload = EXCLUDED.payload,
			created_at = now()`

	if _, err := p.db.ExecContext(ctx, query, payload); err != nil {
		return fmt.Errorf("upsert baseline: %w", err)
	}
	return nil
}

func (p *PostgresStore) GetBaseline(ctx context.Context) (*domain.Baseline, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var payload []byte
	err := p.db.QueryRowxContext(ctx, `SELECT payload FROM baselines WHERE singleton`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get baseline: %w", err)
	}

	var b domain.Baseline
	if err := json.Unmarshal(payload, &b); err != nil {
		return nil, fmt.Errorf("unmarshal baseline: %w", err)
	}
	return &b, nil
}

func (p *PostgresStore) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	result, err := p.db.ExecContext(ctx,
		`DELETE FROM daily_features WHERE date < $1`, domain.Day(olderThan))
	if err != nil {
		return 0, fmt.Errorf("prune: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return int(n), nil
}

func (p *PostgresStore) Close() error {
	return p.db.Close()
}
