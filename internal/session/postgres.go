package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres stores session slots in a single key-value table for durable
// deployments.
type Postgres struct {
	db *sql.DB
}

// NewPostgres opens a Postgres connection with sane pool defaults and
// ensures the backing table exists.
func NewPostgres(connString string) (*Postgres, error) {
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS session_slots (
			sid        TEXT NOT NULL,
			slot       TEXT NOT NULL,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (sid, slot)
		)
	`)
	if err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

// Get decodes the slot value into out.
func (p *Postgres) Get(ctx context.Context, sid string, slot Slot, out any) error {
	var raw []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT value FROM session_slots WHERE sid = $1 AND slot = $2
	`, sid, string(slot)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// Set upserts v into the slot.
func (p *Postgres) Set(ctx context.Context, sid string, slot Slot, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = p.db.ExecContext(ctx, `
		INSERT INTO session_slots (sid, slot, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (sid, slot) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`, sid, string(slot), raw)
	return err
}

// Clear removes the slot value.
func (p *Postgres) Clear(ctx context.Context, sid string, slot Slot) error {
	_, err := p.db.ExecContext(ctx, `
		DELETE FROM session_slots WHERE sid = $1 AND slot = $2
	`, sid, string(slot))
	return err
}

// Healthy verifies database connectivity.
func (p *Postgres) Healthy(ctx context.Context) bool {
	if p == nil || p.db == nil {
		return false
	}
	return p.db.PingContext(ctx) == nil
}

// Close closes the underlying connection pool.
func (p *Postgres) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
