package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is a KV backend stored in a single coach_state table, for
// deployments where the engine runs behind the HTTP API instead of on a
// single machine. The table is created on connect if it does not exist.
type Postgres struct {
	pool *pgxpool.Pool
	ctx  context.Context
}

const createStateTableSQL = `
CREATE TABLE IF NOT EXISTS coach_state (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// ConnectPostgres establishes a connection pool, verifies it, and ensures the
// state table exists
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, createStateTableSQL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create state table: %w", err)
	}

	return &Postgres{pool: pool, ctx: ctx}, nil
}

// Close closes the connection pool
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Get returns the value for key and whether it was present
func (p *Postgres) Get(key string) (string, bool, error) {
	var value string
	err := p.pool.QueryRow(p.ctx,
		`SELECT value FROM coach_state WHERE key = $1`, key,
	).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, overwriting any existing value
func (p *Postgres) Set(key, value string) error {
	_, err := p.pool.Exec(p.ctx,
		`INSERT INTO coach_state (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

// Delete removes key
func (p *Postgres) Delete(key string) error {
	_, err := p.pool.Exec(p.ctx, `DELETE FROM coach_state WHERE key = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key
func (p *Postgres) Keys() ([]string, error) {
	rows, err := p.pool.Query(p.ctx, `SELECT key FROM coach_state`)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
