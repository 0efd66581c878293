package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultProfile is the profile name used when none is configured.
const DefaultProfile = "default"

const createTokensTable = `
CREATE TABLE IF NOT EXISTS client_tokens (
	profile    TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresStore keeps one token per profile in PostgreSQL, so several
// headless clients can share a login.
type PostgresStore struct {
	pool    *pgxpool.Pool
	profile string
}

// ConnectPostgresStore opens a pool, verifies it, and ensures the token table exists.
func ConnectPostgresStore(ctx context.Context, databaseURL, profile string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to token database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping token database: %w", err)
	}

	if _, err := pool.Exec(ctx, createTokensTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create client_tokens table: %w", err)
	}

	return NewPostgresStore(pool, profile), nil
}

// NewPostgresStore wraps an existing pool. The table must already exist.
func NewPostgresStore(pool *pgxpool.Pool, profile string) *PostgresStore {
	if profile == "" {
		profile = DefaultProfile
	}
	return &PostgresStore{pool: pool, profile: profile}
}

// Close closes the connection pool
func (p *PostgresStore) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Profile returns the profile the store reads and writes.
func (p *PostgresStore) Profile() string {
	return p.profile
}

func (p *PostgresStore) Load(ctx context.Context) (string, error) {
	var token string
	err := p.pool.QueryRow(ctx,
		`SELECT token FROM client_tokens WHERE profile = $1`,
		p.profile,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return token, nil
}

func (p *PostgresStore) Save(ctx context.Context, token string) error {
	_, err := p.pool.Exec(ctx,
		`INSERT INTO client_tokens (profile, token, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (profile) DO UPDATE SET token = EXCLUDED.token, updated_at = NOW()`,
		p.profile, token,
	)
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (p *PostgresStore) Clear(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `DELETE FROM client_tokens WHERE profile = $1`, p.profile)
	if err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
