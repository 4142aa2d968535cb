package kv

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres keeps values in the storage_entries table created by internal/migrate.
func NewPostgres(pool *pgxpool.Pool) Store {
	return &postgresStore{pool: pool}
}

func (s *postgresStore) Get(ctx context.Context, key string) (string, error) {
	const q = `
SELECT value
FROM storage_entries
WHERE key = $1
`
	var value string
	if err := s.pool.QueryRow(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

func (s *postgresStore) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO storage_entries (key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE
SET value = EXCLUDED.value,
    updated_at = EXCLUDED.updated_at
`
	_, err := s.pool.Exec(ctx, q, key, value)
	return err
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM storage_entries WHERE key = $1`, key)
	return err
}

func (s *postgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
