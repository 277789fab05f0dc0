package site

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PgArchive struct {
	pool *pgxpool.Pool
}

func NewPgArchive(pool *pgxpool.Pool) *PgArchive {
	return &PgArchive{pool: pool}
}

// EnsureSchema creates the archive table. Safe to run on every startup.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS documents (
		digest       TEXT PRIMARY KEY,
		generated_at TEXT NOT NULL,
		revision     TEXT NOT NULL DEFAULT '',
		fetched_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		kernel_count INT NOT NULL,
		payload      JSONB NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

func (a *PgArchive) Record(ctx context.Context, entry ArchiveEntry, payload []byte) error {
	_, err := a.pool.Exec(ctx,
		`INSERT INTO documents (digest, generated_at, revision, kernel_count, payload)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (digest) DO NOTHING`,
		entry.Digest, entry.GeneratedAt, entry.Revision, entry.KernelCount, payload)
	return err
}

func (a *PgArchive) List(ctx context.Context, limit int) ([]ArchiveEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := a.pool.Query(ctx,
		`SELECT digest, generated_at, revision, to_char(fetched_at, 'YYYY-MM-DD"T"HH24:MI:SS"Z"'), kernel_count
		 FROM documents ORDER BY fetched_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ArchiveEntry
	for rows.Next() {
		var entry ArchiveEntry
		if err := rows.Scan(&entry.Digest, &entry.GeneratedAt, &entry.Revision, &entry.FetchedAt, &entry.KernelCount); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
