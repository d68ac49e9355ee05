package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// A unicidade de (name, movie_ids) fica no banco; o repositório sempre grava
// movie_ids normalizado, então o array ordenado representa o conjunto.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS movies (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		year       INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS directors (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		movie_ids  TEXT[] NOT NULL,
		genre      TEXT,
		year       INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT directors_name_movie_ids_key UNIQUE (name, movie_ids)
	)`,
}

// EnsureSchema creates the tables used by the director and movie repositories.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if pool == nil {
		return errNilPool
	}

	for _, statement := range schemaStatements {
		if _, err := pool.Exec(ctx, statement); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
