package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	pkgdb "species-catalog/pkg/database"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every embedded migration that has not been applied yet.
// Each file runs in its own transaction together with its bookkeeping row.
func (db *PostgresDB) Migrate(ctx context.Context) (int, error) {
	if db.Pool == nil {
		return 0, fmt.Errorf("database pool is not initialized")
	}

	names, err := fs.Glob(migrationFiles, "migrations/*.sql")
	if err != nil {
		return 0, fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(names)

	applied := 0
	for _, name := range names {
		version := strings.TrimSuffix(strings.TrimPrefix(name, "migrations/"), ".sql")

		body, err := migrationFiles.ReadFile(name)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", version, err)
		}

		ran := false
		err = pkgdb.WithTransaction(ctx, db.Pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, string(body)); err != nil {
				return fmt.Errorf("apply %s: %w", version, err)
			}
			tag, err := tx.Exec(ctx,
				`INSERT INTO schema_migrations (version) VALUES ($1) ON CONFLICT (version) DO NOTHING`,
				version,
			)
			if err != nil {
				return fmt.Errorf("record %s: %w", version, err)
			}
			ran = tag.RowsAffected() == 1
			return nil
		})
		if err != nil {
			return applied, err
		}

		if ran {
			applied++
			log.Info().Str("version", version).Msg("[DATABASE] Migration applied")
		}
	}

	return applied, nil
}
