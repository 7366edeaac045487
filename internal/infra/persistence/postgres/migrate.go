package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"gatekeeper/internal/errors"
	"gatekeeper/internal/infra/persistence/postgres/migrations"

	"github.com/pressly/goose/v3"
)

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return errors.Wrap(err, "failed to create migration provider")
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	for _, result := range results {
		logger.InfoContext(ctx, "Applied migration",
			slog.String("source", result.Source.Path),
			slog.Duration("duration", result.Duration),
		)
	}

	return nil
}
