package db

import (
	"context"
	"database/sql"
	"embed"

	"github.com/pressly/goose/v3"
)

// The users/documents/analyses schema ships inside the binary so cmd/migrate
// and the server's startup path need no files on disk.
//
//go:embed migrations/*.sql
var migrationFiles embed.FS

// RunMigrations brings the schema up to date via goose. A nil database is a
// no-op so the in-memory configuration can share the bootstrap path.
func RunMigrations(ctx context.Context, database *sql.DB) error {
	if database == nil {
		return nil
	}
	goose.SetBaseFS(migrationFiles)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, database, "migrations")
}
