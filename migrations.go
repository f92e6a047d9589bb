package postbot

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

// MigrationFiles contains all SQL migration files embedded in the binary.
// Users can access these files programmatically to apply migrations using
// their preferred migration tool (goose, golang-migrate, atlas, etc.), or
// call ApplyMigrations for the simple built-in path.
//
//go:embed migrations/*.sql
var MigrationFiles embed.FS

// ApplyMigrations executes every embedded migration file in name order.
// Statements are idempotent (CREATE ... IF NOT EXISTS), so calling this on
// every startup is safe. Suitable for the default SQLite deployment;
// managed MySQL/PostgreSQL schemas are better served by a real migration
// tool reading MigrationFiles.
func ApplyMigrations(db *sql.DB) error {
	names, err := fs.Glob(MigrationFiles, "migrations/*.sql")
	if err != nil {
		return NewErrorWithCause(ErrCodeStore, "failed to list migrations", err)
	}
	sort.Strings(names)

	for _, name := range names {
		ddl, err := MigrationFiles.ReadFile(name)
		if err != nil {
			return NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to read migration %s", name), err)
		}
		if _, err := db.Exec(string(ddl)); err != nil {
			return NewErrorWithCause(ErrCodeStore, fmt.Sprintf("failed to apply migration %s", name), err)
		}
	}
	return nil
}
