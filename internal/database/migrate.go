package database

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
)

//go:embed migrations/users.up.sql
var usersSchemaSQL string

//go:embed migrations/blogs.up.sql
var blogsSchemaSQL string

// EnsureUserSchema creates the users table if missing. The SQL is
// idempotent, so re-running on startup is safe.
func (db *DB) EnsureUserSchema(ctx context.Context) error {
	return db.ensureSchema(ctx, "users", usersSchemaSQL)
}

// EnsureBlogSchema creates the blogs table if missing.
func (db *DB) EnsureBlogSchema(ctx context.Context) error {
	return db.ensureSchema(ctx, "blogs", blogsSchemaSQL)
}

func (db *DB) ensureSchema(ctx context.Context, table string, schemaSQL string) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}

	var exists bool
	err := db.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = $1
		)
	`, table).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check %s table: %w", table, err)
	}

	if !exists {
		slog.Info("applying schema", "table", table)
	}

	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply %s schema: %w", table, err)
	}

	return nil
}
