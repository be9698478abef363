package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS content_items (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		category    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'requested'
		            CHECK (status IN ('requested', 'in-progress', 'published')),
		slug        TEXT NULL,
		author      TEXT NULL,
		created_at  INTEGER NOT NULL,
		updated_at  INTEGER NOT NULL,
		tags        TEXT NULL,
		CHECK ((status = 'published') = (slug IS NOT NULL)),
		CHECK (updated_at >= created_at)
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_content_items_slug ON content_items(slug);`,
	`CREATE INDEX IF NOT EXISTS idx_content_items_created_at ON content_items(created_at);`,
}

// OpenSQLite opens (or creates) the SQLite database at path and ensures the
// content schema exists.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serialises writers; a single connection avoids SQLITE_BUSY churn.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, stmt := range sqliteSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply sqlite schema: %w", err)
		}
	}
	return db, nil
}
