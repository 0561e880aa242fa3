package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillUpdatedAt(db); err != nil {
		return fmt.Errorf("backfilling plans updated_at: %w", err)
	}
	return nil
}

var migrations = []string{
	// One row per plan document. Cards and days are stored as JSON arrays
	// in their document order.
	`CREATE TABLE IF NOT EXISTS plans (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		cards_json TEXT NOT NULL DEFAULT '[]',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL DEFAULT ''
	)`,

	// Day columns arrived after cards.
	`ALTER TABLE plans ADD COLUMN days_json TEXT NOT NULL DEFAULT '[]'`,

	`CREATE INDEX IF NOT EXISTS idx_plans_updated ON plans(updated_at)`,
}

// migrateBackfillUpdatedAt gives rows written before updated_at was tracked
// their creation time. Idempotent.
func migrateBackfillUpdatedAt(db *sql.DB) error {
	_, err := db.ExecContext(context.Background(),
		`UPDATE plans SET updated_at = created_at WHERE updated_at = ''`)
	return err
}
