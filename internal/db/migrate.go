package db

import (
	"database/sql"
	"fmt"
)

// Migrate applies every schema statement. Statements are idempotent so the
// full list runs on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS save_log (
		id         TEXT PRIMARY KEY,
		step       TEXT NOT NULL
		           CHECK(step IN ('basic_info','advanced_info','curriculum')),
		course_id  TEXT NOT NULL DEFAULT '',
		title      TEXT NOT NULL DEFAULT '',
		outcome    TEXT NOT NULL
		           CHECK(outcome IN ('saved','failed','rejected')),
		message    TEXT NOT NULL DEFAULT '',
		latency_ms INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		-- monotonic insertion order; created_at alone ties within one second
		seq        INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_save_log_created ON save_log(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_save_log_course ON save_log(course_id)`,
}
