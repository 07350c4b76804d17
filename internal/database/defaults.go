package database

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// SeedDemo creates a small sample table on an otherwise empty database
// so the editor opens onto something. It is idempotent and safe to run
// on every startup.
func SeedDemo(ctx context.Context, db *sql.DB) error {
	names, err := ListTables(ctx, db)
	if err != nil {
		return err
	}
	for _, n := range names {
		// The history table ships with every database; only real user
		// tables count as existing data.
		if n != "statement_history" {
			return nil
		}
	}

	return WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		CREATE TABLE contacts (
			id    TEXT PRIMARY KEY,
			name  TEXT NOT NULL,
			email TEXT,
			city  TEXT
		)`); err != nil {
			return err
		}
		rows := [][3]string{
			{"Ada Lovelace", "ada@example.com", "London"},
			{"Grace Hopper", "grace@example.com", "New York"},
			{"Edsger Dijkstra", "", "Nuenen"},
		}
		for _, r := range rows {
			var email any
			if r[1] != "" {
				email = r[1]
			}
			if _, err := tx.ExecContext(ctx, `
			INSERT INTO contacts(id, name, email, city) VALUES(?, ?, ?, ?)
			`, uuid.NewString(), r[0], email, r[2]); err != nil {
				return err
			}
		}
		return nil
	})
}
