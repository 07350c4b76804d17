// Package history persists a log of executed statement batches.
package history

import (
	"context"
	"database/sql"
	"time"
)

// Record is one executed batch.
type Record struct {
	ID          string
	ExecutedAt  time.Time
	TableName   string
	Statements  int
	Destructive bool
	SQL         string
	Status      string
	Error       string
}

// Batch outcomes stored in the status column.
const (
	StatusApplied = "applied"
	StatusFailed  = "failed"
)

// Repo stores statement-history rows.
type Repo struct{ db *sql.DB }

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Add(ctx context.Context, rec Record) error {
	destructive := 0
	if rec.Destructive {
		destructive = 1
	}
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO statement_history(id, executed_at, table_name, statement_count, destructive, sql_text, status, error)
	VALUES(?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.ExecutedAt, rec.TableName, rec.Statements, destructive, rec.SQL, rec.Status, rec.Error)
	return err
}

// Recent returns up to limit records, newest first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, executed_at, table_name, statement_count, destructive, sql_text, status, error
	FROM statement_history
	ORDER BY executed_at DESC, id DESC
	LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		var destructive int
		if err := rows.Scan(&rec.ID, &rec.ExecutedAt, &rec.TableName, &rec.Statements, &destructive, &rec.SQL, &rec.Status, &rec.Error); err != nil {
			return nil, err
		}
		rec.Destructive = destructive != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep records.
func (r *Repo) Prune(ctx context.Context, keep int) error {
	_, err := r.db.ExecContext(ctx, `
	DELETE FROM statement_history
	WHERE id NOT IN (
		SELECT id FROM statement_history
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	)
	`, keep)
	return err
}
