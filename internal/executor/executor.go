// Package executor applies compiled statement batches to the database.
// The whole batch runs inside a single transaction; a failure anywhere
// rolls everything back. Every attempt, failed or not, is recorded to
// the statement history.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MCB-SMART-BOY/gridbase/internal/database"
	"github.com/MCB-SMART-BOY/gridbase/internal/history"
	"github.com/MCB-SMART-BOY/gridbase/internal/sqlgen"
)

// Executor runs batches against one sqlite database.
type Executor struct {
	DB      *sql.DB
	History *history.Repo
}

// Result summarizes one applied batch.
type Result struct {
	Statements   int
	RowsAffected int64
}

// Apply executes every statement of the batch in order inside one
// transaction. tableName only labels the history entry; the statements
// carry their own table references.
func (e *Executor) Apply(ctx context.Context, batch sqlgen.Batch, tableName string) (Result, error) {
	var res Result
	if len(batch.Statements) == 0 {
		return res, nil
	}

	err := database.WithTx(e.DB, func(tx *sql.Tx) error {
		for i, stmt := range batch.Statements {
			r, err := tx.ExecContext(ctx, stmt)
			if err != nil {
				return fmt.Errorf("statement %d: %w", i+1, err)
			}
			if n, aerr := r.RowsAffected(); aerr == nil {
				res.RowsAffected += n
			}
			res.Statements++
		}
		return nil
	})

	e.record(ctx, batch, tableName, err)
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

func (e *Executor) record(ctx context.Context, batch sqlgen.Batch, tableName string, execErr error) {
	if e.History == nil {
		return
	}
	rec := history.Record{
		ID:          uuid.NewString(),
		ExecutedAt:  database.Now(),
		TableName:   tableName,
		Statements:  len(batch.Statements),
		Destructive: batch.Destructive,
		SQL:         strings.Join(batch.Statements, "\n"),
		Status:      history.StatusApplied,
	}
	if execErr != nil {
		rec.Status = history.StatusFailed
		rec.Error = execErr.Error()
	}
	// History is advisory; a write failure must not mask the batch result.
	_ = e.History.Add(ctx, rec)
}
