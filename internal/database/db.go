package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/MCB-SMART-BOY/gridbase/internal/sqlgen"
	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// Open opens sqlite with sensible defaults.
func Open(path string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	return db, nil
}

// WithTx runs fn in a transaction.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Now returns UTC time truncated to seconds (consistent with SQLite default).
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// ListTables returns user table names, skipping sqlite internals and the
// migration bookkeeping tables.
func ListTables(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx, `
	SELECT name FROM sqlite_master
	WHERE type = 'table'
	  AND name NOT LIKE 'sqlite_%'
	  AND name NOT LIKE 'schema_migrations%'
	ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// PrimaryKeyColumn returns the index of tableName's single-column primary
// key within its column list, or -1 when the table has none (or a
// composite key, which the editor treats the same way).
func PrimaryKeyColumn(ctx context.Context, db *sql.DB, tableName string) (int, error) {
	quoted, err := sqlgen.QuoteIdentifier(tableName)
	if err != nil {
		return -1, err
	}
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", quoted))
	if err != nil {
		return -1, fmt.Errorf("table info %s: %w", tableName, err)
	}
	defer rows.Close()

	pkIndex, pkCount := -1, 0
	idx := 0
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notNull   int
			dflt      sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return -1, err
		}
		if pk > 0 {
			pkCount++
			pkIndex = idx
		}
		idx++
	}
	if err := rows.Err(); err != nil {
		return -1, err
	}
	if pkCount != 1 {
		return -1, nil
	}
	return pkIndex, nil
}

// FetchTable loads up to limit rows of tableName into a result set. NULLs
// come back as the sentinel string so the editor can round-trip them.
func FetchTable(ctx context.Context, db *sql.DB, tableName string, limit int) (*table.Result, error) {
	quoted, err := sqlgen.QuoteIdentifier(tableName)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf("SELECT * FROM %s", quoted)
	if limit > 0 {
		query = fmt.Sprintf("%s LIMIT %d", query, limit)
	}
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", tableName, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	res := &table.Result{Columns: cols}
	scan := make([]sql.NullString, len(cols))
	ptrs := make([]any, len(cols))
	for i := range scan {
		ptrs[i] = &scan[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]string, len(cols))
		for i, v := range scan {
			if v.Valid {
				row[i] = v.String
			} else {
				row[i] = table.NullSentinel
			}
		}
		res.Rows = append(res.Rows, row)
	}
	return res, rows.Err()
}
