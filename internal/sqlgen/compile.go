package sqlgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// CellRef addresses one cell by its position in the ORIGINAL result set.
type CellRef struct {
	Row int
	Col int
}

// Edits is the accumulated diff the compiler serializes: modified cells
// and delete marks reference original row indices; NewRows holds
// not-yet-persisted rows, each len(Columns) wide.
type Edits struct {
	Modified map[CellRef]string
	Deleted  []int
	NewRows  [][]string
}

// Empty reports whether there is nothing to compile.
func (e Edits) Empty() bool {
	return len(e.Modified) == 0 && len(e.Deleted) == 0 && len(e.NewRows) == 0
}

// Batch is an ordered list of statements ready for the executor.
// Destructive batches contain DELETE statements and must be confirmed by
// the caller before execution.
type Batch struct {
	Statements  []string
	Destructive bool
}

// NoPrimaryKey marks the primary-key column as unknown. Compiling
// UPDATE or DELETE statements then fails closed instead of guessing a
// column.
const NoPrimaryKey = -1

// Compile turns an edit diff into UPDATE-per-cell, DELETE-per-row and
// INSERT-per-row statements, in that order. Any invalid identifier aborts
// the whole compile; no partial batch is ever returned. pkCol is the
// caller-supplied primary-key column index, or NoPrimaryKey when none is
// known.
func Compile(res *table.Result, edits Edits, tableName string, pkCol int) (Batch, error) {
	safeTable, err := QuoteIdentifier(tableName)
	if err != nil {
		return Batch{}, fmt.Errorf("table name: %w", err)
	}
	safeColumns := make([]string, len(res.Columns))
	for i, col := range res.Columns {
		quoted, err := QuoteIdentifier(col)
		if err != nil {
			return Batch{}, fmt.Errorf("column %d: %w", i, err)
		}
		safeColumns[i] = quoted
	}

	needsPK := len(edits.Modified) > 0 || len(edits.Deleted) > 0
	if needsPK {
		if pkCol == NoPrimaryKey {
			return Batch{}, fmt.Errorf("no primary-key column known: refusing to compile UPDATE/DELETE")
		}
		if pkCol < 0 || pkCol >= len(res.Columns) {
			return Batch{}, fmt.Errorf("primary-key column index %d out of range", pkCol)
		}
	}

	var stmts []string

	// UPDATE: one statement per modified cell, ordered by position so the
	// batch is deterministic.
	refs := make([]CellRef, 0, len(edits.Modified))
	for ref := range edits.Modified {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].Row != refs[j].Row {
			return refs[i].Row < refs[j].Row
		}
		return refs[i].Col < refs[j].Col
	})
	for _, ref := range refs {
		if ref.Row < 0 || ref.Row >= len(res.Rows) || ref.Col < 0 || ref.Col >= len(res.Columns) {
			continue
		}
		pkValue := res.Cell(ref.Row, pkCol)
		stmts = append(stmts, fmt.Sprintf("UPDATE %s SET %s = %s WHERE %s = %s;",
			safeTable, safeColumns[ref.Col], quoteEditedValue(edits.Modified[ref]),
			safeColumns[pkCol], QuoteValue(pkValue)))
	}

	// DELETE: one statement per marked row, in mark order.
	for _, rowIdx := range edits.Deleted {
		if rowIdx < 0 || rowIdx >= len(res.Rows) {
			continue
		}
		pkValue := res.Cell(rowIdx, pkCol)
		stmts = append(stmts, fmt.Sprintf("DELETE FROM %s WHERE %s = %s;",
			safeTable, safeColumns[pkCol], QuoteValue(pkValue)))
	}

	// INSERT: one statement per new row that has at least one non-empty
	// cell. A row left entirely blank is skipped, not an error.
	for _, newRow := range edits.NewRows {
		if allEmpty(newRow) {
			continue
		}
		values := make([]string, len(newRow))
		for i, v := range newRow {
			values[i] = quoteEditedValue(v)
		}
		stmts = append(stmts, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);",
			safeTable, strings.Join(safeColumns, ", "), strings.Join(values, ", ")))
	}

	return Batch{Statements: stmts, Destructive: len(edits.Deleted) > 0}, nil
}

func allEmpty(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
