// Package table holds the read-only result set the grid editor operates on.
package table

// NullSentinel is the literal cell value that denotes a SQL NULL.
// The query layer writes it when scanning NULL columns and every consumer
// (filtering, SQL generation) compares against this constant, never
// against an empty string.
const NullSentinel = "NULL"

// Result is a rectangular query result: ordered column names and string
// rows, every row exactly len(Columns) wide. It is immutable for the
// duration of one grid session; edits accumulate elsewhere.
type Result struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex returns the position of name in Columns, or -1.
func (r *Result) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the original value at (row, col), or "" when out of range.
func (r *Result) Cell(row, col int) string {
	if row < 0 || row >= len(r.Rows) {
		return ""
	}
	cells := r.Rows[row]
	if col < 0 || col >= len(cells) {
		return ""
	}
	return cells[col]
}

// IsNull reports whether a cell value is the NULL sentinel.
func IsNull(cell string) bool {
	return cell == NullSentinel
}
