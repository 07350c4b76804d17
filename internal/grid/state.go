package grid

import (
	"github.com/MCB-SMART-BOY/gridbase/internal/filter"
	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// maxCount caps the numeric repeat prefix so 9999999j cannot overflow
// any downstream arithmetic.
const maxCount = 9999

// CellPos addresses a cell. Inside State the row is a VISIBLE row index
// (filtered original rows first, then virtual new rows); the keys of
// ModifiedCells are ORIGINAL row indices.
type CellPos struct {
	Row int
	Col int
}

// State is the whole editing session for one loaded result set. It is
// owned by a single goroutine; one event is fully processed before the
// next is accepted.
type State struct {
	Mode   Mode
	Cursor CellPos

	// SelectAnchor is set iff Mode == ModeSelect.
	SelectAnchor *CellPos

	// EditingCell is set iff Mode == ModeInsert. EditText is the text
	// being typed; originalValue is the cell's value when editing began,
	// used to decide whether the commit changes anything.
	EditingCell   *CellPos
	EditText      string
	originalValue string

	// ModifiedCells maps (original row, col) to the edited value. Rows
	// in the new-row buffer are edited in place and never appear here.
	ModifiedCells map[CellPos]string

	// RowsToDelete holds original row indices in mark order, without
	// duplicates.
	RowsToDelete []int

	// NewRows is the buffer of not-yet-persisted rows, each exactly
	// column-count wide.
	NewRows [][]string

	Filters      []filter.ColumnFilter
	SearchText   string
	SearchColumn string

	clipboard    string
	clipboardSet bool

	Pending PendingPrefix
	Count   int

	// PendingSave is raised by :w / ctrl+s; the host compiles and
	// executes, then calls ClearEdits on success.
	PendingSave bool

	cache filter.Cache
	regex filter.RegexEngine
}

// NewState returns an empty session with the default regex engine.
func NewState() *State {
	return &State{
		ModifiedCells: make(map[CellPos]string),
		regex:         filter.NewStdRegexEngine(),
	}
}

// SetRegexEngine injects a different regex capability; the filter guard
// limits apply regardless.
func (st *State) SetRegexEngine(re filter.RegexEngine) {
	st.regex = re
	st.cache.Invalidate()
}

// RegexEngine returns the injected regex capability.
func (st *State) RegexEngine() filter.RegexEngine { return st.regex }

// InvalidateFilterCache forces the next VisibleRows call to rescan.
// Hosts call it after mutating Filters or the search in place.
func (st *State) InvalidateFilterCache() { st.cache.Invalidate() }

// FilterRecomputes exposes the cache's rescan counter.
func (st *State) FilterRecomputes() int { return st.cache.Recomputes() }

// VisibleRows returns the original-row indices passing the current search
// and filters, through the cache.
func (st *State) VisibleRows(res *table.Result) []int {
	return filter.VisibleRows(res, st.SearchText, st.SearchColumn, st.Filters, st.regex, &st.cache)
}

// VisibleRowCount is the navigable row count: filtered original rows plus
// the new-row buffer.
func (st *State) VisibleRowCount(res *table.Result) int {
	return len(st.VisibleRows(res)) + len(st.NewRows)
}

// OriginalRow maps a visible row index to its original row index.
// ok is false for virtual rows (the new-row buffer).
func (st *State) OriginalRow(res *table.Result, visibleRow int) (int, bool) {
	visible := st.VisibleRows(res)
	if visibleRow >= 0 && visibleRow < len(visible) {
		return visible[visibleRow], true
	}
	return -1, false
}

// NewRowIndex maps a visible row index to a position in NewRows.
// ok is false for rows backed by the original result set.
func (st *State) NewRowIndex(res *table.Result, visibleRow int) (int, bool) {
	base := len(st.VisibleRows(res))
	idx := visibleRow - base
	if idx >= 0 && idx < len(st.NewRows) {
		return idx, true
	}
	return -1, false
}

// CellValue returns the currently displayed value at a visible position:
// the pending modification if one exists, the new-row buffer for virtual
// rows, the original cell otherwise.
func (st *State) CellValue(res *table.Result, visibleRow, col int) string {
	if idx, ok := st.NewRowIndex(res, visibleRow); ok {
		if col >= 0 && col < len(st.NewRows[idx]) {
			return st.NewRows[idx][col]
		}
		return ""
	}
	orig, ok := st.OriginalRow(res, visibleRow)
	if !ok {
		return ""
	}
	if v, ok := st.ModifiedCells[CellPos{Row: orig, Col: col}]; ok {
		return v
	}
	return res.Cell(orig, col)
}

// HasChanges reports whether any edit is pending.
func (st *State) HasChanges() bool {
	return len(st.ModifiedCells) > 0 || len(st.RowsToDelete) > 0 || len(st.NewRows) > 0
}

// ClearEdits drops the whole edit diff (modified cells, delete marks,
// new rows, any in-flight cell edit) but preserves cursor, mode and
// filters. Called after the executor confirms success or on explicit
// abandon.
func (st *State) ClearEdits() {
	st.EditingCell = nil
	st.EditText = ""
	st.originalValue = ""
	st.ModifiedCells = make(map[CellPos]string)
	st.RowsToDelete = nil
	st.NewRows = nil
	st.PendingSave = false
}

// Clipboard returns the single-slot clipboard.
func (st *State) Clipboard() (string, bool) {
	return st.clipboard, st.clipboardSet
}

// SetClipboard fills the single-slot clipboard.
func (st *State) SetClipboard(text string) {
	st.clipboard = text
	st.clipboardSet = true
}

// MarkRowDeleted records an original row index for deletion. Idempotent.
func (st *State) MarkRowDeleted(origRow int) bool {
	for _, r := range st.RowsToDelete {
		if r == origRow {
			return false
		}
	}
	st.RowsToDelete = append(st.RowsToDelete, origRow)
	return true
}

// UnmarkRowDeleted removes a delete mark. Reports whether one existed.
func (st *State) UnmarkRowDeleted(origRow int) bool {
	for i, r := range st.RowsToDelete {
		if r == origRow {
			st.RowsToDelete = append(st.RowsToDelete[:i], st.RowsToDelete[i+1:]...)
			return true
		}
	}
	return false
}

// IsRowDeleted reports whether an original row carries a delete mark.
func (st *State) IsRowDeleted(origRow int) bool {
	for _, r := range st.RowsToDelete {
		if r == origRow {
			return true
		}
	}
	return false
}

// Selection returns the normalized selection rectangle (top-left,
// bottom-right) while in Select mode. All selection math goes through
// here so min/max logic cannot diverge between callers.
func (st *State) Selection() (CellPos, CellPos, bool) {
	if st.SelectAnchor == nil {
		return CellPos{}, CellPos{}, false
	}
	a, c := *st.SelectAnchor, st.Cursor
	tl := CellPos{Row: min(a.Row, c.Row), Col: min(a.Col, c.Col)}
	br := CellPos{Row: max(a.Row, c.Row), Col: max(a.Col, c.Col)}
	return tl, br, true
}

// InSelection reports whether a visible cell falls inside the selection
// rectangle.
func (st *State) InSelection(row, col int) bool {
	tl, br, ok := st.Selection()
	if !ok {
		return false
	}
	return row >= tl.Row && row <= br.Row && col >= tl.Col && col <= br.Col
}

// takeCount consumes the numeric prefix, defaulting to 1.
func (st *State) takeCount() int {
	n := st.Count
	st.Count = 0
	if n <= 0 {
		return 1
	}
	return n
}

// ClampCursor re-establishes the bounds invariant after the host changes
// Filters or the search fields directly, outside the event stream.
func (st *State) ClampCursor(res *table.Result) {
	st.clampCursor(res)
}

// clampCursor enforces the bounds invariant after any mutation that can
// shrink the visible set: the cursor never points outside
// [0, visibleRows) x [0, cols).
func (st *State) clampCursor(res *table.Result) {
	maxRow := st.VisibleRowCount(res)
	if st.Cursor.Row >= maxRow {
		st.Cursor.Row = maxRow - 1
	}
	if st.Cursor.Row < 0 {
		st.Cursor.Row = 0
	}
	maxCol := len(res.Columns)
	if st.Cursor.Col >= maxCol {
		st.Cursor.Col = maxCol - 1
	}
	if st.Cursor.Col < 0 {
		st.Cursor.Col = 0
	}
}

// moveCursor applies a delta scaled by the pending count, clamped to the
// grid, and requests a scroll to the landing row.
func (st *State) moveCursor(res *table.Result, deltaRow, deltaCol int, a *Actions) {
	count := st.takeCount()
	st.Cursor.Row += deltaRow * count
	st.Cursor.Col += deltaCol * count
	st.clampCursor(res)
	a.scrollTo(st.Cursor.Row)
}
