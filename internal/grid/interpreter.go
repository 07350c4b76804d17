package grid

import (
	"fmt"

	"github.com/MCB-SMART-BOY/gridbase/internal/filter"
	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// HandleEvent processes one key event against the session state and
// returns the side effects the host should perform. The state is mutated
// in place; the result set is never touched.
func HandleEvent(st *State, res *table.Result, ev KeyEvent) Actions {
	a := newActions()

	if res == nil || len(res.Columns) == 0 {
		// Nothing to edit. Mode is forced back to Normal so stale
		// Insert/Select state cannot survive a result-set swap.
		st.Mode = ModeNormal
		st.SelectAnchor = nil
		st.EditingCell = nil
		return a
	}

	if st.Mode == ModeInsert {
		handleInsert(st, res, ev, &a)
		return a
	}

	// Numeric repeat prefix, shared by Normal and Select. A bare 0 with
	// no pending count is "go to line start", not a digit.
	if ev.isDigit() && st.Pending == PrefixNone {
		d := int(ev.Key[0] - '0')
		if d == 0 && st.Count == 0 {
			st.Cursor.Col = 0
			return a
		}
		st.Count = st.Count*10 + d
		if st.Count > maxCount {
			st.Count = maxCount
		}
		return a
	}
	if ev.Key == "backspace" && !ev.Ctrl && st.Count > 0 {
		st.Count /= 10
		return a
	}

	if st.Mode == ModeSelect {
		handleSelect(st, res, ev, &a)
	} else {
		handleNormal(st, res, ev, &a)
	}
	st.clampCursor(res)
	return a
}

func handleNormal(st *State, res *table.Result, ev KeyEvent, a *Actions) {
	if st.Pending != PrefixNone {
		resolvePending(st, res, ev, a)
		return
	}

	maxRow := st.VisibleRowCount(res)
	maxCol := len(res.Columns)

	if ev.Ctrl {
		switch ev.Key {
		case "u":
			halfPage(st, res, -1, a)
		case "d":
			halfPage(st, res, 1, a)
		case "s":
			requestSave(st, a)
		case "r":
			a.Refresh = true
			a.Message = "Refreshing (ctrl+r)"
		}
		return
	}

	switch ev.Key {
	// Motions. Left at column 0, up at row 0 and down at the last row
	// transfer focus to the adjacent panel instead of clamping.
	case "h", "left":
		if st.Cursor.Col == 0 {
			st.Count = 0
			a.Focus = FocusSidebar
		} else {
			st.moveCursor(res, 0, -1, a)
		}
	case "j", "down":
		if maxRow == 0 || st.Cursor.Row >= maxRow-1 {
			st.Count = 0
			a.Focus = FocusSQLEditor
		} else {
			st.moveCursor(res, 1, 0, a)
		}
	case "k", "up":
		if st.Cursor.Row == 0 {
			st.Count = 0
			a.Focus = FocusQueryTabs
		} else {
			st.moveCursor(res, -1, 0, a)
		}
	case "l", "right":
		st.moveCursor(res, 0, 1, a)
	case "b":
		if st.Cursor.Col == 0 {
			st.Count = 0
			a.Focus = FocusSidebar
		} else {
			st.moveCursor(res, 0, -1, a)
		}
	case "w":
		if st.Cursor.Col >= maxCol-1 {
			st.Count = 0
			a.Focus = FocusQueryTabs
		} else {
			st.moveCursor(res, 0, 1, a)
		}
	case "e", "end":
		st.Cursor.Col = maxCol - 1
		st.Count = 0
	case "home":
		st.Cursor.Col = 0
		st.Count = 0
	case "pgup":
		halfPage(st, res, -1, a)
	case "pgdown":
		halfPage(st, res, 1, a)

	// Prefixes.
	case "g":
		st.Pending = PrefixG
	case "z":
		st.Pending = PrefixZ
	case "space":
		st.Pending = PrefixSpace
	case ":":
		st.Pending = PrefixColon
	case "d":
		st.Pending = PrefixD
	case "y":
		st.Pending = PrefixY

	case "G":
		gotoRow(st, res, a)

	// Mode switches.
	case "i", "a":
		enterInsert(st, res, insertKeep, a)
	case "c":
		enterInsert(st, res, insertClear, a)
	case "r":
		enterInsert(st, res, insertReplace, a)
	case "v":
		if maxRow > 0 {
			anchor := st.Cursor
			st.SelectAnchor = &anchor
			st.Mode = ModeSelect
		}
	case "x":
		if maxRow > 0 {
			selectRow(st, maxCol)
			a.Message = "Selected row (x)"
		}
	case "%":
		if maxRow > 0 {
			anchor := CellPos{}
			st.SelectAnchor = &anchor
			st.Cursor = CellPos{Row: maxRow - 1, Col: maxCol - 1}
			st.Mode = ModeSelect
			a.Message = "Selected all (%)"
		}

	// Edit operations.
	case "p":
		paste(st, res, a)
	case "u":
		revertCell(st, res, a)
	case "U":
		undeleteRow(st, res, a)
	case "q":
		discardEdits(st, a)

	// Filters.
	case "/":
		a.OpenFilterPanel = true
	case "f":
		quickFilterColumn(st, res, a)

	// New rows.
	case "o":
		appendNewRow(st, res, false, a)
	case "O":
		appendNewRow(st, res, true, a)

	case "esc":
		if st.Count > 0 {
			st.Count = 0
		} else if len(st.Filters) > 0 {
			st.Filters = nil
			a.Message = "Cleared filters (esc)"
		}
	}
}

// resolvePending consumes the second key of a two-key command. Any
// unrecognized pair aborts the sequence; either way the prefix and the
// count are gone afterwards.
func resolvePending(st *State, res *table.Result, ev KeyEvent, a *Actions) {
	pending := st.Pending
	st.Pending = PrefixNone

	if ev.Key == "esc" || ev.Ctrl {
		st.Count = 0
		return
	}

	switch pending {
	case PrefixG:
		switch ev.Key {
		case "g":
			st.Cursor = CellPos{}
			st.Count = 0
			a.scrollTo(0)
		case "e":
			gotoFileEnd(st, res, a)
		case "h":
			st.Cursor.Col = 0
			st.Count = 0
		case "l":
			st.Cursor.Col = len(res.Columns) - 1
			st.Count = 0
		default:
			st.Count = 0
		}
	case PrefixZ:
		switch ev.Key {
		case "z", "c":
			a.scrollTo(st.Cursor.Row)
			a.ScrollAlign = ScrollCenter
		case "t":
			a.scrollTo(st.Cursor.Row)
			a.ScrollAlign = ScrollTop
		case "b":
			a.scrollTo(st.Cursor.Row)
			a.ScrollAlign = ScrollBottom
		default:
			st.Count = 0
		}
	case PrefixSpace:
		if ev.Key == "d" {
			markCursorRowDeleted(st, res, "space d", a)
		} else {
			st.Count = 0
		}
	case PrefixColon:
		switch ev.Key {
		case "w":
			requestSave(st, a)
		case "q":
			discardEdits(st, a)
		default:
			st.Count = 0
		}
	case PrefixD:
		if ev.Key == "d" {
			markCursorRowDeleted(st, res, "dd", a)
		} else {
			st.Count = 0
		}
	case PrefixY:
		if ev.Key == "y" {
			copyCursorRow(st, res, a)
		} else {
			st.Count = 0
		}
	}
}

type insertKind int

const (
	insertKeep    insertKind = iota // i/a: edit the current value
	insertClear                     // c: clear text, keep original for the diff
	insertReplace                   // r: clear text and original
)

func enterInsert(st *State, res *table.Result, kind insertKind, a *Actions) {
	if st.VisibleRowCount(res) == 0 {
		return
	}
	cell := st.Cursor
	st.Mode = ModeInsert
	st.EditingCell = &cell
	switch kind {
	case insertKeep:
		st.EditText = st.CellValue(res, cell.Row, cell.Col)
		st.originalValue = originalCellValue(st, res, cell)
	case insertClear:
		st.EditText = ""
		st.originalValue = originalCellValue(st, res, cell)
		a.Message = "Change cell (c)"
	case insertReplace:
		st.EditText = ""
		st.originalValue = ""
	}
}

// originalCellValue is the pre-edit value the commit diff compares
// against: the result-set cell for original rows, the current buffer
// value for virtual rows.
func originalCellValue(st *State, res *table.Result, cell CellPos) string {
	if orig, ok := st.OriginalRow(res, cell.Row); ok {
		return res.Cell(orig, cell.Col)
	}
	if idx, ok := st.NewRowIndex(res, cell.Row); ok && cell.Col < len(st.NewRows[idx]) {
		return st.NewRows[idx][cell.Col]
	}
	return ""
}

func handleInsert(st *State, res *table.Result, ev KeyEvent, a *Actions) {
	switch {
	case ev.Key == "esc" || ev.Key == "enter":
		commitEdit(st, res, a)
	case ev.Key == "backspace" && !ev.Ctrl:
		runes := []rune(st.EditText)
		if len(runes) > 0 {
			st.EditText = string(runes[:len(runes)-1])
		}
	default:
		if r, ok := ev.printableRune(); ok {
			st.EditText += string(r)
		}
	}
}

// commitEdit leaves Insert mode, recording the typed text only when it
// differs from the original value. Restoring a cell to its original text
// also drops any earlier modification of that cell.
func commitEdit(st *State, res *table.Result, a *Actions) {
	cell := st.EditingCell
	st.Mode = ModeNormal
	st.EditingCell = nil
	if cell == nil {
		return
	}
	defer func() {
		st.EditText = ""
		st.originalValue = ""
	}()

	if idx, ok := st.NewRowIndex(res, cell.Row); ok {
		if cell.Col < len(st.NewRows[idx]) {
			st.NewRows[idx][cell.Col] = st.EditText
		}
		return
	}
	orig, ok := st.OriginalRow(res, cell.Row)
	if !ok {
		return
	}
	key := CellPos{Row: orig, Col: cell.Col}
	if st.EditText != st.originalValue {
		st.ModifiedCells[key] = st.EditText
		a.Message = "Cell modified"
	} else {
		delete(st.ModifiedCells, key)
	}
}

func halfPage(st *State, res *table.Result, direction int, a *Actions) {
	maxRow := st.VisibleRowCount(res)
	if maxRow == 0 {
		st.Count = 0
		return
	}
	half := maxRow / 2
	if half < 1 {
		half = 1
	}
	delta := half * st.takeCount()
	st.Cursor.Row += direction * delta
	st.clampCursor(res)
	a.scrollTo(st.Cursor.Row)
}

// gotoRow jumps to the 1-based row named by the count prefix, clamped to
// the visible set. Without a count it falls through to the last row.
func gotoRow(st *State, res *table.Result, a *Actions) {
	if st.Count > 0 {
		st.Cursor.Row = st.takeCount() - 1
		st.clampCursor(res)
		a.scrollTo(st.Cursor.Row)
		return
	}
	gotoFileEnd(st, res, a)
}

func gotoFileEnd(st *State, res *table.Result, a *Actions) {
	maxRow := st.VisibleRowCount(res)
	if maxRow > 0 {
		st.Cursor.Row = maxRow - 1
	}
	st.Count = 0
	a.scrollTo(st.Cursor.Row)
}

func selectRow(st *State, maxCol int) {
	anchor := CellPos{Row: st.Cursor.Row, Col: 0}
	st.SelectAnchor = &anchor
	st.Cursor.Col = maxCol - 1
	st.Mode = ModeSelect
}

func markCursorRowDeleted(st *State, res *table.Result, hint string, a *Actions) {
	st.Count = 0
	if orig, ok := st.OriginalRow(res, st.Cursor.Row); ok {
		if st.MarkRowDeleted(orig) {
			a.Message = fmt.Sprintf("Marked row %d for deletion (%s)", st.Cursor.Row+1, hint)
		}
		return
	}
	// A virtual row was never persisted; deleting it just drops it from
	// the buffer.
	if idx, ok := st.NewRowIndex(res, st.Cursor.Row); ok {
		st.NewRows = append(st.NewRows[:idx], st.NewRows[idx+1:]...)
		st.clampCursor(res)
		a.Message = fmt.Sprintf("Removed new row (%s)", hint)
	}
}

func copyCursorRow(st *State, res *table.Result, a *Actions) {
	st.Count = 0
	maxRow := st.VisibleRowCount(res)
	if maxRow == 0 {
		return
	}
	row := make([]string, len(res.Columns))
	for col := range res.Columns {
		row[col] = st.CellValue(res, st.Cursor.Row, col)
	}
	st.SetClipboard(joinTSV([][]string{row}))
	a.Message = fmt.Sprintf("Copied row %d (yy)", st.Cursor.Row+1)
}

func paste(st *State, res *table.Result, a *Actions) {
	text, ok := st.Clipboard()
	if !ok || st.VisibleRowCount(res) == 0 {
		return
	}
	if idx, vok := st.NewRowIndex(res, st.Cursor.Row); vok {
		if st.Cursor.Col < len(st.NewRows[idx]) {
			st.NewRows[idx][st.Cursor.Col] = text
			a.Message = "Pasted (p)"
		}
		return
	}
	if orig, ook := st.OriginalRow(res, st.Cursor.Row); ook {
		st.ModifiedCells[CellPos{Row: orig, Col: st.Cursor.Col}] = text
		a.Message = "Pasted (p)"
	}
}

func revertCell(st *State, res *table.Result, a *Actions) {
	orig, ok := st.OriginalRow(res, st.Cursor.Row)
	if !ok {
		return
	}
	if _, modified := st.ModifiedCells[CellPos{Row: orig, Col: st.Cursor.Col}]; modified {
		delete(st.ModifiedCells, CellPos{Row: orig, Col: st.Cursor.Col})
		a.Message = "Reverted cell (u)"
	}
}

func undeleteRow(st *State, res *table.Result, a *Actions) {
	orig, ok := st.OriginalRow(res, st.Cursor.Row)
	if !ok {
		return
	}
	if st.UnmarkRowDeleted(orig) {
		a.Message = "Removed delete mark (U)"
	}
}

func discardEdits(st *State, a *Actions) {
	st.Count = 0
	if st.HasChanges() {
		st.ClearEdits()
		a.Message = "Discarded all edits (q)"
	}
}

func requestSave(st *State, a *Actions) {
	st.Count = 0
	if !st.HasChanges() {
		a.Message = "Nothing to save"
		return
	}
	st.PendingSave = true
	a.SaveRequested = true
	a.Message = "Saving edits (:w)"
}

func quickFilterColumn(st *State, res *table.Result, a *Actions) {
	if st.Cursor.Col < 0 || st.Cursor.Col >= len(res.Columns) {
		return
	}
	colName := res.Columns[st.Cursor.Col]
	for _, f := range st.Filters {
		if f.Column == colName {
			return
		}
	}
	st.Filters = append(st.Filters, filter.NewColumnFilter(colName))
	a.Message = fmt.Sprintf("Added filter on %s (f)", colName)
}

func appendNewRow(st *State, res *table.Result, prepend bool, a *Actions) {
	blank := make([]string, len(res.Columns))
	base := len(st.VisibleRows(res))
	var idx int
	if prepend {
		st.NewRows = append([][]string{blank}, st.NewRows...)
		idx = 0
	} else {
		st.NewRows = append(st.NewRows, blank)
		idx = len(st.NewRows) - 1
	}
	st.Cursor = CellPos{Row: base + idx, Col: 0}
	a.scrollTo(st.Cursor.Row)
	if prepend {
		a.Message = "Added new row (O)"
	} else {
		a.Message = "Added new row (o)"
	}
}
