package grid

import (
	"testing"

	"github.com/MCB-SMART-BOY/gridbase/internal/filter"
	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

func gridFixture() *table.Result {
	return &table.Result{
		Columns: []string{"id", "name", "city"},
		Rows: [][]string{
			{"1", "alice", "berlin"},
			{"2", "bob", "paris"},
			{"3", "carol", "berlin"},
			{"4", "dave", "london"},
			{"5", "eve", "paris"},
		},
	}
}

func press(t *testing.T, st *State, res *table.Result, keys ...KeyEvent) Actions {
	t.Helper()
	var a Actions
	for _, k := range keys {
		a = HandleEvent(st, res, k)
	}
	return a
}

func keys(names ...string) []KeyEvent {
	out := make([]KeyEvent, len(names))
	for i, n := range names {
		out[i] = Key(n)
	}
	return out
}

// ---------------------------------------------------------------------------
// Motions
// ---------------------------------------------------------------------------

func TestBasicMotion(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("j", "j", "l")...)
	if st.Cursor != (CellPos{Row: 2, Col: 1}) {
		t.Fatalf("cursor = %+v, want (2,1)", st.Cursor)
	}
	press(t, st, res, keys("k", "h")...)
	if st.Cursor != (CellPos{Row: 1, Col: 0}) {
		t.Fatalf("cursor = %+v, want (1,0)", st.Cursor)
	}
}

func TestCountMultipliesMotion(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("3", "j")...)
	if st.Cursor.Row != 3 {
		t.Fatalf("3j: row = %d, want 3", st.Cursor.Row)
	}
	if st.Count != 0 {
		t.Fatalf("count must be consumed after the motion, got %d", st.Count)
	}

	// Count larger than the grid clamps.
	press(t, st, res, keys("9", "9", "j")...)
	if st.Cursor.Row != 4 {
		t.Fatalf("99j: row = %d, want 4", st.Cursor.Row)
	}
}

func TestCountCapAndBackspace(t *testing.T) {
	res := gridFixture()
	st := NewState()

	for i := 0; i < 8; i++ {
		press(t, st, res, Key("9"))
	}
	if st.Count != maxCount {
		t.Fatalf("count = %d, want cap %d", st.Count, maxCount)
	}

	st.Count = 123
	press(t, st, res, Key("backspace"))
	if st.Count != 12 {
		t.Fatalf("backspace: count = %d, want 12", st.Count)
	}
}

func TestBareZeroGoesToLineStart(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor.Col = 2

	press(t, st, res, Key("0"))
	if st.Cursor.Col != 0 {
		t.Fatalf("bare 0: col = %d, want 0", st.Cursor.Col)
	}

	// With a pending count, 0 is a digit.
	press(t, st, res, keys("1", "0", "j")...)
	if st.Cursor.Row != 4 { // clamped from 10
		t.Fatalf("10j: row = %d, want 4", st.Cursor.Row)
	}
}

func TestJumps(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("G")...)
	if st.Cursor.Row != 4 {
		t.Fatalf("G: row = %d, want 4", st.Cursor.Row)
	}
	press(t, st, res, keys("g", "g")...)
	if st.Cursor != (CellPos{}) {
		t.Fatalf("gg: cursor = %+v, want (0,0)", st.Cursor)
	}
	press(t, st, res, keys("g", "e")...)
	if st.Cursor.Row != 4 {
		t.Fatalf("ge: row = %d, want 4", st.Cursor.Row)
	}
	press(t, st, res, keys("g", "l")...)
	if st.Cursor.Col != 2 {
		t.Fatalf("gl: col = %d, want 2", st.Cursor.Col)
	}
	press(t, st, res, keys("g", "h")...)
	if st.Cursor.Col != 0 {
		t.Fatalf("gh: col = %d, want 0", st.Cursor.Col)
	}
	press(t, st, res, keys("e")...)
	if st.Cursor.Col != 2 {
		t.Fatalf("e: col = %d, want 2", st.Cursor.Col)
	}
}

func TestCountedGotoRow(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("3", "G")...)
	if st.Cursor.Row != 2 {
		t.Fatalf("3G: row = %d, want 2", st.Cursor.Row)
	}
	if st.Count != 0 {
		t.Fatalf("3G must consume the count, got %d", st.Count)
	}

	press(t, st, res, keys("9", "9", "G")...)
	if st.Cursor.Row != 4 {
		t.Fatalf("99G: row = %d, want clamp to 4", st.Cursor.Row)
	}

	press(t, st, res, keys("g", "g")...)
	press(t, st, res, keys("G")...)
	if st.Cursor.Row != 4 {
		t.Fatalf("bare G: row = %d, want 4", st.Cursor.Row)
	}
}

func TestUnrecognizedPrefixPairAborts(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("g", "x")...)
	if st.Pending != PrefixNone {
		t.Fatalf("pending = %v, want cleared", st.Pending)
	}
	if st.Cursor != (CellPos{}) {
		t.Fatalf("aborted sequence must not move the cursor")
	}

	press(t, st, res, Key("g"))
	press(t, st, res, Key("esc"))
	if st.Pending != PrefixNone {
		t.Fatalf("esc must clear the pending prefix")
	}
}

func TestHalfPageMotions(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, Ctrl("d"))
	if st.Cursor.Row != 2 {
		t.Fatalf("ctrl+d: row = %d, want 2", st.Cursor.Row)
	}
	press(t, st, res, Ctrl("d"))
	if st.Cursor.Row != 4 {
		t.Fatalf("ctrl+d at bottom half: row = %d, want 4", st.Cursor.Row)
	}
	press(t, st, res, Ctrl("u"))
	if st.Cursor.Row != 2 {
		t.Fatalf("ctrl+u: row = %d, want 2", st.Cursor.Row)
	}
	press(t, st, res, Key("pgup"))
	if st.Cursor.Row != 0 {
		t.Fatalf("pgup: row = %d, want 0", st.Cursor.Row)
	}
	press(t, st, res, Key("pgdown"))
	if st.Cursor.Row != 2 {
		t.Fatalf("pgdown: row = %d, want 2", st.Cursor.Row)
	}
}

func TestScrollCommands(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor.Row = 2

	a := press(t, st, res, keys("z", "z")...)
	if a.ScrollRow != 2 || a.ScrollAlign != ScrollCenter {
		t.Fatalf("zz: scroll = (%d,%v), want (2,center)", a.ScrollRow, a.ScrollAlign)
	}
	a = press(t, st, res, keys("z", "t")...)
	if a.ScrollAlign != ScrollTop {
		t.Fatalf("zt: align = %v, want top", a.ScrollAlign)
	}
	a = press(t, st, res, keys("z", "b")...)
	if a.ScrollAlign != ScrollBottom {
		t.Fatalf("zb: align = %v, want bottom", a.ScrollAlign)
	}
	a = press(t, st, res, keys("z", "c")...)
	if a.ScrollAlign != ScrollCenter {
		t.Fatalf("zc: align = %v, want center", a.ScrollAlign)
	}
}

// ---------------------------------------------------------------------------
// Focus transfer at the edges
// ---------------------------------------------------------------------------

func TestEdgeFocusTransfers(t *testing.T) {
	res := gridFixture()

	tests := []struct {
		name   string
		cursor CellPos
		key    KeyEvent
		want   FocusTarget
	}{
		{"left at col 0", CellPos{Row: 1, Col: 0}, Key("h"), FocusSidebar},
		{"b at col 0", CellPos{Row: 1, Col: 0}, Key("b"), FocusSidebar},
		{"up at row 0", CellPos{Row: 0, Col: 1}, Key("k"), FocusQueryTabs},
		{"down at last row", CellPos{Row: 4, Col: 1}, Key("j"), FocusSQLEditor},
		{"w at last col", CellPos{Row: 1, Col: 2}, Key("w"), FocusQueryTabs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			st.Cursor = tt.cursor
			a := HandleEvent(st, res, tt.key)
			if a.Focus != tt.want {
				t.Fatalf("focus = %v, want %v", a.Focus, tt.want)
			}
			if st.Cursor != tt.cursor {
				t.Fatalf("edge transfer must not move the cursor")
			}
		})
	}
}

func TestRightMotionClampsWithoutTransfer(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor.Col = 2

	a := press(t, st, res, Key("l"))
	if a.Focus != FocusNone {
		t.Fatalf("l at last column must clamp, got focus %v", a.Focus)
	}
	if st.Cursor.Col != 2 {
		t.Fatalf("col = %d, want 2", st.Cursor.Col)
	}
}

// ---------------------------------------------------------------------------
// Bounds invariant
// ---------------------------------------------------------------------------

func TestBoundsInvariantUnderMotionSequences(t *testing.T) {
	res := gridFixture()
	st := NewState()

	sequence := []KeyEvent{
		Key("G"), Key("j"), Key("l"), Key("l"), Key("l"), Key("l"),
		Key("9"), Key("9"), Key("j"), Key("9"), Key("9"), Key("l"),
		Ctrl("d"), Ctrl("d"), Key("pgdown"), Key("g"), Key("e"),
		Key("k"), Key("h"), Key("g"), Key("g"), Ctrl("u"),
	}
	for i, ev := range sequence {
		HandleEvent(st, res, ev)
		if st.Cursor.Row < 0 || st.Cursor.Row >= st.VisibleRowCount(res) {
			t.Fatalf("event %d (%v): row %d out of bounds", i, ev, st.Cursor.Row)
		}
		if st.Cursor.Col < 0 || st.Cursor.Col >= len(res.Columns) {
			t.Fatalf("event %d (%v): col %d out of bounds", i, ev, st.Cursor.Col)
		}
	}
}

func TestEmptyResultSetForcesNormalAndNoOps(t *testing.T) {
	st := NewState()
	st.Mode = ModeSelect

	empty := &table.Result{}
	for _, ev := range []KeyEvent{Key("j"), Key("i"), Key("d"), Key("G"), Key("o")} {
		HandleEvent(st, empty, ev)
		if st.Mode != ModeNormal {
			t.Fatalf("mode = %v, want Normal on empty result", st.Mode)
		}
		if st.Cursor != (CellPos{}) {
			t.Fatalf("cursor moved on empty result: %+v", st.Cursor)
		}
	}
}

func TestCursorClampedWhenFilterShrinksVisibleSet(t *testing.T) {
	res := gridFixture()
	st := NewState()
	press(t, st, res, Key("G"))

	st.Filters = append(st.Filters, filter.ColumnFilter{
		Column: "city", Operator: filter.OpEquals, Value: "berlin", Enabled: true,
	})

	// The next event re-clamps against the shrunken visible set (2 rows).
	press(t, st, res, Key("l"))
	if st.Cursor.Row >= st.VisibleRowCount(res) {
		t.Fatalf("row = %d, visible = %d", st.Cursor.Row, st.VisibleRowCount(res))
	}
}

// ---------------------------------------------------------------------------
// Edit operations
// ---------------------------------------------------------------------------

func TestInsertCommitRecordsModification(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor = CellPos{Row: 0, Col: 1}

	press(t, st, res, Key("c"))
	if st.Mode != ModeInsert {
		t.Fatalf("mode = %v, want Insert", st.Mode)
	}
	press(t, st, res, keys("x", "y", "enter")...)
	if st.Mode != ModeNormal {
		t.Fatalf("mode = %v, want Normal after commit", st.Mode)
	}
	if got := st.ModifiedCells[CellPos{Row: 0, Col: 1}]; got != "xy" {
		t.Fatalf("modified cell = %q, want %q", got, "xy")
	}
}

func TestInsertKeepsExistingTextAndSkipsNoopCommit(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor = CellPos{Row: 1, Col: 1}

	press(t, st, res, Key("i"))
	if st.EditText != "bob" {
		t.Fatalf("edit text = %q, want %q", st.EditText, "bob")
	}
	press(t, st, res, Key("esc"))
	if len(st.ModifiedCells) != 0 {
		t.Fatalf("unchanged commit must not record a modification: %v", st.ModifiedCells)
	}
}

func TestInsertRestoringOriginalDropsModification(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor = CellPos{Row: 1, Col: 1}
	st.ModifiedCells[CellPos{Row: 1, Col: 1}] = "zed"

	// i loads the modified value; retype the original and commit.
	press(t, st, res, Key("i"))
	if st.EditText != "zed" {
		t.Fatalf("edit text = %q, want pending modification", st.EditText)
	}
	press(t, st, res, keys("backspace", "backspace", "backspace", "b", "o", "b", "enter")...)
	if _, ok := st.ModifiedCells[CellPos{Row: 1, Col: 1}]; ok {
		t.Fatalf("restoring the original value must drop the modification")
	}
}

func TestInsertSpaceAndBackspace(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("r", "a", "space", "b", "backspace", "enter")...)
	if got := st.ModifiedCells[CellPos{Row: 0, Col: 0}]; got != "a " {
		t.Fatalf("modified cell = %q, want %q", got, "a ")
	}
}

func TestDeleteMarkIdempotentAndUndelete(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor.Row = 2

	press(t, st, res, keys("d", "d")...)
	press(t, st, res, keys("d", "d")...)
	press(t, st, res, keys("space", "d")...)
	if len(st.RowsToDelete) != 1 || st.RowsToDelete[0] != 2 {
		t.Fatalf("rows to delete = %v, want [2]", st.RowsToDelete)
	}

	press(t, st, res, Key("U"))
	if len(st.RowsToDelete) != 0 {
		t.Fatalf("U: rows to delete = %v, want empty", st.RowsToDelete)
	}
}

func TestDeleteMarkMapsThroughFilter(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Filters = append(st.Filters, filter.ColumnFilter{
		Column: "city", Operator: filter.OpEquals, Value: "paris", Enabled: true,
	})

	// Visible rows are original indices 1 and 4; mark the second one.
	press(t, st, res, keys("j", "d", "d")...)
	if len(st.RowsToDelete) != 1 || st.RowsToDelete[0] != 4 {
		t.Fatalf("rows to delete = %v, want original index [4]", st.RowsToDelete)
	}
}

func TestRevertUnmodifiedCellIsNoop(t *testing.T) {
	res := gridFixture()
	st := NewState()

	a := press(t, st, res, Key("u"))
	if a.Message != "" {
		t.Fatalf("revert of unmodified cell must be silent, got %q", a.Message)
	}

	st.ModifiedCells[CellPos{Row: 0, Col: 0}] = "x"
	press(t, st, res, Key("u"))
	if len(st.ModifiedCells) != 0 {
		t.Fatalf("u must remove the modification")
	}
}

func TestNewRowsAndCursorPlacement(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, Key("o"))
	if len(st.NewRows) != 1 {
		t.Fatalf("new rows = %d, want 1", len(st.NewRows))
	}
	if st.Cursor != (CellPos{Row: 5, Col: 0}) {
		t.Fatalf("o: cursor = %+v, want (5,0)", st.Cursor)
	}

	press(t, st, res, Key("O"))
	if len(st.NewRows) != 2 {
		t.Fatalf("new rows = %d, want 2", len(st.NewRows))
	}
	// Prepended row sits at the first virtual index.
	if st.Cursor != (CellPos{Row: 5, Col: 0}) {
		t.Fatalf("O: cursor = %+v, want (5,0)", st.Cursor)
	}
}

func TestEditingVirtualRowWritesBuffer(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, Key("o"))
	press(t, st, res, keys("i", "9", "enter")...)
	if st.NewRows[0][0] != "9" {
		t.Fatalf("new row cell = %q, want %q", st.NewRows[0][0], "9")
	}
	if len(st.ModifiedCells) != 0 {
		t.Fatalf("virtual-row edits must not touch modified cells")
	}
}

func TestDeleteNewRowDropsItFromBuffer(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, Key("o"))
	press(t, st, res, keys("d", "d")...)
	if len(st.NewRows) != 0 {
		t.Fatalf("dd on a virtual row must drop it, got %v", st.NewRows)
	}
	if len(st.RowsToDelete) != 0 {
		t.Fatalf("virtual rows never reach rows-to-delete")
	}
}

func TestClipboardCopyAndPaste(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor = CellPos{Row: 1, Col: 0}

	press(t, st, res, keys("y", "y")...)
	got, ok := st.Clipboard()
	if !ok || got != "2\tbob\tparis" {
		t.Fatalf("clipboard = %q,%v", got, ok)
	}

	st.Cursor = CellPos{Row: 0, Col: 2}
	press(t, st, res, Key("p"))
	if st.ModifiedCells[CellPos{Row: 0, Col: 2}] != "2\tbob\tparis" {
		t.Fatalf("paste must write the clipboard into the cell")
	}
}

func TestPasteWithoutClipboardIsNoop(t *testing.T) {
	res := gridFixture()
	st := NewState()
	press(t, st, res, Key("p"))
	if len(st.ModifiedCells) != 0 {
		t.Fatalf("paste with empty clipboard must be a no-op")
	}
}

// ---------------------------------------------------------------------------
// Select mode
// ---------------------------------------------------------------------------

func TestSelectRangeClear(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("v", "j", "l", "d")...)
	if st.Mode != ModeNormal || st.SelectAnchor != nil {
		t.Fatalf("d must return to Normal and drop the anchor")
	}
	want := []CellPos{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if len(st.ModifiedCells) != len(want) {
		t.Fatalf("modified cells = %v, want 4 cleared cells", st.ModifiedCells)
	}
	for _, pos := range want {
		if v, ok := st.ModifiedCells[pos]; !ok || v != "" {
			t.Fatalf("cell %+v = %q,%v, want cleared", pos, v, ok)
		}
	}
}

func TestSelectYankBlock(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor = CellPos{Row: 0, Col: 1}

	press(t, st, res, keys("v", "j", "l", "y")...)
	got, ok := st.Clipboard()
	want := "alice\tberlin\nbob\tparis"
	if !ok || got != want {
		t.Fatalf("clipboard = %q, want %q", got, want)
	}
	if st.Mode != ModeNormal {
		t.Fatalf("y must return to Normal")
	}
}

func TestSelectChangeEntersInsert(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("v", "l", "c")...)
	if st.Mode != ModeInsert {
		t.Fatalf("mode = %v, want Insert after c", st.Mode)
	}
	if st.ModifiedCells[CellPos{0, 0}] != "" || st.ModifiedCells[CellPos{0, 1}] != "" {
		t.Fatalf("c must clear the selected range first")
	}
}

func TestSelectRowAndSelectAll(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor = CellPos{Row: 2, Col: 1}

	press(t, st, res, Key("x"))
	tl, br, ok := st.Selection()
	if !ok || tl != (CellPos{Row: 2, Col: 0}) || br != (CellPos{Row: 2, Col: 2}) {
		t.Fatalf("x selection = %+v..%+v,%v", tl, br, ok)
	}
	press(t, st, res, Key("esc"))

	press(t, st, res, Key("%"))
	tl, br, ok = st.Selection()
	if !ok || tl != (CellPos{}) || br != (CellPos{Row: 4, Col: 2}) {
		t.Fatalf("%% selection = %+v..%+v,%v", tl, br, ok)
	}
}

func TestSelectCollapseAndExtendRow(t *testing.T) {
	res := gridFixture()
	st := NewState()

	press(t, st, res, keys("v", "j", "j", "l")...)
	press(t, st, res, Key(";"))
	tl, br, _ := st.Selection()
	if tl != br || tl != st.Cursor {
		t.Fatalf("; must collapse the selection to the cursor")
	}

	press(t, st, res, Key("x"))
	tl, br, _ = st.Selection()
	if tl.Col != 0 || br.Col != 2 {
		t.Fatalf("x in Select must extend to the full row: %+v..%+v", tl, br)
	}
	press(t, st, res, Key("esc"))
	if st.Mode != ModeNormal || st.SelectAnchor != nil {
		t.Fatalf("esc must leave Select mode")
	}
}

func TestSelectionBoundsWithReversedAnchor(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor = CellPos{Row: 3, Col: 2}

	// Move up-left from the anchor; rectangle must normalize.
	press(t, st, res, keys("v", "k", "h")...)
	tl, br, ok := st.Selection()
	if !ok || tl != (CellPos{Row: 2, Col: 1}) || br != (CellPos{Row: 3, Col: 2}) {
		t.Fatalf("selection = %+v..%+v, want normalized rectangle", tl, br)
	}
	if !st.InSelection(2, 2) || st.InSelection(1, 1) {
		t.Fatalf("InSelection disagrees with Selection")
	}
}

// ---------------------------------------------------------------------------
// Save / discard / filters
// ---------------------------------------------------------------------------

func TestSaveRequestedOnlyWithChanges(t *testing.T) {
	res := gridFixture()
	st := NewState()

	a := press(t, st, res, Ctrl("s"))
	if a.SaveRequested || a.Message != "Nothing to save" {
		t.Fatalf("save without changes: %+v", a)
	}

	st.ModifiedCells[CellPos{0, 0}] = "x"
	a = press(t, st, res, keys(":", "w")...)
	if !a.SaveRequested || !st.PendingSave {
		t.Fatalf(":w with changes must request a save: %+v", a)
	}
}

func TestDiscardEdits(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.ModifiedCells[CellPos{0, 0}] = "x"
	st.MarkRowDeleted(1)
	st.NewRows = append(st.NewRows, make([]string, 3))

	press(t, st, res, keys(":", "q")...)
	if st.HasChanges() {
		t.Fatalf(":q must clear all edits")
	}

	st.ModifiedCells[CellPos{0, 0}] = "x"
	press(t, st, res, Key("q"))
	if st.HasChanges() {
		t.Fatalf("q must clear all edits")
	}
}

func TestClearEditsPreservesCursorModeFilters(t *testing.T) {
	st := NewState()
	st.Cursor = CellPos{Row: 2, Col: 1}
	st.Filters = append(st.Filters, filter.NewColumnFilter("city"))
	st.ModifiedCells[CellPos{0, 0}] = "x"

	st.ClearEdits()
	if st.Cursor != (CellPos{Row: 2, Col: 1}) || len(st.Filters) != 1 {
		t.Fatalf("ClearEdits must preserve cursor and filters")
	}
	if st.HasChanges() {
		t.Fatalf("ClearEdits must drop the diff")
	}
}

func TestQuickFilterAddsOncePerColumn(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Cursor.Col = 1

	press(t, st, res, Key("f"))
	press(t, st, res, Key("f"))
	if len(st.Filters) != 1 || st.Filters[0].Column != "name" {
		t.Fatalf("filters = %+v, want one filter on name", st.Filters)
	}
}

func TestSlashOpensFilterPanel(t *testing.T) {
	res := gridFixture()
	st := NewState()
	a := press(t, st, res, Key("/"))
	if !a.OpenFilterPanel {
		t.Fatalf("/ must request the filter panel")
	}
}

func TestEscapePriorityCountThenFilters(t *testing.T) {
	res := gridFixture()
	st := NewState()
	st.Filters = append(st.Filters, filter.NewColumnFilter("city"))
	press(t, st, res, Key("5"))

	press(t, st, res, Key("esc"))
	if st.Count != 0 {
		t.Fatalf("first esc must clear the count")
	}
	if len(st.Filters) != 1 {
		t.Fatalf("first esc must not clear filters yet")
	}

	press(t, st, res, Key("esc"))
	if len(st.Filters) != 0 {
		t.Fatalf("second esc must clear filters")
	}
}

func TestRefreshRequested(t *testing.T) {
	res := gridFixture()
	st := NewState()
	a := press(t, st, res, Ctrl("r"))
	if !a.Refresh {
		t.Fatalf("ctrl+r must request a refresh")
	}
}
