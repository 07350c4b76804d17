package grid

import (
	"fmt"
	"strings"

	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// handleSelect extends the anchored rectangle with motions and applies
// range operations. Every operation returns to Normal mode.
func handleSelect(st *State, res *table.Result, ev KeyEvent, a *Actions) {
	if ev.Ctrl {
		switch ev.Key {
		case "u":
			halfPage(st, res, -1, a)
		case "d":
			halfPage(st, res, 1, a)
		}
		return
	}

	maxCol := len(res.Columns)

	switch ev.Key {
	case "h", "left", "b":
		st.moveCursor(res, 0, -1, a)
	case "j", "down":
		st.moveCursor(res, 1, 0, a)
	case "k", "up":
		st.moveCursor(res, -1, 0, a)
	case "l", "right", "w":
		st.moveCursor(res, 0, 1, a)
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
	case "G":
		gotoFileEnd(st, res, a)

	case "x":
		// Extend the selection to full rows.
		if st.SelectAnchor != nil {
			st.SelectAnchor.Col = 0
		}
		st.Cursor.Col = maxCol - 1

	case ";":
		// Collapse the selection to the cursor.
		anchor := st.Cursor
		st.SelectAnchor = &anchor

	case "d":
		n := clearSelection(st, res)
		leaveSelect(st)
		a.Message = fmt.Sprintf("Cleared %d cells (d)", n)

	case "c":
		clearSelection(st, res)
		leaveSelect(st)
		enterInsert(st, res, insertReplace, a)

	case "y":
		if block, ok := selectionBlock(st, res); ok {
			st.SetClipboard(block)
			a.Message = "Copied selection (y)"
		}
		leaveSelect(st)

	case "esc":
		leaveSelect(st)
	}
}

func leaveSelect(st *State) {
	st.Mode = ModeNormal
	st.SelectAnchor = nil
	st.Count = 0
}

// clearSelection records an empty-string edit for every cell in the
// rectangle and returns how many cells were touched. Cells on virtual
// rows are cleared in the buffer directly.
func clearSelection(st *State, res *table.Result) int {
	tl, br, ok := st.Selection()
	if !ok {
		return 0
	}
	n := 0
	for row := tl.Row; row <= br.Row; row++ {
		for col := tl.Col; col <= br.Col; col++ {
			if idx, vok := st.NewRowIndex(res, row); vok {
				if col < len(st.NewRows[idx]) {
					st.NewRows[idx][col] = ""
					n++
				}
				continue
			}
			if orig, ook := st.OriginalRow(res, row); ook {
				st.ModifiedCells[CellPos{Row: orig, Col: col}] = ""
				n++
			}
		}
	}
	return n
}

// selectionBlock joins the rectangle into a tab/newline block of the
// currently displayed values.
func selectionBlock(st *State, res *table.Result) (string, bool) {
	tl, br, ok := st.Selection()
	if !ok {
		return "", false
	}
	rows := make([][]string, 0, br.Row-tl.Row+1)
	for row := tl.Row; row <= br.Row; row++ {
		if row >= st.VisibleRowCount(res) {
			break
		}
		cells := make([]string, 0, br.Col-tl.Col+1)
		for col := tl.Col; col <= br.Col; col++ {
			cells = append(cells, st.CellValue(res, row, col))
		}
		rows = append(rows, cells)
	}
	return joinTSV(rows), true
}

func joinTSV(rows [][]string) string {
	lines := make([]string, len(rows))
	for i, cells := range rows {
		lines[i] = strings.Join(cells, "\t")
	}
	return strings.Join(lines, "\n")
}
