package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MCB-SMART-BOY/gridbase/internal/filter"
	"github.com/MCB-SMART-BOY/gridbase/internal/grid"
	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("57")).Foreground(lipgloss.Color("230"))
	modifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	deletedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Strikethrough(true)
	newRowStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	nullStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
	statusStyle   = lipgloss.NewStyle().Faint(true)

	badgeNormal = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("25")).Foreground(lipgloss.Color("231")).Padding(0, 1)
	badgeInsert = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("28")).Foreground(lipgloss.Color("231")).Padding(0, 1)
	badgeSelect = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("127")).Foreground(lipgloss.Color("231")).Padding(0, 1)
)

func (a *App) View() string {
	if a.res == nil {
		return titleStyle.Render("gridbase") + "\n\nLoading...\n"
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n")
	if a.sidebarOpen {
		b.WriteString(a.renderSidebar())
	} else {
		b.WriteString(a.renderGrid())
	}
	if bar := a.renderFilterBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}
	if a.filterOpen {
		b.WriteString("/ " + a.filterInput.View())
		b.WriteString("\n")
	}
	if a.searchOpen {
		b.WriteString("search: " + a.searchInput.View())
		b.WriteString("\n")
	}
	if a.confirm != nil {
		b.WriteString(deletedStyle.Render(fmt.Sprintf("Batch deletes rows. Apply %d statements? [y/n]", len(a.confirm.Statements))))
		b.WriteString("\n")
	}
	b.WriteString(a.renderStatus())
	return b.String()
}

func (a *App) renderHeader() string {
	title := titleStyle.Render(a.tableName)
	visible := a.state.VisibleRowCount(a.res)
	counts := fmt.Sprintf("%d/%d rows", visible, len(a.res.Rows)+len(a.state.NewRows))
	if a.state.SearchText != "" {
		matched, total := filter.CountSearchMatches(a.res, a.state.SearchText, a.state.SearchColumn)
		counts += fmt.Sprintf("  search %d/%d", matched, total)
	}
	if a.state.HasChanges() {
		counts += fmt.Sprintf("  ~%d +%d -%d",
			len(a.state.ModifiedCells), len(a.state.NewRows), len(a.state.RowsToDelete))
	}
	return fmt.Sprintf("%s  %s", title, counts)
}

func (a *App) renderGrid() string {
	widths := a.columnWidths()
	lastCol := min(len(a.res.Columns), a.offsetCol+a.visibleColumns())

	var b strings.Builder
	b.WriteString("     ")
	for col := a.offsetCol; col < lastCol; col++ {
		b.WriteString(headerStyle.Render(pad(a.res.Columns[col], widths[col])))
		b.WriteString("  ")
	}
	b.WriteString("\n")

	total := a.state.VisibleRowCount(a.res)
	lastRow := min(total, a.offsetRow+a.gridHeight())
	for row := a.offsetRow; row < lastRow; row++ {
		b.WriteString(a.renderRow(row, widths, lastCol))
		b.WriteString("\n")
	}
	if total == 0 {
		b.WriteString(statusStyle.Render("  (no rows match)"))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderRow(row int, widths []int, lastCol int) string {
	var b strings.Builder

	marker := " "
	orig, isOriginal := a.state.OriginalRow(a.res, row)
	rowDeleted := isOriginal && a.state.IsRowDeleted(orig)
	_, isNew := a.state.NewRowIndex(a.res, row)
	switch {
	case rowDeleted:
		marker = deletedStyle.Render("D")
	case isNew:
		marker = newRowStyle.Render("+")
	}
	b.WriteString(fmt.Sprintf("%3d%s ", row+1, marker))

	for col := a.offsetCol; col < lastCol; col++ {
		b.WriteString(a.renderCell(row, col, orig, isOriginal, rowDeleted, isNew, widths[col]))
		b.WriteString("  ")
	}
	return b.String()
}

func (a *App) renderCell(row, col, orig int, isOriginal, rowDeleted, isNew bool, width int) string {
	val := a.state.CellValue(a.res, row, col)
	editing := a.state.Mode == grid.ModeInsert &&
		a.state.EditingCell != nil && *a.state.EditingCell == (grid.CellPos{Row: row, Col: col})
	if editing {
		val = a.state.EditText + "█"
	}
	cell := pad(val, width)

	cur := a.state.Cursor
	switch {
	case editing:
		return cursorStyle.Render(cell)
	case cur.Row == row && cur.Col == col:
		return cursorStyle.Render(cell)
	case a.state.Mode == grid.ModeSelect && a.state.InSelection(row, col):
		return selectedStyle.Render(cell)
	case rowDeleted:
		return deletedStyle.Render(cell)
	case isNew:
		return newRowStyle.Render(cell)
	case isOriginal && a.isModified(orig, col):
		return modifiedStyle.Render(cell)
	case table.IsNull(val):
		return nullStyle.Render(cell)
	default:
		return cell
	}
}

func (a *App) isModified(origRow, col int) bool {
	_, ok := a.state.ModifiedCells[grid.CellPos{Row: origRow, Col: col}]
	return ok
}

func (a *App) renderSidebar() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Tables"))
	b.WriteString("\n")
	for i, name := range a.tables {
		line := "  " + name
		if i == a.sidebarCursor {
			line = cursorStyle.Render("> " + name)
		}
		if name == a.tableName {
			line += " *"
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render("[enter] open  [esc] back"))
	b.WriteString("\n")
	return b.String()
}

func (a *App) renderFilterBar() string {
	if len(a.state.Filters) == 0 {
		return ""
	}
	parts := make([]string, 0, len(a.state.Filters))
	for i, f := range a.state.Filters {
		part := fmt.Sprintf("%s %s %s", f.Column, f.Operator.Symbol(), f.Value)
		if f.Value2 != "" {
			part += " " + f.Value2
		}
		if !f.Enabled {
			part = statusStyle.Render(part)
		}
		if i < len(a.state.Filters)-1 {
			part += " " + f.Logic.String()
		}
		parts = append(parts, part)
	}
	return "filters: " + strings.Join(parts, " ")
}

func (a *App) renderStatus() string {
	badge := badgeNormal.Render("NOR")
	switch a.state.Mode {
	case grid.ModeInsert:
		badge = badgeInsert.Render("INS")
	case grid.ModeSelect:
		badge = badgeSelect.Render("SEL")
	}

	extras := ""
	if a.state.Count > 0 {
		extras += fmt.Sprintf(" %d", a.state.Count)
	}
	if a.state.Pending != grid.PrefixNone {
		extras += " " + a.state.Pending.String()
	}
	pos := fmt.Sprintf("%d:%d", a.state.Cursor.Row+1, a.state.Cursor.Col+1)
	return fmt.Sprintf("%s %s%s  %s", badge, pos, extras, statusStyle.Render(a.status))
}

// columnWidths sizes every column to its widest visible value, capped by
// the configured maximum.
func (a *App) columnWidths() []int {
	maxWidth := a.cfg.Grid.MaxColumnWidth
	if maxWidth <= 0 {
		maxWidth = 16
	}
	widths := make([]int, len(a.res.Columns))
	for col, name := range a.res.Columns {
		widths[col] = len(name)
	}
	total := a.state.VisibleRowCount(a.res)
	lastRow := min(total, a.offsetRow+a.gridHeight())
	for row := a.offsetRow; row < lastRow; row++ {
		for col := range a.res.Columns {
			if n := len([]rune(a.state.CellValue(a.res, row, col))); n > widths[col] {
				widths[col] = n
			}
		}
	}
	for col := range widths {
		if widths[col] > maxWidth {
			widths[col] = maxWidth
		}
		if widths[col] < 3 {
			widths[col] = 3
		}
	}
	return widths
}

func pad(s string, width int) string {
	runes := []rune(s)
	if len(runes) > width {
		if width <= 1 {
			return string(runes[:width])
		}
		return string(runes[:width-1]) + "…"
	}
	return s + strings.Repeat(" ", width-len(runes))
}
