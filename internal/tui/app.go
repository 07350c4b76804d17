// Package tui hosts the grid editor: it owns the terminal loop, feeds
// key events to the engine and performs the side effects the engine
// requests (loading tables, executing batches, panel focus).
package tui

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MCB-SMART-BOY/gridbase/internal/config"
	"github.com/MCB-SMART-BOY/gridbase/internal/database"
	"github.com/MCB-SMART-BOY/gridbase/internal/executor"
	"github.com/MCB-SMART-BOY/gridbase/internal/filter"
	"github.com/MCB-SMART-BOY/gridbase/internal/grid"
	"github.com/MCB-SMART-BOY/gridbase/internal/sqlgen"
	"github.com/MCB-SMART-BOY/gridbase/internal/table"
)

// App is the bubbletea model for one editing session.
type App struct {
	ctx  context.Context
	cfg  config.Config
	db   *sql.DB // nil when editing an offline result set
	exec *executor.Executor

	state     *grid.State
	res       *table.Result
	tableName string
	pkCol     int

	tables        []string
	sidebarCursor int
	sidebarOpen   bool

	filterInput textinput.Model
	filterOpen  bool

	searchInput textinput.Model
	searchOpen  bool

	confirm *sqlgen.Batch // destructive batch awaiting y/n

	keys                 hostKeys
	offsetRow, offsetCol int
	width, height        int
	status               string
}

// New builds an App backed by a sqlite database.
func New(ctx context.Context, cfg config.Config, db *sql.DB, exec *executor.Executor) *App {
	a := newApp(ctx, cfg)
	a.db = db
	a.exec = exec
	return a
}

// NewOffline builds an App over an in-memory result set (CSV mode).
// Saves compile but never execute.
func NewOffline(ctx context.Context, cfg config.Config, res *table.Result, name string) *App {
	a := newApp(ctx, cfg)
	a.res = res
	a.tableName = name
	a.pkCol = sqlgen.NoPrimaryKey
	return a
}

func newApp(ctx context.Context, cfg config.Config) *App {
	ti := textinput.New()
	ti.Placeholder = "column op value  (e.g. city = berlin)"
	ti.CharLimit = 120

	si := textinput.New()
	si.Placeholder = "text  or  column: text"
	si.CharLimit = 120

	st := grid.NewState()
	st.SetRegexEngine(filter.NewStdRegexEngine())

	return &App{
		ctx:         ctx,
		cfg:         cfg,
		state:       st,
		pkCol:       sqlgen.NoPrimaryKey,
		filterInput: ti,
		searchInput: si,
		keys:        defaultHostKeys(),
	}
}

func (a *App) Init() tea.Cmd {
	if a.db == nil {
		return nil
	}
	name := a.cfg.Database.Table
	return tea.Batch(a.loadTables(), a.loadTable(name))
}

func (a *App) loadTables() tea.Cmd {
	return func() tea.Msg {
		names, err := database.ListTables(a.ctx, a.db)
		if err != nil {
			return errMsg{err}
		}
		return tablesMsg(names)
	}
}

// loadTable fetches name, or the first user table when name is empty.
func (a *App) loadTable(name string) tea.Cmd {
	return func() tea.Msg {
		if name == "" {
			names, err := database.ListTables(a.ctx, a.db)
			if err != nil {
				return errMsg{err}
			}
			if len(names) == 0 {
				return statusMsg("Database has no tables")
			}
			name = names[0]
		}
		pk, err := database.PrimaryKeyColumn(a.ctx, a.db, name)
		if err != nil {
			return errMsg{err}
		}
		res, err := database.FetchTable(a.ctx, a.db, name, a.cfg.Database.RowLimit)
		if err != nil {
			return errMsg{err}
		}
		return resultMsg{name: name, pkCol: pk, res: res}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height

	case tea.KeyMsg:
		if key.Matches(m, a.keys.Quit) {
			return a, tea.Quit
		}
		if a.confirm != nil {
			return a.handleConfirmKey(m)
		}
		if a.filterOpen {
			return a.handleFilterKey(m)
		}
		if a.searchOpen {
			return a.handleSearchKey(m)
		}
		if a.sidebarOpen {
			return a.handleSidebarKey(m)
		}
		return a.handleGridKey(m)

	case tablesMsg:
		a.tables = []string(m)
		if a.sidebarCursor >= len(a.tables) {
			a.sidebarCursor = 0
		}

	case resultMsg:
		a.res = m.res
		a.tableName = m.name
		a.pkCol = m.pkCol
		a.state.ClearEdits()
		a.state.InvalidateFilterCache()
		a.offsetRow, a.offsetCol = 0, 0
		// Reuse the clamp path so a stale cursor cannot outlive a reload.
		grid.HandleEvent(a.state, a.res, grid.Key("home"))
		a.status = fmt.Sprintf("Loaded %s (%d rows)", m.name, len(m.res.Rows))

	case appliedMsg:
		a.state.ClearEdits()
		a.state.PendingSave = false
		a.status = fmt.Sprintf("Applied %d statements (%d rows affected)", m.res.Statements, m.res.RowsAffected)
		if a.db != nil {
			return a, a.loadTable(a.tableName)
		}

	case statusMsg:
		a.status = string(m)

	case errMsg:
		a.state.PendingSave = false
		a.status = "error: " + m.Error()
	}
	return a, nil
}

func (a *App) handleGridKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, a.keys.Search) {
		a.searchOpen = true
		if a.state.SearchColumn != "" {
			a.searchInput.SetValue(a.state.SearchColumn + ": " + a.state.SearchText)
		} else {
			a.searchInput.SetValue(a.state.SearchText)
		}
		a.searchInput.Focus()
		return a, textinput.Blink
	}
	if key.Matches(m, a.keys.ToggleCase) {
		return a, a.toggleCaseSensitive()
	}

	act := grid.HandleEvent(a.state, a.res, toKeyEvent(m))
	if act.Message != "" {
		a.status = act.Message
	}
	if act.ScrollRow >= 0 {
		a.scrollTo(act.ScrollRow, act.ScrollAlign)
	}
	a.followCursor()

	var cmds []tea.Cmd
	if act.OpenFilterPanel {
		a.filterOpen = true
		a.filterInput.SetValue("")
		a.filterInput.Focus()
		cmds = append(cmds, textinput.Blink)
	}
	if act.Refresh && a.db != nil {
		cmds = append(cmds, a.loadTable(a.tableName))
	}
	if act.Focus == grid.FocusSidebar && len(a.tables) > 0 {
		a.sidebarOpen = true
	} else if act.Focus != grid.FocusNone && act.Focus != grid.FocusSidebar {
		a.status = "No panel there"
	}
	if act.SaveRequested {
		if cmd := a.save(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleConfirmKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "y", "Y":
		batch := *a.confirm
		a.confirm = nil
		return a, a.applyCmd(batch)
	case "n", "N", "esc":
		a.confirm = nil
		a.state.PendingSave = false
		a.status = "Save cancelled"
	}
	return a, nil
}

func (a *App) handleFilterKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.filterOpen = false
		a.filterInput.Blur()
		return a, nil
	case "enter":
		input := strings.TrimSpace(a.filterInput.Value())
		a.filterOpen = false
		a.filterInput.Blur()
		if input == "" || a.res == nil {
			return a, nil
		}
		f, err := filter.ParseQuick(input, a.res.Columns)
		if err != nil {
			a.status = "filter: " + err.Error()
			return a, nil
		}
		f.CaseSensitive = a.cfg.Grid.CaseSensitiveFilters
		a.state.Filters = append(a.state.Filters, f)
		a.state.InvalidateFilterCache()
		a.state.ClampCursor(a.res)
		a.followCursor()
		a.status = fmt.Sprintf("Filter: %s", input)
		return a, nil
	}
	var cmd tea.Cmd
	a.filterInput, cmd = a.filterInput.Update(m)
	return a, cmd
}

// handleSearchKey drives the free-text search input. "column: text"
// restricts the search to one column; a bare text searches every column.
// An empty submit clears the search.
func (a *App) handleSearchKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc":
		a.searchOpen = false
		a.searchInput.Blur()
		return a, nil
	case "enter":
		input := strings.TrimSpace(a.searchInput.Value())
		a.searchOpen = false
		a.searchInput.Blur()
		if a.res == nil {
			return a, nil
		}

		text, column := input, ""
		if col, rest, ok := strings.Cut(input, ":"); ok {
			if a.res.ColumnIndex(strings.TrimSpace(col)) >= 0 {
				column = strings.TrimSpace(col)
				text = strings.TrimSpace(rest)
			}
		}
		a.state.SearchText = text
		a.state.SearchColumn = column
		a.state.InvalidateFilterCache()
		a.state.ClampCursor(a.res)
		a.followCursor()
		if text == "" {
			a.status = "Search cleared"
		} else {
			matched, _ := filter.CountSearchMatches(a.res, text, column)
			a.status = fmt.Sprintf("Search: %q (%d rows)", input, matched)
		}
		return a, nil
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(m)
	return a, cmd
}

// toggleCaseSensitive flips the filter case preference, re-applies it to
// the active filters and persists it to the config file.
func (a *App) toggleCaseSensitive() tea.Cmd {
	on := !a.cfg.Grid.CaseSensitiveFilters
	a.cfg.Grid.CaseSensitiveFilters = on
	for i := range a.state.Filters {
		a.state.Filters[i].CaseSensitive = on
	}
	a.state.InvalidateFilterCache()
	if a.res != nil {
		a.state.ClampCursor(a.res)
		a.followCursor()
	}
	a.status = fmt.Sprintf("Case-sensitive filters: %v", on)

	cfg := a.cfg
	return func() tea.Msg {
		if err := config.Save(cfg); err != nil {
			return statusMsg("config: " + err.Error())
		}
		return nil
	}
}

func (a *App) handleSidebarKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.String() {
	case "esc", "l", "right", "q":
		a.sidebarOpen = false
	case "up", "k":
		if a.sidebarCursor > 0 {
			a.sidebarCursor--
		}
	case "down", "j":
		if a.sidebarCursor < len(a.tables)-1 {
			a.sidebarCursor++
		}
	case "enter":
		a.sidebarOpen = false
		if a.sidebarCursor < len(a.tables) {
			return a, a.loadTable(a.tables[a.sidebarCursor])
		}
	}
	return a, nil
}

// save compiles the pending diff and either applies it, asks for
// confirmation, or (offline) reports what would run.
func (a *App) save() tea.Cmd {
	if a.res == nil {
		return nil
	}
	edits := sqlgen.Edits{
		Modified: make(map[sqlgen.CellRef]string, len(a.state.ModifiedCells)),
		Deleted:  a.state.RowsToDelete,
		NewRows:  a.state.NewRows,
	}
	for pos, v := range a.state.ModifiedCells {
		edits.Modified[sqlgen.CellRef{Row: pos.Row, Col: pos.Col}] = v
	}

	batch, err := sqlgen.Compile(a.res, edits, a.tableName, a.pkCol)
	if err != nil {
		a.state.PendingSave = false
		a.status = "save: " + err.Error()
		return nil
	}
	if len(batch.Statements) == 0 {
		a.state.PendingSave = false
		a.status = "Nothing to save"
		return nil
	}
	if a.exec == nil {
		a.state.PendingSave = false
		a.status = fmt.Sprintf("Offline: compiled %d statements, nothing executed", len(batch.Statements))
		return nil
	}
	if batch.Destructive && a.cfg.Grid.ConfirmDestructive {
		a.confirm = &batch
		return nil
	}
	return a.applyCmd(batch)
}

func (a *App) applyCmd(batch sqlgen.Batch) tea.Cmd {
	return func() tea.Msg {
		res, err := a.exec.Apply(a.ctx, batch, a.tableName)
		if err != nil {
			return errMsg{err}
		}
		return appliedMsg{res: res}
	}
}

// scrollTo honors an explicit scroll request from the engine (zz/zt/zb
// and motions).
func (a *App) scrollTo(row int, align grid.ScrollAlign) {
	page := a.gridHeight()
	switch align {
	case grid.ScrollCenter:
		a.offsetRow = row - page/2
	case grid.ScrollTop:
		a.offsetRow = row
	case grid.ScrollBottom:
		a.offsetRow = row - page + 1
	default:
		// nearest: handled by followCursor
	}
	a.clampOffsets()
}

// followCursor keeps the cursor inside the visible window.
func (a *App) followCursor() {
	if a.res == nil {
		return
	}
	page := a.gridHeight()
	cur := a.state.Cursor
	if cur.Row < a.offsetRow {
		a.offsetRow = cur.Row
	}
	if cur.Row >= a.offsetRow+page {
		a.offsetRow = cur.Row - page + 1
	}
	cols := a.visibleColumns()
	if cur.Col < a.offsetCol {
		a.offsetCol = cur.Col
	}
	if cur.Col >= a.offsetCol+cols {
		a.offsetCol = cur.Col - cols + 1
	}
	a.clampOffsets()
}

func (a *App) clampOffsets() {
	if a.offsetRow < 0 {
		a.offsetRow = 0
	}
	if a.offsetCol < 0 {
		a.offsetCol = 0
	}
}

func (a *App) gridHeight() int {
	h := a.height - 6 // header, column row, filter bar, status, padding
	if h < 1 {
		h = 10
	}
	return h
}

// visibleColumns is how many columns fit at the configured width cap.
func (a *App) visibleColumns() int {
	if a.width <= 0 {
		return 4
	}
	w := a.cfg.Grid.MaxColumnWidth
	if w <= 0 {
		w = 16
	}
	n := a.width / (w + 3)
	if n < 1 {
		n = 1
	}
	return n
}

// messages
type tablesMsg []string

type resultMsg struct {
	name  string
	pkCol int
	res   *table.Result
}

type appliedMsg struct{ res executor.Result }

type statusMsg string

type errMsg struct{ error }
