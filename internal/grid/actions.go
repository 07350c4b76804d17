package grid

// FocusTarget names the panel keyboard focus should transfer to when a
// motion runs off the edge of the grid. Emitting a transfer instead of
// clamping silently lets the host move focus to the adjacent panel.
type FocusTarget int

const (
	FocusNone FocusTarget = iota
	FocusSidebar
	FocusSQLEditor
	FocusQueryTabs
)

func (f FocusTarget) String() string {
	switch f {
	case FocusSidebar:
		return "sidebar"
	case FocusSQLEditor:
		return "sql_editor"
	case FocusQueryTabs:
		return "query_tabs"
	}
	return "none"
}

// ScrollAlign hints where the scrolled-to row should land in the viewport.
type ScrollAlign int

const (
	ScrollNearest ScrollAlign = iota
	ScrollCenter
	ScrollTop
	ScrollBottom
)

// Actions is everything one processed event asks the host to do. State
// changes have already happened by the time the host sees this; these are
// side-effect requests only.
type Actions struct {
	// SQLToExecute carries compiled statements back to the executor. The
	// engine never fills this itself; the host puts the compiler output
	// here in response to SaveRequested.
	SQLToExecute []string

	// Message is a human-readable status line.
	Message string

	// Focus asks the host to move keyboard focus to another panel.
	Focus FocusTarget

	// ScrollRow/ScrollCol request the viewport follow the cursor.
	// -1 means no request.
	ScrollRow   int
	ScrollCol   int
	ScrollAlign ScrollAlign

	// Refresh asks the host to re-run the query behind the result set.
	Refresh bool

	// OpenFilterPanel asks the host to open the quick-filter input.
	OpenFilterPanel bool

	// SwitchToTab asks the host to activate another query tab. -1 means
	// no request.
	SwitchToTab int

	// SaveRequested asks the host to compile the pending edits and run
	// the result through the executor.
	SaveRequested bool
}

func newActions() Actions {
	return Actions{ScrollRow: -1, ScrollCol: -1, SwitchToTab: -1}
}

func (a *Actions) scrollTo(row int) {
	a.ScrollRow = row
}
