package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MCB-SMART-BOY/gridbase/internal/grid"
)

// toKeyEvent translates a bubbletea key message into the engine's event
// shape. Printable keys keep their case; special keys use the engine's
// lowercase names.
func toKeyEvent(m tea.KeyMsg) grid.KeyEvent {
	s := m.String()

	ev := grid.KeyEvent{}
	for {
		if rest, ok := strings.CutPrefix(s, "ctrl+"); ok {
			ev.Ctrl = true
			s = rest
			continue
		}
		if rest, ok := strings.CutPrefix(s, "alt+"); ok {
			ev.Alt = true
			s = rest
			continue
		}
		break
	}

	// bubbletea names special keys the way the engine expects ("esc",
	// "enter", "pgup", ...); only space needs mapping.
	if s == " " {
		s = "space"
	}
	ev.Key = s
	return ev
}

// hostKeys are the few bindings the host handles before the engine sees
// the event.
type hostKeys struct {
	Quit       key.Binding
	Search     key.Binding
	ToggleCase key.Binding
}

func defaultHostKeys() hostKeys {
	return hostKeys{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Search:     key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "search")),
		ToggleCase: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle case-sensitive filters")),
	}
}
