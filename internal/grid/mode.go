package grid

// Mode is the editor mode, Helix-style: the same keys mean different
// things depending on the current mode.
type Mode int

const (
	// ModeNormal handles navigation, command prefixes and mode switches.
	ModeNormal Mode = iota
	// ModeInsert edits the text of a single cell.
	ModeInsert
	// ModeSelect extends a rectangular range from the select anchor.
	ModeSelect
)

func (m Mode) String() string {
	switch m {
	case ModeInsert:
		return "INSERT"
	case ModeSelect:
		return "SELECT"
	}
	return "NORMAL"
}

// PendingPrefix is the one-key command prefix awaiting its second key.
// An explicit enum instead of a string buffer keeps the transition table
// exhaustive and bounded.
type PendingPrefix int

const (
	PrefixNone PendingPrefix = iota
	PrefixG
	PrefixZ
	PrefixSpace
	PrefixColon
	PrefixD
	PrefixY
)

func (p PendingPrefix) String() string {
	switch p {
	case PrefixG:
		return "g"
	case PrefixZ:
		return "z"
	case PrefixSpace:
		return "SPC"
	case PrefixColon:
		return ":"
	case PrefixD:
		return "d"
	case PrefixY:
		return "y"
	}
	return ""
}
