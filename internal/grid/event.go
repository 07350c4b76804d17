package grid

// KeyEvent is one raw key press from the host UI's input loop. Key holds
// the typed character for printable keys (case preserved, so shift+g
// arrives as "G") or a lowercase name for special keys: "esc", "enter",
// "backspace", "tab", "up", "down", "left", "right", "home", "end",
// "pgup", "pgdown", "space". Modifier keys are flags, so ctrl+s arrives
// as {Key: "s", Ctrl: true}.
type KeyEvent struct {
	Key  string
	Ctrl bool
	Alt  bool
}

// Key constructs a plain key event.
func Key(k string) KeyEvent { return KeyEvent{Key: k} }

// Ctrl constructs a ctrl-modified key event.
func Ctrl(k string) KeyEvent { return KeyEvent{Key: k, Ctrl: true} }

// isDigit reports whether the event is a bare digit key.
func (e KeyEvent) isDigit() bool {
	return !e.Ctrl && !e.Alt && len(e.Key) == 1 && e.Key[0] >= '0' && e.Key[0] <= '9'
}

// printableRune returns the rune for single-character events usable as
// Insert-mode text input.
func (e KeyEvent) printableRune() (rune, bool) {
	if e.Ctrl || e.Alt {
		return 0, false
	}
	if e.Key == "space" {
		return ' ', true
	}
	runes := []rune(e.Key)
	if len(runes) != 1 {
		return 0, false
	}
	if runes[0] < ' ' {
		return 0, false
	}
	return runes[0], true
}
