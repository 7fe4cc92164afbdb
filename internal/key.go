package internal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyEvent is a decoded key press. Char is 0 when the key produced no
// printable character.
type KeyEvent struct {
	Char      rune
	Backspace bool
	Delete    bool
	Enter     bool
	Escape    bool
	Shift     bool
}

// Rune returns a key event for a printable character.
func Rune(r rune) KeyEvent {
	return KeyEvent{Char: r, Shift: unicode.IsUpper(r)}
}

// Runes returns one key event per character of s.
func Runes(s string) []KeyEvent {
	events := make([]KeyEvent, 0, len(s))
	for _, r := range s {
		events = append(events, Rune(r))
	}
	return events
}

var (
	BackspaceKey = KeyEvent{Backspace: true}
	DeleteKey    = KeyEvent{Delete: true}
	EnterKey     = KeyEvent{Enter: true}
	EscapeKey    = KeyEvent{Escape: true}
)

// IsErase reports whether the key removes the last typed character.
func (k KeyEvent) IsErase() bool {
	return k.Backspace || k.Delete
}

// Printable returns the typed character, if it is one a hint could contain.
func (k KeyEvent) Printable() (rune, bool) {
	if k.Char == 0 || !unicode.IsPrint(k.Char) {
		return 0, false
	}
	return k.Char, true
}

// KeyEventFromTcell decodes a terminal key event.
func KeyEventFromTcell(ev *tcell.EventKey) KeyEvent {
	shift := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return KeyEvent{Backspace: true, Shift: shift}
	case tcell.KeyDelete:
		return KeyEvent{Delete: true, Shift: shift}
	case tcell.KeyEnter:
		return KeyEvent{Enter: true, Shift: shift}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return KeyEvent{Escape: true, Shift: shift}
	case tcell.KeyRune:
		r := ev.Rune()
		return KeyEvent{Char: r, Shift: shift || unicode.IsUpper(r)}
	}
	return KeyEvent{Shift: shift}
}
