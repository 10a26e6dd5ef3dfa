// Package key defines the semantic key events produced by the input reader
// and stored by the row model.
//
// A Key is a plain comparable value; two keys are equal iff all their fields
// are equal. Rendering is defined in exactly one place (Render), so every
// consumer agrees on how many columns a key occupies.
package key

import "fmt"

// Direction identifies an arrow key.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// ControlKind identifies a control key.
type ControlKind uint8

const (
	// CtrlChar and AltChar carry a base character in Key.Rune.
	CtrlChar ControlKind = iota
	AltChar
	Tab
	LF
	CR
	Escape
	Backspace
	Delete
	Home
	End
	PageUp
	PageDown
	Insert
)

// SpecialKind identifies lock and media keys. They are informational only
// and never rendered.
type SpecialKind uint8

const (
	CapsLock SpecialKind = iota
	NumLock
	ScrollLock
	PrintScreen
	PauseBreak
	Menu
)

// Kind discriminates the Key variants.
type Kind uint8

const (
	KindChar Kind = iota
	KindArrow
	KindFunction
	KindControl
	KindSpecial
)

// Key is an immutable semantic key event.
type Key struct {
	Kind    Kind
	Rune    rune        // KindChar payload, or the base character of Ctrl/Alt
	Dir     Direction   // KindArrow
	Fn      int         // KindFunction, 1 through 12
	Control ControlKind // KindControl
	Special SpecialKind // KindSpecial
}

// Char returns a printable character key.
func Char(r rune) Key { return Key{Kind: KindChar, Rune: r} }

// Arrow returns an arrow key for the given direction.
func Arrow(d Direction) Key { return Key{Kind: KindArrow, Dir: d} }

// Fn returns a function key, n in 1..12.
func Fn(n int) Key { return Key{Kind: KindFunction, Fn: n} }

// Ctrl returns a Ctrl-modified key with the given base character.
func Ctrl(r rune) Key { return Key{Kind: KindControl, Control: CtrlChar, Rune: r} }

// Alt returns an Alt-modified key with the given base character.
func Alt(r rune) Key { return Key{Kind: KindControl, Control: AltChar, Rune: r} }

// Control returns a plain control key such as Tab or Escape.
func Control(k ControlKind) Key { return Key{Kind: KindControl, Control: k} }

// Special returns an informational special key.
func Special(k SpecialKind) Key { return Key{Kind: KindSpecial, Special: k} }

// Render returns the characters this key contributes to a row's rendered
// text: a printable character renders as itself, Tab as a tab-stop-wide run
// of spaces, and everything else as nothing. This is the single source of
// truth for display widths; Width is derived from it.
func (k Key) Render(tabStop int) []rune {
	switch k.Kind {
	case KindChar:
		return []rune{k.Rune}
	case KindControl:
		if k.Control == Tab {
			if tabStop < 1 {
				tabStop = 1
			}
			run := make([]rune, tabStop)
			for i := range run {
				run[i] = ' '
			}
			return run
		}
	}
	return nil
}

// Width returns the number of rendered characters the key occupies.
func (k Key) Width(tabStop int) int {
	switch k.Kind {
	case KindChar:
		return 1
	case KindControl:
		if k.Control == Tab {
			if tabStop < 1 {
				tabStop = 1
			}
			return tabStop
		}
	}
	return 0
}

// Index returns the position of the first occurrence of needle in haystack
// as a contiguous subsequence, or -1 if absent. An empty needle matches at 0.
func Index(haystack, needle []Key) int {
	if len(needle) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, k := range needle {
			if haystack[i+j] != k {
				continue outer
			}
		}
		return i
	}
	return -1
}

var controlNames = map[ControlKind]string{
	Tab:       "Tab",
	LF:        "LF",
	CR:        "CR",
	Escape:    "Escape",
	Backspace: "Backspace",
	Delete:    "Delete",
	Home:      "Home",
	End:       "End",
	PageUp:    "PageUp",
	PageDown:  "PageDown",
	Insert:    "Insert",
}

var specialNames = map[SpecialKind]string{
	CapsLock:    "CapsLock",
	NumLock:     "NumLock",
	ScrollLock:  "ScrollLock",
	PrintScreen: "PrintScreen",
	PauseBreak:  "PauseBreak",
	Menu:        "Menu",
}

func (k Key) String() string {
	switch k.Kind {
	case KindChar:
		return fmt.Sprintf("Char(%c)", k.Rune)
	case KindArrow:
		switch k.Dir {
		case Up:
			return "Up"
		case Down:
			return "Down"
		case Left:
			return "Left"
		default:
			return "Right"
		}
	case KindFunction:
		return fmt.Sprintf("F%d", k.Fn)
	case KindControl:
		switch k.Control {
		case CtrlChar:
			return fmt.Sprintf("Ctrl+%c", k.Rune)
		case AltChar:
			return fmt.Sprintf("Alt+%c", k.Rune)
		default:
			return controlNames[k.Control]
		}
	default:
		return specialNames[k.Special]
	}
}
