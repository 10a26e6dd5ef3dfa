package buffer

import (
	"testing"

	"github.com/iw2rmb/quill/key"
)

func keysFromString(s string) []key.Key {
	var out []key.Key
	for _, r := range s {
		if r == '\t' {
			out = append(out, key.Control(key.Tab))
			continue
		}
		out = append(out, key.Char(r))
	}
	return out
}

func TestRow_RenderExpandsTabs(t *testing.T) {
	r := NewRow(keysFromString("a\tb"), 4)
	if got, want := r.Rendered(), "a    b"; got != want {
		t.Fatalf("rendered=%q, want %q", got, want)
	}
	if got, want := r.DisplayLen(), 6; got != want {
		t.Fatalf("display len=%d, want %d", got, want)
	}
}

func TestRow_SingleTabSpans(t *testing.T) {
	const tab = 4
	r := NewRow([]key.Key{key.Control(key.Tab)}, tab)

	if got := r.DisplayLen(); got != tab {
		t.Fatalf("display len=%d, want %d", got, tab)
	}
	if got := r.RawIndex(tab - 1); got != 0 {
		t.Fatalf("RawIndex(%d)=%d, want 0 (inside the tab's span)", tab-1, got)
	}
	if got := r.RawIndex(tab); got != 1 {
		t.Fatalf("RawIndex(%d)=%d, want 1 (append position)", tab, got)
	}
}

func TestRow_IndexMappingRoundTrip(t *testing.T) {
	r := NewRow(keysFromString("ab\tc\td"), 4)

	// Every rendered position resolves to a key whose span contains it.
	for p := 0; p < r.DisplayLen(); p++ {
		idx := r.RawIndex(p)
		start, end := r.RenderSpan(idx)
		if p < start || p >= end {
			t.Fatalf("position %d: span [%d,%d) of key %d does not contain it", p, start, end, idx)
		}
	}
	if got, want := r.RawIndex(r.DisplayLen()), len(r.Keys()); got != want {
		t.Fatalf("RawIndex(len)=%d, want %d", got, want)
	}
}

func TestRow_RawTextRoundTrip(t *testing.T) {
	r := NewRow(keysFromString("\tx := 1\t// ok"), 8)
	if got, want := r.RawText(), "\tx := 1\t// ok"; got != want {
		t.Fatalf("raw text=%q, want %q", got, want)
	}

	// Non-printable keys never survive into the raw text.
	r2 := NewRow([]key.Key{key.Char('a'), key.Char('b')}, 4)
	r2.Insert(1, key.Char('中'))
	if got, want := r2.RawText(), "a中b"; got != want {
		t.Fatalf("raw text=%q, want %q", got, want)
	}
}

func TestRow_InsertRejectsNonPrintable(t *testing.T) {
	r := NewRow(keysFromString("ab"), 4)
	for _, k := range []key.Key{key.Arrow(key.Left), key.Fn(3), key.Control(key.Escape)} {
		if r.Insert(1, k) {
			t.Fatalf("Insert(%v) accepted a non-printable key", k)
		}
	}
	if got, want := r.Rendered(), "ab"; got != want {
		t.Fatalf("rendered=%q, want %q (row mutated)", got, want)
	}
}

func TestRow_InsertSplicesBothForms(t *testing.T) {
	r := NewRow(keysFromString("a\tb"), 4)
	if !r.Insert(5, key.Char('X')) { // boundary right after the tab
		t.Fatalf("Insert rejected a printable key")
	}
	if got, want := r.Rendered(), "a    Xb"; got != want {
		t.Fatalf("rendered=%q, want %q", got, want)
	}
	if got, want := r.RawText(), "a\tXb"; got != want {
		t.Fatalf("raw text=%q, want %q", got, want)
	}
}

func TestRow_InsertPastEndAppends(t *testing.T) {
	r := NewRow(keysFromString("ab"), 4)
	r.Insert(99, key.Char('c'))
	if got, want := r.Rendered(), "abc"; got != want {
		t.Fatalf("rendered=%q, want %q", got, want)
	}
}

func TestRow_InsertThenBackspaceRestores(t *testing.T) {
	r := NewRow(keysFromString("a\tb"), 4)
	wantRendered := r.Rendered()
	wantRaw := r.RawText()

	at := 5
	if !r.Insert(at, key.Char('X')) {
		t.Fatalf("Insert rejected")
	}
	if got := r.Backspace(at + 1); got != 1 {
		t.Fatalf("Backspace width=%d, want 1", got)
	}

	if got := r.Rendered(); got != wantRendered {
		t.Fatalf("rendered=%q, want %q", got, wantRendered)
	}
	if got := r.RawText(); got != wantRaw {
		t.Fatalf("raw text=%q, want %q", got, wantRaw)
	}
}

func TestRow_BackspaceReportsRemovedWidth(t *testing.T) {
	const tab = 4
	r := NewRow(keysFromString("a\tb"), tab)

	// Removing the tab (cursor sits just past its span).
	if got := r.Backspace(1 + tab); got != tab {
		t.Fatalf("Backspace width=%d, want %d", got, tab)
	}
	if got, want := r.Rendered(), "ab"; got != want {
		t.Fatalf("rendered=%q, want %q", got, want)
	}
}

func TestRow_BackspaceAtEndPopsLastKey(t *testing.T) {
	r := NewRow(keysFromString("ab\t"), 4)
	if got := r.Backspace(r.DisplayLen()); got != 4 {
		t.Fatalf("Backspace width=%d, want 4", got)
	}
	if got, want := r.RawText(), "ab"; got != want {
		t.Fatalf("raw text=%q, want %q", got, want)
	}
}

func TestRow_BackspaceOnEmptyRowIsNoop(t *testing.T) {
	r := NewRow(nil, 4)
	if got := r.Backspace(0); got != 0 {
		t.Fatalf("Backspace width=%d, want 0", got)
	}
}

func TestRow_Split(t *testing.T) {
	r := NewRow(keysFromString("ab\tcd"), 4)
	tail := r.Split(2) // boundary before the tab

	if got, want := r.Rendered(), "ab"; got != want {
		t.Fatalf("head rendered=%q, want %q", got, want)
	}
	if got, want := tail.Rendered(), "    cd"; got != want {
		t.Fatalf("tail rendered=%q, want %q", got, want)
	}
	if got, want := tail.RawText(), "\tcd"; got != want {
		t.Fatalf("tail raw=%q, want %q", got, want)
	}
}

func TestRow_SplitPastEndReturnsEmptyRow(t *testing.T) {
	r := NewRow(keysFromString("ab"), 4)
	tail := r.Split(2)
	if got := tail.DisplayLen(); got != 0 {
		t.Fatalf("tail display len=%d, want 0", got)
	}
	if got, want := r.Rendered(), "ab"; got != want {
		t.Fatalf("head rendered=%q, want %q", got, want)
	}
}

func TestRow_AppendJoinsBothForms(t *testing.T) {
	a := NewRow(keysFromString("ab"), 4)
	b := NewRow(keysFromString("\tc"), 4)
	a.Append(b)

	if got, want := a.Rendered(), "ab    c"; got != want {
		t.Fatalf("rendered=%q, want %q", got, want)
	}
	if got, want := a.RawText(), "ab\tc"; got != want {
		t.Fatalf("raw text=%q, want %q", got, want)
	}
}
