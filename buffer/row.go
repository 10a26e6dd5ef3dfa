package buffer

import (
	"strings"

	"github.com/iw2rmb/quill/key"
)

// DefaultTabStop is the rendered width of a Tab key when no configuration
// overrides it.
const DefaultTabStop = 4

// Row is one line of the document. The zero value is not usable; construct
// rows with NewRow.
type Row struct {
	raw      []key.Key
	rendered []rune
	tab      int
}

// NewRow builds a row owning raw, rendering it immediately.
func NewRow(raw []key.Key, tabStop int) *Row {
	if tabStop < 1 {
		tabStop = DefaultTabStop
	}
	r := &Row{raw: raw, tab: tabStop}
	r.render()
	return r
}

// render rebuilds rendered from raw. Rendering is a pure function of the
// raw sequence, so the derived form can always be reconstructed.
func (r *Row) render() {
	r.rendered = r.rendered[:0]
	for _, k := range r.raw {
		r.rendered = append(r.rendered, k.Render(r.tab)...)
	}
}

// DisplayLen returns the rendered length in characters.
func (r *Row) DisplayLen() int { return len(r.rendered) }

// Rendered returns the display form of the row.
func (r *Row) Rendered() string { return string(r.rendered) }

// Keys returns the raw key sequence. The slice must not be mutated.
func (r *Row) Keys() []key.Key { return r.raw }

// Window returns the rendered slice [start, start+width) clamped to the
// row, for viewport drawing.
func (r *Row) Window(start, width int) string {
	if start < 0 {
		start = 0
	}
	if start >= len(r.rendered) || width <= 0 {
		return ""
	}
	end := start + width
	if end > len(r.rendered) {
		end = len(r.rendered)
	}
	return string(r.rendered[start:end])
}

// RawIndex maps a rendered position to the index of the key whose span
// covers it. A position at or past the total width maps to len(raw), the
// append slot.
func (r *Row) RawIndex(renderPos int) int {
	col := 0
	for i, k := range r.raw {
		w := k.Width(r.tab)
		if col+w > renderPos {
			return i
		}
		col += w
	}
	return len(r.raw)
}

// RenderSpan returns the half-open rendered span [start, end) covered by
// the key at rawIdx.
func (r *Row) RenderSpan(rawIdx int) (start, end int) {
	for _, k := range r.raw[:rawIdx] {
		start += k.Width(r.tab)
	}
	return start, start + r.raw[rawIdx].Width(r.tab)
}

// Insert places k at rendered position at, or appends when at is at or past
// the end. Keys that render to nothing are rejected without mutation, so
// stray arrow or function keys never disturb a line.
func (r *Row) Insert(at int, k key.Key) bool {
	runes := k.Render(r.tab)
	if len(runes) == 0 {
		return false
	}
	if at >= len(r.rendered) {
		r.raw = append(r.raw, k)
		r.rendered = append(r.rendered, runes...)
		return true
	}

	idx := r.RawIndex(at)
	r.raw = append(r.raw, key.Key{})
	copy(r.raw[idx+1:], r.raw[idx:])
	r.raw[idx] = k

	r.rendered = append(r.rendered, runes...)
	copy(r.rendered[at+len(runes):], r.rendered[at:])
	copy(r.rendered[at:], runes)
	return true
}

// Backspace removes the key just before rendered position at, or the last
// key when at is at or past the end. It returns the removed rendered width
// so the caller can step the cursor left by the right number of columns.
func (r *Row) Backspace(at int) int {
	if len(r.raw) == 0 {
		return 0
	}
	if at >= len(r.rendered) {
		last := r.raw[len(r.raw)-1]
		w := last.Width(r.tab)
		r.raw = r.raw[:len(r.raw)-1]
		r.rendered = r.rendered[:len(r.rendered)-w]
		return w
	}
	if at < 1 {
		return 0
	}

	idx := r.RawIndex(at - 1)
	start, end := r.RenderSpan(idx)
	r.rendered = append(r.rendered[:start], r.rendered[end:]...)
	r.raw = append(r.raw[:idx], r.raw[idx+1:]...)
	return end - start
}

// Split moves every key from rendered position at onward into a new row,
// truncating this one. At or past the end it returns a new empty row.
func (r *Row) Split(at int) *Row {
	if at >= len(r.rendered) {
		return NewRow(nil, r.tab)
	}
	idx := r.RawIndex(at)
	moved := make([]key.Key, len(r.raw)-idx)
	copy(moved, r.raw[idx:])
	r.raw = r.raw[:idx]
	r.rendered = r.rendered[:at]
	return NewRow(moved, r.tab)
}

// Append concatenates other onto this row.
func (r *Row) Append(other *Row) {
	r.raw = append(r.raw, other.raw...)
	r.rendered = append(r.rendered, other.rendered...)
}

// RawText reconstructs the literal line as typed: printable characters as
// themselves and the Tab key as a literal tab. This is the form that is
// persisted; rendered is display-only.
func (r *Row) RawText() string {
	var sb strings.Builder
	for _, k := range r.raw {
		switch {
		case k.Kind == key.KindChar:
			sb.WriteRune(k.Rune)
		case k == key.Control(key.Tab):
			sb.WriteByte('\t')
		}
	}
	return sb.String()
}
