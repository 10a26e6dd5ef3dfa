package editor

import (
	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/key"
)

// search moves the cursor to the first row containing query as a
// contiguous run of raw keys, scrolling just enough to show the match.
// The cursor lands on the rendered start of the match, not its raw index.
func (e *Editor) search(query []key.Key) bool {
	if len(query) == 0 {
		return false
	}
	for i, row := range e.rows {
		idx := key.Index(row.Keys(), query)
		if idx < 0 {
			continue
		}
		e.cy = i
		e.cx, _ = row.RenderSpan(idx)
		e.scroll()
		return true
	}
	return false
}

// find runs the incremental search prompt. Every keystroke re-runs the
// search; Escape or a failed match restores the cursor, CR keeps it on
// the match.
func (e *Editor) find() {
	savedCx, savedCy := e.cx, e.cy
	savedRow, savedCol := e.rowOffset, e.colOffset
	restore := func() {
		e.cx, e.cy = savedCx, savedCy
		e.rowOffset, e.colOffset = savedRow, savedCol
	}

	query := buffer.NewRow(nil, e.cfg.TabStop)
	e.setMessage("Search: %s (ESC to cancel)", query.Rendered())
	for {
		e.refresh()

		k, err := e.keys.ReadKey()
		if err != nil {
			if recoverable(err) {
				continue
			}
			restore()
			e.clearMessage()
			return
		}

		switch {
		case k.Kind == key.KindControl && k.Control == key.Escape:
			restore()
			e.clearMessage()
			return
		case k.Kind == key.KindControl && k.Control == key.CR:
			e.clearMessage()
			return
		case k.Kind == key.KindControl && k.Control == key.Backspace:
			query.Backspace(query.DisplayLen())
		default:
			query.Insert(query.DisplayLen(), k)
		}

		e.setMessage("Search: %s (ESC to cancel)", query.Rendered())
		if query.DisplayLen() == 0 {
			restore()
			continue
		}
		if !e.search(query.Keys()) {
			restore()
			e.setMessage("Not Found: %s", query.Rendered())
		}
	}
}
