package editor

import "github.com/iw2rmb/quill/key"

func (e *Editor) moveCursor(k key.Key) {
	switch {
	case k.Kind == key.KindArrow && k.Dir == key.Left:
		e.moveLeft()
	case k.Kind == key.KindArrow && k.Dir == key.Right:
		e.moveRight()
	case k.Kind == key.KindArrow && k.Dir == key.Up:
		e.moveUp()
	case k.Kind == key.KindArrow && k.Dir == key.Down:
		e.moveDown()
	case k.Kind == key.KindControl && k.Control == key.Home:
		e.lineHome()
	case k.Kind == key.KindControl && k.Control == key.End:
		e.lineEnd()
	}
}

// moveLeft steps over the whole span of the key left of the cursor, so a
// tab is crossed in one step. At column zero it wraps to the end of the
// previous row.
func (e *Editor) moveLeft() {
	if e.cx > 0 {
		row := e.row()
		start, _ := row.RenderSpan(row.RawIndex(e.cx - 1))
		e.cx = start
		return
	}
	if e.cy > 0 {
		e.cy--
		e.cx = e.row().DisplayLen()
	}
}

func (e *Editor) moveRight() {
	row := e.row()
	if e.cx < row.DisplayLen() {
		_, end := row.RenderSpan(row.RawIndex(e.cx))
		e.cx = end
		return
	}
	if e.cy < len(e.rows)-1 {
		e.cy++
		e.cx = 0
	}
}

func (e *Editor) moveUp() {
	if e.cy == 0 {
		return
	}
	e.cy--
	e.clampX()
}

func (e *Editor) moveDown() {
	if e.cy >= len(e.rows)-1 {
		return
	}
	e.cy++
	e.clampX()
}

func (e *Editor) lineHome() {
	e.cx = 0
	e.colOffset = 0
}

func (e *Editor) lineEnd() {
	e.cx = e.row().DisplayLen()
}

// clampX keeps cx within the new row and snaps it back onto a key
// boundary, so moving through a row of tabs never lands mid-tab.
func (e *Editor) clampX() {
	row := e.row()
	if row.DisplayLen() < e.maxCol {
		e.colOffset = 0
	}
	if l := row.DisplayLen(); e.cx >= l {
		e.cx = l
		return
	}
	start, _ := row.RenderSpan(row.RawIndex(e.cx))
	e.cx = start
}

func (e *Editor) pageUp() {
	for i := e.cy; i > 0; i-- {
		e.moveUp()
	}
}

func (e *Editor) pageDown() {
	for i := len(e.rows) - 1 - e.cy; i > 0; i-- {
		e.moveDown()
	}
}

// scroll brings the cursor back inside the viewport before a redraw.
func (e *Editor) scroll() {
	if e.cy < e.rowOffset {
		e.rowOffset = e.cy
	}
	if e.cy >= e.rowOffset+e.maxRow {
		e.rowOffset = e.cy - e.maxRow + 1
	}
	if e.cx < e.colOffset {
		e.colOffset = e.cx
	}
	if e.cx >= e.colOffset+e.maxCol {
		e.colOffset = e.cx - e.maxCol + 1
	}
}
