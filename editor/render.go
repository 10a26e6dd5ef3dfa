package editor

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/quill"
)

var (
	statusStyle  = lipgloss.NewStyle().Reverse(true)
	messageStyle = lipgloss.NewStyle().Bold(true)
)

// refresh draws the full frame into a buffer and flushes it with one
// write, which keeps raw-mode terminals from flickering.
func (e *Editor) refresh() {
	if e.out == nil {
		return
	}
	e.scroll()

	var frame bytes.Buffer
	out := termenv.NewOutput(&frame)
	out.HideCursor()
	out.MoveCursor(1, 1)

	e.drawRows(out)
	e.drawStatusBar(out)
	e.drawMessageBar(out)

	out.MoveCursor(e.cy-e.rowOffset+1, e.cx-e.colOffset+1)
	out.ShowCursor()

	e.out.Write(frame.Bytes())
}

func (e *Editor) drawRows(out *termenv.Output) {
	for y := 0; y < e.maxRow; y++ {
		fileRow := y + e.rowOffset
		switch {
		case fileRow < len(e.rows):
			out.WriteString(e.rows[fileRow].Window(e.colOffset, e.maxCol))
		case e.blank() && y == e.maxRow/3:
			e.drawWelcome(out)
		default:
			out.WriteString("~")
		}
		out.ClearLineRight()
		out.WriteString("\r\n")
	}
}

// blank reports whether there is nothing to show but the banner.
func (e *Editor) blank() bool {
	return !e.dirty && len(e.rows) == 1 && e.rows[0].DisplayLen() == 0
}

func (e *Editor) drawWelcome(out *termenv.Output) {
	banner := fmt.Sprintf("Quill editor -- version %s", quill.Version())
	banner = runewidth.Truncate(banner, e.maxCol, "")
	pad := (e.maxCol - runewidth.StringWidth(banner)) / 2
	if pad > 0 {
		out.WriteString("~")
		out.WriteString(strings.Repeat(" ", pad-1))
	}
	out.WriteString(banner)
}

func (e *Editor) drawStatusBar(out *termenv.Output) {
	name := e.path
	if name == "" {
		name = "[No Name]"
	}
	left := name
	if e.dirty {
		left += " (modified)"
	}
	right := fmt.Sprintf("Ln %d/%d, Col %d", e.cy+1, len(e.rows), e.cx+1)

	gap := e.maxCol - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	var bar string
	if gap >= 0 {
		bar = left + strings.Repeat(" ", gap) + right
	} else {
		bar = runewidth.Truncate(left+" "+right, e.maxCol, "")
		bar += strings.Repeat(" ", e.maxCol-runewidth.StringWidth(bar))
	}
	out.WriteString(statusStyle.Render(bar))
	out.WriteString("\r\n")
}

func (e *Editor) drawMessageBar(out *termenv.Output) {
	out.ClearLineRight()
	if e.msg.expired(time.Now()) {
		return
	}
	out.WriteString(messageStyle.Render(runewidth.Truncate(e.msg.text, e.maxCol, "")))
}
