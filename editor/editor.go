package editor

import (
	"errors"
	"io"
	"log"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/key"
	"github.com/iw2rmb/quill/reader"
)

// Editor is one editing session. The buffer always holds at least one
// row, and cx always sits on a rendered key boundary of the current row.
type Editor struct {
	cfg Config

	keys *reader.KeyReader
	out  io.Writer
	logf *log.Logger

	rows []*buffer.Row

	cx, cy    int // cursor: rendered column and row index
	rowOffset int
	colOffset int

	maxRow int // visible text rows, excluding the two bars
	maxCol int

	path  string
	dirty bool
	msg   message
	quit  bool
}

// New returns an editor with an empty single-row buffer and no I/O
// attached. Callers wire input and output before Run.
func New(cfg Config) *Editor {
	if cfg.TabStop < 1 {
		cfg.TabStop = buffer.DefaultTabStop
	}
	if cfg.Encoding == "" {
		cfg.Encoding = "utf-8"
	}
	return &Editor{
		cfg:    cfg,
		logf:   log.New(io.Discard, "", 0),
		rows:   []*buffer.Row{buffer.NewRow(nil, cfg.TabStop)},
		maxRow: 24,
		maxCol: 80,
	}
}

// SetInput attaches the byte source the session reads keys from.
func (e *Editor) SetInput(r io.Reader) error {
	dec, err := reader.NewDecoder(e.cfg.Encoding, reader.NewByteSource(r))
	if err != nil {
		return err
	}
	e.keys = reader.NewKeyReader(dec)
	return nil
}

// SetOutput attaches the writer frames are flushed to. A nil writer
// disables rendering, which the tests rely on.
func (e *Editor) SetOutput(w io.Writer) {
	e.out = w
}

// SetSize tells the editor how many text rows and columns it may draw.
// rows excludes the status and message bars.
func (e *Editor) SetSize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	e.maxRow, e.maxCol = rows, cols
}

// SetLogger routes debug output. The default logger discards everything.
func (e *Editor) SetLogger(l *log.Logger) {
	if l != nil {
		e.logf = l
	}
}

// Run drives the session until Ctrl+Q or end of input. Malformed input
// (bad encoding, unrecognized escape sequence) surfaces as a status
// message; the session keeps going.
func (e *Editor) Run() error {
	if e.keys == nil {
		return errors.New("editor: no input attached")
	}
	for !e.quit {
		e.refresh()
		k, err := e.keys.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			if recoverable(err) {
				e.logf.Printf("input error: %v", err)
				e.setMessage("Input error: %v", err)
				continue
			}
			return err
		}
		e.HandleKey(k)
	}
	return nil
}

func recoverable(err error) bool {
	var encErr *reader.EncodingError
	var seqErr *reader.SeqError
	return errors.As(err, &encErr) || errors.As(err, &seqErr)
}

// HandleKey applies a single key to the session state. Rendering is the
// caller's concern.
func (e *Editor) HandleKey(k key.Key) {
	switch k.Kind {
	case key.KindArrow:
		e.moveCursor(k)
	case key.KindFunction, key.KindSpecial:
		// No bindings.
	case key.KindControl:
		switch k.Control {
		case key.Home, key.End:
			e.moveCursor(k)
		case key.PageUp:
			e.pageUp()
		case key.PageDown:
			e.pageDown()
		case key.Backspace:
			e.backspace()
		case key.Delete:
			e.deleteForward()
		case key.CR:
			e.insertNewline()
		case key.Escape:
			// Ignored outside the search prompt.
		case key.CtrlChar:
			switch k.Rune {
			case 'q':
				e.quit = true
			case 's':
				if err := e.save(); err != nil {
					e.setMessage("Error saving file: %v", err)
				}
			case 'f':
				e.find()
			}
		case key.Tab:
			e.insert(k)
		}
	default:
		e.insert(k)
	}
}

// Quit reports whether the session has been asked to stop.
func (e *Editor) Quit() bool { return e.quit }

// Rows returns the current buffer rows.
func (e *Editor) Rows() []*buffer.Row { return e.rows }

// Cursor returns the rendered cursor column and the row index.
func (e *Editor) Cursor() (cx, cy int) { return e.cx, e.cy }

// Offsets returns the viewport's row and column scroll offsets.
func (e *Editor) Offsets() (row, col int) { return e.rowOffset, e.colOffset }

// Dirty reports whether the buffer has unsaved changes.
func (e *Editor) Dirty() bool { return e.dirty }

func (e *Editor) row() *buffer.Row {
	return e.rows[e.cy]
}

func (e *Editor) insert(k key.Key) {
	row := e.row()
	if !row.Insert(e.cx, k) {
		return
	}
	e.cx += k.Width(e.cfg.TabStop)
	e.dirty = true
}

func (e *Editor) insertNewline() {
	tail := e.row().Split(e.cx)
	e.rows = append(e.rows, nil)
	copy(e.rows[e.cy+2:], e.rows[e.cy+1:])
	e.rows[e.cy+1] = tail
	e.cy++
	e.cx = 0
	e.colOffset = 0
	e.dirty = true
}

func (e *Editor) backspace() {
	if e.cx > 0 {
		w := e.row().Backspace(e.cx)
		e.cx -= w
		if w > 0 {
			e.dirty = true
		}
		return
	}
	if e.cy == 0 {
		return
	}
	row := e.rows[e.cy]
	e.cy--
	e.cx = e.row().DisplayLen()
	e.row().Append(row)
	e.rows = append(e.rows[:e.cy+1], e.rows[e.cy+2:]...)
	e.dirty = true
}

func (e *Editor) deleteForward() {
	if e.cx >= e.row().DisplayLen() && e.cy == len(e.rows)-1 {
		return
	}
	e.moveRight()
	e.backspace()
}
