package editor

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iw2rmb/quill/buffer"
	"github.com/iw2rmb/quill/key"
	"github.com/iw2rmb/quill/reader"
)

// Load reads path into the buffer through the same decode pipeline the
// keyboard uses. A missing file starts an empty buffer; the file is
// created on the first save.
func (e *Editor) Load(path string) error {
	e.path = path
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.setMessage("New file: %s", path)
			return nil
		}
		return err
	}
	defer f.Close()
	if err := e.load(f); err != nil {
		return err
	}
	e.logf.Printf("loaded %s: %d rows", path, len(e.rows))
	return nil
}

// load rebuilds the buffer from r. LF ends a row and CR is dropped, so
// both Unix and DOS line endings load cleanly. A final line without a
// terminator is kept. Undecodable bytes are skipped, not fatal.
func (e *Editor) load(r io.Reader) error {
	dec, err := reader.NewDecoder(e.cfg.Encoding, reader.NewByteSource(r))
	if err != nil {
		return err
	}
	keys := reader.NewKeyReader(dec)

	rows := []*buffer.Row{buffer.NewRow(nil, e.cfg.TabStop)}
	lastWasLF := false
	for {
		k, err := keys.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if recoverable(err) {
				e.logf.Printf("skipping malformed input: %v", err)
				continue
			}
			return err
		}
		if k.Kind == key.KindControl {
			switch k.Control {
			case key.LF:
				rows = append(rows, buffer.NewRow(nil, e.cfg.TabStop))
				lastWasLF = true
			case key.CR:
				// Dropped; the following LF ends the row.
			case key.Tab:
				last := rows[len(rows)-1]
				last.Insert(last.DisplayLen(), k)
				lastWasLF = false
			}
			continue
		}
		last := rows[len(rows)-1]
		if last.Insert(last.DisplayLen(), k) {
			lastWasLF = false
		}
	}
	if lastWasLF && len(rows) > 1 && rows[len(rows)-1].DisplayLen() == 0 {
		rows = rows[:len(rows)-1]
	}

	e.rows = rows
	e.cx, e.cy = 0, 0
	e.rowOffset, e.colOffset = 0, 0
	e.dirty = false
	return nil
}

// save writes the buffer to its path, one line per row with a trailing
// newline. The write goes to a temp file in the same directory and is
// renamed into place, so a failed save never truncates the original.
func (e *Editor) save() error {
	if e.path == "" {
		e.setMessage("No file name")
		return nil
	}

	dir := filepath.Dir(e.path)
	tmp, err := os.CreateTemp(dir, ".quill-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	n := 0
	for _, row := range e.rows {
		text := row.RawText()
		wrote, err := w.WriteString(text)
		if err != nil {
			tmp.Close()
			return err
		}
		n += wrote
		if err := w.WriteByte('\n'); err != nil {
			tmp.Close()
			return err
		}
		n++
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), e.path); err != nil {
		return err
	}

	e.dirty = false
	e.setMessage("%d bytes written to %s", n, e.path)
	e.logf.Printf("saved %s: %d bytes", e.path, n)
	return nil
}
