//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package reader

import (
	"testing"
	"time"

	"github.com/creack/pty"

	"github.com/iw2rmb/quill/internal/term"
	"github.com/iw2rmb/quill/key"
)

// TestReadKey_PTY drives the whole input pipeline over a real pty: bytes go
// through the kernel's terminal layer exactly as they would from a user.
func TestReadKey_PTY(t *testing.T) {
	ptm, pts, err := pty.Open()
	if err != nil {
		t.Fatalf("pty.Open: %v", err)
	}
	defer ptm.Close()
	defer pts.Close()

	// The slave side starts in canonical mode, which would buffer input
	// until a newline.
	mode, err := term.Raw(int(pts.Fd()))
	if err != nil {
		t.Fatalf("term.Raw: %v", err)
	}
	defer mode.Restore()

	d, err := NewDecoder("utf-8", NewByteSource(pts))
	if err != nil {
		t.Fatalf("NewDecoder: %v", err)
	}
	kr := NewKeyReader(d)

	if _, err := ptm.Write([]byte("\x1b[A")); err != nil {
		t.Fatalf("write: %v", err)
	}
	k, err := kr.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if want := key.Arrow(key.Up); k != want {
		t.Fatalf("ReadKey=%v, want %v", k, want)
	}

	// A lone escape with nothing after it resolves once the timeout fires.
	if _, err := ptm.Write([]byte{0x1b}); err != nil {
		t.Fatalf("write: %v", err)
	}
	start := time.Now()
	k, err = kr.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if want := key.Control(key.Escape); k != want {
		t.Fatalf("ReadKey=%v, want %v", k, want)
	}
	if elapsed := time.Since(start); elapsed < escSeqTimeout {
		t.Fatalf("lone escape resolved in %v, before the %v window", elapsed, escSeqTimeout)
	}

	if _, err := ptm.Write([]byte("hi")); err != nil {
		t.Fatalf("write: %v", err)
	}
	for _, want := range []key.Key{key.Char('h'), key.Char('i')} {
		k, err := kr.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey: %v", err)
		}
		if k != want {
			t.Fatalf("ReadKey=%v, want %v", k, want)
		}
	}
}
