//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// Package term owns the process-wide terminal mode as an explicitly scoped
// resource: Raw acquires it, Restore releases it, and every exit path of the
// session is expected to run Restore.
package term

import (
	"golang.org/x/sys/unix"
)

// Mode holds the saved terminal state needed to undo Raw.
type Mode struct {
	fd    int
	saved unix.Termios
}

// Raw switches fd into raw mode: no echo, no line buffering, no signal or
// flow-control processing, reads returning as soon as one byte is available.
func Raw(fd int) (*Mode, error) {
	t, err := unix.IoctlGetTermios(fd, getTermios)
	if err != nil {
		return nil, err
	}
	saved := *t

	t.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Cflag |= unix.CS8
	t.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, setTermios, t); err != nil {
		return nil, err
	}
	return &Mode{fd: fd, saved: saved}, nil
}

// Restore puts the terminal back into the state captured by Raw. It is safe
// to call more than once.
func (m *Mode) Restore() error {
	saved := m.saved
	return unix.IoctlSetTermios(m.fd, setTermios, &saved)
}

// Size reports the terminal dimensions in character cells.
func Size(fd int) (rows, cols int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Row), int(ws.Col), nil
}
