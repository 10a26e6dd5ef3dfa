package reader

import (
	"errors"
	"io"
	"time"
)

// chunkSize is how much is requested from the underlying input per read.
const chunkSize = 1024

// ByteSource adapts a sequential byte input into a buffered stream with
// consuming reads, non-consuming look-ahead, and a timeout-bounded raced
// read for escape disambiguation.
//
// Reads from the underlying input happen on a single background goroutine
// so they can be raced against a timer without being cancelled: a read that
// loses the race keeps running, and its bytes are appended to the buffer on
// the next call. Bytes are never dropped and arrive strictly in order.
//
// A ByteSource is not safe for concurrent use; the editor consumes input
// from a single goroutine.
type ByteSource struct {
	r     io.Reader
	buf   []byte
	fills chan fillResult
	// pending is true while a background read is outstanding.
	pending bool
	// err is sticky and surfaces once buf has drained.
	err error
}

type fillResult struct {
	data []byte
	err  error
}

// NewByteSource returns a ByteSource reading from r.
func NewByteSource(r io.Reader) *ByteSource {
	return &ByteSource{r: r, fills: make(chan fillResult, 1)}
}

// ReadByte consumes and returns the next byte, blocking until data arrives.
// io.EOF reports the end of the stream.
func (s *ByteSource) ReadByte() (byte, error) {
	for len(s.buf) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		if err := s.await(-1); err != nil {
			return 0, err
		}
	}
	b := s.buf[0]
	s.buf = s.buf[1:]
	return b, nil
}

// Peek returns up to n buffered bytes without consuming them, reading from
// the underlying input as needed. At end of stream it returns fewer than n
// bytes rather than an error. The returned slice is valid until the next
// read.
func (s *ByteSource) Peek(n int) ([]byte, error) {
	if n > chunkSize {
		n = chunkSize
	}
	for len(s.buf) < n && s.err == nil {
		if err := s.await(-1); err != nil {
			return nil, err
		}
	}
	if s.err != nil && !errors.Is(s.err, io.EOF) && len(s.buf) == 0 {
		return nil, s.err
	}
	if n > len(s.buf) {
		n = len(s.buf)
	}
	return s.buf[:n], nil
}

// PeekByte waits up to timeout for at least one buffered byte and returns
// it without consuming. ok is false with a nil error when the timer wins
// the race; the losing read keeps its bytes for the next call.
func (s *ByteSource) PeekByte(timeout time.Duration) (byte, bool, error) {
	for len(s.buf) == 0 {
		if s.err != nil {
			return 0, false, s.err
		}
		if err := s.await(timeout); err != nil {
			if errors.Is(err, errTimeout) {
				return 0, false, nil
			}
			return 0, false, err
		}
	}
	return s.buf[0], true, nil
}

// Buffered returns the number of bytes available without touching the
// underlying input.
func (s *ByteSource) Buffered() int { return len(s.buf) }

// startFill launches a background read unless one is already outstanding.
func (s *ByteSource) startFill() {
	if s.pending || s.err != nil {
		return
	}
	s.pending = true
	r := s.r
	fills := s.fills
	go func() {
		chunk := make([]byte, chunkSize)
		n, err := r.Read(chunk)
		fills <- fillResult{data: chunk[:n], err: err}
	}()
}

// await blocks until the outstanding read completes, or until the timeout
// fires when timeout is non-negative.
func (s *ByteSource) await(timeout time.Duration) error {
	s.startFill()
	if timeout < 0 {
		s.accept(<-s.fills)
		return nil
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case f := <-s.fills:
		s.accept(f)
		return nil
	case <-t.C:
		return errTimeout
	}
}

func (s *ByteSource) accept(f fillResult) {
	s.pending = false
	s.buf = append(s.buf, f.data...)
	if f.err != nil {
		s.err = f.err
	}
}
