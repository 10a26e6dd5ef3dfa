package reader

import (
	"errors"
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

type utf8Decoder struct {
	src *ByteSource
}

func (d *utf8Decoder) Name() string         { return "UTF-8" }
func (d *utf8Decoder) Handoff() *ByteSource { return d.src }
func (d *utf8Decoder) NextIsEsc() bool      { return nextIsEsc(d.src) }

func (d *utf8Decoder) PeekByte(timeout time.Duration) (byte, bool, error) {
	return d.src.PeekByte(timeout)
}

func (d *utf8Decoder) ReadLine() (string, error) {
	return readLine(d.DecodeChar)
}

// byteCount returns the sequence length a UTF-8 leading byte announces, or
// 0 when the byte cannot start a sequence.
func byteCount(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

func isContinuation(b byte) bool { return b&0xC0 == 0x80 }

func (d *utf8Decoder) DecodeChar() (rune, error) {
	lead, err := d.src.ReadByte()
	if err != nil {
		return 0, err
	}

	n := byteCount(lead)
	switch {
	case n == 1:
		return rune(lead), nil
	case n == 0:
		return 0, &EncodingError{
			Encoding: "UTF-8",
			Byte:     lead,
			Pos:      0,
			Reason:   "invalid leading byte",
		}
	}

	// Mask off the length prefix, then fold in six payload bits per
	// continuation byte.
	cp := rune(lead & (0xFF >> (n + 1)))
	for i := 1; i < n; i++ {
		b, err := d.src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, fmt.Errorf("utf-8 continuation byte %d of %d: %w", i, n, ErrUnexpectedEOF)
			}
			return 0, err
		}
		if !isContinuation(b) {
			return 0, &EncodingError{
				Encoding: "UTF-8",
				Byte:     b,
				Pos:      i,
				Reason:   "expected continuation byte (10xxxxxx)",
			}
		}
		cp = cp<<6 | rune(b&0x3F)
	}

	if !utf8.ValidRune(cp) {
		return 0, &EncodingError{
			Encoding: "UTF-8",
			Byte:     lead,
			Pos:      0,
			Reason:   fmt.Sprintf("code point U+%04X is not a Unicode scalar value", cp),
		}
	}
	return cp, nil
}
