package reader

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedEOF reports input that ended in the middle of a
	// multi-byte unit.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrUnsupportedEncoding is returned by NewDecoder for encoding names
	// it does not know.
	ErrUnsupportedEncoding = errors.New("unsupported encoding")

	// errTimeout classifies a look-ahead that lost the race against its
	// timer. It never escapes the package; callers of PeekByte see ok=false.
	errTimeout = errors.New("reader: timed out")
)

// EncodingError reports a byte that cannot be decoded in the active
// encoding. Decoding of the offending unit fails; the caller may continue
// with the following bytes.
type EncodingError struct {
	Encoding string
	Byte     byte
	Pos      int // byte position within the unit being decoded
	Reason   string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("%s: invalid byte 0x%02X at position %d: %s",
		e.Encoding, e.Byte, e.Pos, e.Reason)
}

// SeqError reports an escape sequence with no entry in the key grammar. The
// characters that formed it are re-emitted as literal keys, so the error is
// recoverable.
type SeqError struct {
	Seq string
}

func (e *SeqError) Error() string {
	return fmt.Sprintf("unrecognized escape sequence %q", e.Seq)
}
