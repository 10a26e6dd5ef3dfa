package reader

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Decoder turns the byte source into a lazy sequence of Unicode scalar
// values, validating the configured encoding. Implementations are
// stateless per call: every DecodeChar starts at a unit boundary.
type Decoder interface {
	// DecodeChar decodes and consumes one character. io.EOF reports the
	// end of the stream; an *EncodingError reports undecodable input.
	DecodeChar() (rune, error)

	// NextIsEsc reports whether the next byte is 0x1B without consuming it.
	NextIsEsc() bool

	// ReadLine accumulates decoded characters up to a '\n' (consumed, not
	// included), dropping '\r'. io.EOF is returned only when the stream
	// ends before any character is read.
	ReadLine() (string, error)

	// PeekByte exposes the source's raced look-ahead to the key parser.
	PeekByte(timeout time.Duration) (byte, bool, error)

	// Handoff surrenders the underlying byte source, buffered bytes
	// intact, so a new decoder can take over mid-stream.
	Handoff() *ByteSource

	// Name returns the canonical encoding name.
	Name() string
}

// Encodings lists the encoding names NewDecoder accepts.
func Encodings() []string { return []string{"UTF-8", "ASCII"} }

// NewDecoder returns a decoder for the named encoding over src. The name is
// matched case-insensitively; unknown names fail with ErrUnsupportedEncoding.
func NewDecoder(encoding string, src *ByteSource) (Decoder, error) {
	switch strings.ToLower(encoding) {
	case "utf-8", "utf8":
		return &utf8Decoder{src: src}, nil
	case "ascii":
		return &asciiDecoder{src: src}, nil
	default:
		return nil, fmt.Errorf("%w: %q (available: %s)",
			ErrUnsupportedEncoding, encoding, strings.Join(Encodings(), ", "))
	}
}

// Switch returns a decoder for the named encoding backed by d's remaining
// input. Buffered, not-yet-decoded bytes carry over intact. When the name
// already matches d, d itself is returned.
func Switch(d Decoder, encoding string) (Decoder, error) {
	if strings.EqualFold(d.Name(), encoding) {
		return d, nil
	}
	return NewDecoder(encoding, d.Handoff())
}

func nextIsEsc(src *ByteSource) bool {
	b, err := src.Peek(1)
	return err == nil && len(b) == 1 && b[0] == 0x1B
}

// readLine implements the shared line accumulation on top of decode.
func readLine(decode func() (rune, error)) (string, error) {
	var sb strings.Builder
	for {
		r, err := decode()
		if errors.Is(err, io.EOF) {
			if sb.Len() == 0 {
				return "", io.EOF
			}
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		switch r {
		case '\n':
			return sb.String(), nil
		case '\r':
			// Dropped; lines are LF-delimited.
		default:
			sb.WriteRune(r)
		}
	}
}
