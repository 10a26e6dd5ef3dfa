package reader

import "time"

type asciiDecoder struct {
	src *ByteSource
}

func (d *asciiDecoder) Name() string         { return "ASCII" }
func (d *asciiDecoder) Handoff() *ByteSource { return d.src }
func (d *asciiDecoder) NextIsEsc() bool      { return nextIsEsc(d.src) }

func (d *asciiDecoder) PeekByte(timeout time.Duration) (byte, bool, error) {
	return d.src.PeekByte(timeout)
}

func (d *asciiDecoder) ReadLine() (string, error) {
	return readLine(d.DecodeChar)
}

func (d *asciiDecoder) DecodeChar() (rune, error) {
	b, err := d.src.ReadByte()
	if err != nil {
		return 0, err
	}
	if b > 127 {
		return 0, &EncodingError{
			Encoding: "ASCII",
			Byte:     b,
			Pos:      0,
			Reason:   "byte is outside the 7-bit range",
		}
	}
	return rune(b), nil
}
