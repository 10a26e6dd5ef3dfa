package reader

import (
	"time"

	"github.com/iw2rmb/quill/key"
)

const esc = 0x1B

// escSeqTimeout bounds the wait for the next character of a candidate
// escape sequence. Terminal emulators send sequences in one burst, so 10ms
// is more than sufficient; a slower gap means the user pressed Escape.
const escSeqTimeout = 10 * time.Millisecond

// maxSeqLen caps a candidate sequence. A buffer that grows this long
// without resolving is flushed as literal keys.
const maxSeqLen = 16

// KeyReader consumes decoded characters and produces semantic key events,
// resolving control characters and ANSI escape sequences. It is lazy and
// restartable: abandoning a candidate sequence re-emits its characters as
// literal keys and never discards unconsumed bytes.
type KeyReader struct {
	dec     Decoder
	timeout time.Duration
	// queue holds literal keys flushed from an abandoned sequence.
	queue []key.Key
}

// NewKeyReader returns a KeyReader over d.
func NewKeyReader(d Decoder) *KeyReader {
	return &KeyReader{dec: d, timeout: escSeqTimeout}
}

// ReadKey returns the next key event. io.EOF reports the end of input. An
// invalid escape sequence is reported as a *SeqError; the characters that
// formed it are then returned as literal keys by the following calls.
func (kr *KeyReader) ReadKey() (key.Key, error) {
	if len(kr.queue) > 0 {
		k := kr.queue[0]
		kr.queue = kr.queue[1:]
		return k, nil
	}

	r, err := kr.dec.DecodeChar()
	if err != nil {
		return key.Key{}, err
	}
	if r != esc {
		return literalKey(r), nil
	}
	return kr.collect()
}

// collect runs the Collecting state: race the timeout against the next
// character, abandon on timeout, a following ESC, end of input, or the
// length cap, and resolve as soon as the grammar matches.
func (kr *KeyReader) collect() (key.Key, error) {
	seq := []rune{esc}
	var seqErr error

	for {
		b, ok, err := kr.dec.PeekByte(kr.timeout)
		if err != nil || !ok {
			// End of input or a lost race: a lone sequence.
			break
		}
		if b == esc {
			// A new sequence is starting; this one cannot resolve.
			break
		}

		r, err := kr.dec.DecodeChar()
		if err != nil {
			break
		}
		seq = append(seq, r)

		k, resolved, err := parseEscape(seq)
		if err != nil {
			seqErr = err
			break
		}
		if resolved {
			return k, nil
		}
		if len(seq) >= maxSeqLen {
			break
		}
	}

	for _, r := range seq {
		kr.queue = append(kr.queue, literalKey(r))
	}
	if seqErr != nil {
		return key.Key{}, seqErr
	}
	k := kr.queue[0]
	kr.queue = kr.queue[1:]
	return k, nil
}

// parseEscape attempts to match seq (starting with ESC) against the
// sequence grammar. resolved is false while seq is still a valid prefix.
func parseEscape(seq []rune) (k key.Key, resolved bool, err error) {
	if len(seq) < 2 {
		return key.Key{}, false, nil
	}
	switch seq[1] {
	case '[':
		return parseCSI(seq)
	case 'O':
		return parseSS3(seq)
	default:
		return key.Key{}, false, &SeqError{Seq: string(seq)}
	}
}

func parseCSI(seq []rune) (key.Key, bool, error) {
	if len(seq) < 3 {
		return key.Key{}, false, nil
	}
	switch c := seq[2]; {
	case c == 'A':
		return key.Arrow(key.Up), true, nil
	case c == 'B':
		return key.Arrow(key.Down), true, nil
	case c == 'C':
		return key.Arrow(key.Right), true, nil
	case c == 'D':
		return key.Arrow(key.Left), true, nil
	case c == 'H':
		return key.Control(key.Home), true, nil
	case c == 'F':
		return key.Control(key.End), true, nil
	case c >= '0' && c <= '9':
		return parseCSINumber(seq)
	default:
		return key.Key{}, false, &SeqError{Seq: string(seq)}
	}
}

// csiTilde resolves "ESC [ <n> ~" sequences. 16 and 22 are unused.
var csiTilde = map[int]key.Key{
	1:  key.Control(key.Home),
	2:  key.Control(key.Insert),
	3:  key.Control(key.Delete),
	4:  key.Control(key.End),
	5:  key.Control(key.PageUp),
	6:  key.Control(key.PageDown),
	11: key.Fn(1),
	12: key.Fn(2),
	13: key.Fn(3),
	14: key.Fn(4),
	15: key.Fn(5),
	17: key.Fn(6),
	18: key.Fn(7),
	19: key.Fn(8),
	20: key.Fn(9),
	21: key.Fn(10),
	23: key.Fn(11),
	24: key.Fn(12),
}

func parseCSINumber(seq []rune) (key.Key, bool, error) {
	// ESC [ <digits> ~ — everything between the bracket and the tilde must
	// be a digit.
	n := 0
	for i, r := range seq[2:] {
		switch {
		case r >= '0' && r <= '9':
			n = n*10 + int(r-'0')
		case r == '~':
			if i != len(seq[2:])-1 {
				return key.Key{}, false, &SeqError{Seq: string(seq)}
			}
			if k, ok := csiTilde[n]; ok {
				return k, true, nil
			}
			return key.Key{}, false, &SeqError{Seq: string(seq)}
		default:
			return key.Key{}, false, &SeqError{Seq: string(seq)}
		}
	}
	return key.Key{}, false, nil
}

func parseSS3(seq []rune) (key.Key, bool, error) {
	if len(seq) < 3 {
		return key.Key{}, false, nil
	}
	switch seq[2] {
	case 'P':
		return key.Fn(1), true, nil
	case 'Q':
		return key.Fn(2), true, nil
	case 'R':
		return key.Fn(3), true, nil
	case 'S':
		return key.Fn(4), true, nil
	default:
		return key.Key{}, false, &SeqError{Seq: string(seq)}
	}
}

// literalKey maps a character outside any escape sequence to its key event.
func literalKey(r rune) key.Key {
	switch r {
	case esc:
		return key.Control(key.Escape)
	case '\r':
		return key.Control(key.CR)
	case '\n':
		return key.Control(key.LF)
	case '\t':
		return key.Control(key.Tab)
	case 0x7F:
		return key.Control(key.Delete)
	}
	if r < 0x20 {
		return key.Ctrl(ctrlBase(r))
	}
	return key.Char(r)
}

// ctrlBase undoes the terminal's control transform, recovering the base
// character of a Ctrl chord.
func ctrlBase(r rune) rune {
	switch {
	case r == 0:
		return '@'
	case r <= 26:
		return 'a' + r - 1
	case r == 27:
		return '['
	case r == 28:
		return '\\'
	case r == 29:
		return ']'
	case r == 30:
		return '^'
	default: // 31
		return '_'
	}
}
