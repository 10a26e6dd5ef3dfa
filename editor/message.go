package editor

import (
	"fmt"
	"time"
)

// messageTimeout is how long a status message stays visible.
const messageTimeout = 5 * time.Second

type message struct {
	text string
	when time.Time
}

func (m message) expired(now time.Time) bool {
	return m.text == "" || now.Sub(m.when) > messageTimeout
}

func (e *Editor) setMessage(format string, args ...any) {
	e.msg = message{text: fmt.Sprintf(format, args...), when: time.Now()}
}

func (e *Editor) clearMessage() {
	e.msg = message{}
}
