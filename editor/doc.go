// Package editor runs an interactive editing session over a decoded key
// stream: a slice of buffer rows, a cursor that only rests on key
// boundaries, a scrolling viewport, and a transient status message.
//
// The editor owns no terminal state. Callers hand it an input reader and
// an output writer (see SetInput and SetOutput); cmd/quill wires those to
// a raw-mode tty.
package editor
