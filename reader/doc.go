// Package reader implements the input pipeline: a buffered byte source with
// non-consuming look-ahead, per-encoding character decoders, and the key
// parser that turns decoded characters into semantic key events.
//
// The stages hand data strictly one direction — bytes to characters to keys.
// The only timing-sensitive piece is escape disambiguation: a lone ESC is
// only distinguishable from the start of an escape sequence by racing a
// short timeout against the next byte, and a byte that arrives after the
// race is lost stays buffered for the next read.
package reader
