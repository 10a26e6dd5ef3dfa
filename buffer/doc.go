// Package buffer implements the line model for Quill.
//
// A Row stores one line of text twice over: raw, the lossless ordered
// sequence of key events exactly as typed, and rendered, the display form
// derived from it (tabs expanded, non-printable keys invisible). Rendered
// positions are 0-based character columns. The two forms are kept
// consistent by construction: all mutation funnels through a small
// operation set that updates both together.
package buffer
