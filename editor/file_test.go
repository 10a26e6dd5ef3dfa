package editor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadSplitsOnLF(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Load(writeFile(t, "f.txt", "one\ntwo\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := strings.Join(rawLines(e), "|"), "one|two"; got != want {
		t.Fatalf("rows=%q, want %q", got, want)
	}
	if e.Dirty() {
		t.Fatalf("freshly loaded buffer is dirty")
	}
}

func TestLoadDropsCR(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Load(writeFile(t, "f.txt", "one\r\ntwo\r\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := strings.Join(rawLines(e), "|"), "one|two"; got != want {
		t.Fatalf("rows=%q, want %q", got, want)
	}
}

func TestLoadKeepsUnterminatedFinalLine(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Load(writeFile(t, "f.txt", "one\ntwo")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := strings.Join(rawLines(e), "|"), "one|two"; got != want {
		t.Fatalf("rows=%q, want %q", got, want)
	}
}

func TestLoadKeepsEmptyInteriorLines(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Load(writeFile(t, "f.txt", "one\n\ntwo\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := strings.Join(rawLines(e), "|"), "one||two"; got != want {
		t.Fatalf("rows=%q, want %q", got, want)
	}
}

func TestLoadPreservesTabs(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.Load(writeFile(t, "f.txt", "\tindented\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := e.row().RawText(), "\tindented"; got != want {
		t.Fatalf("raw=%q, want %q (tab expanded on load?)", got, want)
	}
	if got, want := e.row().Rendered(), "    indented"; got != want {
		t.Fatalf("rendered=%q, want %q", got, want)
	}
}

func TestLoadSkipsUndecodableBytes(t *testing.T) {
	e := New(Config{TabStop: 4, Encoding: "ascii"})
	if err := e.Load(writeFile(t, "f.txt", "a\xffb\n")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := e.row().RawText(), "ab"; got != want {
		t.Fatalf("raw=%q, want %q", got, want)
	}
}

func TestLoadMissingFileStartsEmptyBuffer(t *testing.T) {
	e := New(DefaultConfig())
	path := filepath.Join(t.TempDir(), "new.txt")
	if err := e.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(e.Rows()) != 1 || e.row().DisplayLen() != 0 {
		t.Fatalf("missing file did not start an empty buffer")
	}
	if e.msg.text == "" {
		t.Fatalf("no new-file message")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := writeFile(t, "f.txt", "a\tb\nc\n")
	e := New(DefaultConfig())
	if err := e.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	e.dirty = true
	if err := e.save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got, want := string(data), "a\tb\nc\n"; got != want {
		t.Fatalf("file=%q, want %q", got, want)
	}
	if e.Dirty() {
		t.Fatalf("save left the buffer dirty")
	}
}

func TestSaveAddsFinalNewline(t *testing.T) {
	path := writeFile(t, "f.txt", "unterminated")
	e := New(DefaultConfig())
	if err := e.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := e.save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, _ := os.ReadFile(path)
	if got, want := string(data), "unterminated\n"; got != want {
		t.Fatalf("file=%q, want %q", got, want)
	}
}

func TestSaveWithoutPathOnlyWarns(t *testing.T) {
	e := New(DefaultConfig())
	if err := e.save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	if e.msg.text == "" {
		t.Fatalf("no file name warning missing")
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")
	e := New(DefaultConfig())
	if err := e.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	e.HandleKey(keysFromString("x")[0])
	if err := e.save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "f.txt" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}

func TestRefreshDrawsStatusAndTildes(t *testing.T) {
	e := New(DefaultConfig())
	e.SetSize(4, 40)
	var out bytes.Buffer
	e.SetOutput(&out)
	e.refresh()

	frame := out.String()
	if !strings.Contains(frame, "~") {
		t.Fatalf("frame has no tilde rows: %q", frame)
	}
	if !strings.Contains(frame, "[No Name]") {
		t.Fatalf("frame has no status bar: %q", frame)
	}
	if !strings.Contains(frame, "Ln 1/1, Col 1") {
		t.Fatalf("frame has no position indicator: %q", frame)
	}
}
