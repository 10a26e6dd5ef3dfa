//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

// Command quill is a small terminal text editor.
//
//	quill [-config path] [-encoding name] [-debug path] [file]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/internal/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "quill:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", defaultConfigPath(), "path to the YAML config file")
	encoding := flag.String("encoding", "", "input encoding, overrides the config file")
	debugPath := flag.String("debug", "", "append debug logs to this file")
	flag.Parse()

	cfg, err := editor.LoadConfig(*configPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if *encoding != "" {
		cfg.Encoding = *encoding
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return errors.New("stdin is not a terminal")
	}

	e := editor.New(cfg)
	if *debugPath != "" {
		f, err := os.OpenFile(*debugPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return err
		}
		defer f.Close()
		e.SetLogger(log.New(f, "quill ", log.LstdFlags))
	}

	if err := e.SetInput(os.Stdin); err != nil {
		return err
	}
	e.SetOutput(os.Stdout)

	if rows, cols, err := term.Size(int(os.Stdout.Fd())); err == nil {
		// Two rows are reserved for the status and message bars.
		e.SetSize(rows-2, cols)
	}

	if flag.NArg() > 0 {
		if err := e.Load(flag.Arg(0)); err != nil {
			return err
		}
	}

	mode, err := term.Raw(int(os.Stdin.Fd()))
	if err != nil {
		return err
	}
	defer mode.Restore()

	out := termenv.NewOutput(os.Stdout)
	out.AltScreen()
	defer out.ExitAltScreen()

	return e.Run()
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "quill.yaml"
	}
	return filepath.Join(dir, "quill", "config.yaml")
}
