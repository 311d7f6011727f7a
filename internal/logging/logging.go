// Package logging configures the global slog logger for the clipper binary.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pwntr/tinter"
)

// ParseLevel converts a string to a slog.Level, defaulting to Info for
// empty or unknown values.
func ParseLevel(s string) slog.Level {
	if s == "" {
		return slog.LevelInfo
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Setup configures the global slog logger: tinted human-readable output when
// stderr is a terminal, JSON otherwise (or always JSON when jsonOut is set).
// Call once after flag parsing.
func Setup(level slog.Level, jsonOut bool) {
	w := os.Stderr

	var h slog.Handler
	if jsonOut || !IsTTY(w) {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	} else {
		h = tinter.NewHandler(w, &tinter.Options{
			Level:      level,
			TimeFormat: "15:04:05.000",
		})
	}
	slog.SetDefault(slog.New(h))
}
