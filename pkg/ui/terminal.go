package ui

import (
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

var (
	unicodeOnce sync.Once
	unicodeOK   bool
)

// UnicodeTerminal reports whether stdout can render Unicode glyphs.
// Returns false when output is piped, TERM is "dumb", or on Windows
// without Windows Terminal (legacy conhost fonts lack the glyphs).
func UnicodeTerminal() bool {
	unicodeOnce.Do(func() {
		if os.Getenv("TERM") == "dumb" {
			return
		}
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return
		}
		if runtime.GOOS == "windows" {
			unicodeOK = os.Getenv("WT_SESSION") != ""
			return
		}
		unicodeOK = true
	})
	return unicodeOK
}

// Icon returns unicode when the terminal supports it, ascii otherwise.
// Use at every call site that renders a glyph: ui.Icon("✔", "[+]")
func Icon(unicode, ascii string) string {
	if UnicodeTerminal() {
		return unicode
	}
	return ascii
}

// ColorEnabled decides whether styled output should be emitted to w.
// The -no-color flag and the NO_COLOR convention both win over detection;
// otherwise color is on only for a real terminal with a color profile.
func ColorEnabled(w io.Writer, noColorFlag bool) bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if !term.IsTerminal(int(f.Fd())) {
		return false
	}
	return termenv.EnvColorProfile() != termenv.Ascii
}
