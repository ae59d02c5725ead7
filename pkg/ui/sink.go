// Package ui renders scan output to a terminal. All printing goes through
// an explicit Sink so tests can capture output without touching stdout.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Sink is the output stream every print helper writes to. Styling is
// resolved per sink, so a colored terminal sink and a plain test sink can
// coexist in one process.
type Sink struct {
	w       io.Writer
	color   bool
	unicode bool
}

// NewSink returns a sink writing to w, with color and glyph support
// auto-detected from w and the no-color flag.
func NewSink(w io.Writer, noColorFlag bool) *Sink {
	return &Sink{
		w:       w,
		color:   ColorEnabled(w, noColorFlag),
		unicode: UnicodeTerminal(),
	}
}

// NewPlainSink returns a sink that never styles its output and sticks to
// ASCII glyphs. Used in tests and when output is piped.
func NewPlainSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Printf writes formatted text to the sink.
func (s *Sink) Printf(format string, a ...any) {
	fmt.Fprintf(s.w, format, a...)
}

// Println writes a line to the sink.
func (s *Sink) Println(a ...any) {
	fmt.Fprintln(s.w, a...)
}

// Style renders text with st when color is enabled, raw otherwise.
func (s *Sink) Style(st lipgloss.Style, text string) string {
	if !s.color {
		return text
	}
	return st.Render(text)
}

// Icon returns unicode when the sink's terminal can render it, ascii
// otherwise.
func (s *Sink) Icon(unicode, ascii string) string {
	if s.unicode {
		return unicode
	}
	return ascii
}
