package ui

import (
	"fmt"
	"strings"
)

// ScoreRow is one line of the scores table. Score and Min are on the
// user-facing 0-100 scale.
type ScoreRow struct {
	Title  string
	Score  float64
	Min    float64
	Passed bool
}

// AuditRow is one line of the compact audits table.
type AuditRow struct {
	ID     string
	Status string // "passed", "failed", "not applicable"
}

// Renderer owns the presentation of a scan. It is stateless beyond the sink
// it writes to.
type Renderer struct {
	sink *Sink
}

// NewRenderer returns a renderer writing to sink.
func NewRenderer(sink *Sink) *Renderer {
	return &Renderer{sink: sink}
}

// Banner prints the startup banner.
func (r *Renderer) Banner(version string) {
	r.sink.Println(r.sink.Style(BannerStyle, "lightkeeper") + " " + r.sink.Style(LabelStyle, version))
}

// Progress announces the URL about to be scanned.
func (r *Renderer) Progress(url string) {
	r.sink.Printf("%s %s\n", r.sink.Style(LabelStyle, "Running audit for"), r.sink.Style(URLStyle, url))
}

// Headline prints a category or section headline.
func (r *Renderer) Headline(text string) {
	r.sink.Println()
	r.sink.Println(r.sink.Style(HeadlineStyle, text))
}

// AuditDescription prints one audit for the -showaudits view. Manual audits
// get a warning marker since their score requires human review.
func (r *Renderer) AuditDescription(id, title, description string, manual bool) {
	marker := " "
	if manual {
		marker = r.sink.Style(WarnStyle, r.sink.Icon("⚠", "[!]"))
	}
	r.sink.Printf("%s %s %s\n", marker, r.sink.Style(SubHeadStyle, id), r.sink.Style(ValueStyle, title))
	if description != "" {
		r.sink.Printf("   %s\n", r.sink.Style(DescriptionStyle, description))
	}
}

// ScoreTable prints the category threshold table. Rows are printed in the
// order given; callers sort by title.
func (r *Renderer) ScoreTable(rows []ScoreRow) {
	r.Headline("Scores")
	width := len("Category")
	for _, row := range rows {
		if len(row.Title) > width {
			width = len(row.Title)
		}
	}
	r.sink.Printf("  %s  %s\n",
		r.sink.Style(LabelStyle, pad("Category", width)),
		r.sink.Style(LabelStyle, "Score / Min"))
	for _, row := range rows {
		r.sink.Printf("  %s  %s %s\n",
			pad(row.Title, width),
			fmt.Sprintf("%5.1f / %-5.1f", row.Score, row.Min),
			r.statusGlyph(row.Passed))
	}
}

// AuditTable prints the compact id+glyph table. Rows are printed in the
// order given; callers sort by id.
func (r *Renderer) AuditTable(rows []AuditRow) {
	if len(rows) == 0 {
		return
	}
	width := 0
	for _, row := range rows {
		if len(row.ID) > width {
			width = len(row.ID)
		}
	}
	for _, row := range rows {
		var glyph string
		switch row.Status {
		case "passed":
			glyph = r.sink.Style(PassStyle, r.sink.Icon("✔", "[+]"))
		case "not applicable":
			glyph = r.sink.Style(SkipStyle, r.sink.Icon("–", "[-]"))
		default:
			glyph = r.sink.Style(FailStyle, r.sink.Icon("✖", "[x]"))
		}
		r.sink.Printf("  %s %s\n", pad(row.ID, width), glyph)
	}
}

// Detail prints a pre-rendered JSON detail block for a failed audit.
func (r *Renderer) Detail(id string, data []byte) {
	r.sink.Printf("  %s\n", r.sink.Style(FailStyle, id))
	for _, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		r.sink.Printf("    %s\n", line)
	}
}

// Errorf prints an error line.
func (r *Renderer) Errorf(format string, a ...any) {
	r.sink.Printf("%s %s\n", r.sink.Style(FailStyle, r.sink.Icon("✖", "[x]")), fmt.Sprintf(format, a...))
}

func (r *Renderer) statusGlyph(passed bool) string {
	if passed {
		return r.sink.Style(PassStyle, r.sink.Icon("✔", "[+]"))
	}
	return r.sink.Style(FailStyle, r.sink.Icon("✖", "[x]"))
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
