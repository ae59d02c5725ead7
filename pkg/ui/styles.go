package ui

import "github.com/charmbracelet/lipgloss"

// Color palette. Pass/fail colors match what CI users expect from
// terminal-first audit tools.
var (
	Primary   = lipgloss.Color("#F4B456") // amber - brand color
	Secondary = lipgloss.Color("#00D4AA") // teal

	Pass    = lipgloss.Color("#00D26A") // green
	Fail    = lipgloss.Color("#FF3838") // red
	Warning = lipgloss.Color("#FFB800") // amber
	Info    = lipgloss.Color("#4D96FF") // blue
	Muted   = lipgloss.Color("#6B7280") // gray
)

// Pre-configured styles
var (
	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Category and section headlines. Spacing is the renderer's job so
	// plain and colored output line up.
	HeadlineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	SubHeadStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(Muted)

	URLStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Underline(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(Muted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	PassStyle = lipgloss.NewStyle().
			Foreground(Pass).
			Bold(true)

	FailStyle = lipgloss.NewStyle().
			Foreground(Fail).
			Bold(true)

	SkipStyle = lipgloss.NewStyle().
			Foreground(Muted)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)
)
