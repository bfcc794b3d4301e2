// Package style provides shared UI styling primitives including brand colors
// and icons for consistent visual presentation across the CLI.
package style

import "github.com/charmbracelet/lipgloss"

// Brand Colors.
var (
	Slate  = lipgloss.Color("#667085")
	Teal   = lipgloss.Color("#0E9888")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Toolchain listing styles.
var (
	// VersionStyle renders a toolchain version in the listing.
	VersionStyle = lipgloss.NewStyle().Bold(true).Foreground(Teal)

	// NoteStyle renders the platform-compatibility note.
	NoteStyle = lipgloss.NewStyle().Foreground(Slate)
)
