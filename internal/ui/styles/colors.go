package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
// Dark mode optimized, semantic colors
var (
	// Primary semantic colors
	Accent  = lipgloss.Color("#7C3AED") // violet-500 - focus, interactive
	Success = lipgloss.Color("#10B981") // emerald-500 - persisted edits, insertions
	Warning = lipgloss.Color("#F59E0B") // amber-500 - pending saves
	Error   = lipgloss.Color("#EF4444") // red-500 - rejected edits, deletions
	Info    = lipgloss.Color("#3B82F6") // blue-500 - headers
	Muted   = lipgloss.Color("#6B7280") // gray-500 - secondary text

	// Text colors
	TextPrimary   = lipgloss.Color("#F9FAFB") // gray-50 - main text
	TextSecondary = lipgloss.Color("#9CA3AF") // gray-400 - descriptions

	// Background colors
	BgHighlight = lipgloss.Color("#1F2937") // gray-800 - selected rows
	BgBorder    = lipgloss.Color("#374151") // gray-700 - borders
	BgPinned    = lipgloss.Color("#111827") // gray-900 - sticky columns
)

// Semantic color aliases for clarity
var (
	// Column header colors
	ColorHeader  = Info
	ColorSorted  = Accent
	ColorPinned  = TextSecondary
	ColorFocused = Accent

	// Cell edit colors
	ColorEditing  = Warning
	ColorSaving   = Muted
	ColorRejected = Error

	// Diff colors
	ColorDiffAdd    = Success
	ColorDiffRemove = Error
)
