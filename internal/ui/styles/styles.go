// Package styles holds the lipgloss palette and message formatters shared by
// the CLI and the grid view.
package styles

import (
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/lipgloss"
)

// Symbols - Unicode with ASCII fallbacks
const (
	SymbolSuccess   = "✓"
	SymbolError     = "✗"
	SymbolWarning   = "⚠"
	SymbolSortAsc   = "▲"
	SymbolSortDesc  = "▼"
	SymbolPinned    = "⊢"
	SymbolSelected  = "●"
	SymbolUnchecked = "○"
)

var forceNoColor atomic.Bool

// SetNoColor disables colors regardless of the environment (--no-color)
func SetNoColor(v bool) {
	forceNoColor.Store(v)
}

// NoColor checks if colors should be disabled
func NoColor() bool {
	return forceNoColor.Load() || os.Getenv("NO_COLOR") != "" || os.Getenv("VGRID_NO_COLOR") != ""
}

// IsAccessible checks if accessibility mode is enabled
// When enabled: no spinner, ASCII symbols
func IsAccessible() bool {
	return os.Getenv("VGRID_ACCESSIBLE") == "1" || os.Getenv("VGRID_ACCESSIBLE") == "true"
}

// Base text styles
var (
	Bold = lipgloss.NewStyle().Bold(true)
)

// Semantic styles - use these instead of raw colors
var (
	// Message types
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)

	// Grid header
	HeaderStyle        = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	SortedHeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorSorted)
	FocusedHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(ColorFocused)
	SeparatorStyle     = lipgloss.NewStyle().Foreground(Muted)

	// Grid body
	PinnedCellStyle   = lipgloss.NewStyle().Background(BgPinned).Foreground(ColorPinned)
	SelectedRowStyle  = lipgloss.NewStyle().Background(BgHighlight)
	FocusedCellStyle  = lipgloss.NewStyle().Background(Accent).Foreground(lipgloss.Color("#000000"))
	EditingCellStyle  = lipgloss.NewStyle().Foreground(ColorEditing).Underline(true)
	SavingCellStyle   = lipgloss.NewStyle().Foreground(ColorSaving).Italic(true)
	RejectedCellStyle = lipgloss.NewStyle().Foreground(ColorRejected)
	NullStyle         = lipgloss.NewStyle().Foreground(Muted).Italic(true)

	// Diff display
	DiffInsert = lipgloss.NewStyle().Foreground(ColorDiffAdd).Underline(true)
	DiffDelete = lipgloss.NewStyle().Foreground(ColorDiffRemove).Strikethrough(true)

	// Help bar
	HelpKey   = lipgloss.NewStyle().Foreground(Accent)
	HelpValue = lipgloss.NewStyle().Foreground(Muted)
)

// ═══════════════════════════════════════════════════════════════════════════
// Render functions - centralized formatting with NoColor support
// ═══════════════════════════════════════════════════════════════════════════

// Render applies a style if colors are enabled
func Render(s lipgloss.Style, text string) string {
	if NoColor() {
		return text
	}
	return s.Render(text)
}

// SortIndicator returns the header marker of a sorted column. priority is
// shown only when more than one column is sorted.
func SortIndicator(desc bool, priority, keys int) string {
	sym := SymbolSortAsc
	if desc {
		sym = SymbolSortDesc
	}
	if IsAccessible() {
		sym = "^"
		if desc {
			sym = "v"
		}
	}
	if keys > 1 {
		return fmt.Sprintf("%s%d", sym, priority+1)
	}
	return sym
}

// SelectionMark returns the row gutter marker
func SelectionMark(selected bool) string {
	switch {
	case selected && IsAccessible():
		return "*"
	case selected:
		return SymbolSelected
	default:
		return " "
	}
}

// ═══════════════════════════════════════════════════════════════════════════
// Message formatters - structured output
// ═══════════════════════════════════════════════════════════════════════════

// SuccessMsg formats a success message with checkmark
func SuccessMsg(msg string) string {
	symbol := SymbolSuccess
	if NoColor() {
		symbol = "+"
	}
	return fmt.Sprintf("%s %s", Render(SuccessStyle, symbol), msg)
}

// ErrorMsg formats an error message
func ErrorMsg(title string) string {
	return Render(ErrorStyle, "Error: "+title)
}

// WarningMsg formats a warning message
func WarningMsg(msg string) string {
	symbol := SymbolWarning
	if NoColor() {
		symbol = "!"
	}
	return fmt.Sprintf("%s %s", Render(WarningStyle, symbol), msg)
}

// MutedMsg formats muted/secondary text
func MutedMsg(msg string) string {
	return Render(MutedStyle, msg)
}

// SectionHeader formats a section header
func SectionHeader(title string) string {
	return Render(Bold, title)
}

// HelpBar joins key/description pairs into a single footer line
func HelpBar(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, Render(HelpKey, pairs[i])+" "+Render(HelpValue, pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}

// Indent returns text indented by n spaces
func Indent(text string, n int) string {
	prefix := strings.Repeat(" ", n)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func Mute(s string) string      { return Render(MutedStyle, s) }
func ErrorText(s string) string { return Render(ErrorStyle, s) }

// Printf-style color functions
func Mutef(format string, a ...any) string { return Mute(fmt.Sprintf(format, a...)) }
