package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/HaPhanBaoMinh/snode/internal/domain"
)

var (
	Header   = lipgloss.NewStyle().Bold(true)
	Footer   = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	Box      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	Overload = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	Caution  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	Plain    = lipgloss.NewStyle()
	Faint    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C6C6C"))
)

// ForSeverity picks the style of a load cell.
func ForSeverity(s domain.Severity) lipgloss.Style {
	switch s {
	case domain.SeverityOverload:
		return Overload
	case domain.SeverityCaution:
		return Caution
	}
	return Plain
}

// SetColor applies a --color mode: "always", "never" or "auto" (detect the
// terminal on stdout).
func SetColor(mode string) {
	switch mode {
	case "always":
		lipgloss.SetColorProfile(termenv.ANSI)
	case "never":
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
