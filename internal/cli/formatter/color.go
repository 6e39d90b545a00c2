package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/coursedraft/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OutcomeStyle picks the color for a recorded save outcome.
func OutcomeStyle(o domain.SaveOutcome) lipgloss.Style {
	switch o {
	case domain.OutcomeSaved:
		return StyleGreen
	case domain.OutcomeRejected:
		return StyleYellow
	case domain.OutcomeFailed:
		return StyleRed
	default:
		return StyleDim
	}
}

// OutcomeIndicator returns a colored marker such as "● SAVED".
func OutcomeIndicator(o domain.SaveOutcome) string {
	switch o {
	case domain.OutcomeSaved:
		return StyleGreen.Render("● SAVED")
	case domain.OutcomeRejected:
		return StyleYellow.Render("▲ REJECTED")
	case domain.OutcomeFailed:
		return StyleRed.Render("✖ FAILED")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(o)))
	}
}

// Header renders an uppercase heading with a dim underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
