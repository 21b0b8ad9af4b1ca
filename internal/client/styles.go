package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/MKhiriev/pass-guard/internal/generator"
)

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)

	indicatorColors = map[string]lipgloss.Color{
		"gray":       lipgloss.Color("8"),
		"red":        lipgloss.Color("9"),
		"orange":     lipgloss.Color("208"),
		"yellow":     lipgloss.Color("11"),
		"green":      lipgloss.Color("10"),
		"dark-green": lipgloss.Color("28"),
	}
)

// renderStrength draws a score bar and label in the strength's indicator
// color.
func renderStrength(s generator.Strength) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(indicatorColors[s.Indicator])
	bar := strings.Repeat("■", s.Score) + strings.Repeat("□", generator.MaxScore-s.Score)

	return fmt.Sprintf("%s %s %s", labelStyle.Render("Strength:"), style.Render(bar), style.Render(s.Label))
}
