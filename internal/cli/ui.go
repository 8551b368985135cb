package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/Alrudin/fromto/pkg/mermaid"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorGreen = lipgloss.Color("35")  // Green - success
	colorDim   = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
)

const iconSuccess = "✓"

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleSuccess.Render(iconSuccess) + " " + msg)
}

// printDiagramStats prints a one-line build summary.
func printDiagramStats(s mermaid.Stats) {
	parts := []string{
		fmt.Sprintf("%d nodes", s.Nodes),
		fmt.Sprintf("%d groups", s.Groups),
	}
	if s.Collapsed > 0 {
		parts = append(parts, fmt.Sprintf("%d collapsed", s.Collapsed))
	}
	if s.Unclassified > 0 {
		parts = append(parts, fmt.Sprintf("%d unclassified", s.Unclassified))
	}
	parts = append(parts, fmt.Sprintf("%d edges", s.Edges))
	if s.EdgesDropped > 0 {
		parts = append(parts, fmt.Sprintf("%d dropped", s.EdgesDropped))
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += styleDim.Render(" · ")
		}
		line += styleDim.Render(part)
	}
	fmt.Println(line)
}
