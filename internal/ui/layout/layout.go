package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidquest/internal/ui/theme"
)

// Smallest terminal the app renders into.
const (
	MinWidth  = 80
	MinHeight = 24
)

const (
	compactWidth  = 100
	compactHeight = 30
)

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsCompactWidth returns true if the terminal width is in compact range.
func IsCompactWidth(width int) bool {
	return width < compactWidth
}

// IsCompactHeight returns true if the terminal height is in compact range.
func IsCompactHeight(height int) bool {
	return height < compactHeight
}

// IsTooSmall returns true if the terminal is below minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage renders the "terminal too small" message.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf("The map needs more room.\n\nResize to at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height))
}

// RenderHeader renders the application header bar. status is shown on
// the right and may be empty.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("  KidQuest")

	center := lipgloss.NewStyle().
		Foreground(theme.Text).
		Render(title)

	right := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Render(status)

	// The title is centred in the space inside the border.
	inner := max(0, width-4)
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	gapL := max(1, (inner-cw)/2-lw)
	gapR := max(1, inner-lw-gapL-cw-rw)

	return barStyle(width).Render(left + strings.Repeat(" ", gapL) + center + strings.Repeat(" ", gapR) + right)
}

func barStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFooter renders the footer with key hints. When the hints do not
// fit, hints before the last one are dropped from the end so the final
// hint (quit) stays visible.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		part := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(h.Key) +
			" " +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(h.Description)
		parts = append(parts, part)
	}

	const sep = "   "
	content := "  " + strings.Join(parts, sep)
	for len(parts) > 1 && lipgloss.Width(content) > width-2 {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
		content = "  " + strings.Join(parts, sep)
	}

	return barStyle(width).Render(content)
}

// RenderFrame stacks header, content and footer, sizing the content to
// fill whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := lipgloss.NewStyle().
		Width(width).
		Height(max(0, height-lipgloss.Height(header)-lipgloss.Height(footer))).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
