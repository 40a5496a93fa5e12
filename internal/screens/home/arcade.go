package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidquest/internal/ui/components"
	"github.com/abhisek/kidquest/internal/ui/theme"
)

// Block-letter title.
const arcadeTitleFull = ` ██╗  ██╗██╗██████╗  ██████╗ ██╗   ██╗███████╗███████╗████████╗
 ██║ ██╔╝██║██╔══██╗██╔═══██╗██║   ██║██╔════╝██╔════╝╚══██╔══╝
 █████╔╝ ██║██║  ██║██║   ██║██║   ██║█████╗  ███████╗   ██║
 ██╔═██╗ ██║██║  ██║██║▄▄ ██║██║   ██║██╔══╝  ╚════██║   ██║
 ██║  ██╗██║██████╔╝╚██████╔╝╚██████╔╝███████╗███████║   ██║
 ╚═╝  ╚═╝╚═╝╚═════╝  ╚══▀▀═╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝`

const arcadeTitleCompact = "K · I · D · Q · U · E · S · T"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(arcadeTitleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(arcadeTitleFull))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(completed, total, categories, cw int, compact bool) string {
	doneStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	catStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	cats := catStyle
	if categories == 0 {
		cats = dimStyle
	}

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s",
			doneStyle.Render(fmt.Sprintf("✓%d/%d", completed, total)),
			cats.Render(fmt.Sprintf("★%d", categories)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s",
			doneStyle.Render(fmt.Sprintf("✓ %d/%d CHALLENGES", completed, total)),
			cats.Render(fmt.Sprintf("★ %d CATEGORIES DONE", categories)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	var buttons []string
	for i, label := range items {
		state := components.ButtonNormal
		switch {
		case disabled[i]:
			state = components.ButtonDisabled
		case i == selected:
			state = components.ButtonSelected
		}
		buttons = append(buttons, components.ArcadeButton(label, state, buttonWidth))
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox renders the mascot centered in a box matching content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant) + "\n" + theme.Hint.Render(MascotSpeech(variant)))
}
