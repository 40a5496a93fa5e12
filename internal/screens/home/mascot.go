package home

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidquest/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // purple, some progress
	MascotCelebrating                      // gold with star eyes: a category is done
	MascotAlert                            // orange with "!": nothing played yet
)

type mascot struct {
	art    string
	color  color.Color
	speech string
}

var mascots = map[MascotVariant]mascot{
	MascotIdle: {
		art: `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ 1+2 │
└─────┘`,
		color:  theme.Primary,
		speech: "Ready for the next challenge?",
	},
	MascotCelebrating: {
		art: `┌─────┐
│ ★ ★ │
│  ▿  │
│ 1+2 │
└─╥═╥─┘
  ╚═╝`,
		color:  theme.ArcadeYellow,
		speech: "Whole category done. Amazing!",
	},
	MascotAlert: {
		art: `┌─────┐
│ ◉ ◉ │ !
│  ▽  │
│ 1+2 │
└─────┘`,
		color:  theme.Accent,
		speech: "Hi! Pick CURRICULUM to start.",
	},
}

func mascotOf(variants []MascotVariant) mascot {
	if len(variants) > 0 {
		if m, ok := mascots[variants[0]]; ok {
			return m
		}
	}
	return mascots[MascotIdle]
}

// RenderMascot returns the mascot ASCII art for the given variant.
func RenderMascot(variant ...MascotVariant) string {
	m := mascotOf(variant)
	return lipgloss.NewStyle().Foreground(m.color).Render(m.art)
}

// MascotSpeech returns what the mascot says for the given variant.
func MascotSpeech(variant ...MascotVariant) string {
	return mascotOf(variant).speech
}
