package mapquiz

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kidquest/internal/geo"
	"github.com/abhisek/kidquest/internal/ui/theme"
)

// renderMiniMap plots each region's bounding-box centre on an
// equirectangular character grid. The target is never highlighted.
func renderMiniMap(regions []geo.Region, snap geo.Snapshot, selected string, width, height int) string {
	if width < 4 || height < 3 {
		return ""
	}
	inner, rows := width-2, height-2

	revealed := make(map[string]bool, len(snap.Revealed))
	for _, n := range snap.Revealed {
		revealed[n] = true
	}

	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, inner)
		for x := range grid[y] {
			grid[y][x] = " "
		}
	}

	for _, r := range regions {
		if r.Geometry == nil {
			continue
		}
		c := r.Geometry.Bound().Center()
		x, y := project(c.Lon(), c.Lat(), inner, rows)

		// The selected region wins a shared cell.
		if grid[y][x] != " " && r.Name != selected {
			continue
		}
		switch {
		case r.Name == selected:
			grid[y][x] = theme.Cursor.Render("◆")
		case r.Name == snap.LastWrong:
			grid[y][x] = theme.Missed.Render("✗")
		case revealed[r.Name]:
			grid[y][x] = theme.Found.Render("●")
		default:
			grid[y][x] = theme.Unfound.Render("○")
		}
	}

	lines := make([]string, rows)
	for y, cells := range grid {
		lines[y] = strings.Join(cells, "")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(strings.Join(lines, "\n"))
}

// project maps lon/lat onto a grid cell, clamped to the grid.
func project(lon, lat float64, width, height int) (x, y int) {
	x = int((lon + 180) / 360 * float64(width-1))
	y = int((90 - lat) / 180 * float64(height-1))
	return clamp(x, 0, width-1), clamp(y, 0, height-1)
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
