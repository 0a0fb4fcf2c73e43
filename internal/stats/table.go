package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// alignRows pads each cell to the widest cell of its column, measured in
// terminal cells. Columns marked in right are right-aligned.
func alignRows(rows [][]string, right map[int]bool) []string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(widths))
		for i, w := range widths {
			var cell string
			if i < len(row) {
				cell = row[i]
			}
			if right[i] {
				cells[i] = runewidth.FillLeft(cell, w)
			} else {
				cells[i] = runewidth.FillRight(cell, w)
			}
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return lines
}
