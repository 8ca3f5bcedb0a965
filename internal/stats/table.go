package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// column describes one plain-text table column.
type column struct {
	title string
	right bool
	// max caps the column width; zero means unlimited.
	max int
}

// formatTable lays rows out under cols, padding by display width so wide
// runes stay aligned. Cells wider than a column's cap are truncated.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = displayWidth(c.title)
	}
	for _, row := range rows {
		for i := range cols {
			if w := displayWidth(cellAt(row, i)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, c := range cols {
		if c.max > 0 && widths[i] > c.max {
			widths[i] = c.max
		}
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.title
	}
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, formatRow(cols, widths, header))
	for _, row := range rows {
		lines = append(lines, formatRow(cols, widths, row))
	}
	return lines
}

func formatRow(cols []column, widths []int, row []string) string {
	cells := make([]string, len(cols))
	for i, c := range cols {
		cell := runewidth.Truncate(cellAt(row, i), widths[i], "…")
		if c.right {
			cells[i] = runewidth.FillLeft(cell, widths[i])
		} else {
			cells[i] = runewidth.FillRight(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(cells, "  "), " ")
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func displayWidth(value string) int {
	return runewidth.StringWidth(value)
}
