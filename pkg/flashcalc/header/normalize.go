// Package header flattens multi-row source-sheet headers into single
// canonical column names.
package header

import "strings"

// Normalize produces one canonical column name per data column from one or
// two raw header rows. A two-level header "期末余额" / "借方" becomes
// "期末余额_借方"; a single-level header is used verbatim. Merged group
// cells surface their text only in the first column of the span, so the
// group label carries forward across columns whose top cell is empty while
// a sub-label is present. An empty sub-label falls back to the group label
// alone. Pure function of the header rows.
func Normalize(headerRows [][]string) []string {
	if len(headerRows) == 0 {
		return nil
	}

	width := 0
	for _, row := range headerRows {
		if len(row) > width {
			width = len(row)
		}
	}

	names := make([]string, width)
	group := ""
	for col := 0; col < width; col++ {
		level1 := cellAt(headerRows, 0, col)
		level2 := cellAt(headerRows, 1, col)

		if level1 != "" {
			group = level1
		}

		switch {
		case level1 != "" && level2 != "":
			names[col] = level1 + "_" + level2
		case level1 == "" && level2 != "" && group != "":
			names[col] = group + "_" + level2
		case level2 != "":
			names[col] = level2
		default:
			names[col] = level1
		}
	}
	return names
}

func cellAt(rows [][]string, row, col int) string {
	if row >= len(rows) || col >= len(rows[row]) {
		return ""
	}
	return strings.TrimSpace(rows[row][col])
}
