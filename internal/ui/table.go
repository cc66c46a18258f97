package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"tubescout/internal/table"
)

const maxCellWidth = 48

var countColumns = map[string]bool{
	"Views":       true,
	"Likes":       true,
	"Subscribers": true,
	"Total Views": true,
	"Videos":      true,
	"Count":       true,
}

// Table renders records with a header row taken from the first record.
// Columns listed in hide are left out.
func Table(records []table.Record, hide ...string) string {
	if len(records) == 0 {
		return ""
	}

	hidden := make(map[string]bool, len(hide))
	for _, h := range hide {
		hidden[h] = true
	}

	var headers []string
	var keep []int
	for i, name := range records[0].Names() {
		if hidden[name] {
			continue
		}
		headers = append(headers, name)
		keep = append(keep, i)
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, 0, len(keep))
		for _, i := range keep {
			if i >= len(r) {
				row = append(row, "")
				continue
			}
			row = append(row, cell(r[i]))
		}
		rows = append(rows, row)
	}

	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			if col < len(headers) && countColumns[headers[col]] {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	return t.String()
}

func cell(f table.Field) string {
	if countColumns[f.Name] {
		if n, err := strconv.ParseInt(f.Value, 10, 64); err == nil {
			return humanize.Comma(n)
		}
	}
	return Truncate(strings.ReplaceAll(f.Value, "\n", " "), maxCellWidth)
}

// Truncate shortens s to at most width runes, marking the cut with "…".
func Truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}
