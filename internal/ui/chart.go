package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"tubescout/internal/export"
)

const (
	chartBarWidth   = 40
	chartLabelWidth = 28
)

// BarChart draws one horizontal bar per series point, scaled to the largest
// value.
func BarChart(title string, s export.Series) string {
	if s.Len() == 0 {
		return ""
	}

	peak := 0.0
	for _, v := range s.Values {
		peak = math.Max(peak, v)
	}

	var b strings.Builder
	if title != "" {
		b.WriteString(TitleStyle.Render(title))
		b.WriteString("\n")
	}

	labelStyle := lipgloss.NewStyle().Width(chartLabelWidth)
	for i, label := range s.Labels {
		v := s.Values[i]
		b.WriteString(labelStyle.Render(Truncate(label, chartLabelWidth-1)))
		b.WriteString(" ")
		b.WriteString(barStyle.Render(strings.Repeat("█", BarLength(v, peak, chartBarWidth))))
		b.WriteString(" ")
		b.WriteString(formatValue(v))
		b.WriteString("\n")
	}
	return b.String()
}

// BarLength scales v against peak to at most width cells. Positive values
// always get at least one cell.
func BarLength(v, peak float64, width int) int {
	if peak <= 0 || v <= 0 {
		return 0
	}
	n := int(math.Round(v / peak * float64(width)))
	return max(1, min(n, width))
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && v < math.MaxInt64 {
		return humanize.Comma(int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
