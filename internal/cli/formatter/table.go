package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table under a header separator line.
// Widths are measured on visible text so styled cells line up.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow(&b, headers, widths, StyleHeader.Render)

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(&b, row, widths, nil)
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string, widths []int, style func(...string) string) {
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		pad := widths[i] - lipgloss.Width(cell)
		if pad < 0 {
			pad = 0
		}
		if style != nil {
			cell = style(cell)
		}
		b.WriteString(cell)
		if i < len(widths)-1 {
			b.WriteString(strings.Repeat(" ", pad+colGap))
		}
	}
	b.WriteString("\n")
}

// RenderBox wraps content in a rounded border with an optional title.
func RenderBox(title string, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(1, 2)

	if title != "" {
		return box.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return box.Render(content)
}
