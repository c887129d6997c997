// Package static provides non-interactive terminal output components.
package static

import (
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/vcs/internal/ui/styles"
)

// CellStyle styles a body cell; row and col are zero-based body coordinates.
type CellStyle func(row, col int, value string) lipgloss.Style

// RenderTable creates a formatted table with proper column alignment.
// Headers and rows are rendered using lipgloss/table which automatically
// calculates column widths based on content. No borders are rendered.
// cell may be nil.
func RenderTable(headers []string, rows [][]string, cell CellStyle) string {
	if len(rows) == 0 {
		return ""
	}

	var output strings.Builder

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Bold.PaddingRight(2)
			}
			if cell != nil && row < len(rows) && col < len(rows[row]) {
				return cell(row, col, rows[row][col]).PaddingRight(2)
			}
			return lipgloss.NewStyle().PaddingRight(2)
		})

	output.WriteString(t.String())
	output.WriteString("\n")

	return output.String()
}

// StatusColumn returns a CellStyle coloring column col by its value:
// "ok" green, "warn" orange, "fail" red.
func StatusColumn(col int) CellStyle {
	return func(_, c int, value string) lipgloss.Style {
		if c != col {
			return lipgloss.NewStyle()
		}
		switch value {
		case "ok":
			return styles.SuccessStyle
		case "warn":
			return styles.WarningStyle
		case "fail":
			return styles.ErrorStyle
		}
		return lipgloss.NewStyle()
	}
}
