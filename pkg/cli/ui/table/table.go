// Package table renders bordered terminal tables for command output.
package table

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
)

const cellPadding = 1

// Render writes a bordered table with the given headers and rows to the writer.
func Render(writer io.Writer, headers []string, rows [][]string) {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, cellPadding)
	cellStyle := lipgloss.NewStyle().Padding(0, cellPadding)

	tbl := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	_, _ = fmt.Fprintln(writer, tbl.Render())
}
