package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"fintrack/internal/core"
)

// RenderTable writes the records as a bordered table with the four file
// columns. Amounts are shown with two decimals.
func RenderTable(w io.Writer, title string, txs []core.Transaction, th Theme) error {
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, []string{string(tx.Type), tx.DisplayAmount(), tx.Category, tx.Description})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(th.Border).
		Headers(core.Header...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return th.Header
			}
			style := th.Cell
			if col == 1 {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	_, err := fmt.Fprintf(w, "%s\n%s\n", th.Title.Render(title), t.String())
	return err
}
