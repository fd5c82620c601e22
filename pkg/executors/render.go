package executors

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yurifrl/spendcast/pkg/csv"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")) // blue
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	numberStyle = cellStyle.Align(lipgloss.Right)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// render draws t as a bordered terminal table. Every column but the first
// is right-aligned since it holds numbers.
func render(t csv.Table) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(t.Header...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return cellStyle
			}
			return numberStyle
		}).
		String()
}
