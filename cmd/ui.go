package cmd

import (
	"config-manager/core/plugin"
	"config-manager/core/reconcile"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	purple = lipgloss.Color("99")
	green  = lipgloss.Color("76")
	red    = lipgloss.Color("204")
	yellow = lipgloss.Color("214")
	dim    = lipgloss.Color("243")
	faint  = lipgloss.Color("238")
)

var (
	successStyle = lipgloss.NewStyle().Foreground(green)
	errorStyle   = lipgloss.NewStyle().Foreground(red)
	warnStyle    = lipgloss.NewStyle().Foreground(yellow)
	mutedStyle   = lipgloss.NewStyle().Foreground(dim)
)

// statusCell renders the state column of a result.
func statusCell(r reconcile.ReconcileResult) string {
	if r.Failed() {
		return errorStyle.Render("error")
	}
	if !r.ValuePresent {
		return mutedStyle.Render("no value")
	}
	switch r.Status {
	case plugin.StatusUpToDate:
		return successStyle.Render(string(r.Status))
	case plugin.StatusOutOfSync:
		return warnStyle.Render(string(r.Status))
	default:
		return errorStyle.Render(string(r.Status))
	}
}

// resultTable renders reconcile results with rounded borders.
func resultTable(results []reconcile.ReconcileResult) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(purple).
		Bold(true).
		Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{r.Key, r.File, statusCell(r)})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(faint)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("KEY", "FILE", "STATUS").
		Rows(rows...)

	return t.String()
}
