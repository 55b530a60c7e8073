package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = cellStyle.Foreground(lipgloss.Color("10"))
	failStyle   = cellStyle.Foreground(lipgloss.Color("9")).Bold(true)
)

const statusColumn = 5

// renderResults formats one row per check.
func renderResults(results []result) string {
	failed := make(map[int]bool)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("Kind", "Check", "Inputs", "Max error", "Evals", "Status").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == statusColumn && failed[row]:
				return failStyle
			case col == statusColumn:
				return okStyle
			default:
				return cellStyle
			}
		})

	for i, r := range results {
		maxErr, evals, status := "-", "-", "ok"
		if r.report != nil {
			maxErr = fmt.Sprintf("%.2e", r.report.MaxErr())
			evals = humanize.Comma(int64(r.report.Evaluations))
		}
		if r.err != nil {
			status = "FAIL"
			failed[i] = true
		}
		t.Row(r.c.kind.String(), r.c.name, inputShapes(r.c), maxErr, evals, status)
	}
	return t.Render()
}

// inputShapes lists the shapes of a case's inputs, e.g. "(3, 4) (2, 3, 4, 5)".
func inputShapes(c checkCase) string {
	values := c.inputs(0)
	shapes := make([]string, len(values))
	for i, v := range values {
		shapes[i] = v.Shape().String()
	}
	return strings.Join(shapes, " ")
}
