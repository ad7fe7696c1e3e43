package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// maxCellWidth truncates long descriptions and base64 logos.
const maxCellWidth = 40

const noData = "  (No data)"

func renderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return noData
	}

	for _, row := range rows {
		for i := range row {
			row[i] = fitText(strings.ReplaceAll(row[i], "\n", " "), maxCellWidth)
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.Render()
}

func renderSection(title, body, footer string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(body)
	b.WriteString("\n")
	if footer != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(footer))
		b.WriteString("\n")
	}

	return b.String()
}

func valueOrDash(v *string) string {
	if v == nil || *v == "" {
		return "-"
	}
	return *v
}

func fitText(v string, max int) string {
	r := []rune(v)
	if max <= 0 || len(r) <= max {
		return v
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
