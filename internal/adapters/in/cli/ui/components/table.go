// Package components holds reusable CLI rendering pieces.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/appops-dev/appops/internal/adapters/in/cli/ui/styles"
)

// Column defines a table column. A Width of 0 lets the column grow.
type Column struct {
	Title string
	Width int
}

// Table is a rounded-border table with a highlighted header row.
type Table struct {
	columns     []Column
	rows        [][]string
	headerStyle lipgloss.Style
	cellStyle   lipgloss.Style
}

// TableOption configures a Table.
type TableOption func(*Table)

// NewTable creates a table with the given columns.
func NewTable(columns []Column, opts ...TableOption) *Table {
	t := &Table{
		columns: columns,
		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorPrimary).
			Padding(0, 1),
		cellStyle: lipgloss.NewStyle().
			Foreground(styles.ColorText).
			Padding(0, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithPlainStyles drops colors and padding; tests compare layout with it.
func WithPlainStyles() TableOption {
	return func(t *Table) {
		t.headerStyle = lipgloss.NewStyle()
		t.cellStyle = lipgloss.NewStyle()
	}
}

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render renders the table as a string.
func (t *Table) Render() string {
	if len(t.columns) == 0 {
		return ""
	}

	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = truncateCell(col.Title, col.Width)
	}
	rows := make([][]string, len(t.rows))
	for r, row := range t.rows {
		rows[r] = make([]string, len(row))
		for c, cell := range row {
			rows[r][c] = truncateCell(cell, t.width(c))
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.ColorBorder)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := t.cellStyle
			if row == table.HeaderRow {
				s = t.headerStyle
			}
			if w := t.width(col); w > 0 {
				s = s.Width(w).MaxWidth(w)
			}
			return s
		}).
		String()
}

func (t *Table) width(col int) int {
	if col < 0 || col >= len(t.columns) {
		return 0
	}
	return t.columns[col].Width
}

// truncateCell shortens value to maxWidth display cells with a trailing
// ellipsis, never splitting a grapheme. Styled values are left alone.
func truncateCell(value string, maxWidth int) string {
	if strings.Contains(value, "\x1b[") {
		return value
	}
	if maxWidth <= 0 || runewidth.StringWidth(value) <= maxWidth {
		return value
	}
	if maxWidth <= 3 {
		return strings.Repeat(".", maxWidth)
	}

	var b strings.Builder
	width := 0
	g := uniseg.NewGraphemes(value)
	for g.Next() {
		w := runewidth.StringWidth(g.Str())
		if width+w > maxWidth-3 {
			break
		}
		b.WriteString(g.Str())
		width += w
	}
	return b.String() + "..."
}
