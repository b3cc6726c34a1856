package cmd

import (
	"io"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/abhisek/hanziquiz/internal/ui/theme"
)

// table renders aligned text columns. Cells are measured in terminal cells
// so hanzi and pinyin with tone marks line up.
type table struct {
	header []string
	rows   [][]string
}

func newTable(header ...string) *table {
	return &table{header: header}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	w := make([]int, len(t.header))
	for i, h := range t.header {
		w[i] = runewidth.StringWidth(h)
	}
	for _, r := range t.rows {
		for i, c := range r {
			if i < len(w) {
				w[i] = max(w[i], runewidth.StringWidth(c))
			}
		}
	}
	return w
}

func (t *table) line(cells []string, widths []int) string {
	parts := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		parts[i] = runewidth.FillRight(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(parts, "  "), " ")
}

// write prints the table to w, colours downsampled for the terminal.
func (t *table) write(w io.Writer) {
	widths := t.widths()
	head := lipgloss.NewStyle().Bold(true).Foreground(theme.Accent)
	lipgloss.Fprintln(w, head.Render(t.line(t.header, widths)))
	for _, r := range t.rows {
		lipgloss.Fprintln(w, t.line(r, widths))
	}
}

// heading prints a section title.
func heading(w io.Writer, title string) {
	lipgloss.Fprintln(w, theme.Title.UnsetAlign().Render(title))
}
