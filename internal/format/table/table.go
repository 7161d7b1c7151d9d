// Package table lays out plain-text columns for terminal panels.
package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Alignment positions a cell within its column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

const gap = "  "

// Column describes one table column.
type Column struct {
	Title string
	Align Alignment
}

// Render lays out a header, a rule beneath it, then the rows. Rows shorter
// than the column list are padded with blanks; extra cells are dropped.
func Render(columns []Column, rows [][]string) []string {
	if len(columns) == 0 {
		return nil
	}
	header := make([]string, len(columns))
	align := make([]Alignment, len(columns))
	for i, c := range columns {
		header[i] = c.Title
		align[i] = c.Align
	}
	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	for _, row := range rows {
		fitted := make([]string, len(columns))
		copy(fitted, row)
		all = append(all, fitted)
	}
	lines := Format(all, align)
	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[0], rule(columnWidths(all)))
	return append(out, lines[1:]...)
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	widths := columnWidths(rows)
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = formatRow(row, widths, alignments)
	}
	return out
}

func columnWidths(rows [][]string) []int {
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				break
			}
			widths[c] = max(widths[c], runewidth.StringWidth(cell))
		}
	}
	return widths
}

func formatRow(row []string, widths []int, alignments []Alignment) string {
	var b strings.Builder
	for c, cell := range row {
		if c >= len(widths) {
			break
		}
		if c > 0 {
			b.WriteString(gap)
		}
		pad := strings.Repeat(" ", max(widths[c]-runewidth.StringWidth(cell), 0))
		if c < len(alignments) && alignments[c] == AlignRight {
			b.WriteString(pad + cell)
		} else {
			b.WriteString(cell + pad)
		}
	}
	return b.String()
}

func rule(widths []int) string {
	parts := make([]string, len(widths))
	for i, w := range widths {
		parts[i] = strings.Repeat("─", w)
	}
	return strings.Join(parts, gap)
}
