package table

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes how one column is laid out. A MaxWidth of zero leaves the
// column unbounded; longer cells are cut with an ellipsis.
type Column struct {
	Align    Alignment
	MaxWidth int
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	columns := make([]Column, len(alignments))
	for i, a := range alignments {
		columns[i] = Column{Align: a}
	}
	return FormatColumns(rows, columns)
}

// FormatColumns is Format with per-column width limits. Widths are measured
// in terminal cells so wide runes line up.
func FormatColumns(rows [][]string, columns []Column) []string {
	if len(rows) == 0 {
		return nil
	}
	colCount := len(rows[0])
	cells := make([][]string, len(rows))
	widths := make([]int, colCount)
	for r, row := range rows {
		cells[r] = make([]string, len(row))
		for c, cell := range row {
			if c < len(columns) && columns[c].MaxWidth > 0 {
				cell = runewidth.Truncate(cell, columns[c].MaxWidth, "…")
			}
			cells[r][c] = cell
			if width := cellWidth(cell); c < colCount && width > widths[c] {
				widths[c] = width
			}
		}
	}
	out := make([]string, len(rows))
	for i, row := range cells {
		var b strings.Builder
		for c, cell := range row {
			if c > 0 {
				b.WriteString("  ")
			}
			width := 0
			if c < colCount {
				width = widths[c] - cellWidth(cell)
			}
			if width < 0 {
				width = 0
			}
			last := c == len(row)-1
			if c < len(columns) && columns[c].Align == AlignRight {
				writeSpaces(&b, width)
				b.WriteString(cell)
			} else {
				b.WriteString(cell)
				if !last {
					writeSpaces(&b, width)
				}
			}
		}
		out[i] = b.String()
	}
	return out
}

func cellWidth(text string) int {
	return runewidth.StringWidth(text)
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	b.WriteString(strings.Repeat(" ", count))
}
