package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/leengari/rabbet/internal/domain/schema"
	"github.com/leengari/rabbet/internal/storage/writer"
)

const (
	ellipsis = "…"
	nullText = "null"

	// "│ " + " │"
	borderWidth = 4
	columnGap   = 2
)

// Write renders t as a table or as CSV
func Write(w io.Writer, t *schema.Table, useTable bool, s Settings) error {
	if useTable {
		return RenderTable(w, t, s)
	}
	return writer.WriteCSV(w, t, ',')
}

// RenderTable draws t with a rounded border and a header rule.
// Long cells are truncated, and rows and columns beyond the limits are elided around a "…" marker.
func RenderTable(w io.Writer, t *schema.Table, s Settings) error {
	s = DefaultSettings().Override(s)

	rowIdx := elide(t.Height(), s.MaxRows)

	colLimit := s.MaxCols
	var colIdx []int
	var widths []int
	for {
		colIdx = elide(t.Width(), colLimit)
		widths = columnWidths(t, colIdx, rowIdx, s.StrLen)
		if tableWidth(widths) <= s.Width || colLimit <= 1 || len(colIdx) <= 1 {
			break
		}
		colLimit = countData(colIdx) - 1
	}

	bw := bufio.NewWriter(w)
	inner := tableWidth(widths) - 2

	fmt.Fprintf(bw, "╭%s╮\n", strings.Repeat("─", inner))

	header := make([]string, len(colIdx))
	for i, c := range colIdx {
		if c < 0 {
			header[i] = ellipsis
		} else {
			header[i] = truncate(t.Schema.Columns[c].Name, s.StrLen)
		}
	}
	writeLine(bw, header, widths)

	fmt.Fprintf(bw, "╞%s╡\n", strings.Repeat("═", inner))

	cells := make([]string, len(colIdx))
	for _, r := range rowIdx {
		for i, c := range colIdx {
			cells[i] = cellText(t, r, c, s.StrLen)
		}
		writeLine(bw, cells, widths)
	}

	fmt.Fprintf(bw, "╰%s╯\n", strings.Repeat("─", inner))
	return bw.Flush()
}

// elide returns the positions to show out of n, with -1 standing for the hidden middle
func elide(n, limit int) []int {
	if limit <= 0 || n <= limit {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	head := (limit + 1) / 2
	tail := limit - head
	idx := make([]int, 0, limit+1)
	for i := 0; i < head; i++ {
		idx = append(idx, i)
	}
	idx = append(idx, -1)
	for i := n - tail; i < n; i++ {
		idx = append(idx, i)
	}
	return idx
}

func countData(idx []int) int {
	n := 0
	for _, i := range idx {
		if i >= 0 {
			n++
		}
	}
	return n
}

func columnWidths(t *schema.Table, colIdx, rowIdx []int, strLen int) []int {
	widths := make([]int, len(colIdx))
	for i, c := range colIdx {
		if c < 0 {
			widths[i] = 1
			continue
		}
		widths[i] = utf8.RuneCountInString(truncate(t.Schema.Columns[c].Name, strLen))
		for _, r := range rowIdx {
			if n := utf8.RuneCountInString(cellText(t, r, c, strLen)); n > widths[i] {
				widths[i] = n
			}
		}
	}
	return widths
}

func tableWidth(widths []int) int {
	total := borderWidth
	for i, w := range widths {
		if i > 0 {
			total += columnGap
		}
		total += w
	}
	return total
}

func cellText(t *schema.Table, r, c, strLen int) string {
	if r < 0 || c < 0 {
		return ellipsis
	}
	row := t.Rows[r]
	if row.IsNull(c) {
		return nullText
	}
	text := writer.FormatValue(row[c])
	text = strings.NewReplacer("\r", `\r`, "\n", `\n`, "\t", `\t`).Replace(text)
	return truncate(text, strLen)
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	if limit == 1 {
		return ellipsis
	}
	return string(runes[:limit-1]) + ellipsis
}

func writeLine(w io.Writer, cells []string, widths []int) {
	var sb strings.Builder
	sb.WriteString("│ ")
	for i, cell := range cells {
		if i > 0 {
			sb.WriteString(strings.Repeat(" ", columnGap))
		}
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
	}
	sb.WriteString(" │\n")
	io.WriteString(w, sb.String())
}
