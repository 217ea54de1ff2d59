package table

import "strings"

// Table holds the normalized headers and rows extracted from spreadsheet text.
// Rows may be ragged; rendering pads short rows with empty strings. A Table is
// never mutated in place - every transformation builds a fresh value.
type Table struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// IsEmpty reports whether the table has no headers and no rows.
func (t Table) IsEmpty() bool {
	return len(t.Headers) == 0 && len(t.Rows) == 0
}

// Normalize parses raw spreadsheet text into a Table.
//
// Parsing is intentionally naive: lines split on newline, cells split on
// comma, one surrounding double-quote pair stripped per cell. Embedded commas
// and escaped quotes inside quoted fields are not supported; malformed input
// produces garbled cells rather than an error.
//
// Rows whose cells are all empty after trimming are dropped, and a leading run
// of entirely-blank columns (stray export commas) is removed. Interior and
// trailing blank columns are kept.
func Normalize(raw string) Table {
	lines := splitLines(raw)
	if len(lines) == 0 {
		return Table{Headers: []string{}, Rows: [][]string{}}
	}

	grid := make([][]string, len(lines))
	for i, line := range lines {
		grid[i] = parseCells(line)
	}
	return FromGrid(grid)
}

// FromGrid builds a Table from an already-split cell grid (e.g. worksheet
// rows). The first row becomes the headers; all-empty rows are dropped and a
// leading run of blank columns is removed, same as Normalize.
func FromGrid(grid [][]string) Table {
	if len(grid) == 0 {
		return Table{Headers: []string{}, Rows: [][]string{}}
	}

	headers := trimCells(grid[0])
	rows := make([][]string, 0, len(grid)-1)
	for _, raw := range grid[1:] {
		cells := trimCells(raw)
		if allEmpty(cells) {
			continue
		}
		rows = append(rows, cells)
	}

	return trimLeadingBlankColumns(Table{Headers: headers, Rows: rows})
}

func trimCells(raw []string) []string {
	cells := make([]string, len(raw))
	for i, c := range raw {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// Serialize renders a Table back into the comma-joined text form used inside
// prompts. Inverse enough of Normalize that normalizing the output again is a
// fixed point for tables without leading blank columns.
func Serialize(t Table) string {
	lines := make([]string, 0, len(t.Rows)+1)
	lines = append(lines, strings.Join(t.Headers, ", "))
	for _, row := range t.Rows {
		lines = append(lines, strings.Join(row, ", "))
	}
	return strings.Join(lines, "\n")
}

func splitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return strings.Split(raw, "\n")
}

func parseCells(line string) []string {
	parts := strings.Split(line, ",")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = cleanCell(part)
	}
	return cells
}

// cleanCell trims whitespace and strips one surrounding double-quote pair.
func cleanCell(cell string) string {
	cell = strings.TrimSpace(cell)
	if len(cell) >= 2 && strings.HasPrefix(cell, `"`) && strings.HasSuffix(cell, `"`) {
		cell = cell[1 : len(cell)-1]
	}
	return strings.TrimSpace(cell)
}

func allEmpty(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

// trimLeadingBlankColumns drops columns [0,k) where k is the first column
// index at which any row, header row included, has a non-empty cell.
func trimLeadingBlankColumns(t Table) Table {
	width := len(t.Headers)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}

	k := 0
	for ; k < width; k++ {
		if cellAt(t.Headers, k) != "" {
			break
		}
		blank := true
		for _, row := range t.Rows {
			if cellAt(row, k) != "" {
				blank = false
				break
			}
		}
		if !blank {
			break
		}
	}
	if k == 0 {
		return t
	}

	out := Table{Headers: dropPrefix(t.Headers, k), Rows: make([][]string, len(t.Rows))}
	for i, row := range t.Rows {
		out.Rows[i] = dropPrefix(row, k)
	}
	return out
}

func cellAt(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}

func dropPrefix(cells []string, k int) []string {
	if k >= len(cells) {
		return []string{}
	}
	out := make([]string, len(cells)-k)
	copy(out, cells[k:])
	return out
}
