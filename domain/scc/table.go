package scc

// Table is an in-memory tabular dataset: an ordered header row plus data
// rows aligned to it. All cells are strings; typing is left to consumers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// NewTable builds a table, padding short rows out to the header width so
// every row indexes safely against Headers.
func NewTable(headers []string, rows [][]string) *Table {
	t := &Table{Headers: headers, Rows: make([][]string, 0, len(rows))}
	for _, row := range rows {
		if len(row) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, row)
			row = padded
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// ColumnCount returns the number of columns
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// RowCount returns the number of data rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the given header, or -1
func (t *Table) ColumnIndex(header string) int {
	for i, h := range t.Headers {
		if h == header {
			return i
		}
	}
	return -1
}

// Cell returns the value at (row, col); out-of-range lookups yield ""
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// Select projects the table onto the given column indexes, preserving
// their order. Indexes outside the row produce empty cells.
func (t *Table) Select(cols []int) *Table {
	headers := make([]string, len(cols))
	for i, c := range cols {
		if c >= 0 && c < len(t.Headers) {
			headers[i] = t.Headers[c]
		}
	}
	rows := make([][]string, 0, len(t.Rows))
	for ri := range t.Rows {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = t.Cell(ri, c)
		}
		rows = append(rows, row)
	}
	return &Table{Headers: headers, Rows: rows}
}
