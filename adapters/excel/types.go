package excel

// RawTable is a sheet as read from disk: trimmed headers and the data rows
// padded to the header width.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Width returns the number of columns.
func (t *RawTable) Width() int { return len(t.Headers) }

// Cell returns row r, column c.
func (t *RawTable) Cell(r, c int) string { return t.Rows[r][c] }
