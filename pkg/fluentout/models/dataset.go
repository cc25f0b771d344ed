package models

// Dataset represents the parsed content of one report file.
type Dataset struct {
	// Name is the file name without its extension.
	Name string `json:"name"`
	// Path is the file the dataset was read from.
	Path string `json:"path,omitempty"`
	// Columns lists quantity names in header order.
	Columns []string `json:"columns"`
	// Rows holds the whitespace-separated tokens of every data line.
	Rows [][]string `json:"-"`
}

// ColumnIndex returns the position of a quantity name in the header, or -1.
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the dataset carries the named quantity.
func (d Dataset) HasColumn(name string) bool {
	return d.ColumnIndex(name) >= 0
}

// Empty reports whether the dataset lacks either a header or data rows.
func (d Dataset) Empty() bool {
	return len(d.Columns) == 0 || len(d.Rows) == 0
}
