package models

// Row is one decoded spreadsheet row, keyed by column name. Cells hold the
// textual form of the value; numeric interpretation happens at chart time.
type Row map[string]string

// Dataset is the in-memory decoded spreadsheet for the active upload.
// Columns preserves the order of the header row; Rows preserves file order.
// Datasets live only in process memory and are never persisted.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether name is part of the dataset's column set.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Preview returns up to n leading rows for display.
func (d *Dataset) Preview(n int) []Row {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}
