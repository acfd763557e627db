package tablefor

import (
	"fmt"
	"strings"
)

// StringRecords returns the rows of a string table as map[string]string
// records of a MapModel with the passed singular name.
// The first row holds the field names and becomes the field map
// of the model in column order. Empty header cells are named
// "column1", "column2" and so on, duplicate names are an error.
// Missing trailing fields of a row are empty strings.
//
// ErrNoHeader is returned if rows is empty.
func StringRecords(modelName string, rows [][]string) (*Records, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}
	header := make([]string, len(rows[0]))
	seen := make(map[string]bool, len(header))
	for i, name := range rows[0] {
		name = strings.TrimSpace(name)
		if name == "" {
			name = fmt.Sprintf("column%d", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate header field %q of %s table", name, modelName)
		}
		seen[name] = true
		header[i] = name
	}

	records := NewRecords(NewMapModel(modelName, Schema{Fields: header}))
	for _, row := range rows[1:] {
		record := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(row) {
				record[name] = row[i]
			}
		}
		records.Rows = append(records.Rows, record)
	}
	return records, nil
}

// IsEmptyStringRow returns true if all fields of row
// are empty or only contain white space.
func IsEmptyStringRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// RemoveEmptyStringRows returns rows without the rows
// where IsEmptyStringRow returns true.
func RemoveEmptyStringRows(rows [][]string) [][]string {
	filtered := rows[:0:0]
	for _, row := range rows {
		if !IsEmptyStringRow(row) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// RemoveEmptyStringColumns removes empty leading and trailing
// columns of all rows and returns the remaining number of columns.
// Rows may have different lengths, a column is empty
// if no row has a non white space field in it.
func RemoveEmptyStringColumns(rows [][]string) (numCols int) {
	first, last := -1, -1
	for _, row := range rows {
		for col, field := range row {
			if strings.TrimSpace(field) == "" {
				continue
			}
			if first == -1 || col < first {
				first = col
			}
			if col > last {
				last = col
			}
		}
	}
	if first == -1 {
		for i := range rows {
			rows[i] = rows[i][:0]
		}
		return 0
	}
	for i, row := range rows {
		end := min(last+1, len(row))
		if first < end {
			rows[i] = row[first:end]
		} else {
			rows[i] = row[:0]
		}
	}
	return last + 1 - first
}
