package domain

import "strings"

// Heuristic bound for the magnitude-column fallback: a numeric cell in
// [0,10] is plausibly a magnitude, while depth, counts and date fragments
// mostly fall outside it. Probabilistic, not exact.
const (
	magnitudeHeuristicMin = 0
	magnitudeHeuristicMax = 10
)

// DetectSchema infers which columns of the table hold magnitude, location
// and date. The magnitude column must resolve or detection fails with
// ErrMagnitudeColumn; location and date fall back to column 0.
//
// When the table carries no header row but the first body row is entirely
// non-numeric, that row is promoted to header once and removed from the data
// rows (table is modified in place).
func DetectSchema(table *RawTable) (Schema, error) {
	if table == nil || len(table.Rows) == 0 {
		return Schema{}, ErrNoTable
	}

	promoteHeader(table)
	if len(table.Rows) == 0 {
		return Schema{}, ErrNoTable
	}

	schema := Schema{
		MagnitudeCol: findHeader(table.Headers, "mag"),
		LocationCol:  findHeader(table.Headers, "location", "epicenter"),
		DateCol:      findHeader(table.Headers, "date", "time"),
	}

	if schema.LocationCol == ColumnNotFound {
		schema.LocationCol = findHeader(table.Headers, "area", "province")
	}
	if schema.LocationCol == ColumnNotFound {
		schema.LocationCol = 0
	}
	if schema.DateCol == ColumnNotFound {
		schema.DateCol = 0
	}

	if schema.MagnitudeCol == ColumnNotFound {
		schema.MagnitudeCol = guessMagnitudeColumn(table.Rows[0])
	}
	if schema.MagnitudeCol == ColumnNotFound {
		return Schema{}, ErrMagnitudeColumn
	}

	return schema, nil
}

// findHeader returns the index of the first header containing any of the
// given lower-case substrings, or ColumnNotFound.
func findHeader(headers []string, needles ...string) int {
	for i, h := range headers {
		h = strings.ToLower(h)
		for _, needle := range needles {
			if strings.Contains(h, needle) {
				return i
			}
		}
	}
	return ColumnNotFound
}

// guessMagnitudeColumn samples the first data row for the first cell whose
// cleaned numeric value lies within the magnitude heuristic range.
func guessMagnitudeColumn(row []string) int {
	for i, cell := range row {
		v, ok := ParseNumber(cell)
		if ok && v >= magnitudeHeuristicMin && v <= magnitudeHeuristicMax {
			return i
		}
	}
	return ColumnNotFound
}

// promoteHeader turns the first body row into the header when the table has
// none and that row looks textual (no cell parses as a number).
func promoteHeader(table *RawTable) {
	if len(table.Headers) > 0 || len(table.Rows) == 0 {
		return
	}
	first := table.Rows[0]
	for _, cell := range first {
		if _, ok := ParseNumber(cell); ok {
			return
		}
	}
	table.Headers = first
	table.Rows = table.Rows[1:]
}
