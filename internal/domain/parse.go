package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	signatureDelimiter = "|"
	locationDelimiter  = " of "

	// Depth and relative-location cells sit at fixed positions in the
	// bulletin layout, independent of the detected schema.
	depthCellIndex    = 3
	locationCellIndex = 5

	depthWidth = 3
)

// floatRe matches the first float-looking run in a noisy cell, the fallback
// when character stripping leaves an unparseable string.
var floatRe = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// datetimeLayouts are tried in order when parsing a datetime cell into an
// instant for the recency sort. Display always uses the raw cell.
var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	time.RFC3339,
	"Jan 2, 2006 15:04",
	"01/02/2006 15:04",
}

// ParseRow converts one raw table row into a QuakeRecord. It never fails:
// unparseable magnitudes and datetimes yield nil fields and the record is
// kept for signature bookkeeping.
func ParseRow(row []string, schema Schema) QuakeRecord {
	rec := QuakeRecord{
		DateTime:  cellAt(row, schema.DateCol),
		Location:  deriveLocation(cellAt(row, locationCellIndex)),
		Depth:     formatDepth(cellAt(row, depthCellIndex)),
		Signature: strings.Join(row, signatureDelimiter),
	}

	if mag, ok := parseMagnitude(cellAt(row, schema.MagnitudeCol)); ok {
		rec.Magnitude = &mag
	}
	if when, ok := parseWhen(rec.DateTime); ok {
		rec.When = &when
	}
	return rec
}

// cellAt indexes a possibly ragged row, returning "" when out of range.
func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// ParseNumber extracts a float from noisy cell text by stripping every
// character that is not a digit, a decimal point or a leading minus sign.
// Cells that are empty after cleaning are not-ok rather than zero.
func ParseNumber(s string) (float64, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			// Still leading if everything before it was stripped.
			b.WriteRune(r)
		}
	}
	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// parseMagnitude runs ParseNumber and, when that fails, falls back to the
// first float-looking substring.
func parseMagnitude(s string) (float64, bool) {
	if v, ok := ParseNumber(s); ok {
		return v, true
	}
	match := floatRe.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// deriveLocation keeps the text after the first " of " in a relative
// location cell ("5km N of Town" → "Town"); "Unknown" when absent.
func deriveLocation(cell string) string {
	_, after, found := strings.Cut(cell, locationDelimiter)
	if !found {
		return "Unknown"
	}
	return strings.TrimSpace(after)
}

// formatDepth renders the depth cell as a width-3 right-aligned number.
// "NaN" is the legitimate passthrough for unparseable depths.
func formatDepth(cell string) string {
	v, ok := ParseNumber(cell)
	if !ok {
		return padLeft("NaN")
	}
	return padLeft(strconv.FormatFloat(v, 'f', -1, 64))
}

func padLeft(s string) string {
	for len(s) < depthWidth {
		s = " " + s
	}
	return s
}

// parseWhen attempts to interpret a datetime cell as an instant. Free-form
// text that matches no known layout is simply not an instant; callers treat
// it as order-neutral.
func parseWhen(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range datetimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseRows converts every row of the table under the given schema.
func ParseRows(table *RawTable, schema Schema) []QuakeRecord {
	records := make([]QuakeRecord, 0, len(table.Rows))
	for _, row := range table.Rows {
		records = append(records, ParseRow(row, schema))
	}
	return records
}
