package domain

import "errors"

// Fatal pipeline conditions. Everything else degrades per record.
var (
	// ErrNoTable indicates the source yielded zero data rows.
	ErrNoTable = errors.New("no table rows extracted from source")

	// ErrMagnitudeColumn indicates schema detection could not resolve a
	// magnitude column, even via the numeric-range fallback.
	ErrMagnitudeColumn = errors.New("magnitude column not found")
)

// ColumnNotFound is the sentinel index for an undetected column.
const ColumnNotFound = -1

// RawTable is the unstructured table handed over by the source adapter.
// Rows may be ragged (differing lengths); all indexing must be defensive.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Schema locates the interesting columns within a RawTable. MagnitudeCol is
// guaranteed valid after a successful DetectSchema; LocationCol and DateCol
// fall back to column 0 when undetected, which is best-effort only.
type Schema struct {
	MagnitudeCol int
	LocationCol  int
	DateCol      int
}
