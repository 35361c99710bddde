// Package domain models seismic event reports scraped from an HTML bulletin
// table and the logic that turns them into a bucketed, deduplicated report.
//
// # Data Source
//
// Events arrive as one HTML table per page, column layout unknown ahead of
// time. Observed bulletin layouts put date/time first, then a description,
// magnitude, depth and a relative location column, but none of this is
// guaranteed — [DetectSchema] infers the magnitude, location and date columns
// from header text, falling back to sampling the first data row.
//
// # Cell Conventions
//
// Magnitude:
//
//	Free text around a decimal number: "M 5.2", "5.2", "5.2 Mg".
//	[ParseNumber] strips everything that is not a digit, a decimal point
//	or a leading minus sign; a regexp fallback catches the first
//	float-looking run when the strip leaves garbage. A cell that survives
//	neither pass yields a nil magnitude: the record still participates in
//	signature bookkeeping but is excluded from buckets and the strong list.
//
// Relative location (fixed cell index 5):
//
//	"<distance><compass> of <place>"  →  e.g. "5km N of Town".
//	Only the text after the first " of " is kept; rows without the
//	delimiter report "Unknown". Cell indices 5 (location) and 3 (depth)
//	are fixed regardless of the detected schema; upstream bulletins have
//	kept those positions stable and downstream consumers pin the exact
//	output, so the coupling stays.
//
// Datetime:
//
//	Kept verbatim for display. A best-effort parse into an instant drives
//	the recency sort; free-form strings that do not parse sort
//	order-neutrally, degrading to source order.
//
// # Magnitude Scale
//
// Six half-open buckets classify events: [1,2) [2,3) [3,4) [4,5) [5,6)
// [6,∞), labelled "Mg 1+" through "Mg 6+". Magnitude ≥ 4 is "strong"
// (eligible for the report list), ≥ 5 is "major" (never dropped from the
// report regardless of recency rank).
//
// # Change Detection
//
// A record's identity is its signature: the raw row cells joined with "|".
// The previous run persists its full signature set; a record whose signature
// is absent from that set counts as new. Two rows with identical cells are
// indistinguishable by construction.
package domain
