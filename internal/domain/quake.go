package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"time"
)

// Severity thresholds and report bounds.
const (
	StrongThreshold = 4.0 // eligible for the report list
	MajorThreshold  = 5.0 // never dropped from the report
	recentLimit     = 20
	reportLimit     = 30
)

// QuakeRecord is the typed representation of one table row. Magnitude and
// When are nil when the source cell could not be parsed; such records are
// still carried for signature bookkeeping.
type QuakeRecord struct {
	Magnitude *float64   `json:"magnitude,omitempty"`
	DateTime  string     `json:"datetime"` // raw cell, no calendar validation
	When      *time.Time `json:"when,omitempty"`
	Location  string     `json:"location"`
	Depth     string     `json:"depth"` // width-3 right-aligned, or "NaN"
	Signature string     `json:"signature"`
}

// Strong reports whether the record qualifies for the strong-quake list.
func (q QuakeRecord) Strong() bool {
	return q.Magnitude != nil && *q.Magnitude >= StrongThreshold
}

// Major reports whether the record has guaranteed report inclusion.
func (q QuakeRecord) Major() bool {
	return q.Magnitude != nil && *q.Magnitude >= MajorThreshold
}

// ID derives a deterministic short identifier from the record's signature,
// used as the message key when publishing. Reprocessing the same row yields
// the same ID, so downstream consumers can dedupe on it.
func (q QuakeRecord) ID() string {
	hash := sha256.Sum256([]byte(q.Signature))
	return "quake-" + hex.EncodeToString(hash[:8])
}

// Bucket is a half-open magnitude range [Min, Max) with display metadata.
type Bucket struct {
	Min   float64
	Max   float64 // +Inf for the open-ended top bucket
	Label string
	Color string
}

// Contains reports whether mag falls inside the bucket's range.
func (b Bucket) Contains(mag float64) bool {
	return mag >= b.Min && mag < b.Max
}

// Buckets is the fixed, ordered magnitude scale. The slice itself is never
// mutated; per-run counts live in a separate BucketCounts slice so no state
// leaks between runs.
var Buckets = []Bucket{
	{Min: 1, Max: 2, Label: "Mg 1+", Color: "white"},
	{Min: 2, Max: 3, Label: "Mg 2+", Color: "cyan"},
	{Min: 3, Max: 4, Label: "Mg 3+", Color: "green"},
	{Min: 4, Max: 5, Label: "Mg 4+", Color: "yellow"},
	{Min: 5, Max: 6, Label: "Mg 5+", Color: "red"},
	{Min: 6, Max: math.Inf(1), Label: "Mg 6+", Color: "magenta"},
}

// BucketFor returns the index of the bucket containing mag, scanning the
// ordered scale front to back. The second result is false for magnitudes
// below the scale (or NaN), which are deliberately uncounted.
func BucketFor(mag float64) (int, bool) {
	for i, b := range Buckets {
		if b.Contains(mag) {
			return i, true
		}
	}
	return 0, false
}

// BucketCounts carries the per-run tallies for one bucket, parallel to
// Buckets by index.
type BucketCounts struct {
	Total        int `json:"total"`
	NewSinceLast int `json:"new_since_last"`
}

// Report is the complete output of one pipeline pass.
type Report struct {
	Counts      []BucketCounts `json:"counts"` // parallel to Buckets
	Strong      []QuakeRecord  `json:"strong"`
	TotalRows   int            `json:"total_rows"`
	GeneratedAt time.Time      `json:"generated_at"`
}
