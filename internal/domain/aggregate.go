package domain

// Aggregate classifies records into the fixed magnitude buckets and counts,
// per bucket, the total and how many are new relative to the prior
// snapshot's signature set. Counts are returned in a fresh slice parallel to
// Buckets; the bucket descriptors themselves are never touched.
//
// Records with a nil magnitude contribute to neither count, and magnitudes
// below the scale are silently uncounted.
func Aggregate(records []QuakeRecord, prior map[string]struct{}) []BucketCounts {
	counts := make([]BucketCounts, len(Buckets))
	for _, rec := range records {
		if rec.Magnitude == nil {
			continue
		}
		i, ok := BucketFor(*rec.Magnitude)
		if !ok {
			continue
		}
		counts[i].Total++
		if _, seen := prior[rec.Signature]; !seen {
			counts[i].NewSinceLast++
		}
	}
	return counts
}

// Signatures collects every record's signature in source order, the set
// that replaces the snapshot at the end of a run.
func Signatures(records []QuakeRecord) []string {
	sigs := make([]string, len(records))
	for i, rec := range records {
		sigs[i] = rec.Signature
	}
	return sigs
}

// BuildReport assembles the complete output of one pass, stamped with the
// package clock.
func BuildReport(records []QuakeRecord, prior map[string]struct{}) *Report {
	return &Report{
		Counts:      Aggregate(records, prior),
		Strong:      SelectStrong(records),
		TotalRows:   len(records),
		GeneratedAt: clock.Now(),
	}
}
