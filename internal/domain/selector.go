package domain

import "sort"

// SelectStrong builds the bounded report list: the 20 most recent strong
// quakes (magnitude ≥ 4) plus every major quake (magnitude ≥ 5) that
// recency alone would have dropped, merged, re-sorted by recency and capped
// at 30. The cap bounds report size while guaranteeing majors are never
// lost to a crowd of newer moderate events.
func SelectStrong(records []QuakeRecord) []QuakeRecord {
	strong := make([]QuakeRecord, 0, len(records))
	for _, rec := range records {
		if rec.Strong() {
			strong = append(strong, rec)
		}
	}

	sortByRecency(strong)

	recent := strong
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}

	seen := make(map[string]struct{}, len(recent))
	for _, rec := range recent {
		seen[rec.Signature] = struct{}{}
	}

	// Majors excluded by the recency cut re-enter here. Exclusion is a
	// set-difference over signatures, not record identity.
	merged := append([]QuakeRecord(nil), recent...)
	for _, rec := range strong {
		if !rec.Major() {
			continue
		}
		if _, ok := seen[rec.Signature]; ok {
			continue
		}
		merged = append(merged, rec)
		seen[rec.Signature] = struct{}{}
	}

	sortByRecency(merged)
	if len(merged) > reportLimit {
		merged = merged[:reportLimit]
	}
	return merged
}

// sortByRecency orders records most recent first. Records without a parsed
// instant compare order-neutrally, so free-form datetimes degrade to source
// order instead of failing the sort.
func sortByRecency(records []QuakeRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].When, records[j].When
		if a == nil || b == nil {
			return false
		}
		return a.After(*b)
	})
}
