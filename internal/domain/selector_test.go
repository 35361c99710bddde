package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quakeAt builds a strong-list candidate with a parsed instant n hours
// before a fixed base time, so larger n means older.
func quakeAt(magnitude float64, hoursAgo int, signature string) QuakeRecord {
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	when := base.Add(-time.Duration(hoursAgo) * time.Hour)
	return QuakeRecord{
		Magnitude: &magnitude,
		DateTime:  when.Format("2006-01-02 15:04"),
		When:      &when,
		Signature: signature,
	}
}

func TestSelectStrong(t *testing.T) {
	t.Run("filters below the strong threshold", func(t *testing.T) {
		records := []QuakeRecord{
			quakeAt(3.9, 1, "weak"),
			quakeAt(4.0, 2, "strong"),
			record(nil, "unparseable"),
		}

		selected := SelectStrong(records)
		require.Len(t, selected, 1)
		assert.Equal(t, "strong", selected[0].Signature)
	})

	t.Run("most recent first", func(t *testing.T) {
		records := []QuakeRecord{
			quakeAt(4.1, 5, "older"),
			quakeAt(4.2, 1, "newest"),
			quakeAt(4.3, 3, "middle"),
		}

		selected := SelectStrong(records)
		require.Len(t, selected, 3)
		assert.Equal(t, "newest", selected[0].Signature)
		assert.Equal(t, "middle", selected[1].Signature)
		assert.Equal(t, "older", selected[2].Signature)
	})

	t.Run("unparseable datetimes keep source order", func(t *testing.T) {
		records := []QuakeRecord{
			{Magnitude: mag(4.5), DateTime: "last tuesday", Signature: "a"},
			{Magnitude: mag(4.6), DateTime: "who knows", Signature: "b"},
		}

		selected := SelectStrong(records)
		require.Len(t, selected, 2)
		assert.Equal(t, "a", selected[0].Signature)
		assert.Equal(t, "b", selected[1].Signature)
	})

	t.Run("old majors survive the recency cut", func(t *testing.T) {
		// 25 moderate-strong events, newest first, then one major far
		// older than all of them.
		records := make([]QuakeRecord, 0, 26)
		for i := 0; i < 25; i++ {
			records = append(records, quakeAt(4.5, i, fmt.Sprintf("m%d", i)))
		}
		records = append(records, quakeAt(5.5, 1000, "ancient-major"))

		selected := SelectStrong(records)
		assert.Len(t, selected, 21) // 20 recent + the rescued major
		assert.Equal(t, "ancient-major", selected[20].Signature)
	})

	t.Run("report bounded at thirty", func(t *testing.T) {
		records := make([]QuakeRecord, 0, 60)
		for i := 0; i < 60; i++ {
			records = append(records, quakeAt(5.1, i, fmt.Sprintf("maj%d", i)))
		}

		selected := SelectStrong(records)
		assert.Len(t, selected, 30)
		// The 30 most recent of the majors, still newest first.
		assert.Equal(t, "maj0", selected[0].Signature)
		assert.Equal(t, "maj29", selected[29].Signature)
	})

	t.Run("every major within the cap is retained", func(t *testing.T) {
		records := make([]QuakeRecord, 0, 30)
		for i := 0; i < 25; i++ {
			records = append(records, quakeAt(4.2, i, fmt.Sprintf("mod%d", i)))
		}
		for i := 0; i < 5; i++ {
			records = append(records, quakeAt(5.8, 100+i, fmt.Sprintf("major%d", i)))
		}

		selected := SelectStrong(records)
		sigs := make(map[string]struct{}, len(selected))
		for _, rec := range selected {
			sigs[rec.Signature] = struct{}{}
		}
		for i := 0; i < 5; i++ {
			assert.Contains(t, sigs, fmt.Sprintf("major%d", i))
		}
	})

	t.Run("majors already recent are not duplicated", func(t *testing.T) {
		records := []QuakeRecord{
			quakeAt(5.2, 1, "dup"),
			quakeAt(4.1, 2, "other"),
		}

		selected := SelectStrong(records)
		assert.Len(t, selected, 2)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, SelectStrong(nil))
	})
}
