package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakewatch/quake-report-etl/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	magnitude := 5.2
	when := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	quake := domain.QuakeRecord{
		Magnitude: &magnitude,
		DateTime:  "2024-01-01 10:00",
		When:      &when,
		Location:  "Town",
		Depth:     " 10",
		Signature: "2024-01-01 10:00|Region A|5.2|10|0|5km N of Town",
	}

	msg, err := serializeToMessage(quake)
	require.NoError(t, err)

	assert.Equal(t, []byte(quake.ID()), msg.Key)
	assert.Contains(t, string(msg.Value), `"magnitude":5.2`)
	assert.Contains(t, string(msg.Value), `"location":"Town"`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "bucket", msg.Headers[0].Key)
	assert.Equal(t, []byte("Mg 5+"), msg.Headers[0].Value)
	assert.Equal(t, "published_at", msg.Headers[1].Key)
}

func TestSerializeToMessage_NoMagnitude(t *testing.T) {
	quake := domain.QuakeRecord{Signature: "x|y|z"}

	msg, err := serializeToMessage(quake)
	require.NoError(t, err)
	assert.Empty(t, msg.Headers[0].Value, "no bucket label without a magnitude")
}

func TestSerializeToMessage_DeterministicKey(t *testing.T) {
	quake := domain.QuakeRecord{Signature: "same|row"}

	first, err := serializeToMessage(quake)
	require.NoError(t, err)
	second, err := serializeToMessage(quake)
	require.NoError(t, err)

	assert.Equal(t, first.Key, second.Key)
}
