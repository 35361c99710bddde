// Package kafka publishes newly observed strong-quake events to a sink
// topic, keyed deterministically so downstream consumers can dedupe replays.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/quakewatch/quake-report-etl/internal/config"
	"github.com/quakewatch/quake-report-etl/internal/domain"
)

// Writer produces quake event messages to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishNew serializes and publishes the given quake records in a single
// WriteMessages call.
func (w *Writer) PublishNew(ctx context.Context, quakes []domain.QuakeRecord) error {
	if len(quakes) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(quakes))
	for i := range quakes {
		msg, err := serializeToMessage(quakes[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a QuakeRecord into a Kafka message keyed by
// the record's deterministic ID, with the bucket label and publish time as
// headers.
func serializeToMessage(quake domain.QuakeRecord) (kafkago.Message, error) {
	data, err := json.Marshal(quake)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize quake record: %w", err)
	}

	label := ""
	if quake.Magnitude != nil {
		if i, ok := domain.BucketFor(*quake.Magnitude); ok {
			label = domain.Buckets[i].Label
		}
	}

	return kafkago.Message{
		Key:   []byte(quake.ID()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "bucket", Value: []byte(label)},
			{Key: "published_at", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
		},
	}, nil
}
