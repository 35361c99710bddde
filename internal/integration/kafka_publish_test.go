//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/quakewatch/quake-report-etl/internal/adapter/kafka"
	"github.com/quakewatch/quake-report-etl/internal/config"
	"github.com/quakewatch/quake-report-etl/internal/domain"
)

const testSinkTopic = "test-new-strong-quakes"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// startKafka runs a single-broker Kafka container and returns its address.
func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()

	container, err := tckafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("quake-report-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()

	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)

	ctrlConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrlConn.Close()

	require.NoError(t, ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

func strongQuake(magnitude float64, datetime, location, signature string) domain.QuakeRecord {
	return domain.QuakeRecord{
		Magnitude: &magnitude,
		DateTime:  datetime,
		Location:  location,
		Depth:     " 10",
		Signature: signature,
	}
}

// TestWriterPublishesNewStrongQuakes verifies the publisher round-trips
// records through a real broker with the expected keys and headers.
func TestWriterPublishesNewStrongQuakes(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers: []string{broker},
		KafkaTopic:   testSinkTopic,
		KafkaEnabled: true,
	}

	quakes := []domain.QuakeRecord{
		strongQuake(5.2, "2024-01-01 10:00", "Town", "r1|5.2|town"),
		strongQuake(6.1, "2024-01-01 09:00", "Port", "r2|6.1|port"),
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	require.NoError(t, writer.PublishNew(ctx, quakes))

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testSinkTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	received := make(map[string]domain.QuakeRecord, len(quakes))
	for len(received) < len(quakes) {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := consumer.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from sink topic")

		var quake domain.QuakeRecord
		require.NoError(t, json.Unmarshal(msg.Value, &quake))
		received[string(msg.Key)] = quake

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}
		assert.NotEmpty(t, headers["bucket"])
		_, err = time.Parse(time.RFC3339, headers["published_at"])
		assert.NoError(t, err, "published_at should be valid RFC3339")
	}

	for _, quake := range quakes {
		got, ok := received[quake.ID()]
		require.True(t, ok, "missing message for %s", quake.Signature)
		assert.Equal(t, quake.Location, got.Location)
		assert.Equal(t, quake.Signature, got.Signature)
		require.NotNil(t, got.Magnitude)
		assert.Equal(t, *quake.Magnitude, *got.Magnitude)
	}
}

// TestWriterEmptyBatch verifies that publishing nothing is a no-op that
// never touches the broker connection.
func TestWriterEmptyBatch(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers: []string{"unreachable:9092"},
		KafkaTopic:   testSinkTopic,
		KafkaEnabled: true,
	}

	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	assert.NoError(t, writer.PublishNew(context.Background(), nil))
}
