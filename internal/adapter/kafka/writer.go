// Package kafka publishes QC'd sounding records to the sink topic for
// consumers that want the series as a stream rather than a file.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/sonde-data-etl/internal/config"
	"github.com/couchcryptid/sonde-data-etl/internal/domain"
)

// Writer produces messages to the Kafka sink topic.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishSounding publishes every record of a sounding in a single
// WriteMessages call. Messages are keyed by sonde id so one sounding lands
// on one partition and record order is preserved for consumers.
func (w *Writer) PublishSounding(ctx context.Context, s domain.Sounding) error {
	if len(s.Records) == 0 {
		return nil
	}
	msgs, err := soundingMessages(s)
	if err != nil {
		return err
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// soundingMessages serializes a sounding's records into Kafka messages.
func soundingMessages(s domain.Sounding) ([]kafkago.Message, error) {
	headers := []kafkago.Header{
		{Key: "station_id", Value: []byte(s.StationID)},
		{Key: "sonde_id", Value: []byte(s.SondeID)},
		{Key: "processed_at", Value: []byte(s.ProcessedAt.Format(time.RFC3339))},
	}

	msgs := make([]kafkago.Message, len(s.Records))
	for i, rec := range s.Records {
		data, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("serialize sounding record %d: %w", i, err)
		}
		msgs[i] = kafkago.Message{
			Key:     []byte(s.SondeID),
			Value:   data,
			Headers: headers,
		}
	}
	return msgs, nil
}
