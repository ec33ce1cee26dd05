package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/couchcryptid/weather-wheel/internal/config"
	"github.com/couchcryptid/weather-wheel/internal/wheel"
	"github.com/goccy/go-json"
	kafkago "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kafkago.Writer used by Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Writer publishes chart frames to a Kafka topic.
// It implements pipeline.FrameLoader.
type Writer struct {
	writer messageWriter
	logger *slog.Logger
}

// frameBatchTimeout bounds how long a single interactive frame waits for
// company before it is flushed.
const frameBatchTimeout = 5 * time.Millisecond

// NewWriter creates a Kafka producer for the configured frame topic.
// Every event produces exactly one frame, so messages are flushed one at a time.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaFrameTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchSize:    1,
		BatchTimeout: frameBatchTimeout,
	}
	return &Writer{writer: w, logger: logger}
}

// LoadFrame serializes and publishes one frame. Frames of the same chart share
// a key so they land on one partition in event order.
func (w *Writer) LoadFrame(ctx context.Context, frame wheel.Frame) error {
	msg, err := serializeToMessage(frame)
	if err != nil {
		return err
	}
	if err := w.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish frame: %w", err)
	}
	w.logger.Debug("frame published",
		"scope", frame.Summary.Label,
		"highlight", frame.Highlight,
		"bytes", len(msg.Value),
	)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a Frame into a Kafka message.
func serializeToMessage(frame wheel.Frame) (kafkago.Message, error) {
	data, err := json.Marshal(frame)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize frame: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.Itoa(frame.Year)),
		Value: data,
		Time:  frame.GeneratedAt,
		Headers: []kafkago.Header{
			{Key: "scope_mode", Value: []byte(frame.Summary.Scope.Mode.String())},
			{Key: "scope_label", Value: []byte(frame.Summary.Label)},
			{Key: "generated_at", Value: []byte(frame.GeneratedAt.Format(time.RFC3339))},
		},
	}, nil
}
