package producer

import (
	"context"
	"time"

	"hrbuddy/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// batchSize is how many outbox rows one drain picks up. HR traffic is small
// and bursty around payroll runs, so a modest batch per tick is plenty.
const batchSize = 25

const defaultPollInterval = 3 * time.Second

// MessageWriter is the part of kafka-go's Writer the worker needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Worker drains the outbox table and publishes each row to Kafka.
type Worker struct {
	repo     kafka.OutboxRepository
	writer   MessageWriter
	logger   *zap.Logger
	interval time.Duration
}

func NewWorker(
	repo kafka.OutboxRepository,
	writer MessageWriter,
	interval time.Duration,
	logger ...*zap.Logger,
) *Worker {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Worker{
		repo:     repo,
		writer:   writer,
		logger:   l.Named("kafka.producer.worker"),
		interval: interval,
	}
}

// Run publishes until ctx is cancelled. The first drain happens immediately
// so a restart does not sit on a backlog for a full tick.
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("outbox worker started", zap.Duration("poll_interval", w.interval))

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if sent, err := w.drainOnce(ctx); err != nil {
			w.logger.Error("drain outbox failed", zap.Error(err))
		} else if sent > 0 {
			w.logger.Info("outbox events published", zap.Int("count", sent))
		}

		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker stopped")
			return
		case <-ticker.C:
		}
	}
}

// drainOnce pushes one batch out and reports how many events were sent.
func (w *Worker) drainOnce(ctx context.Context) (int, error) {
	events, err := w.repo.ListPending(ctx, batchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, event := range events {
		if err := w.publish(ctx, event); err != nil {
			w.logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Int("retry_count", event.RetryCount),
				zap.Error(err),
			)
			if markErr := w.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				w.logger.Error("mark outbox event failed errored",
					zap.String("outbox_id", event.ID),
					zap.Error(markErr),
				)
			}
			continue
		}

		if err := w.repo.MarkSent(ctx, event.ID); err != nil {
			w.logger.Error("mark outbox event sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}
		sent++
	}

	return sent, nil
}

func (w *Worker) publish(ctx context.Context, event kafka.OutboxEvent) error {
	headers := []kafkago.Header{
		{Key: "event_type", Value: []byte(event.EventType)},
		{Key: "aggregate_type", Value: []byte(event.AggregateType)},
	}
	if event.RequestID != "" {
		headers = append(headers, kafkago.Header{
			Key:   "request_id",
			Value: []byte(event.RequestID),
		})
	}

	return w.writer.WriteMessages(ctx, kafkago.Message{
		Topic:   event.Topic,
		Key:     []byte(event.AggregateID),
		Value:   event.Payload,
		Headers: headers,
	})
}
