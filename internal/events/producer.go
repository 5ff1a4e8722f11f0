package events

import (
    "context"
    "encoding/json"
    "time"

    "github.com/google/uuid"
    "github.com/segmentio/kafka-go"
    "github.com/warungkita/pos-service/internal/domain"
    "go.uber.org/zap"
)

// Publisher emits completed sales to the sale-events topic. A nil Publisher
// is valid and publishes nothing, which is how the service runs when no
// brokers are configured.
type Publisher struct {
    writer *kafka.Writer
    logger *zap.Logger
}

func NewPublisher(brokers string, logger *zap.Logger) *Publisher {
    writer := &kafka.Writer{
        Addr:         kafka.TCP(brokers),
        Topic:        "sale-events",
        Balancer:     &kafka.LeastBytes{},
        BatchTimeout: 10 * time.Millisecond,
    }

    return &Publisher{
        writer: writer,
        logger: logger,
    }
}

func (p *Publisher) PublishSaleCompleted(ctx context.Context, trx domain.Transaction) error {
    if p == nil {
        return nil
    }

    event := fromTransaction(uuid.NewString(), trx)

    eventBytes, err := json.Marshal(event)
    if err != nil {
        p.logger.Error("Failed to marshal sale event", zap.Error(err))
        return err
    }

    msg := kafka.Message{
        Key:   []byte(event.TransactionID),
        Value: eventBytes,
    }

    ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
    defer cancel()

    if err := p.writer.WriteMessages(ctx, msg); err != nil {
        p.logger.Error("Failed to publish sale event",
            zap.String("event_id", event.EventID),
            zap.String("transaction_id", event.TransactionID),
            zap.Error(err))
        return err
    }

    p.logger.Info("Sale event published",
        zap.String("event_id", event.EventID),
        zap.String("transaction_id", event.TransactionID))

    return nil
}

func (p *Publisher) Close() error {
    if p == nil || p.writer == nil {
        return nil
    }
    return p.writer.Close()
}
