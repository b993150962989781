package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/openkyc/kyc/internal/config"
	"github.com/openkyc/kyc/internal/domain/models"
	"github.com/openkyc/kyc/pkg/logger"
)

// KafkaProducer streams audit entries to a Kafka topic. Each message carries
// an HMAC signature header so consumers can detect tampering in transit.
type KafkaProducer struct {
	writer    *kafka.Writer
	signature string
	logger    logger.Logger
}

// NewKafkaProducer creates the Kafka audit sink. signingSecret may be empty,
// in which case messages are published unsigned.
func NewKafkaProducer(cfg config.KafkaConfig, signingSecret string, log logger.Logger) *KafkaProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
		BatchTimeout: 100 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}
	return &KafkaProducer{
		writer:    writer,
		signature: signingSecret,
		logger:    log.WithComponent("audit_kafka"),
	}
}

func (p *KafkaProducer) Write(ctx context.Context, entry *models.AuditLog) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		p.logger.Error(ctx, "failed to marshal audit entry", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(entry.EventID.String()),
		Value: payload,
	}
	if p.signature != "" {
		msg.Headers = append(msg.Headers, kafka.Header{
			Key:   "x-audit-signature",
			Value: []byte(SignEntry(payload, p.signature)),
		})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(ctx, "failed to publish audit entry", err, logger.Fields{
			"event_id": entry.EventID.String(),
		})
		return err
	}
	return nil
}

// Close shuts down the underlying Kafka writer.
func (p *KafkaProducer) Close() error {
	return p.writer.Close()
}
