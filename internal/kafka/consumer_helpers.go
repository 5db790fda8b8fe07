package kafka

import (
	"context"
	"errors"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/calllog/pkg/metrics"
	"github.com/Gunvolt24/calllog/pkg/validate"
)

// handleMessage сохраняет одну запись; true — оффсет можно коммитить.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	ctx = contextFromHeaders(ctx, msg.Headers)

	pctx, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.service.SaveFromMessage(pctx, msg.Value)
	cancel()

	switch {
	case err == nil:
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case errors.Is(err, validate.ErrInvalidEntry):
		// мусор не ретраим
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "invalid entry partition=%d offset=%d key=%q: %v (skipped)",
			msg.Partition, msg.Offset, msg.Key, err)
		return true
	default:
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "save failed partition=%d offset=%d: %v (will retry without commit)",
			msg.Partition, msg.Offset, err)
		return false
	}
}

// commitSafely — ошибка коммита только логируется: запись уже сохранена идемпотентно.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if err := c.reader.CommitMessages(ctx, *msg); err != nil {
		c.log.Warnf(ctx, "commit failed partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
	}
}
