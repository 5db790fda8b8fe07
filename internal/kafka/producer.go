package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/calllog/internal/domain"
	"github.com/Gunvolt24/calllog/internal/ports"
	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/ctxmeta"
	"github.com/Gunvolt24/calllog/pkg/metrics"
)

// Producer — sink фасада calllog, отправляющий каждую запись в Kafka.
var _ calllog.Sink = (*Producer)(nil)

// writer — минимальный контракт над kafka.Writer (подменяется моками в тестах).
type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProducerConfig — параметры отправки записей журнала.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	Service      string
	WriteTimeout time.Duration
}

// Producer — JSON-записи domain.Entry в топик; ключ сообщения — уровень.
// Ошибки записи не возвращаются: они считаются метрикой и уходят в запасной логгер.
// Writer из NewProducer асинхронный: вызов фасада не ждёт брокера,
// итог доставки приходит в delivered.
type Producer struct {
	writer    writer
	async     bool
	topic     string
	service   string
	timeout   time.Duration
	fallback  ports.Logger
	now       func() time.Time
	closeOnce sync.Once
}

// NewProducer — конструктор; fallback получает ошибки доставки (не должен сам писать в Kafka).
func NewProducer(cfg *ProducerConfig, fallback ports.Logger) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Async:                  true,
	}
	p := newProducer(w, cfg, fallback)
	p.async = true
	w.WriteTimeout = p.timeout
	w.Completion = p.delivered
	return p
}

func newProducer(w writer, cfg *ProducerConfig, fallback ports.Logger) *Producer {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Producer{
		writer:   w,
		topic:    cfg.Topic,
		service:  cfg.Service,
		timeout:  timeout,
		fallback: fallback,
		now:      time.Now,
	}
}

func (p *Producer) Error(ctx context.Context, msg string, err error) {
	p.ship(ctx, calllog.SeverityError, msg, err)
}

func (p *Producer) Debug(ctx context.Context, msg string, err error) {
	p.ship(ctx, calllog.SeverityDebug, msg, err)
}

func (p *Producer) Info(ctx context.Context, msg string, err error) {
	p.ship(ctx, calllog.SeverityInfo, msg, err)
}

// Close — отправляет накопленные записи, дожидается их подтверждения и закрывает writer.
func (p *Producer) Close() (retErr error) {
	p.closeOnce.Do(func() {
		retErr = p.writer.Close()
	})
	return retErr
}

func (p *Producer) ship(ctx context.Context, sev calllog.Severity, msg string, err error) {
	entry := p.entry(ctx, sev, msg, err)
	payload, mErr := json.Marshal(entry)
	if mErr != nil {
		metrics.EntriesShipFailed.WithLabelValues(p.topic).Inc()
		p.fallback.Warnf(ctx, "marshal log entry id=%s: %v", entry.ID, mErr)
		return
	}

	// запись журнала не должна теряться из-за отмены запроса, который её породил
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	wErr := p.writer.WriteMessages(wctx, kafka.Message{
		Key:     []byte(entry.Severity),
		Value:   payload,
		Time:    entry.Time,
		Headers: requestIDHeaders(entry.RequestID),
	})
	if wErr != nil {
		metrics.EntriesShipFailed.WithLabelValues(p.topic).Inc()
		p.fallback.Warnf(ctx, "ship log entry id=%s topic=%s: %v", entry.ID, p.topic, wErr)
		return
	}
	if !p.async {
		metrics.EntriesShipped.WithLabelValues(p.topic).Inc()
	}
}

// delivered — итог асинхронной отправки пачки (kafka.Writer.Completion).
func (p *Producer) delivered(msgs []kafka.Message, err error) {
	if len(msgs) == 0 {
		return
	}
	if err == nil {
		metrics.EntriesShipped.WithLabelValues(p.topic).Add(float64(len(msgs)))
		return
	}
	metrics.EntriesShipFailed.WithLabelValues(p.topic).Add(float64(len(msgs)))
	ctx := contextFromHeaders(context.Background(), msgs[0].Headers)
	p.fallback.Warnf(ctx, "ship %d log entries topic=%s: %v", len(msgs), p.topic, err)
}

func (p *Producer) entry(ctx context.Context, sev calllog.Severity, msg string, err error) *domain.Entry {
	meta := ctxmeta.FromContext(ctx)
	entry := &domain.Entry{
		ID:        uuid.NewString(),
		Time:      p.now().UTC(),
		Severity:  sev.String(),
		Message:   msg,
		RequestID: meta.RequestID,
		TraceID:   meta.TraceID,
		SpanID:    meta.SpanID,
		Service:   p.service,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	return entry
}
