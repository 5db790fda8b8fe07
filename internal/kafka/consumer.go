package kafka

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/calllog/internal/ports"
	"github.com/Gunvolt24/calllog/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

// reader — минимальный контракт над источником (kafka.Reader),
// чтобы легко подменять его моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// entrySaver — бизнес-логика, которая разбирает, валидирует и сохраняет запись журнала.
type entrySaver interface {
	SaveFromMessage(ctx context.Context, raw []byte) error
}

// Consumer — сборщик записей журнала, отправленных Producer'ом других процессов.
// Гарантия at-least-once: оффсет коммитится только после сохранения
// или после признания записи невалидной.
type Consumer struct {
	reader         reader
	service        entrySaver
	log            ports.Logger
	processTimeout time.Duration
	backoff        *backoff
	closeOnce      sync.Once
}

// NewConsumer — конструктор. ReaderConfig() настроен на ручной коммит оффсетов.
func NewConsumer(cfg *ConsumerConfig, service entrySaver, log ports.Logger) *Consumer {
	pt := cfg.ProcessTimeout
	if pt <= 0 {
		pt = 5 * time.Second
	}
	rInit := cfg.RetryInitial
	if rInit <= 0 {
		rInit = time.Second
	}
	rMax := cfg.RetryMax
	if rMax <= 0 {
		rMax = 30 * time.Second
	}

	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		service:        service,
		log:            log,
		processTimeout: pt,
		backoff:        newBackoff(rInit, rMax, rand.New(rand.NewSource(time.Now().UnixNano()))),
	}
}

// Run — цикл сборщика до отмены ctx:
// ошибки FetchMessage ждут по экспоненциальному backoff;
// сохранённая или невалидная запись коммитится;
// временная ошибка сохранения оставляет оффсет на месте (повтор после ребаланса/рестарта).
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "log collector started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			wait := c.backoff.next()
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, wait)
			if !sleepCtx(ctx, wait) {
				return ctx.Err()
			}
			continue
		}

		c.backoff.reset()
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if c.handleMessage(ctx, rc.Topic, &msg) {
			c.commitSafely(ctx, &msg)
			continue
		}
		if !sleepCtx(ctx, c.backoff.pause()) {
			return ctx.Err()
		}
	}
}

// Close - закрывает reader. Вызывается при остановке приложения.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}
