package app_test

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gunvolt24/calllog/config"
	"github.com/Gunvolt24/calllog/internal/app"
	"github.com/Gunvolt24/calllog/pkg/calllog"
)

// логгер-заглушка
type nopLogger struct{}

func (nopLogger) Infof(context.Context, string, ...any)  {}
func (nopLogger) Warnf(context.Context, string, ...any)  {}
func (nopLogger) Errorf(context.Context, string, ...any) {}

// фейковый консьюмер, который ждёт отмены контекста
type fakeConsumer struct {
	runCalls   int32
	closeCalls int32
}

func (f *fakeConsumer) Run(ctx context.Context) error {
	atomic.AddInt32(&f.runCalls, 1)
	<-ctx.Done()
	return ctx.Err()
}
func (f *fakeConsumer) Close() error {
	atomic.AddInt32(&f.closeCalls, 1)
	return nil
}

func TestAppRun_GracefulShutdown(t *testing.T) {
	// HTTP-сервер на случайном свободном порту
	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}

	fc := &fakeConsumer{}
	a := &app.App{
		Logger:        nopLogger{},
		HTTPServer:    srv,
		KafkaConsumer: fc,
	}

	// Запуск и быстрая остановка
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if atomic.LoadInt32(&fc.runCalls) == 0 {
		t.Fatalf("consumer.Run should be called")
	}
	if atomic.LoadInt32(&fc.closeCalls) == 0 {
		t.Fatalf("consumer.Close should be called")
	}
}

type recSink struct{ msgs []string }

func (r *recSink) Error(_ context.Context, msg string, _ error) { r.msgs = append(r.msgs, msg) }
func (r *recSink) Debug(_ context.Context, msg string, _ error) { r.msgs = append(r.msgs, msg) }
func (r *recSink) Info(_ context.Context, msg string, _ error)  { r.msgs = append(r.msgs, msg) }

func TestNewFacade_FansOutToAllSinks(t *testing.T) {
	a, b := &recSink{}, &recSink{}
	n := app.NewFacade(config.Caller{CacheCapacity: 8}, a, b)

	n.Info(context.Background(), "hello", calllog.Fields{"n": 1})

	want := ".self_TestNewFacade_FansOutToAllSinks: hello. {n: 1}"
	for _, s := range []*recSink{a, b} {
		if len(s.msgs) != 1 || !strings.HasSuffix(s.msgs[0], want) {
			t.Fatalf("want [*%q], got %v", want, s.msgs)
		}
	}
	if a.msgs[0] != b.msgs[0] {
		t.Fatalf("sinks got different messages: %q vs %q", a.msgs[0], b.msgs[0])
	}
}

func TestNewShipper_Toggle(t *testing.T) {
	cfg := &config.Config{}
	if p := app.NewShipper(cfg, nopLogger{}); p != nil {
		t.Fatalf("shipper must be nil when disabled")
	}

	cfg.Kafka.Ship = true
	cfg.Kafka.Brokers = []string{"127.0.0.1:1"}
	cfg.Kafka.Topic = "log-entries"
	p := app.NewShipper(cfg, nopLogger{})
	if p == nil {
		t.Fatalf("shipper must be created when enabled")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
