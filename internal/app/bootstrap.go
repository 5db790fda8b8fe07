package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/calllog/config"
	cachemem "github.com/Gunvolt24/calllog/internal/cache/memory"
	"github.com/Gunvolt24/calllog/internal/kafka"
	"github.com/Gunvolt24/calllog/internal/ports"
	"github.com/Gunvolt24/calllog/internal/repo/postgres"
	rest "github.com/Gunvolt24/calllog/internal/transport/http"
	"github.com/Gunvolt24/calllog/internal/usecase"
	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/logger"
	"github.com/Gunvolt24/calllog/pkg/metrics"
	"github.com/Gunvolt24/calllog/pkg/telemetry"
	"github.com/Gunvolt24/calllog/pkg/validate"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, consumer).
type App struct {
	Logger          ports.Logger          // логгер
	HTTPServer      *http.Server          // HTTP-сервер
	KafkaConsumer   ports.MessageConsumer // консьюмер сообщений
	gracefulTimeout time.Duration         // время ожидания завершения HTTP-сервера
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// NewFacade — нормализатор с настройками из секции Caller; вызовы уходят во все sinks.
func NewFacade(cfg config.Caller, sinks ...calllog.Sink) *calllog.Normalizer {
	return calllog.New(calllog.Tee(sinks...),
		calllog.WithNamespaces(cfg.Namespaces...),
		calllog.WithCauseFallback(cfg.CauseFallback),
		calllog.WithFrameCache(cachemem.NewFrameCache(cfg.CacheCapacity, cfg.CacheTTL)),
		calllog.WithObserver(metrics.Observer{}),
	)
}

// NewShipper — Producer-sink в топик журнала; nil, если отправка выключена.
func NewShipper(cfg *config.Config, fallback ports.Logger) *kafka.Producer {
	if !cfg.Kafka.Ship {
		return nil
	}
	return kafka.NewProducer(&kafka.ProducerConfig{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		Service:      cfg.Logger.Service,
		WriteTimeout: cfg.Kafka.WriteTimeout,
	}, fallback)
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
// Собранный фасад становится фасадом по умолчанию (calllog.SetDefault).
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (режим и уровень задаются конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLoggerWithOptions(logger.Options{
		IsProd:  cfg.Logger.IsProd,
		Level:   cfg.Logger.Level,
		Service: cfg.Logger.Service,
	})
	if err != nil {
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	shutdownTrace := func(context.Context) error { return nil }
	tracing := false
	if cfg.Tracing.Enabled {
		setup, tErr := telemetry.SetupTracing(ctx, telemetry.TracingOptions{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			shutdownTrace = setup
			tracing = true
		}
	}

	// Фасад: zap всегда, Kafka и события спана — по конфигурации.
	sinks := []calllog.Sink{logg}
	shipper := NewShipper(cfg, logg)
	if shipper != nil {
		sinks = append(sinks, shipper)
	}
	if tracing {
		sinks = append(sinks, telemetry.SpanSink{})
	}
	facade := NewFacade(cfg.Caller, sinks...)
	calllog.SetDefault(facade)

	closeShipper := func() {
		if shipper == nil {
			return
		}
		if err := shipper.Close(); err != nil {
			logg.Warnf(ctx, "kafka producer close error: %v", err)
		}
	}

	// Миграции схемы журнала.
	if cfg.Postgres.Migrate {
		applied, mErr := postgres.Migrate(ctx, cfg.Postgres.DSN)
		if mErr != nil {
			calllog.SetDefault(nil)
			closeShipper()
			_ = shutdownTrace(context.Background())
			_ = cleanupLogger()
			return nil, func() {}, mErr
		}
		logg.Infof(ctx, "migrations applied: %d", applied)
	}

	// Пул подключений Postgres
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
	if err != nil {
		calllog.SetDefault(nil)
		closeShipper()
		_ = shutdownTrace(context.Background())
		if cErr := cleanupLogger(); cErr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cErr)
		}
		return nil, func() {}, err
	}

	// Сборка зависимостей доменного слоя.
	entryRepo := postgres.NewEntryRepository(pool)
	entryValidator := validate.NewEntryValidator()
	entryService := usecase.NewEntryService(entryRepo, logg, entryValidator)

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if tracing {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(entryService, logg, facade, cfg.HTTP.HandlerTimeout)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	// Конфигурация и создание консьюмера Kafka.
	kafkaCfg := kafka.ConsumerConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		Topic:          cfg.Kafka.Topic,
		StartOffset:    cfg.Kafka.StartOffset,
		ProcessTimeout: cfg.Kafka.ProcessTimeout,
		RetryInitial:   cfg.Kafka.RetryInitial,
		RetryMax:       cfg.Kafka.RetryMax,
	}
	consumer := kafka.NewConsumer(&kafkaCfg, entryService, logg)

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		KafkaConsumer:   consumer,
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	// Очистка ресурсов (в обратном порядке).
	cleanup := func() {
		calllog.SetDefault(nil)
		closeShipper()
		if terr := shutdownTrace(context.Background()); terr != nil {
			logg.Warnf(ctx, "shutdown tracing: %v", terr)
		}
		if err := consumer.Close(); err != nil {
			logg.Warnf(ctx, "kafka consumer close error: %v", err)
		}

		pool.Close()
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}

	return app, cleanup, nil
}

// Run — запускает HTTP-сервер и консьюмера; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 2)

	// Запуск консьюмера.
	go func() {
		a.Logger.Infof(ctx, "kafka consumer starting")
		if err := a.KafkaConsumer.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	// Запуск HTTP-сервера.
	go func() {
		a.Logger.Infof(ctx, "http server starting (addr=%s)", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-сервера.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	if err := a.HTTPServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warnf(ctx, "http server shutdown failed: %v", err)
	} else {
		a.Logger.Infof(ctx, "http server stopped gracefully")
	}

	// Остановка Kafka-консьюмера
	if err := a.KafkaConsumer.Close(); err != nil {
		a.Logger.Warnf(ctx, "kafka consumer close error: %v", err)
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
