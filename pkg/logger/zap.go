package logger

import (
	"context"
	"strings"

	"github.com/Gunvolt24/calllog/internal/ports"
	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/ctxmeta"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	_ ports.Logger = (*ZapLogger)(nil)
	_ calllog.Sink = (*ZapLogger)(nil)
)

// ZapLogger — логгер приложения (Infof/Warnf/Errorf) и sink фасада calllog поверх zap.
// Метаданные запроса из контекста (request_id, trace_id, span_id) добавляются полями.
type ZapLogger struct {
	base   *zap.Logger
	sugar  *zap.SugaredLogger
	sink   *zap.Logger // без caller: место вызова уже есть в тексте сообщения фасада
	isProd bool
}

// Options — настройки логгера.
type Options struct {
	IsProd  bool
	Level   string // debug|info|warn|error; пусто — debug в dev, info в prod
	Service string
}

// NewZapLogger — dev/prod-логгер с настройками по умолчанию.
func NewZapLogger(isProd bool) (*ZapLogger, func() error, error) {
	return NewZapLoggerWithOptions(Options{IsProd: isProd})
}

// NewZapLoggerWithOptions — логгер по Options. Возвращает функцию cleanup (Sync).
func NewZapLoggerWithOptions(opts Options) (*ZapLogger, func() error, error) {
	cfg := zap.NewDevelopmentConfig()
	if opts.IsProd {
		cfg = zap.NewProductionConfig()
	}

	if lvl := strings.TrimSpace(opts.Level); lvl != "" {
		parsed, err := zapcore.ParseLevel(lvl)
		if err != nil {
			return nil, nil, err
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	if opts.Service != "" {
		cfg.InitialFields = map[string]any{"service": opts.Service}
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}

	loggerWrap := wrap(logger, opts.IsProd)
	cleanup := func() error { return loggerWrap.base.Sync() }
	return loggerWrap, cleanup, nil
}

// NewFromCore — логгер поверх готового zapcore.Core (например, observer в тестах).
func NewFromCore(core zapcore.Core) *ZapLogger {
	return wrap(zap.New(core, zap.AddCaller()), false)
}

func wrap(logger *zap.Logger, isProd bool) *ZapLogger {
	base := logger.WithOptions(zap.AddCallerSkip(1))
	return &ZapLogger{
		base:   base,
		sugar:  base.Sugar(),
		sink:   logger.WithOptions(zap.WithCaller(false)),
		isProd: isProd,
	}
}

func (z *ZapLogger) Infof(ctx context.Context, format string, args ...any) {
	z.sugarFor(ctx).Infof(format, args...)
}

func (z *ZapLogger) Warnf(ctx context.Context, format string, args ...any) {
	z.sugarFor(ctx).Warnf(format, args...)
}

func (z *ZapLogger) Errorf(ctx context.Context, format string, args ...any) {
	z.sugarFor(ctx).Errorf(format, args...)
}

// Error, Debug, Info — контракт calllog.Sink.
func (z *ZapLogger) Error(ctx context.Context, msg string, err error) {
	z.sink.Error(msg, fields(ctx, err)...)
}

func (z *ZapLogger) Debug(ctx context.Context, msg string, err error) {
	z.sink.Debug(msg, fields(ctx, err)...)
}

func (z *ZapLogger) Info(ctx context.Context, msg string, err error) {
	z.sink.Info(msg, fields(ctx, err)...)
}

func (z *ZapLogger) Base() *zap.Logger           { return z.base }
func (z *ZapLogger) Sugared() *zap.SugaredLogger { return z.sugar }
func (z *ZapLogger) IsProd() bool                { return z.isProd }

func (z *ZapLogger) sugarFor(ctx context.Context) *zap.SugaredLogger {
	pairs := ctxmeta.FromContext(ctx).Pairs()
	if len(pairs) == 0 {
		return z.sugar
	}
	kv := make([]any, len(pairs))
	for i, p := range pairs {
		kv[i] = p
	}
	return z.sugar.With(kv...)
}

// fields — поля zap из метаданных запроса и ошибки.
func fields(ctx context.Context, err error) []zap.Field {
	pairs := ctxmeta.FromContext(ctx).Pairs()
	out := make([]zap.Field, 0, len(pairs)/2+1)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, zap.String(pairs[i], pairs[i+1]))
	}
	if err != nil {
		out = append(out, zap.Error(err))
	}
	return out
}
