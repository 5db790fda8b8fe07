package calllog

import "context"

// Sink — контракт внешнего логгера, который реально форматирует и пишет строку.
// Реализация должна быть безопасной для конкурентного использования.
type Sink interface {
	Error(ctx context.Context, msg string, err error)
	Debug(ctx context.Context, msg string, err error)
	Info(ctx context.Context, msg string, err error)
}

// Discard — Sink, который ничего не делает.
var Discard Sink = discard{}

type discard struct{}

func (discard) Error(context.Context, string, error) {}
func (discard) Debug(context.Context, string, error) {}
func (discard) Info(context.Context, string, error)  {}

// Tee — рассылает каждый вызов во все переданные sink'и по порядку; nil пропускаются.
func Tee(sinks ...Sink) Sink {
	out := make(tee, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	if len(out) == 1 {
		return out[0]
	}
	return out
}

type tee []Sink

func (t tee) Error(ctx context.Context, msg string, err error) {
	for _, s := range t {
		s.Error(ctx, msg, err)
	}
}

func (t tee) Debug(ctx context.Context, msg string, err error) {
	for _, s := range t {
		s.Debug(ctx, msg, err)
	}
}

func (t tee) Info(ctx context.Context, msg string, err error) {
	for _, s := range t {
		s.Info(ctx, msg, err)
	}
}

// dispatch — вызывает метод sink'а, соответствующий уровню.
func dispatch(ctx context.Context, sink Sink, sev Severity, msg string, err error) {
	switch sev {
	case SeverityError:
		sink.Error(ctx, msg, err)
	case SeverityDebug:
		sink.Debug(ctx, msg, err)
	default:
		sink.Info(ctx, msg, err)
	}
}
