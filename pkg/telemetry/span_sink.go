package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Gunvolt24/calllog/pkg/calllog"
)

var _ calllog.Sink = SpanSink{}

// EventName — имя события спана для записи журнала.
const EventName = "log"

// SpanSink — sink фасада calllog: запись журнала становится событием активного спана.
// Уровень error дополнительно записывает ошибку и помечает спан статусом Error.
// Без записываемого спана в контексте ничего не делает.
type SpanSink struct{}

func (SpanSink) Error(ctx context.Context, msg string, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	addEvent(span, calllog.SeverityError, msg, err)
	if err != nil {
		span.RecordError(err)
	}
	span.SetStatus(codes.Error, msg)
}

func (SpanSink) Debug(ctx context.Context, msg string, err error) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		addEvent(span, calllog.SeverityDebug, msg, err)
	}
}

func (SpanSink) Info(ctx context.Context, msg string, err error) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		addEvent(span, calllog.SeverityInfo, msg, err)
	}
}

func addEvent(span trace.Span, sev calllog.Severity, msg string, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("log.severity", sev.String()),
		attribute.String("log.message", msg),
	}
	if err != nil {
		attrs = append(attrs, attribute.String("log.error", err.Error()))
	}
	span.AddEvent(EventName, trace.WithAttributes(attrs...))
}
