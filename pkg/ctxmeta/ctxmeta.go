// Пакет ctxmeta — нейтральный слой для метаданных запроса, которые прокидываются
// через context.Context (request_id, trace_id, span_id). Sink'и журнала и HTTP-слой
// зависят от этого пакета, но не друг от друга.
package ctxmeta

import "context"

type ctxKey string

const (
	// Ключи контекста (неэкспортируемый тип — чтобы избежать коллизий).
	KeyRequestID ctxKey = "request_id"
)

// WithRequestID кладёт request_id в контекст (если пусто — ничего не делает).
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// MaxRequestIDLen — предел длины request_id.
const MaxRequestIDLen = 128

// ValidRequestID — непустой request_id не длиннее MaxRequestIDLen из видимых ASCII-символов (0x21..0x7e).
// Одно правило для заголовка X-Request-ID, заголовка Kafka и проверки записи журнала.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > MaxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// RequestIDFromContext достаёт request_id из контекста.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	if v, ok := ctx.Value(KeyRequestID).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// Meta — все метаданные запроса разом; пустые строки — значения нет.
type Meta struct {
	RequestID string
	TraceID   string
	SpanID    string
}

// FromContext собирает Meta из контекста; nil-контекст даёт пустую Meta.
func FromContext(ctx context.Context) Meta {
	if ctx == nil {
		return Meta{}
	}
	var m Meta
	m.RequestID, _ = RequestIDFromContext(ctx)
	m.TraceID, _ = TraceIDFromContext(ctx)
	m.SpanID, _ = SpanIDFromContext(ctx)
	return m
}

// Pairs — непустые значения в виде key, value, ... (ключи: request_id, trace_id, span_id).
func (m Meta) Pairs() []string {
	out := make([]string, 0, 6)
	if m.RequestID != "" {
		out = append(out, "request_id", m.RequestID)
	}
	if m.TraceID != "" {
		out = append(out, "trace_id", m.TraceID)
	}
	if m.SpanID != "" {
		out = append(out, "span_id", m.SpanID)
	}
	return out
}
