package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/calllog/pkg/ctxmeta"
)

// HeaderRequestID — заголовок сообщения с request_id исходного запроса.
// Сборщик поднимает его в контекст, чтобы свои логи по записи были с тем же request_id.
const HeaderRequestID = "request_id"

func requestIDHeaders(requestID string) []kafka.Header {
	if requestID == "" {
		return nil
	}
	return []kafka.Header{{Key: HeaderRequestID, Value: []byte(requestID)}}
}

func contextFromHeaders(ctx context.Context, headers []kafka.Header) context.Context {
	for _, h := range headers {
		if h.Key == HeaderRequestID && ctxmeta.ValidRequestID(string(h.Value)) {
			return ctxmeta.WithRequestID(ctx, string(h.Value))
		}
	}
	return ctx
}
