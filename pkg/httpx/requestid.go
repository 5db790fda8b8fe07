package httpx

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Gunvolt24/calllog/pkg/ctxmeta"
)

// HeaderRequestID — заголовок корреляции запроса.
const HeaderRequestID = "X-Request-ID"

// MaxRequestIDLen — предел длины принимаемого от клиента X-Request-ID.
const MaxRequestIDLen = ctxmeta.MaxRequestIDLen

// RequestIDMiddleware — request_id попадает в контекст, а оттуда в каждую запись журнала
// (zap-поля, Entry.RequestID, заголовок сообщения Kafka).
// Клиентский X-Request-ID принимается, если он не длиннее MaxRequestIDLen
// и состоит из печатных ASCII-символов; иначе генерируется UUID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(HeaderRequestID)
		if !ctxmeta.ValidRequestID(requestID) {
			requestID = uuid.NewString()
		}
		c.Header(HeaderRequestID, requestID)

		c.Request = c.Request.WithContext(ctxmeta.WithRequestID(c.Request.Context(), requestID))
		c.Next()
	}
}
