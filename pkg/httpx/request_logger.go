package httpx

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/calllog/pkg/calllog"
)

// RequestLogger — журнал HTTP-запросов через фасад calllog (nil — фасад по умолчанию).
// 5xx пишутся уровнем error, остальное — info; request_id/trace_id добавляет sink из контекста.
func RequestLogger(n *calllog.Normalizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		// не логируем /metrics, /ping
		switch c.FullPath() {
		case "/metrics", "/ping":
			return
		}

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		log := n
		if log == nil {
			log = calllog.Default()
		}

		status := c.Writer.Status()
		sev := calllog.SeverityInfo
		if status >= http.StatusInternalServerError {
			sev = calllog.SeverityError
		}

		log.Log(c.Request.Context(), sev,
			c.Request.Method+" "+path,
			calllog.Method("access"),
			calllog.Fields{
				"status":   status,
				"ip":       c.ClientIP(),
				"duration": time.Since(start).String(),
				"size":     c.Writer.Size(),
			},
		)
	}
}
