package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/calllog/internal/domain"
	"github.com/Gunvolt24/calllog/internal/ports"
	"github.com/Gunvolt24/calllog/internal/usecase"
	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/httpx"
)

const (
	defaultLimit = 50
	maxLimit     = usecase.MaxListLimit
)

// Handler — HTTP-обработчики чтения журнала.
type Handler struct {
	service ports.EntryReadService
	log     ports.Logger
	facade  *calllog.Normalizer
	timeout time.Duration
}

// NewHandler — конструктор; facade (nil — фасад по умолчанию) пишет журнал запросов и паники,
// timeout ограничивает обращение к сервису (0 — без ограничения).
func NewHandler(service ports.EntryReadService, log ports.Logger, facade *calllog.Normalizer, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, facade: facade, timeout: timeout}
}

// NewRouter — gin-роутер. Непустой otelServiceName включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(httpx.Recovery(h.facade))
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.facade))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/entries", h.listEntries)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "route not found"})
	})
	// все маршруты только на чтение
	r.NoMethod(func(c *gin.Context) {
		c.Header("Allow", http.MethodGet)
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})

	return r
}

func (h *Handler) listEntries(c *gin.Context) {
	limit, offset := httpx.ParseLimitOffset(c, defaultLimit, maxLimit)
	filter := domain.EntryFilter{
		Severity: httpx.QueryLower(c, "severity"),
		Limit:    limit,
		Offset:   offset,
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	entries, err := h.service.Recent(ctx, filter)
	switch {
	case err == nil:
	case errors.Is(err, usecase.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, context.DeadlineExceeded):
		h.log.Warnf(c.Request.Context(), "Recent timed out filter=%+v", filter)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "timeout"})
		return
	default:
		h.log.Errorf(c.Request.Context(), "Recent failed filter=%+v err=%v", filter, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if entries == nil {
		entries = []*domain.Entry{}
	}
	c.JSON(http.StatusOK, entries)
}
