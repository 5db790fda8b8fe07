package httpx

import (
	"fmt"
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/calllog/pkg/calllog"
)

// PanicError — паника обработчика как ошибка; стек начинается с функции, где случилась паника.
type PanicError struct {
	Value any
	pcs   []uintptr
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Callers — стек паники (метку вызова фасад берёт из первого прикладного кадра).
func (e *PanicError) Callers() []uintptr { return e.pcs }

// Unwrap — исходная ошибка, если паниковали ошибкой.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// Recovery — перехват паник обработчиков: запись уровня error через фасад и ответ 500.
func Recovery(n *calllog.Normalizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			log := n
			if log == nil {
				log = calllog.Default()
			}
			log.Error(c.Request.Context(), newPanicError(rec), calllog.Fields{
				"method": c.Request.Method,
				"path":   c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}()
		c.Next()
	}
}

func newPanicError(v any) *PanicError {
	pcs := make([]uintptr, 64)
	pcs = pcs[:runtime.Callers(2, pcs)]
	for i, pc := range pcs {
		if fn := runtime.FuncForPC(pc - 1); fn != nil && fn.Name() == "runtime.gopanic" {
			pcs = pcs[i+1:]
			break
		}
	}
	return &PanicError{Value: v, pcs: pcs}
}
