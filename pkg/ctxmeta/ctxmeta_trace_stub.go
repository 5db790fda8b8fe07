//go:build !otel || gopls

package ctxmeta

import "context"

// Без тега `otel` трасс нет: в Meta и в записях журнала остаётся только request_id.

func TraceIDFromContext(context.Context) (string, bool) { return "", false }

func SpanIDFromContext(context.Context) (string, bool) { return "", false }
