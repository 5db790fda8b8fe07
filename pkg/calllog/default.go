package calllog

import (
	"context"
	"sync/atomic"
)

var std atomic.Pointer[Normalizer]

func init() { std.Store(New(Discard)) }

// SetDefault — заменяет Normalizer, которым пользуются функции пакета. nil — сброс на Discard.
func SetDefault(n *Normalizer) {
	if n == nil {
		n = New(Discard)
	}
	std.Store(n)
}

func Default() *Normalizer { return std.Load() }

func Error(ctx context.Context, args ...any) {
	Default().emit(ctx, SeverityError, owner{}, argsRoles(args))
}

func Debug(ctx context.Context, args ...any) {
	Default().emit(ctx, SeverityDebug, owner{}, argsRoles(args))
}

func Info(ctx context.Context, args ...any) {
	Default().emit(ctx, SeverityInfo, owner{}, argsRoles(args))
}

// Send — Normalizer.Send для Normalizer по умолчанию.
func Send(ctx context.Context, sev Severity, c Call) {
	Default().emit(ctx, sev, owner{}, c.roles)
}

// For — Scope над текущим Normalizer по умолчанию. Последующий SetDefault на уже созданный Scope не влияет.
func For(v any) Scope { return Default().For(v) }
