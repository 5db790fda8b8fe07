package calllog

import "context"

// Scope — Normalizer с привязанным «владельцем» вызова: его тип даёт имя класса в сообщении.
// Если владелец — reflect.Type, вызовы считаются вызовами уровня типа (метка с префиксом self_).
//
//	log := calllog.For(w)                         // экземпляр
//	log := calllog.For(reflect.TypeFor[Worker]()) // тип
type Scope struct {
	n   *Normalizer
	own owner
}

// For — Scope для владельца v.
func (n *Normalizer) For(v any) Scope { return Scope{n: n, own: ownerOf(v)} }

func (s Scope) normalizer() *Normalizer {
	if s.n != nil {
		return s.n
	}
	return Default()
}

func (s Scope) Error(ctx context.Context, args ...any) {
	s.normalizer().emit(ctx, SeverityError, s.own, argsRoles(args))
}

func (s Scope) Debug(ctx context.Context, args ...any) {
	s.normalizer().emit(ctx, SeverityDebug, s.own, argsRoles(args))
}

func (s Scope) Info(ctx context.Context, args ...any) {
	s.normalizer().emit(ctx, SeverityInfo, s.own, argsRoles(args))
}

func (s Scope) Send(ctx context.Context, sev Severity, c Call) {
	s.normalizer().emit(ctx, sev, s.own, c.roles)
}

func (s Scope) Resolve(sev Severity, args ...any) ResolvedCall {
	site, _ := callerFrame()
	return s.normalizer().safeResolve(context.Background(), sev, s.own, site, argsRoles(args))
}
