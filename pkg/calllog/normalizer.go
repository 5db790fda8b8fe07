package calllog

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// typeLevelPrefix — префикс метки для вызовов из контекста типа/пакета, а не экземпляра.
const typeLevelPrefix = "self_"

// Caller — «кто залогировал»: имя класса и метода.
type Caller struct {
	Class     string
	Method    string
	TypeLevel bool
}

// Label — метка метода в сообщении; для вызовов уровня типа/пакета с префиксом self_.
func (c Caller) Label() string {
	if c.TypeLevel {
		return typeLevelPrefix + c.Method
	}
	return c.Method
}

// ResolvedCall — собранный вызов, готовый к передаче в Sink.
type ResolvedCall struct {
	Severity Severity
	Message  string // итоговая строка, всегда непустая
	Err      error
	Text     string // текстовая часть: переданный текст, строка кода или текст ошибки
	Caller   Caller
	Fields   Fields // nil, если данных нет
}

// Observer — хуки для метрик. Вызываются синхронно на каждом вызове фасада.
type Observer interface {
	Dispatched(sev Severity)
	Unclassified(position int)
	Recovered(stage string)
}

type nopObserver struct{}

func (nopObserver) Dispatched(Severity) {}
func (nopObserver) Unclassified(int)    {}
func (nopObserver) Recovered(string)    {}

// Normalizer — разбирает аргументы вызова, собирает сообщение и передаёт его в Sink.
// После New не изменяется; безопасен для конкурентного использования.
type Normalizer struct {
	sink          Sink
	namespaces    []string
	causeFallback bool
	frames        FrameCache
	observer      Observer
}

type Option func(*Normalizer)

// WithNamespaces — префиксы путей пакетов прикладного кода (например "github.com/acme/app/").
// По ним в стеке ошибки ищется кадр, дающий имя метода. Пакет main считается прикладным всегда.
func WithNamespaces(prefixes ...string) Option {
	return func(n *Normalizer) {
		for _, p := range prefixes {
			if p = strings.TrimSpace(p); p != "" {
				n.namespaces = append(n.namespaces, p)
			}
		}
	}
}

// WithCauseFallback — если в стеке ошибки нет прикладного кадра, а ошибка обёрнута,
// сообщением становится текст первопричины, метка — пустая.
func WithCauseFallback(enabled bool) Option {
	return func(n *Normalizer) { n.causeFallback = enabled }
}

func WithFrameCache(c FrameCache) Option {
	return func(n *Normalizer) { n.frames = c }
}

func WithObserver(o Observer) Option {
	return func(n *Normalizer) {
		if o != nil {
			n.observer = o
		}
	}
}

// New — конструктор Normalizer. nil sink равнозначен Discard.
func New(sink Sink, opts ...Option) *Normalizer {
	if sink == nil {
		sink = Discard
	}
	n := &Normalizer{sink: sink, observer: nopObserver{}}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

func (n *Normalizer) Error(ctx context.Context, args ...any) {
	n.emit(ctx, SeverityError, owner{}, argsRoles(args))
}

func (n *Normalizer) Debug(ctx context.Context, args ...any) {
	n.emit(ctx, SeverityDebug, owner{}, argsRoles(args))
}

func (n *Normalizer) Info(ctx context.Context, args ...any) {
	n.emit(ctx, SeverityInfo, owner{}, argsRoles(args))
}

// Log — то же, что Error/Debug/Info, с уровнем из параметра.
func (n *Normalizer) Log(ctx context.Context, sev Severity, args ...any) {
	n.emit(ctx, sev, owner{}, argsRoles(args))
}

// Resolve — собирает вызов без отправки в Sink. Место вызова Resolve считается местом логирования.
func (n *Normalizer) Resolve(sev Severity, args ...any) ResolvedCall {
	site, _ := callerFrame()
	return n.safeResolve(context.Background(), sev, owner{}, site, argsRoles(args))
}

func argsRoles(args []any) func() roles {
	return func() roles { return classify(args) }
}

// emit — общий путь всех точек входа: ровно один вызов Sink на вызов фасада.
func (n *Normalizer) emit(ctx context.Context, sev Severity, own owner, build func() roles) {
	if ctx == nil {
		ctx = context.Background()
	}
	site, _ := callerFrame()
	call := n.safeResolve(ctx, sev, own, site, build)

	defer func() {
		if rec := recover(); rec != nil {
			n.observer.Recovered("sink")
		}
	}()
	n.observer.Dispatched(sev)
	dispatch(ctx, n.sink, sev, call.Message, call.Err)
}

func (n *Normalizer) safeResolve(
	ctx context.Context,
	sev Severity,
	own owner,
	site runtime.Frame,
	build func() roles,
) (call ResolvedCall) {
	defer func() {
		if rec := recover(); rec != nil {
			n.observer.Recovered("resolve")
			call = ResolvedCall{Severity: sev, Message: ".: "}
		}
	}()

	r := build()
	for _, pos := range r.unclassified {
		n.observer.Unclassified(pos)
	}
	return n.resolve(ctx, sev, r, own, site)
}

func (n *Normalizer) resolve(ctx context.Context, sev Severity, r roles, own owner, site runtime.Frame) ResolvedCall {
	call := ResolvedCall{Severity: sev, Err: r.err, Text: r.text}
	if !r.hasText && r.err != nil {
		call.Text = errorText(r.err)
	}

	siteName := n.funcName(ctx, site)
	caller := Caller{Class: siteName.Class(), TypeLevel: siteName.PackageLevel()}
	if own.set {
		caller.Class, caller.TypeLevel = own.class, own.typeLevel
	}

	var causeText string
	switch {
	case r.hasMethod:
		caller.Method = string(r.method)
	case r.err != nil:
		if pcs, ok := errorStack(r.err); ok {
			if f, found := n.appFrame(pcs); found {
				caller.Method = n.funcName(ctx, f).Method
			} else if n.causeFallback {
				if cause := rootCause(r.err); cause != r.err {
					causeText = errorText(cause)
				}
			}
		} else {
			caller.Method = siteName.Method
		}
	default:
		caller.Method = siteName.Method
	}
	call.Caller = caller

	if causeText != "" {
		call.Message = causeText
	} else {
		call.Message = fmt.Sprintf("%s.%s: %s", caller.Class, caller.Label(), call.Text)
	}

	if r.fields != nil {
		call.Fields = toFields(r.fields)
		call.Message += ". " + renderFields(r.fields)
	}
	return call
}

// owner — привязанный к вызову «self»: экземпляр или тип.
type owner struct {
	set       bool
	class     string
	typeLevel bool
}

func ownerOf(v any) owner {
	if v == nil {
		return owner{}
	}
	if t, ok := v.(reflect.Type); ok {
		return owner{set: true, class: typeName(t), typeLevel: true}
	}
	return owner{set: true, class: typeName(reflect.TypeOf(v))}
}

func typeName(t reflect.Type) string {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil {
		return ""
	}
	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return stripTypeParams(name)
}

func toFields(m any) Fields {
	if f, ok := m.(Fields); ok {
		if f == nil {
			return Fields{}
		}
		return f
	}
	rv := reflect.ValueOf(m)
	out := make(Fields, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
	}
	return out
}
