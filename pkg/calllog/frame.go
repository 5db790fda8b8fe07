package calllog

import (
	"context"
	"errors"
	"path"
	"reflect"
	"runtime"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// FuncName — имя функции из runtime.Frame.Function, разобранное на части.
//
//	github.com/acme/app/worker.(*Worker).process.func1
//	→ PkgPath=github.com/acme/app/worker Package=worker Receiver=Worker Method=process
type FuncName struct {
	PkgPath  string
	Package  string
	Receiver string // тип получателя без "*" и параметров типа; пусто для функций пакета
	Method   string
	// Inlined — замыкание функции, встроенной в другую: пакет в имени принадлежит вызывающему.
	Inlined bool
}

// Class — имя «класса» для сообщения: тип получателя, а для функций пакета — имя пакета.
func (f FuncName) Class() string {
	if f.Receiver != "" {
		return f.Receiver
	}
	return f.Package
}

// PackageLevel — функция объявлена на уровне пакета (без получателя).
func (f FuncName) PackageLevel() bool { return f.Receiver == "" && f.Method != "" }

// ParseFuncName — разбор полного имени функции. Замыкания сворачиваются
// в объемлющую функцию, параметры типа отбрасываются.
//
// Замыкание из встроенной функции компилятор называет по месту встраивания
// (pkg.Caller.callee.func1), поэтому метод берётся из последнего сегмента
// перед первым замыканием, а предыдущие сегменты считаются вызывающими.
// Получатель распознаётся по форме (*T); значимый получатель (pkg.T.M)
// признаётся только для имени без замыканий.
func ParseFuncName(fn string) FuncName {
	if fn == "" {
		return FuncName{}
	}

	slash := strings.LastIndex(fn, "/")
	dot := strings.Index(fn[slash+1:], ".")
	if dot < 0 {
		return FuncName{Method: fn}
	}
	dot += slash + 1

	name := FuncName{PkgPath: fn[:dot]}
	name.Package = strings.ReplaceAll(name.PkgPath[slash+1:], "%2e", ".")

	var head []string
	closure := false
	for _, seg := range strings.Split(stripTypeParams(fn[dot+1:]), ".") {
		if isClosure(seg) {
			closure = true
			break
		}
		if seg != "" {
			head = append(head, seg)
		}
	}

	start := len(head) - 1
	switch n := len(head); {
	case n == 0:
	case strings.HasPrefix(head[n-1], "("):
		name.Receiver = strings.Trim(head[n-1], "(*)")
	case n > 1 && strings.HasPrefix(head[n-2], "("):
		name.Receiver = strings.Trim(head[n-2], "(*)")
		name.Method = head[n-1]
		start = n - 2
	case n == 2 && !closure:
		name.Receiver = head[0]
		name.Method = head[1]
		start = 0
	default:
		name.Method = head[n-1]
	}
	name.Inlined = closure && start > 0
	name.Method = strings.TrimSuffix(name.Method, "-fm")
	return name
}

// isClosure — сегмент имени, который компилятор добавляет для анонимных функций и обёрток.
func isClosure(seg string) bool {
	for _, prefix := range []string{"func", "gowrap", "deferwrap"} {
		if rest, ok := strings.CutPrefix(seg, prefix); ok && rest != "" && isDigits(rest) {
			return true
		}
	}
	return isDigits(seg)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// stripTypeParams — убирает "[...]" (параметры типа) из имени.
func stripTypeParams(s string) string {
	if !strings.Contains(s, "[") {
		return s
	}
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// selfPrefix — префикс имён функций этого пакета; такие кадры пропускаются при поиске вызывающего.
var selfPrefix = reflect.TypeOf(Normalizer{}).PkgPath() + "."

// callerFrame — первый кадр стека вне пакета calllog (место вызова фасада).
func callerFrame() (runtime.Frame, bool) {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if f.Function != "" && !strings.HasPrefix(f.Function, selfPrefix) {
			return f, true
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

type callersCarrier interface {
	Callers() []uintptr
}

// errorStack — стек, сохранённый в ошибке (github.com/pkg/errors или любой тип с Callers()).
func errorStack(err error) ([]uintptr, bool) {
	var st stackTracer
	if errors.As(err, &st) {
		trace := st.StackTrace()
		pcs := make([]uintptr, len(trace))
		for i, f := range trace {
			pcs[i] = uintptr(f)
		}
		return pcs, len(pcs) > 0
	}
	var cc callersCarrier
	if errors.As(err, &cc) {
		pcs := cc.Callers()
		return pcs, len(pcs) > 0
	}
	return nil, false
}

// appFrame — первый кадр прикладного кода в стеке ошибки.
func (n *Normalizer) appFrame(pcs []uintptr) (runtime.Frame, bool) {
	frames := runtime.CallersFrames(pcs)
	for {
		f, more := frames.Next()
		if n.isAppFunc(f.Function) {
			return f, true
		}
		if !more {
			return runtime.Frame{}, false
		}
	}
}

func (n *Normalizer) isAppFunc(fn string) bool {
	if fn == "" || strings.HasPrefix(fn, "runtime.") {
		return false
	}
	if len(n.namespaces) == 0 || strings.HasPrefix(fn, "main.") {
		return true
	}
	for _, ns := range n.namespaces {
		if strings.HasPrefix(fn, ns) {
			return true
		}
	}
	return false
}

// rootCause — самая глубокая причина по цепочке Cause()/Unwrap().
func rootCause(err error) error {
	for i := 0; i < 64 && err != nil; i++ {
		var next error
		switch x := err.(type) {
		case interface{ Cause() error }:
			next = x.Cause()
		case interface{ Unwrap() error }:
			next = x.Unwrap()
		}
		if next == nil {
			return err
		}
		err = next
	}
	return err
}

// FrameCache — кэш разобранных имён функций (ключ — runtime.Frame.Function).
type FrameCache interface {
	Get(ctx context.Context, function string) (FuncName, bool)
	Set(ctx context.Context, function string, name FuncName)
}

func (n *Normalizer) funcName(ctx context.Context, frame runtime.Frame) FuncName {
	if frame.Function == "" {
		return FuncName{}
	}
	if n.frames != nil {
		if name, ok := n.frames.Get(ctx, frame.Function); ok {
			return name
		}
	}
	name := ParseFuncName(frame.Function)
	if name.Inlined {
		name.Package = sourcePackage(name.Package, frame.File)
	}
	if n.frames != nil {
		n.frames.Set(ctx, frame.Function, name)
	}
	return name
}

// sourcePackage — пакет встроенной функции по каталогу её файла.
// Внешний тестовый пакет (*_test) живёт только в файлах *_test.go; пакет main не переименовывается.
func sourcePackage(pkg, file string) string {
	if file == "" || pkg == "main" {
		return pkg
	}
	dir := path.Base(path.Dir(file))
	if dir == "." || dir == "/" {
		return pkg
	}
	if base, ok := strings.CutSuffix(pkg, "_test"); ok && base == dir {
		if strings.HasSuffix(file, "_test.go") {
			return pkg
		}
		return base
	}
	if dir == pkg {
		return pkg
	}
	return dir
}
