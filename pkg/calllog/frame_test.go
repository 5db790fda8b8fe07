package calllog

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFuncName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fn   string
		want FuncName
	}{
		{
			"github.com/acme/app/worker.(*Worker).process",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Receiver: "Worker", Method: "process"},
		},
		{
			"github.com/acme/app/worker.Worker.process",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Receiver: "Worker", Method: "process"},
		},
		{
			"github.com/acme/app/worker.(*Worker).process.func1",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Receiver: "Worker", Method: "process"},
		},
		{
			"github.com/acme/app/worker.run.func2.1",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Method: "run"},
		},
		{
			"github.com/acme/app/transport.NewRouter.RequestLogger.func1",
			FuncName{PkgPath: "github.com/acme/app/transport", Package: "transport", Method: "RequestLogger", Inlined: true},
		},
		{
			"github.com/acme/app/worker.TestSite.mw.func1.1",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Method: "mw", Inlined: true},
		},
		{
			// значимый получатель с замыканием неотличим от встраивания
			"github.com/acme/app/worker.Worker.process.func1",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Method: "process", Inlined: true},
		},
		{
			"github.com/acme/app/worker.run.(*Worker).process.func1",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Receiver: "Worker", Method: "process", Inlined: true},
		},
		{
			"github.com/acme/app/worker.glob..func1",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Method: "glob"},
		},
		{
			"github.com/acme/app/worker.run.gowrap1",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Method: "run"},
		},
		{
			"github.com/acme/app/box.(*Box[...]).Put",
			FuncName{PkgPath: "github.com/acme/app/box", Package: "box", Receiver: "Box", Method: "Put"},
		},
		{
			"github.com/acme/app/box.Map[...]",
			FuncName{PkgPath: "github.com/acme/app/box", Package: "box", Method: "Map"},
		},
		{
			"github.com/acme/app/worker.(*Worker).process-fm",
			FuncName{PkgPath: "github.com/acme/app/worker", Package: "worker", Receiver: "Worker", Method: "process"},
		},
		{
			"gopkg.in/yaml%2ev3.(*decoder).unmarshal",
			FuncName{PkgPath: "gopkg.in/yaml%2ev3", Package: "yaml.v3", Receiver: "decoder", Method: "unmarshal"},
		},
		{"main.main", FuncName{PkgPath: "main", Package: "main", Method: "main"}},
		{"main.init.0", FuncName{PkgPath: "main", Package: "main", Method: "init"}},
		{"", FuncName{}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fn, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, ParseFuncName(tt.fn))
		})
	}
}

func TestFuncName_ClassAndLevel(t *testing.T) {
	method := ParseFuncName("github.com/acme/app/worker.(*Worker).process")
	require.Equal(t, "Worker", method.Class())
	require.False(t, method.PackageLevel())

	fn := ParseFuncName("github.com/acme/app/worker.run")
	require.Equal(t, "worker", fn.Class())
	require.True(t, fn.PackageLevel())
}

func TestSourcePackage(t *testing.T) {
	require.Equal(t, "httpx", sourcePackage("transport", "/src/app/pkg/httpx/logger.go"))
	require.Equal(t, "worker", sourcePackage("worker", "/src/app/worker/run.go"))
	require.Equal(t, "calllog_test", sourcePackage("calllog_test", "/src/app/pkg/calllog/normalizer_test.go"))
	require.Equal(t, "httpx", sourcePackage("httpx_test", "/src/app/pkg/httpx/recovery.go"))
	require.Equal(t, "main", sourcePackage("main", "/src/app/cmd/server/main.go"))
	require.Equal(t, "transport", sourcePackage("transport", ""))
}

func TestFuncName_InlinedClosure_PackageFromFile(t *testing.T) {
	n := New(nil)
	got := n.funcName(context.Background(), runtime.Frame{
		Function: "github.com/acme/app/transport.NewRouter.RequestLogger.func1",
		File:     "/src/app/pkg/httpx/logger.go",
	})
	require.Equal(t, "httpx", got.Class())
	require.Equal(t, "RequestLogger", got.Method)
	require.True(t, got.PackageLevel())

	// не встроенная функция пакета main не переименовывается по каталогу
	got = n.funcName(context.Background(), runtime.Frame{Function: "main.load", File: "/src/app/cmd/emit/main.go"})
	require.Equal(t, "main", got.Class())
}

func TestIsClosure(t *testing.T) {
	for _, seg := range []string{"func1", "func12", "gowrap3", "deferwrap1", "0", "2"} {
		require.True(t, isClosure(seg), seg)
	}
	for _, seg := range []string{"func", "process", "funcy", "Run1"} {
		require.False(t, isClosure(seg), seg)
	}
}

func TestStripTypeParams(t *testing.T) {
	require.Equal(t, "(*Box).Put", stripTypeParams("(*Box[...]).Put"))
	require.Equal(t, "Pair", stripTypeParams("Pair[string,map[string]int]"))
	require.Equal(t, "plain", stripTypeParams("plain"))
}

func TestCallerFrame_SkipsOwnPackage(t *testing.T) {
	f, ok := callerFrame()
	require.True(t, ok)
	// тесты пакета calllog сами лежат в нём, поэтому вызывающим оказывается раннер
	require.Equal(t, "testing.tRunner", f.Function)
}

func TestRootCause(t *testing.T) {
	root := &causeErr{msg: "root"}
	mid := &causeErr{msg: "mid", cause: root}
	top := &causeErr{msg: "top", cause: mid}

	require.Same(t, root, rootCause(top))
	require.Same(t, root, rootCause(root))
	require.NoError(t, rootCause(nil))
}

type causeErr struct {
	msg   string
	cause error
}

func (e *causeErr) Error() string { return e.msg }
func (e *causeErr) Cause() error  { return e.cause }
