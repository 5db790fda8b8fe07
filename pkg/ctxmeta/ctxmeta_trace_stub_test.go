//go:build !otel

package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/calllog/pkg/ctxmeta"
)

func TestFromContext_WithoutOtel_OnlyRequestID(t *testing.T) {
	m := ctxmeta.FromContext(ctxmeta.WithRequestID(context.Background(), "req-1"))
	if m != (ctxmeta.Meta{RequestID: "req-1"}) {
		t.Fatalf("want only request_id, got %+v", m)
	}
	if got := m.Pairs(); len(got) != 2 {
		t.Fatalf("want one pair, got %v", got)
	}
}
