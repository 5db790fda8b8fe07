package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/calllog/pkg/calllog"
)

func name(method string) calllog.FuncName {
	return calllog.FuncName{Package: "worker", Receiver: "Worker", Method: method}
}

func TestSetGet_HitMiss(t *testing.T) {
	c := NewFrameCache(2, 5*time.Minute)
	ctx := context.Background()

	// miss
	if _, ok := c.Get(ctx, "fn-1"); ok {
		t.Fatalf("expected miss before Set")
	}

	// hit после Set
	c.Set(ctx, "fn-1", name("load"))
	got, ok := c.Get(ctx, "fn-1")
	if !ok || got.Method != "load" {
		t.Fatalf("expected hit for fn-1, got %+v ok=%v", got, ok)
	}
}

func TestTTL_Expiry(t *testing.T) {
	c := NewFrameCache(2, 100*time.Millisecond)
	ctx := context.Background()

	c.Set(ctx, "ttl", name("x"))
	if _, ok := c.Get(ctx, "ttl"); !ok {
		t.Fatalf("expected hit right after Set")
	}
	time.Sleep(150 * time.Millisecond)
	if _, ok := c.Get(ctx, "ttl"); ok {
		t.Fatalf("expected miss after TTL expires")
	}
}

func TestLRUEviction(t *testing.T) {
	c := NewFrameCache(2, 0) // 0 = без TTL
	ctx := context.Background()

	c.Set(ctx, "A", name("a"))
	c.Set(ctx, "B", name("b"))
	// A сделать «свежим»
	if _, ok := c.Get(ctx, "A"); !ok {
		t.Fatalf("expected hit for A")
	}
	// Добавляем C — вытеснит B (самый старый)
	c.Set(ctx, "C", name("c"))

	if _, ok := c.Get(ctx, "B"); ok {
		t.Fatalf("expected B to be evicted")
	}
	if _, ok := c.Get(ctx, "A"); !ok || c.Len() != 2 {
		t.Fatalf("expected A & C to stay in cache")
	}
}

func TestSet_UpdatesExisting(t *testing.T) {
	c := NewFrameCache(1, 0)
	ctx := context.Background()

	c.Set(ctx, "fn", name("old"))
	c.Set(ctx, "fn", name("new"))

	got, ok := c.Get(ctx, "fn")
	if !ok || got.Method != "new" || c.Len() != 1 {
		t.Fatalf("expected single updated entry, got %+v ok=%v len=%d", got, ok, c.Len())
	}
}

func TestSet_EmptyKeyIgnored(t *testing.T) {
	c := NewFrameCache(1, 0)
	c.Set(context.Background(), "", name("x"))
	if c.Len() != 0 {
		t.Fatalf("empty function name must not be cached")
	}
}

func TestCapacityNormalized(t *testing.T) {
	c := NewFrameCache(0, 0)
	ctx := context.Background()
	c.Set(ctx, "A", name("a"))
	c.Set(ctx, "B", name("b"))
	if c.Len() != 1 {
		t.Fatalf("capacity <= 0 must behave as 1, len=%d", c.Len())
	}
}

func TestNormalizer_UsesFrameCache(t *testing.T) {
	c := NewFrameCache(16, 0)
	n := calllog.New(nil, calllog.WithFrameCache(c))

	first := n.Resolve(calllog.SeverityInfo, "x")
	second := n.Resolve(calllog.SeverityInfo, "x")
	if first.Message != second.Message || c.Len() == 0 {
		t.Fatalf("expected cached frame, got %q / %q len=%d", first.Message, second.Message, c.Len())
	}
}
