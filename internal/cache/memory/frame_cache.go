package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/calllog/pkg/calllog"
	"github.com/Gunvolt24/calllog/pkg/metrics"
)

// Проверка, что FrameCache удовлетворяет интерфейсу кэша нормализатора.
var _ calllog.FrameCache = (*FrameCache)(nil)

type entry struct {
	function  string
	name      calllog.FuncName
	expiresAt time.Time
}

// FrameCache — LRU-кэш разобранных имён функций с необязательным TTL.
// Ключ — runtime.Frame.Function; потокобезопасен.
type FrameCache struct {
	capacity int
	ttl      time.Duration

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// NewFrameCache — конструктор; capacity <= 0 превращается в 1, ttl <= 0 — без истечения.
func NewFrameCache(capacity int, ttl time.Duration) *FrameCache {
	if capacity <= 0 {
		capacity = 1
	}
	return &FrameCache{
		capacity: capacity,
		ttl:      ttl,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
}

func (c *FrameCache) Get(_ context.Context, function string) (calllog.FuncName, bool) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[function]
	if !ok {
		metrics.FrameCacheOps.WithLabelValues("miss").Inc()
		return calllog.FuncName{}, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.FrameCacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.FrameCacheSize.Set(float64(len(c.index)))
		return calllog.FuncName{}, false
	}
	c.ll.MoveToFront(elem)

	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.FrameCacheOps.WithLabelValues("hit").Inc()
	return ent.name, true
}

func (c *FrameCache) Set(_ context.Context, function string, name calllog.FuncName) {
	if function == "" {
		return
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[function]; ok {
		ent := elem.Value.(*entry)
		ent.name = name
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		function:  function,
		name:      name,
		expiresAt: c.expiryFrom(now),
	})
	c.index[function] = elem
	metrics.FrameCacheSize.Set(float64(len(c.index)))

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
}

// Len — текущее число записей.
func (c *FrameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
