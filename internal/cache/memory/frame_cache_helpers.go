package memory

import (
	"container/list"
	"time"

	"github.com/Gunvolt24/calllog/pkg/metrics"
)

// evictLRU — удаляет наименее используемый элемент.
func (c *FrameCache) evictLRU() {
	if back := c.ll.Back(); back != nil {
		c.removeElement(back)
		metrics.FrameCacheOps.WithLabelValues("evicted").Inc()
		metrics.FrameCacheSize.Set(float64(c.ll.Len()))
	}
}

// removeElement — удаляет элемент из списка и индекса.
func (c *FrameCache) removeElement(elem *list.Element) {
	if elem == nil {
		return
	}
	if ent, ok := elem.Value.(*entry); ok {
		delete(c.index, ent.function)
	}
	c.ll.Remove(elem)
}

func (c *FrameCache) isExpired(ent *entry, now time.Time) bool {
	if c.ttl <= 0 {
		return false
	}
	return now.After(ent.expiresAt)
}

func (c *FrameCache) expiryFrom(now time.Time) time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return now.Add(c.ttl)
}

// pruneExpiredFromBack — удаляет записи с истекшим TTL из хвоста до первой актуальной.
func (c *FrameCache) pruneExpiredFromBack(now time.Time) {
	if c.ttl <= 0 {
		return
	}
	for {
		back := c.ll.Back()
		if back == nil {
			return
		}
		ent, ok := back.Value.(*entry)
		if ok && !now.After(ent.expiresAt) {
			return
		}
		c.removeElement(back)
		if ok {
			metrics.FrameCacheOps.WithLabelValues("expired").Inc()
		}
		metrics.FrameCacheSize.Set(float64(c.ll.Len()))
	}
}
