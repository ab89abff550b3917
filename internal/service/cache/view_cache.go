package cache

import (
	"container/list"
	"strconv"
	"sync"
	"time"
)

// ViewCache is a bounded TTL+LRU map for computed view payloads keyed by
// birth hash. The calendar cache in particular carries a hard entry cap.
type ViewCache struct {
	mu    sync.Mutex
	cap   int
	m     map[string]*list.Element
	order *list.List // front = most recent
}

type entry struct {
	key string
	v   any
	exp time.Time
}

func NewViewCache(capacity int) *ViewCache {
	if capacity <= 0 {
		capacity = 100
	}
	return &ViewCache{
		cap:   capacity,
		m:     make(map[string]*list.Element, capacity),
		order: list.New(),
	}
}

func (c *ViewCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.m[key]
	if !ok {
		return nil, false
	}
	e := el.Value.(*entry)
	if !e.exp.IsZero() && time.Now().After(e.exp) {
		c.order.Remove(el)
		delete(c.m, key)
		return nil, false
	}
	c.order.MoveToFront(el)
	return e.v, true
}

func (c *ViewCache) Set(key string, v any, ttl time.Duration) {
	var exp time.Time
	if ttl > 0 {
		exp = time.Now().Add(ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.m[key]; ok {
		e := el.Value.(*entry)
		e.v, e.exp = v, exp
		c.order.MoveToFront(el)
		return
	}
	c.m[key] = c.order.PushFront(&entry{key: key, v: v, exp: exp})
	for len(c.m) > c.cap {
		back := c.order.Back()
		if back == nil {
			break
		}
		c.order.Remove(back)
		delete(c.m, back.Value.(*entry).key)
	}
}

func (c *ViewCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.m)
}

// Key builders keep view namespaces apart in one cache instance.

func ChartKey(birthHash string) string { return "chart:" + birthHash }

func DashaKey(birthHash, system string) string { return "dasha:" + system + ":" + birthHash }

func CalendarKey(year int, lat, lon string) string {
	return "cal:" + strconv.Itoa(year) + ":" + lat + "," + lon
}
