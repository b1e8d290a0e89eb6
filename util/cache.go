package util

import (
	"sync"
	"time"
)

const (
	DefaultReapInterval = time.Second
)

// Cache is a string-keyed in-memory map whose entries expire. Expired entries
// are dropped lazily on Get and periodically by a reaper goroutine that only
// runs while the cache is non-empty.
type Cache struct {
	ReaperFunc   OnRemove
	ReapInterval time.Duration
	entries      map[string]*entry
	entriesMtx   sync.Mutex
	reaping      bool
}

type entry struct {
	val    interface{}
	expiry time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiry.IsZero() && now.After(e.expiry)
}

type OnRemove func(key string, val interface{})

var noopOnReap = func(key string, val interface{}) {}

func NewCache() *Cache {
	return &Cache{
		ReaperFunc:   noopOnReap,
		ReapInterval: DefaultReapInterval,
		entries:      make(map[string]*entry),
	}
}

func (c *Cache) Get(key string) interface{} {
	c.entriesMtx.Lock()
	defer c.entriesMtx.Unlock()
	e := c.entries[key]
	if e == nil {
		return nil
	}
	if e.expired(time.Now()) {
		delete(c.entries, key)
		c.ReaperFunc(key, e.val)
		return nil
	}
	return e.val
}

// Set stores val under key for ttl. A zero ttl never expires.
func (c *Cache) Set(key string, val interface{}, ttl time.Duration) {
	if val == nil {
		panic("cache values cannot be nil")
	}

	e := &entry{
		val: val,
	}
	if ttl > 0 {
		e.expiry = time.Now().Add(ttl)
	}

	c.entriesMtx.Lock()
	defer c.entriesMtx.Unlock()
	c.entries[key] = e
	if ttl > 0 && !c.reaping {
		c.reaping = true
		go c.reapLoop()
	}
}

func (c *Cache) Has(key string) bool {
	return c.Get(key) != nil
}

func (c *Cache) Del(key string) {
	c.entriesMtx.Lock()
	defer c.entriesMtx.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Len() int {
	c.entriesMtx.Lock()
	defer c.entriesMtx.Unlock()
	return len(c.entries)
}

func (c *Cache) reapLoop() {
	ticker := time.NewTicker(c.ReapInterval)
	defer ticker.Stop()
	for range ticker.C {
		c.entriesMtx.Lock()
		c.reap(time.Now())
		if len(c.entries) == 0 {
			c.reaping = false
			c.entriesMtx.Unlock()
			return
		}
		c.entriesMtx.Unlock()
	}
}

func (c *Cache) reap(now time.Time) {
	for k, e := range c.entries {
		if !e.expired(now) {
			continue
		}
		delete(c.entries, k)
		c.ReaperFunc(k, e.val)
	}
}
