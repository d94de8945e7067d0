package cache

import (
	"sync"
	"time"

	"feedfilter/internal/domain"
)

const DefaultTTL = 15 * time.Minute

type Entry struct {
	Document domain.OutputDocument
	BuiltAt  time.Time
}

// Cache хранит последний собранный документ для каждого имени фида.
// Записи не вытесняются: их число ограничено таблицей фидов.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func New() *Cache {
	return &Cache{entries: make(map[string]Entry)}
}

func (c *Cache) Get(name string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[name]
	return e, ok
}

// Put целиком заменяет запись. Запись старше уже сохраненной игнорируется,
// чтобы BuiltAt не уменьшался; в этом случае возвращается false.
func (c *Cache) Put(name string, doc domain.OutputDocument, now time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.entries[name]; ok && cur.BuiltAt.After(now) {
		return false
	}
	c.entries[name] = Entry{Document: doc, BuiltAt: now}
	return true
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// IsStale сообщает, нужна ли пересборка: записи нет или прошло не меньше ttl.
func IsStale(entry *Entry, now time.Time, ttl time.Duration) bool {
	if entry == nil {
		return true
	}
	return now.Sub(entry.BuiltAt) >= ttl
}
