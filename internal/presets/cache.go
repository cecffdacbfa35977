package presets

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/annel0/gopaint/internal/logging"
)

// Invalidator рассылает уведомления об изменении пресетов между узлами
type Invalidator interface {
	// Publish сообщает другим узлам, что пресет name изменён или удалён.
	Publish(ctx context.Context, name string) error

	// Subscribe вызывает handler для уведомлений других узлов.
	Subscribe(handler func(name string)) error

	Close() error
}

// CacheStats содержит счётчики кеша
type CacheStats struct {
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

// CachedStore кеширует декодированные пресеты поверх другого хранилища.
// Снимки неизменяемы, поэтому из кеша отдаётся один и тот же экземпляр.
type CachedStore struct {
	hits          atomic.Uint64
	misses        atomic.Uint64
	invalidations atomic.Uint64

	store Store
	inv   Invalidator

	mu      sync.RWMutex
	entries map[string]*settings.Exported
	// gen растёт при каждом вытеснении имени; промах не кладёт в кеш снимок,
	// прочитанный до вытеснения
	gen map[string]uint64
}

var _ Store = (*CachedStore)(nil)

// NewCachedStore оборачивает store. inv может быть nil - тогда кеш локальный.
func NewCachedStore(store Store, inv Invalidator) (*CachedStore, error) {
	c := &CachedStore{
		store:   store,
		inv:     inv,
		entries: make(map[string]*settings.Exported),
		gen:     make(map[string]uint64),
	}
	if inv != nil {
		if err := inv.Subscribe(c.evict); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *CachedStore) evict(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.gen[name]++
	c.mu.Unlock()
	c.invalidations.Add(1)
}

func (c *CachedStore) Save(ctx context.Context, name string, e *settings.Exported) error {
	if err := c.store.Save(ctx, name, e); err != nil {
		return err
	}
	c.evict(name)
	c.notify(ctx, name)
	return nil
}

func (c *CachedStore) Load(ctx context.Context, name string) (*settings.Exported, error) {
	c.mu.RLock()
	e, ok := c.entries[name]
	gen := c.gen[name]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return e, nil
	}

	c.misses.Add(1)
	e, err := c.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gen[name] == gen {
		c.entries[name] = e
	}
	c.mu.Unlock()
	return e, nil
}

func (c *CachedStore) Delete(ctx context.Context, name string) error {
	err := c.store.Delete(ctx, name)
	c.evict(name)
	if err != nil {
		return err
	}
	c.notify(ctx, name)
	return nil
}

func (c *CachedStore) List(ctx context.Context) ([]string, error) {
	return c.store.List(ctx)
}

// Stats возвращает счётчики попаданий и промахов
func (c *CachedStore) Stats() CacheStats {
	return CacheStats{
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
	}
}

func (c *CachedStore) Close() error {
	if c.inv != nil {
		if err := c.inv.Close(); err != nil {
			logging.GetPresetsLogger().Warn("Не удалось закрыть инвалидатор: %v", err)
		}
	}
	return c.store.Close()
}

// notify рассылает инвалидацию; ошибка только логируется
func (c *CachedStore) notify(ctx context.Context, name string) {
	if c.inv == nil {
		return
	}
	if err := c.inv.Publish(ctx, name); err != nil {
		logging.GetPresetsLogger().Warn("Не удалось разослать инвалидацию %q: %v", name, err)
	}
}
