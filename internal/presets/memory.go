package presets

import (
	"context"
	"sort"
	"sync"

	"github.com/annel0/gopaint/internal/brush/settings"
)

// memoryStore хранит сжатые пресеты в карте.
// Хранение в сериализованном виде даёт ту же семантику копирования, что и у постоянных бэкендов.
type memoryStore struct {
	mu      sync.RWMutex
	codec   *codec
	presets map[string][]byte
}

func newMemoryStore(c *codec) *memoryStore {
	return &memoryStore{codec: c, presets: make(map[string][]byte)}
}

func (s *memoryStore) Save(ctx context.Context, name string, e *settings.Exported) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validName(name); err != nil {
		return err
	}
	data, err := s.codec.marshal(e)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.presets[name] = data
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Load(ctx context.Context, name string) (*settings.Exported, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, ok := s.presets[name]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s.codec.unmarshal(data)
}

func (s *memoryStore) Delete(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.presets[name]; !ok {
		return ErrNotFound
	}
	delete(s.presets, name)
	return nil
}

func (s *memoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	names := make([]string, 0, len(s.presets))
	for n := range s.presets {
		names = append(names, n)
	}
	s.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

func (s *memoryStore) Close() error {
	s.codec.Close()
	return nil
}
