package presets

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/annel0/gopaint/internal/brush"
	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hub рассылает уведомления всем узлам, кроме отправителя, синхронно
type hub struct {
	mu    sync.Mutex
	nodes []*hubNode
}

type hubNode struct {
	hub     *hub
	handler func(string)
}

func (h *hub) node() *hubNode {
	n := &hubNode{hub: h}
	h.mu.Lock()
	h.nodes = append(h.nodes, n)
	h.mu.Unlock()
	return n
}

func (n *hubNode) Publish(ctx context.Context, name string) error {
	n.hub.mu.Lock()
	defer n.hub.mu.Unlock()
	for _, other := range n.hub.nodes {
		if other != n && other.handler != nil {
			other.handler(name)
		}
	}
	return nil
}

func (n *hubNode) Subscribe(handler func(string)) error {
	n.handler = handler
	return nil
}

func (n *hubNode) Close() error { return nil }

func TestCachedStore_Contract(t *testing.T) {
	reg := brush.DefaultRegistry()
	store, err := Open(Config{Cache: true}, reg, settings.DefaultLimits())
	require.NoError(t, err)
	defer store.Close()

	exercise(t, store, reg)
}

func TestCachedStore_HitsAndMisses(t *testing.T) {
	reg := brush.DefaultRegistry()
	backing, err := NewMemoryStore(reg, settings.DefaultLimits())
	require.NoError(t, err)
	cached, err := NewCachedStore(backing, nil)
	require.NoError(t, err)
	defer cached.Close()

	ctx := context.Background()
	require.NoError(t, cached.Save(ctx, "p", sample(reg)))

	first, err := cached.Load(ctx, "p")
	require.NoError(t, err)
	second, err := cached.Load(ctx, "p")
	require.NoError(t, err)
	assert.Same(t, first, second, "повторная загрузка отдаётся из кеша")

	s := cached.Stats()
	assert.Equal(t, uint64(1), s.Misses)
	assert.Equal(t, uint64(1), s.Hits)

	// Сохранение вытесняет запись
	require.NoError(t, cached.Save(ctx, "p", sample(reg)))
	third, err := cached.Load(ctx, "p")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

// slowStore вызывает onLoad после чтения из хранилища, до возврата результата
type slowStore struct {
	Store
	onLoad func()
}

func (s *slowStore) Load(ctx context.Context, name string) (*settings.Exported, error) {
	e, err := s.Store.Load(ctx, name)
	if s.onLoad != nil {
		s.onLoad()
	}
	return e, err
}

// Сохранение во время промаха не оставляет в кеше старый снимок
func TestCachedStore_SaveDuringMiss(t *testing.T) {
	reg := brush.DefaultRegistry()
	backing, err := NewMemoryStore(reg, settings.DefaultLimits())
	require.NoError(t, err)
	slow := &slowStore{Store: backing}
	cached, err := NewCachedStore(slow, nil)
	require.NoError(t, err)
	defer cached.Close()

	ctx := context.Background()
	s := settings.New(settings.DefaultLimits(), reg)
	s.SetBrushSize(5)
	require.NoError(t, cached.Save(ctx, "p", s.Export()))

	s.SetBrushSize(9)
	slow.onLoad = func() {
		slow.onLoad = nil
		require.NoError(t, cached.Save(ctx, "p", s.Export()))
	}

	stale, err := cached.Load(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, 5, stale.Size(), "промах вернул прочитанный снимок")

	fresh, err := cached.Load(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, 9, fresh.Size(), "устаревший снимок не попал в кеш")
	assert.Equal(t, uint64(2), cached.Stats().Misses)
}

// Узел видит изменения другого узла после уведомления
func TestCachedStore_InvalidationAcrossNodes(t *testing.T) {
	reg := brush.DefaultRegistry()
	backing, err := NewMemoryStore(reg, settings.DefaultLimits())
	require.NoError(t, err)
	defer backing.Close()

	h := &hub{}
	a, err := NewCachedStore(backing, h.node())
	require.NoError(t, err)
	b, err := NewCachedStore(backing, h.node())
	require.NoError(t, err)

	ctx := context.Background()
	s := settings.New(settings.DefaultLimits(), reg)
	s.SetBrushSize(5)
	require.NoError(t, a.Save(ctx, "shared", s.Export()))

	got, err := b.Load(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 5, got.Size())

	s.SetBrushSize(9)
	require.NoError(t, a.Save(ctx, "shared", s.Export()))

	got, err = b.Load(ctx, "shared")
	require.NoError(t, err)
	assert.Equal(t, 9, got.Size(), "кеш узла b сброшен уведомлением")
	assert.Equal(t, uint64(2), b.Stats().Misses)

	require.NoError(t, a.Delete(ctx, "shared"))
	_, err = b.Load(ctx, "shared")
	assert.ErrorIs(t, err, ErrNotFound)
}

// Тест NATS: запускается только при заданном GOPAINT_TEST_NATS_URL
func TestNATSInvalidator(t *testing.T) {
	url := os.Getenv("GOPAINT_TEST_NATS_URL")
	if url == "" {
		t.Skip("GOPAINT_TEST_NATS_URL не задан")
	}

	cfg := InvalidatorConfig{NATSURL: url, Subject: "gopaint.presets.test"}
	a, err := NewNATSInvalidator(cfg, "node-a")
	require.NoError(t, err)
	defer a.Close()
	b, err := NewNATSInvalidator(cfg, "node-b")
	require.NoError(t, err)
	defer b.Close()

	got := make(chan string, 2)
	require.NoError(t, a.Subscribe(func(name string) { got <- name }))
	require.NoError(t, b.Subscribe(func(name string) { got <- "b:" + name }))
	require.Error(t, a.Subscribe(func(string) {}), "повторная подписка запрещена")

	require.NoError(t, a.Publish(context.Background(), "terrain"))

	select {
	case name := <-got:
		assert.Equal(t, "b:terrain", name, "собственное уведомление игнорируется")
	case <-time.After(5 * time.Second):
		t.Fatal("уведомление не получено")
	}
}
