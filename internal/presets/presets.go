// Package presets хранит экспортированные настройки кистей под именами.
package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/annel0/gopaint/internal/brush"
	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

var (
	// ErrNotFound - пресет с таким именем не сохранён
	ErrNotFound = errors.New("presets: not found")
	// ErrInvalidName - пустое имя или имя с недопустимыми символами
	ErrInvalidName = errors.New("presets: invalid name")
)

// Store - хранилище пресетов
type Store interface {
	Save(ctx context.Context, name string, e *settings.Exported) error
	Load(ctx context.Context, name string) (*settings.Exported, error)
	Delete(ctx context.Context, name string) error
	// List возвращает имена по алфавиту
	List(ctx context.Context) ([]string, error)
	Close() error
}

// Config задаёт бэкенд хранилища
type Config struct {
	Backend string      `yaml:"backend"` // memory | badger | redis
	Path    string      `yaml:"path"`    // директория BadgerDB
	Redis   RedisConfig `yaml:"redis"`

	// Cache включает кеш декодированных пресетов; Invalidation.NATSURL - рассылку между узлами
	Cache        bool              `yaml:"cache"`
	Invalidation InvalidatorConfig `yaml:"invalidation"`
}

// Open создаёт хранилище по конфигурации
func Open(cfg Config, registry *brush.Registry, limits settings.Limits) (Store, error) {
	c, err := newCodec(registry, limits)
	if err != nil {
		return nil, err
	}

	var store Store
	switch strings.ToLower(cfg.Backend) {
	case "", "memory":
		store = newMemoryStore(c)
	case "badger":
		store, err = newBadgerStore(cfg.Path, c)
	case "redis":
		store, err = newRedisStore(&cfg.Redis, c)
	default:
		c.Close()
		return nil, fmt.Errorf("presets: unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	if !cfg.Cache {
		return store, nil
	}
	return withCache(store, cfg.Invalidation)
}

func withCache(store Store, cfg InvalidatorConfig) (Store, error) {
	var inv Invalidator
	if cfg.NATSURL != "" {
		n, err := NewNATSInvalidator(cfg, uuid.NewString())
		if err != nil {
			store.Close()
			return nil, err
		}
		inv = n
	}
	cached, err := NewCachedStore(store, inv)
	if err != nil {
		if inv != nil {
			inv.Close()
		}
		store.Close()
		return nil, err
	}
	return cached, nil
}

// NewMemoryStore создаёт хранилище в памяти
func NewMemoryStore(registry *brush.Registry, limits settings.Limits) (Store, error) {
	return Open(Config{Backend: "memory"}, registry, limits)
}

// NewBadgerStore открывает хранилище BadgerDB в директории path
func NewBadgerStore(path string, registry *brush.Registry, limits settings.Limits) (Store, error) {
	return Open(Config{Backend: "badger", Path: path}, registry, limits)
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, "\n\r:") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// codec переводит снимок в сжатый JSON носителя и обратно
type codec struct {
	registry *brush.Registry
	limits   settings.Limits
	enc      *zstd.Encoder
	dec      *zstd.Decoder
}

func newCodec(registry *brush.Registry, limits settings.Limits) (*codec, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &codec{registry: registry, limits: limits, enc: enc, dec: dec}, nil
}

func (c *codec) marshal(e *settings.Exported) ([]byte, error) {
	raw, err := json.Marshal(settings.Encode(e))
	if err != nil {
		return nil, err
	}
	return c.enc.EncodeAll(raw, nil), nil
}

func (c *codec) unmarshal(data []byte) (*settings.Exported, error) {
	raw, err := c.dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress preset: %w", err)
	}
	var carrier settings.Carrier
	if err := json.Unmarshal(raw, &carrier); err != nil {
		return nil, fmt.Errorf("decode preset: %w", err)
	}
	return settings.Decode(carrier, c.registry, c.limits)
}

func (c *codec) Close() {
	c.enc.Close()
	c.dec.Close()
}
