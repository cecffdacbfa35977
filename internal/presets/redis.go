package presets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/annel0/gopaint/internal/logging"
	"github.com/go-redis/redis/v8"
)

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        `yaml:"addr"`       // Адрес Redis сервера
	Password  string        `yaml:"password"`   // Пароль (пустой если не требуется)
	DB        int           `yaml:"db"`         // Номер базы данных
	KeyPrefix string        `yaml:"key_prefix"` // Префикс для ключей
	TTL       time.Duration `yaml:"ttl"`        // 0 - без срока жизни
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:      "localhost:6379",
		KeyPrefix: "gopaint:preset:",
	}
}

type redisStore struct {
	client    *redis.Client
	codec     *codec
	keyPrefix string
	ttl       time.Duration
}

func newRedisStore(config *RedisConfig, c *codec) (*redisStore, error) {
	cfg := DefaultRedisConfig()
	if config != nil && config.Addr != "" {
		cfg = *config
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultRedisConfig().KeyPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		c.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetPresetsLogger().Info("🔴 Connected to Redis at %s", cfg.Addr)
	return &redisStore{client: client, codec: c, keyPrefix: cfg.KeyPrefix, ttl: cfg.TTL}, nil
}

func (s *redisStore) key(name string) string {
	return s.keyPrefix + name
}

func (s *redisStore) Save(ctx context.Context, name string, e *settings.Exported) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := s.codec.marshal(e)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(name), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save preset %q: %w", name, err)
	}
	return nil
}

func (s *redisStore) Load(ctx context.Context, name string) (*settings.Exported, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preset %q: %w", name, err)
	}
	return s.codec.unmarshal(data)
}

func (s *redisStore) Delete(ctx context.Context, name string) error {
	n, err := s.client.Del(ctx, s.key(name)).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *redisStore) List(ctx context.Context) ([]string, error) {
	names := []string{}
	iter := s.client.Scan(ctx, 0, s.keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		names = append(names, iter.Val()[len(s.keyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (s *redisStore) Close() error {
	s.codec.Close()
	return s.client.Close()
}
