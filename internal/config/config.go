package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/annel0/gopaint/internal/logging"
	"github.com/annel0/gopaint/internal/observability"
	"github.com/annel0/gopaint/internal/presets"
	"gopkg.in/yaml.v3"
)

// ErrInvalid возвращается Validate при некорректной конфигурации
var ErrInvalid = errors.New("config: invalid")

// Config корневая структура конфигурации приложения.
type Config struct {
	Brush     BrushConfig          `yaml:"brush"`
	Presets   presets.Config       `yaml:"presets"`
	EventBus  EventBusConfig       `yaml:"eventbus"`
	Metrics   MetricsConfig        `yaml:"metrics"`
	Telemetry observability.Config `yaml:"telemetry"`
	Logging   LoggingConfig        `yaml:"logging"`
}

// BrushConfig ограничивает настройки кистей
type BrushConfig struct {
	MaxSize     int  `yaml:"max_size"`
	LegacyData  bool `yaml:"legacy_data"`
	HistorySize int  `yaml:"history_size"`
	ChangeLimit int  `yaml:"change_limit"` // 0 - без лимита

	Falloff          *settings.Range `yaml:"falloff"`
	Chance           *settings.Range `yaml:"chance"`
	Thickness        *settings.Range `yaml:"thickness"`
	Mixing           *settings.Range `yaml:"mixing"`
	FractureDistance *settings.Range `yaml:"fracture_distance"`
	AngleDistance    *settings.Range `yaml:"angle_distance"`
	AngleHeight      *settings.Range `yaml:"angle_height"`
}

// EventBusConfig - пустой URL включает шину в памяти
type EventBusConfig struct {
	URL       string `yaml:"url"`
	Stream    string `yaml:"stream"`
	Retention int    `yaml:"retention_hours"`
	Capacity  int    `yaml:"capacity"`
}

// RetentionDuration возвращает срок хранения событий в стриме
func (e *EventBusConfig) RetentionDuration() time.Duration {
	if e.Retention <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(e.Retention) * time.Hour
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Dir   string `yaml:"dir"` // пусто - только консоль
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	limits := settings.DefaultLimits()
	return &Config{
		Brush: BrushConfig{
			MaxSize:     limits.Size.Max,
			HistorySize: 16,
		},
		Presets: presets.Config{Backend: "memory"},
		EventBus: EventBusConfig{
			Stream:    "GOPAINT",
			Retention: 24,
			Capacity:  256,
		},
		Telemetry: observability.Config{Service: "gopaint"},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// Limits переводит конфигурацию в ограничения настроек.
// Незаданные диапазоны берутся по умолчанию.
func (b *BrushConfig) Limits() settings.Limits {
	l := settings.DefaultLimits()
	if b.MaxSize > 0 {
		l.Size.Max = b.MaxSize
		l.Size.Default = l.Size.Clamp(l.Size.Default)
	}
	l.LegacyData = b.LegacyData

	override := func(dst *settings.Range, src *settings.Range) {
		if src != nil {
			*dst = *src
		}
	}
	override(&l.Falloff, b.Falloff)
	override(&l.Chance, b.Chance)
	override(&l.Thickness, b.Thickness)
	override(&l.Mixing, b.Mixing)
	override(&l.FractureDistance, b.FractureDistance)
	override(&l.AngleDistance, b.AngleDistance)
	override(&l.AngleHeight, b.AngleHeight)
	return l
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Brush.MaxSize < 0 {
		return fmt.Errorf("%w: brush.max_size %d", ErrInvalid, c.Brush.MaxSize)
	}
	if c.Brush.HistorySize < 0 || c.Brush.ChangeLimit < 0 {
		return fmt.Errorf("%w: brush.history_size and brush.change_limit must be non-negative", ErrInvalid)
	}

	l := c.Brush.Limits()
	ranges := map[string]settings.Range{
		"size":              l.Size,
		"falloff":           l.Falloff,
		"chance":            l.Chance,
		"thickness":         l.Thickness,
		"mixing":            l.Mixing,
		"fracture_distance": l.FractureDistance,
		"angle_distance":    l.AngleDistance,
		"angle_height":      l.AngleHeight,
	}
	for name, r := range ranges {
		if !r.Valid() {
			return fmt.Errorf("%w: brush.%s range %+v", ErrInvalid, name, r)
		}
	}
	if l.Falloff.Max > 100 || l.Chance.Max > 100 || l.Mixing.Max > 100 {
		return fmt.Errorf("%w: percentages must not exceed 100", ErrInvalid)
	}

	switch strings.ToLower(c.Presets.Backend) {
	case "", "memory", "redis":
	case "badger":
		if c.Presets.Path == "" {
			return fmt.Errorf("%w: presets.path is required for badger", ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: presets.backend %q", ErrInvalid, c.Presets.Backend)
	}

	if c.Logging.Level != "" {
		if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("%w: logging.level: %v", ErrInvalid, err)
		}
	}
	return nil
}

// GetMetricsAddr возвращает адрес метрик: config -> env GOPAINT_METRICS_ADDR -> пусто (выключено)
func (m *MetricsConfig) GetMetricsAddr() string {
	if m.Addr != "" {
		return m.Addr
	}
	return os.Getenv("GOPAINT_METRICS_ADDR")
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать из ENV GOPAINT_CONFIG или возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv("GOPAINT_CONFIG")
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
