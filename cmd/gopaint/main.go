package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/annel0/gopaint/internal/brush"
	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/annel0/gopaint/internal/config"
	"github.com/annel0/gopaint/internal/engine"
	"github.com/annel0/gopaint/internal/eventbus"
	"github.com/annel0/gopaint/internal/logging"
	"github.com/annel0/gopaint/internal/metrics"
	"github.com/annel0/gopaint/internal/observability"
	"github.com/annel0/gopaint/internal/presets"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/google/uuid"
)

// Размер демонстрационного участка (в колонках от центра)
const terrainRadius = 32

func main() {
	var (
		configPath = flag.String("config", "", "YAML конфигурация (по умолчанию $GOPAINT_CONFIG)")
		brushName  = flag.String("brush", "", "Имя кисти, например \"Splatter Brush\"")
		size       = flag.Int("size", 0, "Радиус кисти (0 - по умолчанию)")
		falloff    = flag.Int("falloff", -1, "Сила затухания 0..100 (-1 - по умолчанию)")
		blocks     = flag.String("blocks", "", "Палитра через запятую: stone,dirt:1 (по умолчанию stone)")
		maskName   = flag.String("mask", "", "Материал маски, например grass_block")
		at         = flag.String("at", "", "Точка мазка x,y,z (по умолчанию поверхность в 0,0)")
		seed       = flag.Int64("seed", 0, "Зерно рельефа и мазка (0 - текущее время)")
		presetName = flag.String("preset", "", "Загрузить пресет (если есть) и сохранить итоговые настройки под этим именем")
		metricsAdr = flag.String("metrics", "", "Адрес /metrics, например :2112")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logging.SetLogDir(cfg.Logging.Dir)
	if err := logging.InitDefaultLogger("gopaint"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	if lvl, err := logging.ParseLevel(cfg.Logging.Level); err == nil {
		logging.Default().SetLevel(lvl, logging.DEBUG)
		logging.GetLoggerManager().SetLevel(lvl, logging.DEBUG)
	}
	defer logging.GetLoggerManager().CloseAll()

	if err := run(cfg, options{
		brush:   *brushName,
		size:    *size,
		falloff: *falloff,
		blocks:  *blocks,
		mask:    *maskName,
		at:      *at,
		seed:    *seed,
		preset:  *presetName,
		metrics: *metricsAdr,
	}); err != nil {
		logging.Error("❌ %v", err)
		logging.CloseDefaultLogger()
		os.Exit(1)
	}
}

type options struct {
	brush   string
	size    int
	falloff int
	blocks  string
	mask    string
	at      string
	seed    int64
	preset  string
	metrics string
}

func run(cfg *config.Config, opts options) error {
	ctx := context.Background()
	logging.Info("🖌️ Запуск gopaint")

	shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(sctx)
	}()

	m := metrics.New()
	addr := opts.metrics
	if addr == "" {
		addr = cfg.Metrics.GetMetricsAddr()
	}
	if addr != "" {
		srv := m.StartHTTP(addr)
		defer srv.Close()
	}

	bus, err := openBus(cfg.EventBus)
	if err != nil {
		return err
	}
	defer bus.Close()
	if err := m.Register(eventbus.NewStatsCollector(bus)); err != nil {
		logging.Warn("Не удалось зарегистрировать метрики шины: %v", err)
	}
	if sub, err := eventbus.StartLoggingListener(bus); err == nil {
		defer sub.Unsubscribe()
	}

	registry := brush.DefaultRegistry()
	limits := cfg.Brush.Limits()

	store, err := presets.Open(cfg.Presets, registry, limits)
	if err != nil {
		return fmt.Errorf("presets: %w", err)
	}
	defer store.Close()

	seed := opts.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w := world.NewMemory()
	w.SetChangeLimit(cfg.Brush.ChangeLimit)
	gen := world.NewGenerator(seed)
	gen.Fill(w, vec.Vec3{X: -terrainRadius, Z: -terrainRadius}, vec.Vec3{X: terrainRadius, Z: terrainRadius})
	logging.Info("🌍 Рельеф сгенерирован: %d клеток, сид %d", w.Len(), seed)

	painter := engine.NewPainter(
		settings.NewManager(limits, registry), w, w,
		engine.WithHistory(world.NewHistory(cfg.Brush.HistorySize)),
		engine.WithMetrics(m),
		engine.WithEventBus(bus),
		engine.WithSeed(func() int64 { return seed }),
	)

	actor := brush.Actor{ID: uuid.New()}
	s := painter.Settings(actor.ID)

	if opts.preset != "" {
		e, err := store.Load(ctx, opts.preset)
		switch {
		case err == nil:
			e.Apply(s)
			logging.Info("📦 Пресет %q загружен", opts.preset)
		case errors.Is(err, presets.ErrNotFound):
			logging.Info("📦 Пресет %q не найден, будет создан", opts.preset)
		default:
			return fmt.Errorf("load preset %q: %w", opts.preset, err)
		}
	}

	if opts.blocks == "" && s.Palette().Len() == 0 {
		opts.blocks = "stone"
	}
	if err := applyFlags(s, registry, opts); err != nil {
		return err
	}

	target := vec.Vec3{X: 0, Y: gen.Height(0, 0), Z: 0}
	if opts.at != "" {
		if target, err = parseVec3(opts.at); err != nil {
			return err
		}
	}
	actor.Eye = vec.Vec3Float{X: float64(target.X), Y: float64(target.Y + 16), Z: float64(target.Z)}

	res, err := painter.Paint(ctx, actor, target)
	if err != nil {
		return fmt.Errorf("paint: %w", err)
	}
	if res.Skipped {
		logging.Warn("Палитра пуста, мазок пропущен")
	}
	logging.Info("✅ %s в %v: изменено %d клеток", res.Brush, target, res.Cells)
	fmt.Println(res.Cells)

	if opts.preset != "" {
		if err := store.Save(ctx, opts.preset, s.Export()); err != nil {
			return fmt.Errorf("save preset %q: %w", opts.preset, err)
		}
		logging.Info("💾 Настройки сохранены в пресет %q", opts.preset)
	}
	return nil
}

func openBus(cfg config.EventBusConfig) (eventbus.EventBus, error) {
	if cfg.URL == "" {
		return eventbus.NewMemoryBus(cfg.Capacity), nil
	}
	bus, err := eventbus.NewJetStreamBus(cfg.URL, cfg.Stream, cfg.RetentionDuration())
	if err != nil {
		return nil, fmt.Errorf("eventbus: %w", err)
	}
	logging.Info("📡 Подключено к NATS JetStream %s", cfg.URL)
	return bus, nil
}

// applyFlags переносит флаги командной строки в настройки актора
func applyFlags(s *settings.Settings, registry *brush.Registry, opts options) error {
	if opts.brush != "" {
		b, ok := registry.ByName(opts.brush)
		if !ok {
			names := make([]string, 0, registry.Len())
			for _, b := range registry.All() {
				names = append(names, b.Name())
			}
			return fmt.Errorf("unknown brush %q (available: %s)", opts.brush, strings.Join(names, ", "))
		}
		s.SetBrush(b)
	}
	if opts.size > 0 {
		s.SetBrushSize(opts.size)
	}
	if opts.falloff >= 0 {
		s.SetFalloffStrength(opts.falloff)
	}

	if opts.blocks != "" {
		for _, slot := range s.Palette().Slots() {
			s.RemoveBlock(slot)
		}
		for i, name := range strings.Split(opts.blocks, ",") {
			c, err := block.Parse(strings.TrimSpace(name))
			if err != nil {
				return fmt.Errorf("blocks: %w", err)
			}
			s.AddBlock(c, i)
		}
	}

	if opts.mask != "" {
		c, err := block.Parse(opts.mask)
		if err != nil {
			return fmt.Errorf("mask: %w", err)
		}
		if err := s.SetMask(c); err != nil {
			return err
		}
		s.SetMaskMode(brush.MaskInterface)
	}
	return nil
}

func parseVec3(s string) (vec.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return vec.Vec3{}, fmt.Errorf("invalid position %q, expected x,y,z", s)
	}
	var xyz [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return vec.Vec3{}, fmt.Errorf("invalid position %q: %w", s, err)
		}
		xyz[i] = n
	}
	return vec.Vec3{X: xyz[0], Y: xyz[1], Z: xyz[2]}, nil
}
