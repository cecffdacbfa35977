// Package metrics содержит Prometheus-метрики движка кистей.
//
// Метрики:
// * gopaint_paint_actions_total{brush,outcome} - counter
// * gopaint_paint_cells{brush} - histogram, число изменённых клеток за мазок
// * gopaint_paint_duration_seconds{brush} - histogram
// * gopaint_undo_total{outcome} - counter
// * gopaint_paints_inflight - gauge
package metrics

import (
	"net/http"
	"time"

	"github.com/annel0/gopaint/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gopaint"

// Исходы действий
const (
	OutcomeCommitted = "committed"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
	OutcomeDisabled  = "disabled"
	OutcomeEmpty     = "empty"
)

// Metrics хранит метрики в собственном регистре.
// Методы безопасны для nil-получателя.
type Metrics struct {
	registry *prometheus.Registry

	paints   *prometheus.CounterVec
	cells    *prometheus.HistogramVec
	duration *prometheus.HistogramVec
	undos    *prometheus.CounterVec
	inflight prometheus.Gauge
}

// New создаёт метрики и регистрирует их в новом регистре
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		paints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "paint_actions_total",
			Help:      "Число мазков по кистям и исходам.",
		}, []string{"brush", "outcome"}),
		cells: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "paint_cells",
			Help:      "Число клеток, изменённых одним мазком.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"brush"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "paint_duration_seconds",
			Help:      "Длительность мазка от генерации до фиксации.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"brush"}),
		undos: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "undo_total",
			Help:      "Число отмен по исходам.",
		}, []string{"outcome"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "paints_inflight",
			Help:      "Текущее число выполняющихся мазков.",
		}),
	}

	m.registry.MustRegister(m.paints, m.cells, m.duration, m.undos, m.inflight)
	return m
}

// Register добавляет сторонние коллекторы (например, метрики шины событий)
func (m *Metrics) Register(cs ...prometheus.Collector) error {
	if m == nil {
		return nil
	}
	for _, c := range cs {
		if err := m.registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// ObservePaint фиксирует исход мазка
func (m *Metrics) ObservePaint(brush, outcome string, cells int, d time.Duration) {
	if m == nil {
		return
	}
	m.paints.WithLabelValues(brush, outcome).Inc()
	if outcome == OutcomeCommitted {
		m.cells.WithLabelValues(brush).Observe(float64(cells))
		m.duration.WithLabelValues(brush).Observe(d.Seconds())
	}
}

// ObserveUndo фиксирует исход отмены
func (m *Metrics) ObserveUndo(outcome string) {
	if m == nil {
		return
	}
	m.undos.WithLabelValues(outcome).Inc()
}

// Track увеличивает gauge выполняющихся мазков; возвращённая функция уменьшает его
func (m *Metrics) Track() func() {
	if m == nil {
		return func() {}
	}
	m.inflight.Inc()
	return m.inflight.Dec
}

// Handler возвращает HTTP-обработчик /metrics для собственного регистра
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartHTTP запускает эндпоинт /metrics на addr (например, ":2112").
// Метод неблокирующий: сервер стартует в отдельной горутине.
func (m *Metrics) StartHTTP(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
	return srv
}
