// Package engine применяет кисти к миру: снимок настроек, мазок, сессия редактирования, история.
package engine

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/annel0/gopaint/internal/brush"
	"github.com/annel0/gopaint/internal/brush/settings"
	"github.com/annel0/gopaint/internal/eventbus"
	"github.com/annel0/gopaint/internal/logging"
	"github.com/annel0/gopaint/internal/metrics"
	"github.com/annel0/gopaint/internal/observability"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/semaphore"
)

const eventSource = "engine"

var (
	// ErrBrushDisabled возвращается, когда актор выключил кисть
	ErrBrushDisabled = errors.New("brush disabled")
	// ErrNoBrush возвращается для настроек без выбранной кисти
	ErrNoBrush = errors.New("no brush selected")
	// ErrNothingToUndo возвращается при пустой истории актора
	ErrNothingToUndo = errors.New("nothing to undo")
)

// Result описывает исход мазка или отмены
type Result struct {
	Brush string
	// Cells - число фактически изменённых клеток
	Cells int
	// Skipped - мазок пропущен без открытия сессии (пустая палитра)
	Skipped   bool
	Changeset world.Changeset
}

// Option настраивает Painter
type Option func(*Painter)

// WithSeed задаёт источник зерна генератора для каждого мазка
func WithSeed(seed func() int64) Option {
	return func(p *Painter) { p.seed = seed }
}

func WithHistory(h *world.History) Option {
	return func(p *Painter) { p.history = h }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Painter) { p.metrics = m }
}

func WithEventBus(bus eventbus.EventBus) Option {
	return func(p *Painter) { p.bus = bus }
}

func WithLogger(l *logging.Logger) Option {
	return func(p *Painter) { p.logger = l }
}

// Painter - единая точка применения кистей.
// Мазки одного актора выполняются строго по очереди, разные акторы независимы.
type Painter struct {
	manager  *settings.Manager
	reader   world.Reader
	sessions world.SessionFactory
	history  *world.History

	metrics *metrics.Metrics
	bus     eventbus.EventBus
	tracer  trace.Tracer
	logger  *logging.Logger
	seed    func() int64

	mu    sync.Mutex
	locks map[uuid.UUID]*actorLock
}

// actorLock сериализует мазки одного актора; refs считает держателей и ожидающих
type actorLock struct {
	sem  *semaphore.Weighted
	refs int
}

// NewPainter создаёт движок поверх мира
func NewPainter(manager *settings.Manager, reader world.Reader, sessions world.SessionFactory, opts ...Option) *Painter {
	p := &Painter{
		manager:  manager,
		reader:   reader,
		sessions: sessions,
		tracer:   observability.Tracer("engine"),
		seed:     func() int64 { return time.Now().UnixNano() },
		locks:    make(map[uuid.UUID]*actorLock),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.history == nil {
		p.history = world.NewHistory(16)
	}
	if p.logger == nil {
		p.logger = logging.GetEngineLogger()
	}
	return p
}

// Settings возвращает настройки актора (создаёт при первом обращении)
func (p *Painter) Settings(actor uuid.UUID) *settings.Settings {
	return p.manager.Get(actor)
}

// History возвращает историю изменений
func (p *Painter) History() *world.History {
	return p.history
}

// Paint применяет текущие настройки актора в точке target
func (p *Painter) Paint(ctx context.Context, actor brush.Actor, target vec.Vec3) (Result, error) {
	s := p.manager.Get(actor.ID)
	if !s.Enabled() {
		name := ""
		if b := s.Brush(); b != nil {
			name = b.Name()
		}
		p.metrics.ObservePaint(name, metrics.OutcomeDisabled, 0, 0)
		return Result{Brush: name}, ErrBrushDisabled
	}
	return p.paint(ctx, actor, target, s.Export())
}

// PaintExported применяет экспортированный снимок настроек от имени актора
func (p *Painter) PaintExported(ctx context.Context, actor brush.Actor, target vec.Vec3, e *settings.Exported) (Result, error) {
	if e == nil {
		return Result{}, ErrNoBrush
	}
	return p.paint(ctx, actor, target, e)
}

func (p *Painter) paint(ctx context.Context, actor brush.Actor, target vec.Vec3, st brush.Settings) (Result, error) {
	b := st.Brush()
	if b == nil {
		return Result{}, ErrNoBrush
	}
	res := Result{Brush: b.Name()}

	release, err := p.acquire(ctx, actor.ID)
	if err != nil {
		return res, err
	}
	defer release()

	defer p.metrics.Track()()
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "brush.paint", trace.WithAttributes(
		attribute.String("brush", b.Name()),
		attribute.String("actor", actor.ID.String()),
		attribute.Int("size", st.Size()),
	))
	defer span.End()

	if len(st.Blocks()) == 0 {
		res.Skipped = true
		p.metrics.ObservePaint(res.Brush, metrics.OutcomeEmpty, 0, time.Since(start))
		p.logger.Debug("%s: пустая палитра у %s, мазок пропущен", res.Brush, actor.ID)
		return res, nil
	}

	edits := b.Paint(brush.Stroke{
		World:    p.reader,
		Center:   target,
		Actor:    actor,
		Settings: st,
		Rand:     rand.New(rand.NewSource(p.seed())),
	})
	span.SetAttributes(attribute.Int("proposed", len(edits)))

	cs, err := p.apply(ctx, actor.ID, len(edits), func(session world.EditSession) error {
		for _, e := range edits {
			if err := session.Propose(e.Pos, e.Content); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "paint failed")
		p.metrics.ObservePaint(res.Brush, metrics.OutcomeFailed, 0, time.Since(start))
		p.logger.Warn("%s: мазок %s в %v не применён: %v", res.Brush, actor.ID, target, err)
		return res, err
	}

	res.Changeset = cs
	res.Cells = cs.Len()
	p.history.Remember(cs)
	p.metrics.ObservePaint(res.Brush, metrics.OutcomeCommitted, res.Cells, time.Since(start))
	p.logger.Debug("%s: %s изменил %d клеток в %v", res.Brush, actor.ID, res.Cells, target)

	p.publish(ctx, eventbus.TypeBrushApplied, eventbus.BrushApplied{
		Actor:  actor.ID,
		Brush:  res.Brush,
		Target: target,
		Cells:  res.Cells,
	})
	return res, nil
}

// Undo отменяет последний зафиксированный мазок актора.
// При ошибке набор изменений возвращается в историю.
func (p *Painter) Undo(ctx context.Context, actor uuid.UUID) (Result, error) {
	release, err := p.acquire(ctx, actor)
	if err != nil {
		return Result{}, err
	}
	defer release()

	ctx, span := p.tracer.Start(ctx, "brush.undo", trace.WithAttributes(
		attribute.String("actor", actor.String()),
	))
	defer span.End()

	last, ok := p.history.Pop(actor)
	if !ok {
		p.metrics.ObserveUndo(metrics.OutcomeEmpty)
		return Result{}, ErrNothingToUndo
	}

	inverse := last.Inverse()
	cs, err := p.apply(ctx, actor, len(inverse), func(session world.EditSession) error {
		for _, c := range inverse {
			if err := session.Propose(c.Pos, c.After); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		p.history.Remember(last)
		span.RecordError(err)
		span.SetStatus(codes.Error, "undo failed")
		p.metrics.ObserveUndo(metrics.OutcomeFailed)
		p.logger.Warn("отмена для %s не применена: %v", actor, err)
		return Result{}, err
	}

	p.metrics.ObserveUndo(metrics.OutcomeCommitted)
	p.logger.Debug("отмена для %s: %d клеток", actor, cs.Len())
	p.publish(ctx, eventbus.TypeBrushUndone, eventbus.BrushUndone{Actor: actor, Cells: cs.Len()})
	return Result{Cells: cs.Len(), Changeset: cs}, nil
}

// End завершает сессию актора: настройки и история удаляются.
// Блокировка актора исчезает сама, когда её никто не держит и не ждёт.
func (p *Painter) End(actor uuid.UUID) {
	p.manager.End(actor)
	p.history.Forget(actor)
}

// apply открывает сессию, передаёт её propose и фиксирует.
// Сессия закрывается на любом пути, ошибки мира возвращаются без обёртки.
func (p *Painter) apply(ctx context.Context, actor uuid.UUID, n int, propose func(world.EditSession) error) (world.Changeset, error) {
	session, err := p.sessions.NewEditSession(ctx, actor)
	if err != nil {
		return world.Changeset{}, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			p.logger.Warn("не удалось закрыть сессию %s: %v", actor, err)
		}
	}()

	if err := propose(session); err != nil {
		return world.Changeset{}, err
	}
	p.logger.Trace("сессия %s: предложено %d из %d", actor, session.Len(), n)
	return session.Commit()
}

// acquire занимает блокировку актора и возвращает функцию освобождения
func (p *Painter) acquire(ctx context.Context, actor uuid.UUID) (func(), error) {
	p.mu.Lock()
	lock, ok := p.locks[actor]
	if !ok {
		lock = &actorLock{sem: semaphore.NewWeighted(1)}
		p.locks[actor] = lock
	}
	lock.refs++
	p.mu.Unlock()

	if err := lock.sem.Acquire(ctx, 1); err != nil {
		p.unref(actor, lock)
		return nil, err
	}
	return func() {
		lock.sem.Release(1)
		p.unref(actor, lock)
	}, nil
}

func (p *Painter) unref(actor uuid.UUID, lock *actorLock) {
	p.mu.Lock()
	defer p.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(p.locks, actor)
	}
}

func (p *Painter) publish(ctx context.Context, eventType string, payload any) {
	if p.bus == nil {
		return
	}
	ev, err := eventbus.NewEnvelope(eventSource, eventType, payload)
	if err == nil {
		err = p.bus.Publish(ctx, ev)
	}
	if err != nil {
		p.logger.Warn("не удалось опубликовать %s: %v", eventType, err)
	}
}
