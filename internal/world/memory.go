package world

import (
	"context"
	"sync"
	"time"

	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/google/uuid"
)

// Memory хранит мир в памяти. Отсутствующие клетки считаются воздухом.
// Подходит для тестов и демо-утилиты; авторитетный мир живёт у хоста.
type Memory struct {
	mu    sync.RWMutex
	cells map[vec.Vec3]block.Content
	limit int // Лимит изменений на сессию (0 - без ограничений)
}

// NewMemory создаёт пустой мир
func NewMemory() *Memory {
	return &Memory{
		cells: make(map[vec.Vec3]block.Content),
	}
}

// SetChangeLimit задаёт лимит изменений на одну сессию
func (m *Memory) SetChangeLimit(limit int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit < 0 {
		limit = 0
	}
	m.limit = limit
}

// CellAt возвращает содержимое клетки
func (m *Memory) CellAt(pos vec.Vec3) block.Content {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, exists := m.cells[pos]; exists {
		return c
	}
	return block.Air
}

// IsAir сообщает, пуста ли клетка
func (m *Memory) IsAir(pos vec.Vec3) bool {
	return m.CellAt(pos).IsAir()
}

// Set напрямую устанавливает клетку (подготовка мира, вне движка кистей)
func (m *Memory) Set(pos vec.Vec3, content block.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setLocked(pos, content)
}

// Len возвращает число непустых клеток
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}

func (m *Memory) setLocked(pos vec.Vec3, content block.Content) {
	if content.IsAir() {
		delete(m.cells, pos)
		return
	}
	m.cells[pos] = content
}

// NewEditSession открывает сессию редактирования
func (m *Memory) NewEditSession(ctx context.Context, actor uuid.UUID) (EditSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	limit := m.limit
	m.mu.RUnlock()

	return &memorySession{
		world:   m,
		actor:   actor,
		limit:   limit,
		pending: make(map[vec.Vec3]int),
	}, nil
}

// memorySession реализует EditSession поверх Memory
type memorySession struct {
	world   *Memory
	actor   uuid.UUID
	limit   int
	pending map[vec.Vec3]int // Позиция -> индекс в order
	order   []Change
	closed  bool
}

func (s *memorySession) Propose(pos vec.Vec3, content block.Content) error {
	if s.closed {
		return ErrSessionClosed
	}

	if idx, exists := s.pending[pos]; exists {
		s.order[idx].After = content
		return nil
	}

	if s.limit > 0 && len(s.order) >= s.limit {
		return ErrLimitExceeded
	}

	s.pending[pos] = len(s.order)
	s.order = append(s.order, Change{Pos: pos, After: content})
	return nil
}

func (s *memorySession) Len() int {
	return len(s.order)
}

func (s *memorySession) Commit() (Changeset, error) {
	if s.closed {
		return Changeset{}, ErrSessionClosed
	}

	s.world.mu.Lock()
	changes := make([]Change, 0, len(s.order))
	for _, c := range s.order {
		before, exists := s.world.cells[c.Pos]
		if !exists {
			before = block.Air
		}
		if before == c.After {
			continue
		}
		s.world.setLocked(c.Pos, c.After)
		changes = append(changes, Change{Pos: c.Pos, Before: before, After: c.After})
	}
	s.world.mu.Unlock()

	s.closed = true
	s.pending = nil
	s.order = nil

	return Changeset{
		Actor:       s.actor,
		Changes:     changes,
		CommittedAt: time.Now().UTC(),
	}, nil
}

func (s *memorySession) Rollback() {
	s.pending = make(map[vec.Vec3]int)
	s.order = nil
}

func (s *memorySession) Close() error {
	if s.closed {
		return nil
	}
	s.Rollback()
	s.closed = true
	return nil
}
