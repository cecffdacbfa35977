package settings

import (
	"sync"

	"github.com/annel0/gopaint/internal/brush"
	"github.com/google/uuid"
)

// Manager владеет настройками акторов. Настройки создаются при первом
// обращении и удаляются по окончании сессии актора.
type Manager struct {
	mu       sync.Mutex
	limits   Limits
	registry *brush.Registry
	byActor  map[uuid.UUID]*Settings
}

// NewManager создаёт менеджер настроек
func NewManager(limits Limits, registry *brush.Registry) *Manager {
	return &Manager{
		limits:   limits,
		registry: registry,
		byActor:  make(map[uuid.UUID]*Settings),
	}
}

// Get возвращает настройки актора, создавая их со значениями по умолчанию
func (m *Manager) Get(actor uuid.UUID) *Settings {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byActor[actor]
	if !ok {
		s = New(m.limits, m.registry)
		m.byActor[actor] = s
	}
	return s
}

// Lookup возвращает настройки без создания
func (m *Manager) Lookup(actor uuid.UUID) (*Settings, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.byActor[actor]
	return s, ok
}

// End удаляет настройки актора
func (m *Manager) End(actor uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.byActor, actor)
}

// Len возвращает число активных настроек
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.byActor)
}

// Registry возвращает реестр кистей
func (m *Manager) Registry() *brush.Registry { return m.registry }

// Limits возвращает диапазоны настроек
func (m *Manager) Limits() Limits { return m.limits }
