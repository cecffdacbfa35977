package brush

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrDuplicateBrush возвращается при повторной регистрации имени
var ErrDuplicateBrush = errors.New("brush: duplicate brush name")

// Registry хранит кисти в порядке регистрации. Этот порядок является порядком перебора.
type Registry struct {
	mu      sync.RWMutex
	brushes []Brush
	index   map[string]int // имя в нижнем регистре -> позиция
}

// NewRegistry создаёт пустой реестр
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// DefaultRegistry создаёт реестр со всеми встроенными кистями
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range []Brush{
		NewSphere(),
		NewSpray(),
		NewSplatter(),
		NewDisc(),
		NewOverlay(),
		NewUnderlay(),
		NewFracture(),
		NewGradient(),
	} {
		// Имена встроенных кистей уникальны
		_ = r.Register(b)
	}
	return r
}

// Register добавляет кисть в конец порядка перебора
func (r *Registry) Register(b Brush) error {
	key := strings.ToLower(b.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateBrush, b.Name())
	}
	r.index[key] = len(r.brushes)
	r.brushes = append(r.brushes, b)
	return nil
}

// All возвращает копию списка кистей
func (r *Registry) All() []Brush {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Brush, len(r.brushes))
	copy(out, r.brushes)
	return out
}

// Len возвращает число зарегистрированных кистей
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.brushes)
}

// ByName ищет кисть по имени без учёта регистра
func (r *Registry) ByName(name string) (Brush, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return r.brushes[i], true
}

// First возвращает первую кисть или nil для пустого реестра
func (r *Registry) First() Brush {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.brushes) == 0 {
		return nil
	}
	return r.brushes[0]
}

// Next возвращает кисть после current с переходом в начало.
// nil или незарегистрированная кисть считаются позицией "перед первой".
func (r *Registry) Next(current Brush) Brush {
	return r.step(current, 1)
}

// Previous возвращает кисть перед current с переходом в конец.
// Для nil или незарегистрированной кисти возвращается первая.
func (r *Registry) Previous(current Brush) Brush {
	return r.step(current, -1)
}

func (r *Registry) step(current Brush, delta int) Brush {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.brushes)
	if n == 0 {
		return nil
	}
	if current == nil {
		return r.brushes[0]
	}
	i, ok := r.index[strings.ToLower(current.Name())]
	if !ok {
		return r.brushes[0]
	}
	return r.brushes[((i+delta)%n+n)%n]
}
