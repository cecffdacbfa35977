package world

import (
	"sync"

	"github.com/google/uuid"
)

// History хранит зафиксированные наборы изменений каждого актора для отмены.
// Глубина стека ограничена; самые старые записи вытесняются.
type History struct {
	mu     sync.Mutex
	size   int
	stacks map[uuid.UUID][]Changeset
}

// NewHistory создаёт историю с глубиной size на актора (минимум 1)
func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{
		size:   size,
		stacks: make(map[uuid.UUID][]Changeset),
	}
}

// Remember регистрирует набор изменений. Пустые наборы не сохраняются.
func (h *History) Remember(cs Changeset) {
	if cs.Len() == 0 {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	stack := append(h.stacks[cs.Actor], cs)
	if len(stack) > h.size {
		stack = stack[len(stack)-h.size:]
	}
	h.stacks[cs.Actor] = stack
}

// Pop извлекает последний набор изменений актора
func (h *History) Pop(actor uuid.UUID) (Changeset, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	stack := h.stacks[actor]
	if len(stack) == 0 {
		return Changeset{}, false
	}
	cs := stack[len(stack)-1]
	if len(stack) == 1 {
		delete(h.stacks, actor)
	} else {
		h.stacks[actor] = stack[:len(stack)-1]
	}
	return cs, true
}

// Len возвращает глубину истории актора
func (h *History) Len(actor uuid.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.stacks[actor])
}

// Forget удаляет историю актора (конец сессии игрока)
func (h *History) Forget(actor uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.stacks, actor)
}
