package world

import (
	"context"
	"errors"
	"time"

	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/google/uuid"
)

var (
	// ErrSessionClosed возвращается при работе с уже закрытой или зафиксированной сессией
	ErrSessionClosed = errors.New("edit session closed")
	// ErrLimitExceeded возвращается, когда сессия превысила лимит изменений
	ErrLimitExceeded = errors.New("edit session change limit exceeded")
)

// Reader определяет доступ к миру только на чтение.
// Используется масками и проверкой поверхности.
type Reader interface {
	// CellAt возвращает содержимое клетки (воздух для незагруженных клеток).
	CellAt(pos vec.Vec3) block.Content

	// IsAir сообщает, пуста ли клетка.
	IsAir(pos vec.Vec3) bool
}

// EditSession накапливает предложенные изменения и применяет их одной транзакцией.
// Сессия используется ровно для одного действия кисти и закрывается на любом пути выхода.
type EditSession interface {
	// Propose добавляет изменение клетки. Повторное предложение той же позиции заменяет предыдущее.
	Propose(pos vec.Vec3, content block.Content) error

	// Len возвращает число накопленных изменений.
	Len() int

	// Commit атомарно применяет изменения и возвращает набор для отмены.
	Commit() (Changeset, error)

	// Rollback отбрасывает накопленные изменения.
	Rollback()

	// Close освобождает сессию. Незафиксированные изменения отбрасываются.
	Close() error
}

// SessionFactory создаёт сессии редактирования для актора
type SessionFactory interface {
	NewEditSession(ctx context.Context, actor uuid.UUID) (EditSession, error)
}

// Change описывает одно применённое изменение клетки
type Change struct {
	Pos    vec.Vec3      `json:"pos"`
	Before block.Content `json:"before"`
	After  block.Content `json:"after"`
}

// Changeset содержит результат одной зафиксированной сессии
type Changeset struct {
	Actor       uuid.UUID `json:"actor"`
	Changes     []Change  `json:"changes"`
	CommittedAt time.Time `json:"committed_at"`
}

// Len возвращает число изменений
func (cs Changeset) Len() int {
	return len(cs.Changes)
}

// Inverse возвращает изменения, возвращающие клетки в исходное состояние (в обратном порядке)
func (cs Changeset) Inverse() []Change {
	inv := make([]Change, 0, len(cs.Changes))
	for i := len(cs.Changes) - 1; i >= 0; i-- {
		c := cs.Changes[i]
		inv = append(inv, Change{Pos: c.Pos, Before: c.After, After: c.Before})
	}
	return inv
}
