// Package brush описывает кисти: стратегии, которые по настройкам и точке
// прицеливания строят набор изменений клеток. Кисти не изменяют мир сами.
package brush

import (
	"math/rand"

	"github.com/annel0/gopaint/internal/brush/geometry"
	"github.com/annel0/gopaint/internal/brush/mask"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/google/uuid"
)

// Brush - кисть без изменяемого состояния. Один экземпляр на вариант, общий для всех акторов.
type Brush interface {
	// Name возвращает уникальное имя кисти (ключ в реестре).
	Name() string
	// Description возвращает описание для меню.
	Description() string
	// Icon возвращает ключ иконки для меню.
	Icon() string
	// Paint строит изменения для одного действия. Мир не изменяется.
	Paint(st Stroke) PendingEdit
}

// Settings - представление настроек кисти только на чтение.
// Реализуется настройками игрока и экспортированными настройками.
type Settings interface {
	Brush() Brush
	Size() int
	FalloffStrength() int
	Chance() int
	Thickness() int
	MixingStrength() int
	FractureDistance() int
	AngleDistance() int
	AngleHeightDifference() int
	Axis() geometry.Axis
	SurfaceMode() SurfaceMode
	MaskMode() MaskMode
	// Mask возвращает активную маску или nil, если маска не задана.
	Mask() mask.Mask
	// Blocks возвращает палитру, упорядоченную по слотам.
	Blocks() []block.Content
}

// Actor описывает снимок состояния вызывающего актора
type Actor struct {
	ID uuid.UUID
	// Eye - положение глаз, нужно только для относительного режима поверхности.
	Eye vec.Vec3Float
	// SessionMask - маска хоста (например, выделение), используется в MaskSession.
	SessionMask mask.Mask
}

// Stroke содержит всё, что нужно кисти для одного мазка
type Stroke struct {
	World    world.Reader
	Center   vec.Vec3
	Actor    Actor
	Settings Settings
	// Rand - источник случайности на один мазок. Фиксированный сид даёт воспроизводимый результат.
	Rand *rand.Rand
}

// Edit - одно предложенное изменение клетки
type Edit struct {
	Pos     vec.Vec3
	Content block.Content
}

// PendingEdit - изменения одного мазка. Позиции не повторяются.
type PendingEdit []Edit

// Positions возвращает множество позиций
func (p PendingEdit) Positions() map[vec.Vec3]block.Content {
	out := make(map[vec.Vec3]block.Content, len(p))
	for _, e := range p {
		out[e.Pos] = e.Content
	}
	return out
}

// MaskMode определяет источник маски
type MaskMode uint8

const (
	MaskInterface MaskMode = iota // Маска из настроек кисти
	MaskDisabled                  // Маска не применяется
	MaskSession                   // Маска хоста (Actor.SessionMask)

	maskModeCount
)

// Next возвращает следующий режим, после последнего - первый
func (m MaskMode) Next() MaskMode {
	return (m + 1) % maskModeCount
}

func (m MaskMode) String() string {
	switch m {
	case MaskDisabled:
		return "disabled"
	case MaskSession:
		return "session"
	default:
		return "interface"
	}
}

// SurfaceMode определяет проверку поверхности
type SurfaceMode uint8

const (
	SurfaceDirect   SurfaceMode = iota // Клетка открыта воздухом с любой стороны
	SurfaceDisabled                    // Проверка отключена
	SurfaceRelative                    // Клетка открыта со стороны актора

	surfaceModeCount
)

// Next возвращает следующий режим, после последнего - первый
func (m SurfaceMode) Next() SurfaceMode {
	return (m + 1) % surfaceModeCount
}

func (m SurfaceMode) String() string {
	switch m {
	case SurfaceDisabled:
		return "disabled"
	case SurfaceRelative:
		return "relative"
	default:
		return "direct"
	}
}

// ParseMaskMode разбирает имя режима маски
func ParseMaskMode(s string) (MaskMode, bool) {
	for m := MaskMode(0); m < maskModeCount; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return MaskDisabled, false
}

// ParseSurfaceMode разбирает имя режима поверхности
func ParseSurfaceMode(s string) (SurfaceMode, bool) {
	for m := SurfaceMode(0); m < surfaceModeCount; m++ {
		if m.String() == s {
			return m, true
		}
	}
	return SurfaceDisabled, false
}
