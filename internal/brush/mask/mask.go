// Package mask реализует составные предикаты над клетками мира.
package mask

import (
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world"
	"github.com/annel0/gopaint/internal/world/block"
)

// Mask определяет предикат над клеткой. Реализации неизменяемы и не имеют побочных эффектов.
type Mask interface {
	Matches(r world.Reader, pos vec.Vec3) bool
}

// Func адаптирует функцию к интерфейсу Mask
type Func func(r world.Reader, pos vec.Vec3) bool

func (f Func) Matches(r world.Reader, pos vec.Vec3) bool {
	return f(r, pos)
}

// materialMask совпадает с клетками заданного материала
type materialMask struct {
	content block.Content
	legacy  bool
}

// Material возвращает маску по материалу. Подтип сравнивается только в устаревшем
// формате данных (legacy), где он ещё кодируется; иначе учитывается только ID.
func Material(content block.Content, legacy bool) Mask {
	return materialMask{content: content, legacy: legacy}
}

func (m materialMask) Matches(r world.Reader, pos vec.Vec3) bool {
	cell := r.CellAt(pos)
	if cell.ID != m.content.ID {
		return false
	}
	return !m.legacy || cell.Data == m.content.Data
}

// Content возвращает материал маски
func (m materialMask) Content() block.Content {
	return m.content
}

type inverseMask struct {
	inner Mask
}

// Inverse возвращает логическое отрицание маски
func Inverse(inner Mask) Mask {
	return inverseMask{inner: inner}
}

func (m inverseMask) Matches(r world.Reader, pos vec.Vec3) bool {
	return !m.inner.Matches(r, pos)
}

type intersectionMask struct {
	masks []Mask
}

// Intersection возвращает логическое И. Проверка прекращается на первом false,
// чтобы не читать мир лишний раз. Пустое пересечение совпадает со всем.
func Intersection(masks ...Mask) Mask {
	return intersectionMask{masks: compact(masks)}
}

func (m intersectionMask) Matches(r world.Reader, pos vec.Vec3) bool {
	for _, inner := range m.masks {
		if !inner.Matches(r, pos) {
			return false
		}
	}
	return true
}

type unionMask struct {
	masks []Mask
}

// Union возвращает логическое ИЛИ с остановкой на первом true. Пустое объединение не совпадает ни с чем.
func Union(masks ...Mask) Mask {
	return unionMask{masks: compact(masks)}
}

func (m unionMask) Matches(r world.Reader, pos vec.Vec3) bool {
	for _, inner := range m.masks {
		if inner.Matches(r, pos) {
			return true
		}
	}
	return false
}

// Air совпадает с пустыми клетками
func Air() Mask {
	return Func(func(r world.Reader, pos vec.Vec3) bool {
		return r.IsAir(pos)
	})
}

// All совпадает с любой клеткой
func All() Mask {
	return Func(func(world.Reader, vec.Vec3) bool { return true })
}

// compact отбрасывает nil-маски
func compact(masks []Mask) []Mask {
	out := make([]Mask, 0, len(masks))
	for _, m := range masks {
		if m != nil {
			out = append(out, m)
		}
	}
	return out
}
