// Package geometry перечисляет координаты клеток внутри фигур кисти.
// Сэмплеры возвращают только координаты и не обращаются к миру.
package geometry

import (
	"iter"

	"github.com/annel0/gopaint/internal/vec"
)

// Sphere возвращает клетки, удалённые от center не более чем на radius.
// Обход ограничивающего куба идёт по X, затем Y, затем Z, поэтому порядок
// детерминирован. Каждая клетка выдаётся ровно один раз.
func Sphere(center vec.Vec3, radius int) iter.Seq[vec.Vec3] {
	return func(yield func(vec.Vec3) bool) {
		if radius < 0 {
			return
		}
		r2 := radius * radius
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				for dz := -radius; dz <= radius; dz++ {
					if dx*dx+dy*dy+dz*dz > r2 {
						continue
					}
					if !yield(vec.Vec3{X: center.X + dx, Y: center.Y + dy, Z: center.Z + dz}) {
						return
					}
				}
			}
		}
	}
}

// Disc возвращает клетки круга радиуса radius толщиной в одну клетку,
// лежащего в плоскости, перпендикулярной axis.
func Disc(center vec.Vec3, radius int, axis Axis) iter.Seq[vec.Vec3] {
	return func(yield func(vec.Vec3) bool) {
		if radius < 0 {
			return
		}
		u, v := axis.Plane()
		r2 := radius * radius
		for a := -radius; a <= radius; a++ {
			for b := -radius; b <= radius; b++ {
				if a*a+b*b > r2 {
					continue
				}
				if !yield(center.Add(u.Scale(a)).Add(v.Scale(b))) {
					return
				}
			}
		}
	}
}

// Distance возвращает евклидово расстояние между клетками
func Distance(a, b vec.Vec3) float64 {
	return a.DistanceTo(b)
}
