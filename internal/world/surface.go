package world

import (
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
)

// faces содержит нормали шести граней клетки
var faces = [6]vec.Vec3{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// OnSurface сообщает, что клетка твёрдая и имеет хотя бы одного соседа-воздух
func OnSurface(r Reader, pos vec.Vec3) bool {
	if !block.IsSolid(r.CellAt(pos).ID) {
		return false
	}
	for _, f := range faces {
		if r.IsAir(pos.Add(f)) {
			return true
		}
	}
	return false
}

// OnSurfaceToward сообщает, что клетка твёрдая и открыта воздухом с грани,
// обращённой к точке наблюдения eye.
func OnSurfaceToward(r Reader, pos vec.Vec3, eye vec.Vec3Float) bool {
	if !block.IsSolid(r.CellAt(pos).ID) {
		return false
	}
	toEye := eye.Sub(pos.ToFloat())
	for _, f := range faces {
		normal := vec.Vec3Float{X: float64(f.X), Y: float64(f.Y), Z: float64(f.Z)}
		if normal.Dot(toEye) <= 0 {
			continue
		}
		if r.IsAir(pos.Add(f)) {
			return true
		}
	}
	return false
}
