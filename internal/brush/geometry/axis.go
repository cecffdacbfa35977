package geometry

import (
	"fmt"
	"strings"

	"github.com/annel0/gopaint/internal/vec"
)

// Axis определяет ось, вдоль которой ориентируются диски, слои и градиенты
type Axis uint8

const (
	AxisY Axis = iota
	AxisX
	AxisZ

	axisCount
)

// Next возвращает следующую ось, после последней - первую
func (a Axis) Next() Axis {
	return (a + 1) % axisCount
}

// Unit возвращает единичный вектор оси
func (a Axis) Unit() vec.Vec3 {
	switch a {
	case AxisX:
		return vec.Vec3{X: 1}
	case AxisZ:
		return vec.Vec3{Z: 1}
	default:
		return vec.Vec3{Y: 1}
	}
}

// Component возвращает координату вектора вдоль оси
func (a Axis) Component(v vec.Vec3) int {
	switch a {
	case AxisX:
		return v.X
	case AxisZ:
		return v.Z
	default:
		return v.Y
	}
}

// Plane возвращает две оси, образующие плоскость, перпендикулярную данной
func (a Axis) Plane() (u, v vec.Vec3) {
	switch a {
	case AxisX:
		return vec.Vec3{Y: 1}, vec.Vec3{Z: 1}
	case AxisZ:
		return vec.Vec3{X: 1}, vec.Vec3{Y: 1}
	default:
		return vec.Vec3{X: 1}, vec.Vec3{Z: 1}
	}
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisZ:
		return "z"
	default:
		return "y"
	}
}

// ParseAxis разбирает имя оси (x, y, z)
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y":
		return AxisY, nil
	case "x":
		return AxisX, nil
	case "z":
		return AxisZ, nil
	}
	return AxisY, fmt.Errorf("unknown axis %q", s)
}
