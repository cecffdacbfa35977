package pattern

import (
	"math"
	"math/rand"

	"github.com/annel0/gopaint/internal/brush/geometry"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
)

// FractureParams задаёт параметры шаблона трещин
type FractureParams struct {
	Center        vec.Vec3
	Axis          geometry.Axis
	Size          int // Радиус кисти; реплики дальше него не строятся
	Distance      int // Шаг между соседними репликами на луче
	AngleDistance int // Угол между лучами в градусах
	AngleHeight   int // Наклон лучей к плоскости в градусах, чётные лучи вверх, нечётные вниз
	Palette       []block.Content
	Rand          *rand.Rand
}

// fracturePattern ставит содержимое только в реплики на лучах, расходящихся от центра
type fracturePattern struct {
	replicas map[vec.Vec3]struct{}
	palette  []block.Content
	rng      *rand.Rand
}

// NewFracture строит разреженный шаблон реплик. Центр всегда является репликой.
func NewFracture(p FractureParams) (Pattern, error) {
	if len(p.Palette) == 0 {
		return nil, ErrEmptyPalette
	}

	step := p.Distance
	if step < 1 {
		step = 1
	}
	angleStep := p.AngleDistance
	if angleStep < 1 {
		angleStep = 1
	}
	if angleStep > 360 {
		angleStep = 360
	}

	u, v := p.Axis.Plane()
	up := p.Axis.Unit()
	elevation := float64(p.AngleHeight) * math.Pi / 180

	replicas := map[vec.Vec3]struct{}{p.Center: {}}
	for arm, deg := 0, 0; deg < 360; arm, deg = arm+1, deg+angleStep {
		heading := float64(deg) * math.Pi / 180
		tilt := elevation
		if arm%2 == 1 {
			tilt = -elevation
		}
		for k := 1; k*step <= p.Size; k++ {
			r := float64(k * step)
			planar := r * math.Cos(tilt)
			off := u.Scale(round(planar * math.Cos(heading))).
				Add(v.Scale(round(planar * math.Sin(heading)))).
				Add(up.Scale(round(r * math.Sin(tilt))))
			replicas[p.Center.Add(off)] = struct{}{}
		}
	}

	return &fracturePattern{replicas: replicas, palette: p.Palette, rng: p.Rand}, nil
}

func (p *fracturePattern) Apply(pos vec.Vec3) (block.Content, bool) {
	if _, ok := p.replicas[pos]; !ok {
		return block.Content{}, false
	}
	return pick(p.palette, p.rng), true
}

// Replicas возвращает число позиций реплик
func (p *fracturePattern) Replicas() int {
	return len(p.replicas)
}

func round(f float64) int {
	return int(math.Round(f))
}
