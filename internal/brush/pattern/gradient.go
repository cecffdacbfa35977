package pattern

import (
	"math"
	"math/rand"

	"github.com/annel0/gopaint/internal/brush/geometry"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/aquilax/go-perlin"
)

const (
	noiseAlpha  = 2.0
	noiseBeta   = 2.0
	noiseOctave = int32(3)
	noiseScale  = 0.15
)

// GradientParams задаёт параметры градиента
type GradientParams struct {
	Center  vec.Vec3
	Axis    geometry.Axis
	Size    int
	Mixing  int // Сила смешивания соседних полос, 0-100
	Palette []block.Content
	Rand    *rand.Rand
	Seed    int64 // Сид шума Перлина
}

// gradientPattern раскладывает палитру полосами вдоль оси
type gradientPattern struct {
	params GradientParams
	noise  *perlin.Perlin
}

// NewGradient создаёт градиент: порядок палитры (по слотам) идёт от center-size к center+size.
// Границы полос размываются шумом Перлина и случайным смещением пропорционально Mixing.
func NewGradient(p GradientParams) (Pattern, error) {
	if len(p.Palette) == 0 {
		return nil, ErrEmptyPalette
	}
	if p.Size < 0 {
		p.Size = 0
	}
	return &gradientPattern{
		params: p,
		noise:  perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctave, p.Seed),
	}, nil
}

func (g *gradientPattern) Apply(pos vec.Vec3) (block.Content, bool) {
	p := g.params
	n := len(p.Palette)
	if n == 1 {
		return p.Palette[0], true
	}

	rel := p.Axis.Component(pos.Sub(p.Center)) + p.Size
	band := float64(rel*n) / float64(2*p.Size+1)

	if p.Mixing > 0 {
		mix := float64(p.Mixing) / 100
		noise := g.noise.Noise3D(
			(float64(pos.X)+0.5)*noiseScale,
			(float64(pos.Y)+0.5)*noiseScale,
			(float64(pos.Z)+0.5)*noiseScale,
		)
		band += mix * (0.5*noise + 0.5*(2*p.Rand.Float64()-1))
	}

	idx := int(math.Floor(band))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return p.Palette[idx], true
}
