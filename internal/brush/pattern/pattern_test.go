package pattern

import (
	"math/rand"
	"testing"

	"github.com/annel0/gopaint/internal/brush/geometry"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stone = block.Of(block.StoneBlockID)
	dirt  = block.Of(block.DirtBlockID)
	sand  = block.Of(block.SandBlockID)
)

func TestRandom_EmptyPalette(t *testing.T) {
	_, err := NewRandom(nil, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrEmptyPalette)
}

func TestRandom_UniformChoice(t *testing.T) {
	p, err := NewRandom([]block.Content{stone, dirt, sand}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	counts := make(map[block.Content]int)
	const trials = 9000
	for i := 0; i < trials; i++ {
		c, ok := p.Apply(vec.Vec3{})
		require.True(t, ok)
		counts[c]++
	}
	require.Len(t, counts, 3)
	for c, n := range counts {
		assert.InDelta(t, trials/3, n, 300, "материал %s выбирается неравномерно", c)
	}
}

func TestRandom_SameSeedSameSequence(t *testing.T) {
	palette := []block.Content{stone, dirt, sand}
	a, _ := NewRandom(palette, rand.New(rand.NewSource(99)))
	b, _ := NewRandom(palette, rand.New(rand.NewSource(99)))
	for i := 0; i < 50; i++ {
		ca, _ := a.Apply(vec.Vec3{})
		cb, _ := b.Apply(vec.Vec3{})
		assert.Equal(t, ca, cb)
	}
}

func TestFracture_SparseRegularReplicas(t *testing.T) {
	center := vec.Vec3{X: 10, Y: 64, Z: -3}
	p, err := NewFracture(FractureParams{
		Center:        center,
		Axis:          geometry.AxisY,
		Size:          6,
		Distance:      2,
		AngleDistance: 90,
		AngleHeight:   0,
		Palette:       []block.Content{stone},
		Rand:          rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	// 4 луча по 3 реплики плюс центр
	assert.Equal(t, 13, p.(*fracturePattern).Replicas())

	c, ok := p.Apply(center)
	assert.True(t, ok, "центр всегда является репликой")
	assert.Equal(t, stone, c)

	for _, off := range []vec.Vec3{{X: 2}, {X: 4}, {X: 6}, {Z: 2}, {X: -4}, {Z: -6}} {
		_, ok := p.Apply(center.Add(off))
		assert.True(t, ok, "реплика %v", off)
	}
	for _, off := range []vec.Vec3{{X: 1}, {X: 3}, {X: 2, Z: 2}, {Y: 2}, {X: 8}} {
		_, ok := p.Apply(center.Add(off))
		assert.False(t, ok, "между репликами пусто: %v", off)
	}
}

func TestFracture_ElevatedArmsAlternate(t *testing.T) {
	p, err := NewFracture(FractureParams{
		Axis:          geometry.AxisY,
		Size:          4,
		Distance:      4,
		AngleDistance: 180,
		AngleHeight:   90,
		Palette:       []block.Content{stone},
		Rand:          rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)

	_, up := p.Apply(vec.Vec3{Y: 4})
	_, down := p.Apply(vec.Vec3{Y: -4})
	assert.True(t, up, "чётный луч поднимается")
	assert.True(t, down, "нечётный луч опускается")
}

func TestFracture_EmptyPalette(t *testing.T) {
	_, err := NewFracture(FractureParams{Size: 3})
	assert.ErrorIs(t, err, ErrEmptyPalette)
}

func TestGradient_BandsWithoutMixing(t *testing.T) {
	p, err := NewGradient(GradientParams{
		Axis:    geometry.AxisY,
		Size:    2,
		Mixing:  0,
		Palette: []block.Content{stone, dirt},
		Rand:    rand.New(rand.NewSource(1)),
		Seed:    1,
	})
	require.NoError(t, err)

	want := map[int]block.Content{-2: stone, -1: stone, 0: stone, 1: dirt, 2: dirt}
	for y, c := range want {
		got, ok := p.Apply(vec.Vec3{Y: y, X: 1})
		require.True(t, ok)
		assert.Equal(t, c, got, "y=%d", y)
	}

	got, _ := p.Apply(vec.Vec3{Y: 50})
	assert.Equal(t, dirt, got, "индекс ограничивается палитрой")
}

func TestGradient_MixingStaysInPalette(t *testing.T) {
	palette := []block.Content{stone, dirt, sand}
	p, err := NewGradient(GradientParams{
		Axis:    geometry.AxisX,
		Size:    5,
		Mixing:  100,
		Palette: palette,
		Rand:    rand.New(rand.NewSource(3)),
		Seed:    3,
	})
	require.NoError(t, err)

	seen := make(map[block.Content]bool)
	for x := -5; x <= 5; x++ {
		for z := -5; z <= 5; z++ {
			c, ok := p.Apply(vec.Vec3{X: x, Z: z})
			require.True(t, ok)
			assert.Contains(t, palette, c)
			seen[c] = true
		}
	}
	assert.Len(t, seen, 3)
}
