package brush

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_DefaultOrder(t *testing.T) {
	r := DefaultRegistry()
	names := make([]string, 0, r.Len())
	for _, b := range r.All() {
		names = append(names, b.Name())
	}
	assert.Equal(t, []string{
		"Sphere Brush", "Spray Brush", "Splatter Brush", "Disc Brush",
		"Overlay Brush", "Underlay Brush", "Fracture Brush", "Gradient Brush",
	}, names)
}

func TestRegistry_DuplicateName(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewSphere()))
	assert.ErrorIs(t, r.Register(NewSphere()), ErrDuplicateBrush)
	assert.Equal(t, 1, r.Len())
}

// Тест перебора: nil считается позицией перед первой кистью
func TestRegistry_NextFromNilIsFirst(t *testing.T) {
	r := DefaultRegistry()
	assert.Same(t, r.First(), r.Next(nil))
	assert.Same(t, r.First(), r.Previous(nil))
}

// Тест перебора: N шагов вперёд возвращают к исходной кисти
func TestRegistry_FullCycleReturns(t *testing.T) {
	r := DefaultRegistry()
	for _, start := range r.All() {
		cur := start
		for i := 0; i < r.Len(); i++ {
			cur = r.Next(cur)
		}
		assert.Same(t, start, cur, "полный цикл от %s", start.Name())

		for i := 0; i < r.Len(); i++ {
			cur = r.Previous(cur)
		}
		assert.Same(t, start, cur, "полный обратный цикл от %s", start.Name())
	}
}

func TestRegistry_PreviousWraps(t *testing.T) {
	r := DefaultRegistry()
	all := r.All()
	assert.Same(t, all[len(all)-1], r.Previous(r.First()))
	assert.Same(t, all[1], r.Next(all[0]))
}

func TestRegistry_UnknownCurrentIsFirst(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(NewSpray()))
	require.NoError(t, r.Register(NewDisc()))
	assert.Equal(t, "Spray Brush", r.Next(NewGradient()).Name())
}

func TestRegistry_ByNameIgnoresCase(t *testing.T) {
	r := DefaultRegistry()
	b, ok := r.ByName("fracture brush")
	require.True(t, ok)
	assert.Equal(t, "Fracture Brush", b.Name())

	_, ok = r.ByName("nope")
	assert.False(t, ok)
}

func TestRegistry_Empty(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.First())
	assert.Nil(t, r.Next(nil))
}
