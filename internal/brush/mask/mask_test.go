package mask

import (
	"testing"

	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/stretchr/testify/assert"
)

// countingReader считает обращения к миру
type countingReader struct {
	world.Reader
	reads int
}

func (c *countingReader) CellAt(pos vec.Vec3) block.Content {
	c.reads++
	return c.Reader.CellAt(pos)
}

func (c *countingReader) IsAir(pos vec.Vec3) bool {
	c.reads++
	return c.Reader.IsAir(pos)
}

func newWorld() *world.Memory {
	w := world.NewMemory()
	w.Set(vec.Vec3{X: 0}, block.Content{ID: block.StoneBlockID, Data: 1})
	w.Set(vec.Vec3{X: 1}, block.Of(block.DirtBlockID))
	return w
}

func TestMaterial_LegacyData(t *testing.T) {
	w := newWorld()
	stone := block.Content{ID: block.StoneBlockID, Data: 2}

	assert.True(t, Material(stone, false).Matches(w, vec.Vec3{X: 0}), "подтип игнорируется в новом формате")
	assert.False(t, Material(stone, true).Matches(w, vec.Vec3{X: 0}), "в устаревшем формате подтип обязан совпасть")
	assert.True(t, Material(block.Content{ID: block.StoneBlockID, Data: 1}, true).Matches(w, vec.Vec3{X: 0}))
	assert.False(t, Material(stone, false).Matches(w, vec.Vec3{X: 1}))
}

func TestInverse(t *testing.T) {
	w := newWorld()
	dirt := Material(block.Of(block.DirtBlockID), false)

	assert.False(t, Inverse(dirt).Matches(w, vec.Vec3{X: 1}))
	assert.True(t, Inverse(dirt).Matches(w, vec.Vec3{X: 0}))
	assert.True(t, Inverse(Inverse(dirt)).Matches(w, vec.Vec3{X: 1}))
}

func TestIntersection_ShortCircuits(t *testing.T) {
	r := &countingReader{Reader: newWorld()}
	never := Func(func(world.Reader, vec.Vec3) bool { return false })
	stone := Material(block.Of(block.StoneBlockID), false)

	assert.False(t, Intersection(never, stone).Matches(r, vec.Vec3{X: 0}))
	assert.Equal(t, 0, r.reads, "после первого false мир не читается")

	assert.True(t, Intersection(stone, Inverse(Air())).Matches(r, vec.Vec3{X: 0}))
	assert.True(t, Intersection().Matches(r, vec.Vec3{X: 5}), "пустое пересечение совпадает со всем")
	assert.True(t, Intersection(nil, stone).Matches(r, vec.Vec3{X: 0}), "nil-маски отбрасываются")
}

func TestUnion(t *testing.T) {
	w := newWorld()
	stone := Material(block.Of(block.StoneBlockID), false)
	dirt := Material(block.Of(block.DirtBlockID), false)

	assert.True(t, Union(stone, dirt).Matches(w, vec.Vec3{X: 1}))
	assert.False(t, Union(stone, dirt).Matches(w, vec.Vec3{X: 2}))
	assert.False(t, Union().Matches(w, vec.Vec3{X: 0}))
	assert.True(t, Air().Matches(w, vec.Vec3{X: 2}))
	assert.True(t, All().Matches(w, vec.Vec3{X: 2}))
}
