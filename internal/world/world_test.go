package world

import (
	"context"
	"testing"

	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetAndRead(t *testing.T) {
	w := NewMemory()
	pos := vec.Vec3{X: 1, Y: 2, Z: 3}

	assert.True(t, w.IsAir(pos), "незаданная клетка должна быть воздухом")

	w.Set(pos, block.Of(block.StoneBlockID))
	assert.Equal(t, block.Of(block.StoneBlockID), w.CellAt(pos))
	assert.Equal(t, 1, w.Len())

	w.Set(pos, block.Air)
	assert.Equal(t, 0, w.Len(), "воздух не хранится")
}

func TestSession_CommitAppliesAtomically(t *testing.T) {
	w := NewMemory()
	actor := uuid.New()
	a := vec.Vec3{X: 0}
	b := vec.Vec3{X: 1}
	w.Set(a, block.Of(block.DirtBlockID))

	s, err := w.NewEditSession(context.Background(), actor)
	require.NoError(t, err)

	require.NoError(t, s.Propose(a, block.Of(block.StoneBlockID)))
	require.NoError(t, s.Propose(b, block.Of(block.SandBlockID)))
	require.NoError(t, s.Propose(b, block.Of(block.GravelBlockID)))
	assert.Equal(t, 2, s.Len(), "повторное предложение позиции заменяет запись")

	assert.True(t, w.IsAir(b), "до Commit мир не меняется")

	cs, err := s.Commit()
	require.NoError(t, err)
	assert.Equal(t, actor, cs.Actor)
	require.Len(t, cs.Changes, 2)
	assert.Equal(t, block.Of(block.DirtBlockID), cs.Changes[0].Before)
	assert.Equal(t, block.Of(block.GravelBlockID), w.CellAt(b))

	assert.ErrorIs(t, s.Propose(a, block.Air), ErrSessionClosed)
	_, err = s.Commit()
	assert.ErrorIs(t, err, ErrSessionClosed)
	assert.NoError(t, s.Close(), "Close после Commit допустим")
}

func TestSession_CloseWithoutCommitDiscards(t *testing.T) {
	w := NewMemory()
	s, err := w.NewEditSession(context.Background(), uuid.New())
	require.NoError(t, err)

	require.NoError(t, s.Propose(vec.Vec3{}, block.Of(block.StoneBlockID)))
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "повторный Close не является ошибкой")

	assert.Equal(t, 0, w.Len())
}

func TestSession_ChangeLimit(t *testing.T) {
	w := NewMemory()
	w.SetChangeLimit(2)
	s, err := w.NewEditSession(context.Background(), uuid.New())
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Propose(vec.Vec3{X: 0}, block.Of(block.StoneBlockID)))
	require.NoError(t, s.Propose(vec.Vec3{X: 1}, block.Of(block.StoneBlockID)))
	assert.ErrorIs(t, s.Propose(vec.Vec3{X: 2}, block.Of(block.StoneBlockID)), ErrLimitExceeded)
}

func TestSession_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMemory().NewEditSession(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChangeset_Inverse(t *testing.T) {
	cs := Changeset{Changes: []Change{
		{Pos: vec.Vec3{X: 1}, Before: block.Air, After: block.Of(block.StoneBlockID)},
		{Pos: vec.Vec3{X: 2}, Before: block.Of(block.DirtBlockID), After: block.Of(block.SandBlockID)},
	}}

	inv := cs.Inverse()
	require.Len(t, inv, 2)
	assert.Equal(t, vec.Vec3{X: 2}, inv[0].Pos)
	assert.Equal(t, block.Of(block.DirtBlockID), inv[0].After)
	assert.Equal(t, block.Air, inv[1].After)
}

func TestHistory_BoundedStack(t *testing.T) {
	h := NewHistory(2)
	actor := uuid.New()
	change := []Change{{Pos: vec.Vec3{}, After: block.Of(block.StoneBlockID)}}

	h.Remember(Changeset{Actor: actor})
	assert.Equal(t, 0, h.Len(actor), "пустой набор не сохраняется")

	for i := 0; i < 3; i++ {
		h.Remember(Changeset{Actor: actor, Changes: append([]Change(nil), Change{Pos: vec.Vec3{X: i}})})
	}
	h.Remember(Changeset{Actor: uuid.New(), Changes: change})
	assert.Equal(t, 2, h.Len(actor))

	cs, ok := h.Pop(actor)
	require.True(t, ok)
	assert.Equal(t, 2, cs.Changes[0].Pos.X, "Pop возвращает последний набор")

	cs, ok = h.Pop(actor)
	require.True(t, ok)
	assert.Equal(t, 1, cs.Changes[0].Pos.X, "самый старый набор вытеснен")

	_, ok = h.Pop(actor)
	assert.False(t, ok)

	h.Remember(Changeset{Actor: actor, Changes: change})
	h.Forget(actor)
	assert.Equal(t, 0, h.Len(actor))
}

func TestOnSurface(t *testing.T) {
	w := NewMemory()
	// Куб 3x3x3 из камня: центр закрыт со всех сторон
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				w.Set(vec.Vec3{X: x, Y: y, Z: z}, block.Of(block.StoneBlockID))
			}
		}
	}

	assert.False(t, OnSurface(w, vec.Vec3{}), "центр куба не на поверхности")
	assert.True(t, OnSurface(w, vec.Vec3{Y: 1}), "верхняя грань на поверхности")
	assert.False(t, OnSurface(w, vec.Vec3{Y: 5}), "воздух не бывает поверхностью")

	eye := vec.Vec3Float{X: 0.5, Y: 10, Z: 0.5}
	assert.True(t, OnSurfaceToward(w, vec.Vec3{Y: 1}, eye), "верх обращён к наблюдателю")
	assert.False(t, OnSurfaceToward(w, vec.Vec3{Y: -1}, eye), "низ куба открыт только вниз и вбок от наблюдателя")
}
