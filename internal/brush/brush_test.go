package brush

import (
	"math/rand"
	"testing"

	"github.com/annel0/gopaint/internal/brush/geometry"
	"github.com/annel0/gopaint/internal/brush/mask"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world"
	"github.com/annel0/gopaint/internal/world/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	stone = block.Of(block.StoneBlockID)
	dirt  = block.Of(block.DirtBlockID)
)

// fakeSettings - настройки для тестов кистей
type fakeSettings struct {
	brush       Brush
	size        int
	falloff     int
	chance      int
	thickness   int
	mixing      int
	fracture    int
	angle       int
	angleHeight int
	axis        geometry.Axis
	surface     SurfaceMode
	maskMode    MaskMode
	mask        mask.Mask
	blocks      []block.Content
}

func (s *fakeSettings) Brush() Brush               { return s.brush }
func (s *fakeSettings) Size() int                  { return s.size }
func (s *fakeSettings) FalloffStrength() int       { return s.falloff }
func (s *fakeSettings) Chance() int                { return s.chance }
func (s *fakeSettings) Thickness() int             { return s.thickness }
func (s *fakeSettings) MixingStrength() int        { return s.mixing }
func (s *fakeSettings) FractureDistance() int      { return s.fracture }
func (s *fakeSettings) AngleDistance() int         { return s.angle }
func (s *fakeSettings) AngleHeightDifference() int { return s.angleHeight }
func (s *fakeSettings) Axis() geometry.Axis        { return s.axis }
func (s *fakeSettings) SurfaceMode() SurfaceMode   { return s.surface }
func (s *fakeSettings) MaskMode() MaskMode         { return s.maskMode }
func (s *fakeSettings) Mask() mask.Mask            { return s.mask }
func (s *fakeSettings) Blocks() []block.Content    { return s.blocks }

// plainSettings - без маски, без поверхности, без затухания
func plainSettings(size int, blocks ...block.Content) *fakeSettings {
	return &fakeSettings{
		size:      size,
		falloff:   100,
		chance:    100,
		thickness: 1,
		fracture:  2,
		angle:     90,
		axis:      geometry.AxisY,
		surface:   SurfaceDisabled,
		maskMode:  MaskDisabled,
		blocks:    blocks,
	}
}

func stroke(w world.Reader, center vec.Vec3, s Settings) Stroke {
	return Stroke{World: w, Center: center, Settings: s, Rand: rand.New(rand.NewSource(42))}
}

// fillBox заполняет параллелепипед [min, max] содержимым c
func fillBox(w *world.Memory, min, max vec.Vec3, c block.Content) {
	for x := min.X; x <= max.X; x++ {
		for y := min.Y; y <= max.Y; y++ {
			for z := min.Z; z <= max.Z; z++ {
				w.Set(vec.Vec3{X: x, Y: y, Z: z}, c)
			}
		}
	}
}

// Тест сценария: сплошная сфера из камня
func TestSphere_FullStrengthFillsLattice(t *testing.T) {
	center := vec.Vec3{X: 0, Y: 64, Z: 0}
	edits := NewSphere().Paint(stroke(world.NewMemory(), center, plainSettings(5, stone)))

	want := make(map[vec.Vec3]bool)
	for x := -5; x <= 5; x++ {
		for y := -5; y <= 5; y++ {
			for z := -5; z <= 5; z++ {
				if x*x+y*y+z*z <= 25 {
					want[center.Add(vec.Vec3{X: x, Y: y, Z: z})] = true
				}
			}
		}
	}

	require.Len(t, edits, len(want), "каждая точка решётки в радиусе должна быть принята")
	for _, e := range edits {
		assert.True(t, want[e.Pos], "позиция %v вне сферы", e.Pos)
		assert.Equal(t, stone, e.Content)
	}
	assert.Len(t, edits.Positions(), len(want), "позиции не повторяются")
}

// Тест сценария: пустая палитра не даёт изменений
func TestSphere_EmptyPaletteIsNoop(t *testing.T) {
	for _, b := range DefaultRegistry().All() {
		edits := b.Paint(stroke(world.NewMemory(), vec.Vec3{}, plainSettings(4)))
		assert.Empty(t, edits, "кисть %s с пустой палитрой", b.Name())
	}
}

// Тест сценария: маска DIRT выбирает ровно клетки земли
func TestSphere_MaskSelectsMatchingSubset(t *testing.T) {
	w := world.NewMemory()
	rng := rand.New(rand.NewSource(5))
	dirtCells := make(map[vec.Vec3]bool)
	center := vec.Vec3{X: 10, Y: 10, Z: 10}
	for p := range geometry.Sphere(center, 3) {
		if rng.Intn(2) == 0 {
			w.Set(p, dirt)
			dirtCells[p] = true
		} else {
			w.Set(p, stone)
		}
	}
	require.NotEmpty(t, dirtCells)

	s := plainSettings(3, block.Of(block.SandBlockID))
	s.maskMode = MaskInterface
	s.mask = mask.Material(dirt, false)

	edits := NewSphere().Paint(stroke(w, center, s))
	got := make(map[vec.Vec3]bool)
	for _, e := range edits {
		got[e.Pos] = true
	}
	assert.Equal(t, dirtCells, got)
}

func TestSphere_SessionMaskMode(t *testing.T) {
	w := world.NewMemory()
	w.Set(vec.Vec3{X: 1}, dirt)

	s := plainSettings(2, stone)
	s.maskMode = MaskSession
	s.mask = mask.Material(stone, false)

	st := stroke(w, vec.Vec3{}, s)
	st.Actor.SessionMask = mask.Material(dirt, false)

	edits := NewSphere().Paint(st)
	require.Len(t, edits, 1, "используется маска сессии, а не маска настроек")
	assert.Equal(t, vec.Vec3{X: 1}, edits[0].Pos)

	st.Actor.SessionMask = nil
	assert.Len(t, NewSphere().Paint(st), 33, "без маски сессии фильтра нет")
}

func TestSphere_SurfaceModes(t *testing.T) {
	w := world.NewMemory()
	fillBox(w, vec.Vec3{X: -10, Y: -10, Z: -10}, vec.Vec3{X: 10, Y: 0, Z: 10}, stone)

	s := plainSettings(3, dirt)
	s.surface = SurfaceDirect
	edits := NewSphere().Paint(stroke(w, vec.Vec3{}, s))
	require.NotEmpty(t, edits)
	for _, e := range edits {
		assert.Equal(t, 0, e.Pos.Y, "только верхний слой открыт воздухом")
	}
	assert.Len(t, edits, 29, "диск радиуса 3 на верхнем слое")

	s.surface = SurfaceRelative
	st := stroke(w, vec.Vec3{}, s)
	st.Actor.Eye = vec.Vec3Float{X: 0.5, Y: 20, Z: 0.5}
	assert.Len(t, NewSphere().Paint(st), 29, "актор сверху видит верхний слой")

	st.Actor.Eye = vec.Vec3Float{X: 0.5, Y: -40, Z: 0.5}
	assert.Empty(t, NewSphere().Paint(st), "снизу открытых граней нет")
}

func TestSphere_FalloffThinsEdge(t *testing.T) {
	s := plainSettings(6, stone)
	s.falloff = 0
	edits := NewSphere().Paint(stroke(world.NewMemory(), vec.Vec3{}, s))

	full := 0
	for range geometry.Sphere(vec.Vec3{}, 6) {
		full++
	}
	assert.Less(t, len(edits), full)
	assert.NotEmpty(t, edits)
}

func TestPaint_SameSeedSameResult(t *testing.T) {
	s := plainSettings(5, stone, dirt)
	s.falloff = 30
	a := NewSplatter().Paint(Stroke{World: world.NewMemory(), Settings: s, Rand: rand.New(rand.NewSource(9))})
	s.chance = 50
	b := NewSplatter().Paint(Stroke{World: world.NewMemory(), Settings: s, Rand: rand.New(rand.NewSource(9))})
	c := NewSplatter().Paint(Stroke{World: world.NewMemory(), Settings: s, Rand: rand.New(rand.NewSource(9))})

	assert.Equal(t, b, c)
	assert.Less(t, len(b), len(a), "chance уменьшает число клеток")
}

func TestSpray_Chance(t *testing.T) {
	s := plainSettings(4, stone)
	s.chance = 0
	assert.Empty(t, NewSpray().Paint(stroke(world.NewMemory(), vec.Vec3{}, s)))

	s.chance = 100
	full := NewSphere().Paint(stroke(world.NewMemory(), vec.Vec3{}, s))
	assert.Len(t, NewSpray().Paint(stroke(world.NewMemory(), vec.Vec3{}, s)), len(full))

	s.chance = 50
	half := NewSpray().Paint(stroke(world.NewMemory(), vec.Vec3{}, s))
	assert.InDelta(t, len(full)/2, len(half), float64(len(full))/5)
}

func TestSplatter_ZeroChanceIsEmpty(t *testing.T) {
	s := plainSettings(4, stone)
	s.chance = 0
	assert.Empty(t, NewSplatter().Paint(stroke(world.NewMemory(), vec.Vec3{}, s)))
}

func TestDisc_PerpendicularToAxis(t *testing.T) {
	s := plainSettings(3, stone)
	s.axis = geometry.AxisX
	edits := NewDisc().Paint(stroke(world.NewMemory(), vec.Vec3{X: 7}, s))
	require.Len(t, edits, 29)
	for _, e := range edits {
		assert.Equal(t, 7, e.Pos.X)
	}
}

func TestOverlay_TopLayers(t *testing.T) {
	w := world.NewMemory()
	fillBox(w, vec.Vec3{X: -8, Y: -8, Z: -8}, vec.Vec3{X: 8, Y: 0, Z: 8}, stone)

	s := plainSettings(4, dirt)
	s.thickness = 2
	edits := NewOverlay().Paint(stroke(w, vec.Vec3{}, s))
	require.NotEmpty(t, edits)
	ys := make(map[int]bool)
	for _, e := range edits {
		ys[e.Pos.Y] = true
	}
	assert.Equal(t, map[int]bool{0: true, -1: true}, ys)
}

func TestUnderlay_BottomLayers(t *testing.T) {
	w := world.NewMemory()
	fillBox(w, vec.Vec3{X: -8, Y: 0, Z: -8}, vec.Vec3{X: 8, Y: 8, Z: 8}, stone)

	s := plainSettings(4, dirt)
	s.thickness = 1
	edits := NewUnderlay().Paint(stroke(w, vec.Vec3{}, s))
	require.NotEmpty(t, edits)
	for _, e := range edits {
		assert.Equal(t, 0, e.Pos.Y, "только нижний слой")
	}
}

func TestFracture_SparseReplicas(t *testing.T) {
	s := plainSettings(6, stone)
	edits := NewFracture().Paint(stroke(world.NewMemory(), vec.Vec3{}, s))
	assert.Len(t, edits, 13, "4 луча по 3 реплики и центр")
	assert.Contains(t, edits, Edit{Pos: vec.Vec3{}, Content: stone})
	assert.Contains(t, edits, Edit{Pos: vec.Vec3{Z: -4}, Content: stone})
}

func TestGradient_AlongAxis(t *testing.T) {
	s := plainSettings(2, stone, dirt)
	s.mixing = 0
	edits := NewGradient().Paint(stroke(world.NewMemory(), vec.Vec3{}, s))
	require.NotEmpty(t, edits)
	for _, e := range edits {
		if e.Pos.Y <= 0 {
			assert.Equal(t, stone, e.Content, "y=%d", e.Pos.Y)
		} else {
			assert.Equal(t, dirt, e.Content, "y=%d", e.Pos.Y)
		}
	}
}

func TestPaint_DoesNotMutateWorld(t *testing.T) {
	w := world.NewMemory()
	w.Set(vec.Vec3{}, dirt)
	for _, b := range DefaultRegistry().All() {
		b.Paint(stroke(w, vec.Vec3{}, plainSettings(3, stone)))
	}
	assert.Equal(t, 1, w.Len())
	assert.Equal(t, dirt, w.CellAt(vec.Vec3{}))
}

func TestModes_CycleWraps(t *testing.T) {
	m := MaskInterface
	for i := 0; i < 3; i++ {
		m = m.Next()
	}
	assert.Equal(t, MaskInterface, m)

	sm := SurfaceDirect
	assert.Equal(t, SurfaceDisabled, sm.Next())
	assert.Equal(t, SurfaceDirect, sm.Next().Next().Next())

	got, ok := ParseMaskMode("session")
	assert.True(t, ok)
	assert.Equal(t, MaskSession, got)
	_, ok = ParseSurfaceMode("sideways")
	assert.False(t, ok)
}
