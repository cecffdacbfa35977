package brush

import (
	"iter"
	"math/rand"
	"time"

	"github.com/annel0/gopaint/internal/brush/falloff"
	"github.com/annel0/gopaint/internal/brush/geometry"
	"github.com/annel0/gopaint/internal/brush/mask"
	"github.com/annel0/gopaint/internal/brush/pattern"
	"github.com/annel0/gopaint/internal/vec"
	"github.com/annel0/gopaint/internal/world"
	"github.com/annel0/gopaint/internal/world/block"
)

// shapeFunc выдаёт кандидатов для мазка
type shapeFunc func(st Stroke) iter.Seq[vec.Vec3]

// acceptFunc решает, принять ли кандидата. Вызывается ровно один раз на кандидата.
type acceptFunc func(st Stroke, pos vec.Vec3) bool

// patternFunc строит шаблон содержимого на один мазок
type patternFunc func(st Stroke, palette []block.Content) (pattern.Pattern, error)

// spherePattern - общий конвейер кистей:
// форма -> поверхность -> маска -> принятие -> шаблон.
// Варианты подменяют только отдельные шаги.
type spherePattern struct {
	name        string
	description string
	icon        string

	shape   shapeFunc   // nil - сфера радиуса Size
	accept  acceptFunc  // nil - затухание
	pattern patternFunc // nil - случайный выбор из палитры
}

func (b *spherePattern) Name() string        { return b.name }
func (b *spherePattern) Description() string { return b.description }
func (b *spherePattern) Icon() string        { return b.icon }

// Paint реализует Brush
func (b *spherePattern) Paint(st Stroke) PendingEdit {
	if st.Settings == nil || st.World == nil {
		return nil
	}
	palette := st.Settings.Blocks()
	if len(palette) == 0 {
		return nil
	}
	if st.Rand == nil {
		st.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	build := b.pattern
	if build == nil {
		build = randomPalette
	}
	pat, err := build(st, palette)
	if err != nil {
		return nil
	}

	shape := b.shape
	if shape == nil {
		shape = sphereShape
	}
	accept := b.accept
	if accept == nil {
		accept = falloffAccept
	}
	m := activeMask(st)

	var edits PendingEdit
	for pos := range shape(st) {
		if !onSurface(st, pos) {
			continue
		}
		if m != nil && !m.Matches(st.World, pos) {
			continue
		}
		if !accept(st, pos) {
			continue
		}
		content, ok := pat.Apply(pos)
		if !ok {
			continue
		}
		edits = append(edits, Edit{Pos: pos, Content: content})
	}
	return edits
}

func sphereShape(st Stroke) iter.Seq[vec.Vec3] {
	return geometry.Sphere(st.Center, st.Settings.Size())
}

func discShape(st Stroke) iter.Seq[vec.Vec3] {
	return geometry.Disc(st.Center, st.Settings.Size(), st.Settings.Axis())
}

func randomPalette(st Stroke, palette []block.Content) (pattern.Pattern, error) {
	return pattern.NewRandom(palette, st.Rand)
}

func falloffAccept(st Stroke, pos vec.Vec3) bool {
	return falloff.Accept(
		st.Rand,
		geometry.Distance(st.Center, pos),
		float64(st.Settings.Size()),
		st.Settings.FalloffStrength(),
	)
}

func chanceAccept(st Stroke, _ vec.Vec3) bool {
	return st.Rand.Intn(100) < st.Settings.Chance()
}

// activeMask возвращает маску по режиму или nil, если фильтровать не нужно
func activeMask(st Stroke) mask.Mask {
	switch st.Settings.MaskMode() {
	case MaskInterface:
		return st.Settings.Mask()
	case MaskSession:
		return st.Actor.SessionMask
	default:
		return nil
	}
}

func onSurface(st Stroke, pos vec.Vec3) bool {
	switch st.Settings.SurfaceMode() {
	case SurfaceDirect:
		return world.OnSurface(st.World, pos)
	case SurfaceRelative:
		return world.OnSurfaceToward(st.World, pos, st.Actor.Eye)
	default:
		return true
	}
}
