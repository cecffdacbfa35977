// Package settings хранит настройки кисти актора и их экспортированные снимки.
package settings

import (
	"errors"
	"fmt"

	"github.com/annel0/gopaint/internal/brush"
	"github.com/annel0/gopaint/internal/brush/geometry"
	"github.com/annel0/gopaint/internal/brush/mask"
	"github.com/annel0/gopaint/internal/world/block"
)

// ErrInvalidMask возвращается, если материал нельзя использовать как маску
var ErrInvalidMask = errors.New("settings: material cannot be used as mask")

// state - общие значения настроек игрока и экспортированного снимка
type state struct {
	brush brush.Brush

	size             int
	falloff          int
	chance           int
	thickness        int
	mixing           int
	fractureDistance int
	angleDistance    int
	angleHeight      int

	axis        geometry.Axis
	surfaceMode brush.SurfaceMode
	maskMode    brush.MaskMode

	// maskContent и mask меняются только вместе
	maskContent *block.Content
	mask        mask.Mask

	palette Palette
}

func (s *state) Brush() brush.Brush             { return s.brush }
func (s *state) Size() int                      { return s.size }
func (s *state) FalloffStrength() int           { return s.falloff }
func (s *state) Chance() int                    { return s.chance }
func (s *state) Thickness() int                 { return s.thickness }
func (s *state) MixingStrength() int            { return s.mixing }
func (s *state) FractureDistance() int          { return s.fractureDistance }
func (s *state) AngleDistance() int             { return s.angleDistance }
func (s *state) AngleHeightDifference() int     { return s.angleHeight }
func (s *state) Axis() geometry.Axis            { return s.axis }
func (s *state) SurfaceMode() brush.SurfaceMode { return s.surfaceMode }
func (s *state) MaskMode() brush.MaskMode       { return s.maskMode }
func (s *state) Blocks() []block.Content        { return s.palette.Blocks() }
func (s *state) Palette() Palette               { return s.palette.Clone() }

// Mask возвращает активную маску или nil
func (s *state) Mask() mask.Mask {
	if s.maskContent == nil {
		return nil
	}
	return s.mask
}

// MaskContent возвращает материал маски
func (s *state) MaskContent() (block.Content, bool) {
	if s.maskContent == nil {
		return block.Content{}, false
	}
	return *s.maskContent, true
}

func (s *state) clone() state {
	c := *s
	c.palette = s.palette.Clone()
	if s.maskContent != nil {
		mc := *s.maskContent
		c.maskContent = &mc
	}
	return c
}

// Settings - изменяемые настройки кисти одного актора.
// Поля меняются только через методы; все числовые значения ограничиваются диапазонами.
type Settings struct {
	state

	limits   Limits
	registry *brush.Registry
	enabled  bool
}

var _ brush.Settings = (*Settings)(nil)

// New создаёт настройки со значениями по умолчанию и первой кистью реестра
func New(limits Limits, registry *brush.Registry) *Settings {
	s := &Settings{
		limits:   limits,
		registry: registry,
		enabled:  true,
	}
	s.state = state{
		brush:            registry.First(),
		size:             limits.Size.Clamp(limits.Size.Default),
		falloff:          limits.Falloff.Clamp(limits.Falloff.Default),
		chance:           limits.Chance.Clamp(limits.Chance.Default),
		thickness:        limits.Thickness.Clamp(limits.Thickness.Default),
		mixing:           limits.Mixing.Clamp(limits.Mixing.Default),
		fractureDistance: limits.FractureDistance.Clamp(limits.FractureDistance.Default),
		angleDistance:    limits.AngleDistance.Clamp(limits.AngleDistance.Default),
		angleHeight:      limits.AngleHeight.Clamp(limits.AngleHeight.Default),
		axis:             geometry.AxisY,
		surfaceMode:      brush.SurfaceDirect,
		maskMode:         brush.MaskInterface,
		palette:          NewPalette(),
	}
	return s
}

// Limits возвращает диапазоны настроек
func (s *Settings) Limits() Limits { return s.limits }

// Enabled сообщает, включена ли кисть
func (s *Settings) Enabled() bool { return s.enabled }

// Toggle переключает кисть и возвращает новое состояние
func (s *Settings) Toggle() bool {
	s.enabled = !s.enabled
	return s.enabled
}

// Размер

func (s *Settings) IncreaseBrushSize(n int) { s.SetBrushSize(s.size + n) }
func (s *Settings) DecreaseBrushSize(n int) { s.SetBrushSize(s.size - n) }

// SetBrushSize устанавливает размер в пределах [Min, Max]
func (s *Settings) SetBrushSize(n int) {
	s.size = s.limits.Size.Clamp(n)
}

// Шаговые настройки

func (s *Settings) IncreaseFalloffStrength() { s.falloff = step(s.limits.Falloff, s.falloff, 1) }
func (s *Settings) DecreaseFalloffStrength() { s.falloff = step(s.limits.Falloff, s.falloff, -1) }
func (s *Settings) IncreaseChance()          { s.chance = step(s.limits.Chance, s.chance, 1) }
func (s *Settings) DecreaseChance()          { s.chance = step(s.limits.Chance, s.chance, -1) }
func (s *Settings) IncreaseThickness()       { s.thickness = step(s.limits.Thickness, s.thickness, 1) }
func (s *Settings) DecreaseThickness()       { s.thickness = step(s.limits.Thickness, s.thickness, -1) }
func (s *Settings) IncreaseMixingStrength()  { s.mixing = step(s.limits.Mixing, s.mixing, 1) }
func (s *Settings) DecreaseMixingStrength()  { s.mixing = step(s.limits.Mixing, s.mixing, -1) }

func (s *Settings) IncreaseFractureDistance() {
	s.fractureDistance = step(s.limits.FractureDistance, s.fractureDistance, 1)
}

func (s *Settings) DecreaseFractureDistance() {
	s.fractureDistance = step(s.limits.FractureDistance, s.fractureDistance, -1)
}

func (s *Settings) IncreaseAngleDistance() {
	s.angleDistance = step(s.limits.AngleDistance, s.angleDistance, 1)
}

func (s *Settings) DecreaseAngleDistance() {
	s.angleDistance = step(s.limits.AngleDistance, s.angleDistance, -1)
}

// IncreaseAngleHeightDifference увеличивает наклон лучей на n градусов
func (s *Settings) IncreaseAngleHeightDifference(n int) {
	s.angleHeight = s.limits.AngleHeight.Clamp(s.angleHeight + n)
}

// DecreaseAngleHeightDifference уменьшает наклон лучей на n градусов
func (s *Settings) DecreaseAngleHeightDifference(n int) {
	s.angleHeight = s.limits.AngleHeight.Clamp(s.angleHeight - n)
}

// Циклические настройки

func (s *Settings) CycleAxis()        { s.axis = s.axis.Next() }
func (s *Settings) CycleMaskMode()    { s.maskMode = s.maskMode.Next() }
func (s *Settings) CycleSurfaceMode() { s.surfaceMode = s.surfaceMode.Next() }

// CycleBrushForward выбирает следующую кисть реестра
func (s *Settings) CycleBrushForward() {
	s.brush = s.registry.Next(s.brush)
}

// CycleBrushBackward выбирает предыдущую кисть реестра
func (s *Settings) CycleBrushBackward() {
	s.brush = s.registry.Previous(s.brush)
}

// SetBrush выбирает кисть. nil игнорируется.
func (s *Settings) SetBrush(b brush.Brush) {
	if b != nil {
		s.brush = b
	}
}

// Прямая установка значений

func (s *Settings) SetAxis(a geometry.Axis)            { s.axis = a }
func (s *Settings) SetMaskMode(m brush.MaskMode)       { s.maskMode = m }
func (s *Settings) SetSurfaceMode(m brush.SurfaceMode) { s.surfaceMode = m }
func (s *Settings) SetFalloffStrength(n int)           { s.falloff = s.limits.Falloff.Clamp(n) }
func (s *Settings) SetChance(n int)                    { s.chance = s.limits.Chance.Clamp(n) }

// Палитра

// AddBlock кладёт материал в слот, заменяя прежний
func (s *Settings) AddBlock(c block.Content, slot int) {
	if slot < 0 {
		return
	}
	s.palette.Set(slot, c)
}

// RemoveBlock освобождает слот, пустой слот не меняет палитру
func (s *Settings) RemoveBlock(slot int) {
	s.palette.Remove(slot)
}

// Маска

// SetMask перестраивает маску по материалу. Неподходящий материал
// не меняет текущую маску и возвращает ErrInvalidMask.
func (s *Settings) SetMask(c block.Content) error {
	if !block.IsItem(c.ID) {
		return fmt.Errorf("%w: %s", ErrInvalidMask, c)
	}
	mc := c
	s.maskContent = &mc
	s.mask = mask.Material(c, s.limits.LegacyData)
	return nil
}

// ClearMask убирает маску
func (s *Settings) ClearMask() {
	s.maskContent = nil
	s.mask = nil
}

// Export фиксирует текущее состояние в независимый снимок
func (s *Settings) Export() *Exported {
	return &Exported{state: s.state.clone()}
}

func step(r Range, v, dir int) int {
	return r.Clamp(v + dir*r.Step)
}
