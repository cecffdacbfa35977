package settings

import (
	"github.com/annel0/gopaint/internal/brush"
	"github.com/annel0/gopaint/internal/brush/mask"
)

// Exported - неизменяемый снимок настроек, не привязанный к актору.
// Используется для пресетов и предметов с сохранённой кистью.
type Exported struct {
	state
}

var _ brush.Settings = (*Exported)(nil)

// Apply переносит снимок в настройки актора. Значения ограничиваются диапазонами s.
func (e *Exported) Apply(s *Settings) {
	st := e.state.clone()
	s.state = st
	l := s.limits
	s.size = l.Size.Clamp(st.size)
	s.falloff = l.Falloff.Clamp(st.falloff)
	s.chance = l.Chance.Clamp(st.chance)
	s.thickness = l.Thickness.Clamp(st.thickness)
	s.mixing = l.Mixing.Clamp(st.mixing)
	s.fractureDistance = l.FractureDistance.Clamp(st.fractureDistance)
	s.angleDistance = l.AngleDistance.Clamp(st.angleDistance)
	s.angleHeight = l.AngleHeight.Clamp(st.angleHeight)
	if st.maskContent != nil {
		s.mask = mask.Material(*st.maskContent, l.LegacyData)
	}
	if s.brush == nil {
		s.brush = s.registry.First()
	}
}
