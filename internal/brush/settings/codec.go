package settings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/annel0/gopaint/internal/brush"
	"github.com/annel0/gopaint/internal/brush/geometry"
	"github.com/annel0/gopaint/internal/brush/mask"
	"github.com/annel0/gopaint/internal/world/block"
)

var (
	// ErrNotExported - носитель не содержит экспортированных настроек
	ErrNotExported = errors.New("settings: carrier holds no exported brush")
	// ErrMalformed - строки носителя не разбираются
	ErrMalformed = errors.New("settings: malformed exported brush")
)

// exportMarker - первая строка описания экспортированной кисти
const exportMarker = "GoPaint exported brush"

// Ключи строк описания
const (
	keyBrush       = "Brush"
	keySize        = "Size"
	keyFalloff     = "Falloff"
	keyChance      = "Chance"
	keyThickness   = "Thickness"
	keyMixing      = "Mixing"
	keyFracture    = "Fracture"
	keyAngle       = "Angle"
	keyAngleHeight = "AngleHeight"
	keyAxis        = "Axis"
	keySurface     = "Surface"
	keyMaskMode    = "MaskMode"
	keyMask        = "Mask"
	keyBlocks      = "Blocks"
)

// Carrier - видимое представление экспортированной кисти: имя и строки описания,
// как у предмета в инвентаре.
type Carrier struct {
	Name string   `json:"name"`
	Lore []string `json:"lore"`
}

// Encode записывает снимок в носитель
func Encode(e *Exported) Carrier {
	name := ""
	if e.brush != nil {
		name = e.brush.Name()
	}

	lore := []string{exportMarker}
	if name != "" {
		lore = append(lore, line(keyBrush, name))
	}
	lore = append(lore,
		line(keySize, strconv.Itoa(e.size)),
		line(keyFalloff, strconv.Itoa(e.falloff)),
		line(keyChance, strconv.Itoa(e.chance)),
		line(keyThickness, strconv.Itoa(e.thickness)),
		line(keyMixing, strconv.Itoa(e.mixing)),
		line(keyFracture, strconv.Itoa(e.fractureDistance)),
		line(keyAngle, strconv.Itoa(e.angleDistance)),
		line(keyAngleHeight, strconv.Itoa(e.angleHeight)),
		line(keyAxis, e.axis.String()),
		line(keySurface, e.surfaceMode.String()),
		line(keyMaskMode, e.maskMode.String()),
	)
	if mc, ok := e.MaskContent(); ok {
		lore = append(lore, line(keyMask, mc.String()))
	}
	if e.palette.Len() > 0 {
		parts := make([]string, 0, e.palette.Len())
		for _, slot := range e.palette.Slots() {
			c, _ := e.palette.Get(slot)
			parts = append(parts, fmt.Sprintf("%d=%s", slot, c))
		}
		lore = append(lore, line(keyBlocks, strings.Join(parts, ", ")))
	}

	return Carrier{Name: name, Lore: lore}
}

// Decode восстанавливает снимок из носителя. Кисть ищется в registry,
// числовые значения ограничиваются limits.
func Decode(c Carrier, registry *brush.Registry, limits Limits) (*Exported, error) {
	if len(c.Lore) == 0 || c.Lore[0] != exportMarker {
		return nil, ErrNotExported
	}

	defaults := New(limits, registry)
	st := defaults.state.clone()

	for _, raw := range c.Lore[1:] {
		key, value, ok := strings.Cut(raw, ": ")
		if !ok {
			return nil, fmt.Errorf("%w: line %q", ErrMalformed, raw)
		}
		if err := decodeLine(&st, key, value, registry, limits); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, key, err)
		}
	}
	return &Exported{state: st}, nil
}

func decodeLine(st *state, key, value string, registry *brush.Registry, limits Limits) error {
	switch key {
	case keyBrush:
		b, ok := registry.ByName(value)
		if !ok {
			return fmt.Errorf("unknown brush %q", value)
		}
		st.brush = b
	case keySize:
		return decodeInt(value, limits.Size, &st.size)
	case keyFalloff:
		return decodeInt(value, limits.Falloff, &st.falloff)
	case keyChance:
		return decodeInt(value, limits.Chance, &st.chance)
	case keyThickness:
		return decodeInt(value, limits.Thickness, &st.thickness)
	case keyMixing:
		return decodeInt(value, limits.Mixing, &st.mixing)
	case keyFracture:
		return decodeInt(value, limits.FractureDistance, &st.fractureDistance)
	case keyAngle:
		return decodeInt(value, limits.AngleDistance, &st.angleDistance)
	case keyAngleHeight:
		return decodeInt(value, limits.AngleHeight, &st.angleHeight)
	case keyAxis:
		a, err := geometry.ParseAxis(value)
		if err != nil {
			return err
		}
		st.axis = a
	case keySurface:
		m, ok := brush.ParseSurfaceMode(value)
		if !ok {
			return fmt.Errorf("unknown surface mode %q", value)
		}
		st.surfaceMode = m
	case keyMaskMode:
		m, ok := brush.ParseMaskMode(value)
		if !ok {
			return fmt.Errorf("unknown mask mode %q", value)
		}
		st.maskMode = m
	case keyMask:
		c, err := block.Parse(value)
		if err != nil {
			return err
		}
		if !block.IsItem(c.ID) {
			return fmt.Errorf("%w: %s", ErrInvalidMask, c)
		}
		st.maskContent = &c
		st.mask = mask.Material(c, limits.LegacyData)
	case keyBlocks:
		palette, err := decodePalette(value)
		if err != nil {
			return err
		}
		st.palette = palette
	}
	// Незнакомые ключи пропускаются
	return nil
}

func decodeInt(value string, r Range, dst *int) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = r.Clamp(n)
	return nil
}

// decodePalette разбирает "0=stone, 3=dirt:1"
func decodePalette(value string) (Palette, error) {
	p := NewPalette()
	for _, part := range strings.Split(value, ",") {
		slotStr, name, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			return p, fmt.Errorf("palette entry %q", part)
		}
		slot, err := strconv.Atoi(slotStr)
		if err != nil || slot < 0 {
			return p, fmt.Errorf("palette slot %q", slotStr)
		}
		c, err := block.Parse(name)
		if err != nil {
			return p, err
		}
		if _, dup := p.Get(slot); dup {
			return p, fmt.Errorf("duplicate palette slot %d", slot)
		}
		p.Set(slot, c)
	}
	return p, nil
}

// IsExported сообщает, что носитель содержит экспортированную кисть
func IsExported(c Carrier) bool {
	return len(c.Lore) > 0 && c.Lore[0] == exportMarker
}

func line(key, value string) string {
	return key + ": " + value
}
