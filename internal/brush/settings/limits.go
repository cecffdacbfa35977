package settings

// Range задаёт допустимые значения числовой настройки
type Range struct {
	Min     int `yaml:"min"`
	Max     int `yaml:"max"`
	Default int `yaml:"default"`
	Step    int `yaml:"step"`
}

// Clamp ограничивает v диапазоном [Min, Max]
func (r Range) Clamp(v int) int {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Valid сообщает, что диапазон непуст и значение по умолчанию внутри него
func (r Range) Valid() bool {
	return r.Min <= r.Max && r.Default >= r.Min && r.Default <= r.Max && r.Step >= 0
}

// Limits содержит диапазоны всех числовых настроек кисти
type Limits struct {
	Size             Range
	Falloff          Range
	Chance           Range
	Thickness        Range
	Mixing           Range
	FractureDistance Range
	AngleDistance    Range // градусы между лучами трещин
	AngleHeight      Range // наклон лучей трещин в градусах

	// LegacyData включает сравнение подтипа материала в масках
	LegacyData bool
}

// DefaultLimits возвращает стандартные диапазоны
func DefaultLimits() Limits {
	return Limits{
		Size:             Range{Min: 1, Max: 100, Default: 10, Step: 1},
		Falloff:          Range{Min: 0, Max: 100, Default: 50, Step: 10},
		Chance:           Range{Min: 0, Max: 100, Default: 50, Step: 10},
		Thickness:        Range{Min: 1, Max: 10, Default: 1, Step: 1},
		Mixing:           Range{Min: 0, Max: 100, Default: 50, Step: 10},
		FractureDistance: Range{Min: 1, Max: 20, Default: 2, Step: 1},
		AngleDistance:    Range{Min: 5, Max: 180, Default: 45, Step: 5},
		AngleHeight:      Range{Min: 0, Max: 85, Default: 15, Step: 5},
	}
}
