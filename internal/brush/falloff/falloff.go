// Package falloff превращает расстояние до центра кисти в вероятность принятия клетки.
//
// Внутри радиуса radius*strength/100 клетки принимаются всегда, дальше порог отказа
// t = (d - inner) / (radius - inner) растёт линейно до 1 на границе кисти.
// strength = 100 означает отсутствие затухания.
package falloff

import "math/rand"

const MaxStrength = 100

// Threshold возвращает порог отказа t для клетки на расстоянии distance.
// Клетка принимается, если случайное число из [0,1) больше t.
func Threshold(distance, radius float64, strength int) float64 {
	strength = clampStrength(strength)
	if radius <= 0 || strength == MaxStrength {
		return 0
	}

	inner := radius * float64(strength) / MaxStrength
	return (distance - inner) / (radius - inner)
}

// Acceptance возвращает вероятность принятия клетки в диапазоне [0,1]
func Acceptance(distance, radius float64, strength int) float64 {
	t := Threshold(distance, radius, strength)
	switch {
	case t <= 0:
		return 1
	case t >= 1:
		return 0
	default:
		return 1 - t
	}
}

// Accept тянет одно случайное число и решает, принять ли клетку
func Accept(rng *rand.Rand, distance, radius float64, strength int) bool {
	t := Threshold(distance, radius, strength)
	if t <= 0 {
		return true
	}
	return rng.Float64() > t
}

func clampStrength(s int) int {
	if s < 0 {
		return 0
	}
	if s > MaxStrength {
		return MaxStrength
	}
	return s
}
